package cli

import (
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"equipment_management/internal/server"
	"equipment_management/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	d, err := openDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	timesheets := service.NewTimesheetService(d.timesheets, d.equipment, d.drivers)
	srv := server.New(
		d.cfg.SessionSecret,
		d.cfg.StaticDir,
		d.users,
		d.equipment,
		d.drivers,
		d.requests,
		d.dashboard,
		timesheets,
	)

	log.Printf("Server starting on %s", d.cfg.Addr)
	return http.ListenAndServe(d.cfg.Addr, srv.Handler())
}
