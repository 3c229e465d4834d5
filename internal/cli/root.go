package cli

import (
	"database/sql"

	"github.com/spf13/cobra"

	"equipment_management/internal/config"
	"equipment_management/internal/db"
	"equipment_management/internal/repository"
)

var rootCmd = &cobra.Command{
	Use:   "equipment-server",
	Short: "Equipment and timesheet management backend",
	Long: `Backend for tracking construction-site equipment, drivers and
monthly operator timesheets.

Running without arguments starts the HTTP server.`,
	RunE: runServe,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(seedUserCmd)
}

// deps bundles the database handle and repositories each command wires up.
type deps struct {
	conn *sql.DB
	cfg  *config.Config

	users      *repository.UserRepo
	equipment  *repository.EquipmentRepo
	drivers    *repository.DriverRepo
	requests   *repository.RequestRepo
	dashboard  *repository.DashboardRepo
	timesheets *repository.TimesheetRepo
}

func openDeps() (*deps, error) {
	cfg := config.Load()
	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return &deps{
		conn:       conn,
		cfg:        cfg,
		users:      repository.NewUserRepo(conn),
		equipment:  repository.NewEquipmentRepo(conn),
		drivers:    repository.NewDriverRepo(conn),
		requests:   repository.NewRequestRepo(conn),
		dashboard:  repository.NewDashboardRepo(conn),
		timesheets: repository.NewTimesheetRepo(conn),
	}, nil
}

func (d *deps) Close() error {
	return d.conn.Close()
}
