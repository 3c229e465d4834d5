package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"equipment_management/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <workbook.xlsx>",
	Short: "Import equipment and drivers from the supplier workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps()
		if err != nil {
			return err
		}
		defer d.Close()

		imp := importer.New(d.equipment, d.drivers)
		summary, err := imp.Run(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Imported %d equipment, %d drivers (%d rows skipped)\n",
			summary.EquipmentInserted, summary.DriversInserted, summary.RowsSkipped)
		return nil
	},
}
