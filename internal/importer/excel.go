// Package importer loads the "Supplier Equipment" workbook used by the site
// office into the equipment and driver tables. It is a one-time ETL run from
// the command line, not part of the request path.
package importer

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"

	"equipment_management/internal/domain"
	"equipment_management/internal/repository"
)

const sheetName = "Supplier Equipment"

type ExcelImporter struct {
	equipment repository.EquipmentRepository
	drivers   repository.DriverRepository
}

func New(equipment repository.EquipmentRepository, drivers repository.DriverRepository) *ExcelImporter {
	return &ExcelImporter{equipment: equipment, drivers: drivers}
}

type Summary struct {
	EquipmentInserted int
	DriversInserted   int
	RowsSkipped       int
}

// Run reads the workbook and inserts equipment rows keyed by plate number
// and driver rows keyed by eqama number. Rows already present are left
// untouched so the import can be re-run.
func (imp *ExcelImporter) Run(ctx context.Context, filePath string) (*Summary, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheetName)
	}

	columns := map[string]int{}
	for i, name := range rows[0] {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"equipment_name", "plate_serial_no"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("sheet %q is missing column %q", sheetName, required)
		}
	}

	existingEq, err := imp.equipment.List(ctx)
	if err != nil {
		return nil, err
	}
	equipmentByPlate := map[string]*domain.Equipment{}
	for _, eq := range existingEq {
		equipmentByPlate[eq.PlateSerialNo] = eq
	}

	existingDrivers, err := imp.drivers.List(ctx)
	if err != nil {
		return nil, err
	}
	driversByEqama := map[string]bool{}
	for _, d := range existingDrivers {
		driversByEqama[d.EqamaNumber] = true
	}

	summary := &Summary{}
	cell := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	for rowIndex, row := range rows[1:] {
		equipmentName := cell(row, "equipment_name")
		plateNo := cell(row, "plate_serial_no")

		if equipmentName == "" && plateNo == "" {
			continue
		}
		if plateNo == "" {
			log.Printf("Skipping row %d: no plate_serial_no for %q", rowIndex+2, equipmentName)
			summary.RowsSkipped++
			continue
		}

		eq, seen := equipmentByPlate[plateNo]
		if !seen {
			eq = &domain.Equipment{
				// The plate number doubles as the asset number in this
				// workbook.
				AssetNo:       plateNo,
				EquipmentName: equipmentName,
				PlateSerialNo: plateNo,
				ShiftType:     cell(row, "shift_type"),
				Status:        cell(row, "status"),
			}
			if eq.Status == "" {
				eq.Status = "Available"
			}
			if supplier := cell(row, "company_supplier"); supplier != "" {
				eq.CompanySupplier = &supplier
			}
			if err := imp.equipment.Create(ctx, eq); err != nil {
				return nil, fmt.Errorf("row %d: %w", rowIndex+2, err)
			}
			equipmentByPlate[plateNo] = eq
			summary.EquipmentInserted++
		}

		driverName := cell(row, "driver_name")
		driverEqama := cell(row, "driver_iqama")
		if driverName == "" || driverEqama == "" {
			continue
		}
		if driversByEqama[driverEqama] {
			summary.RowsSkipped++
			continue
		}

		d := &domain.Driver{
			DriverName:  driverName,
			PhoneNumber: cell(row, "driver_phone"),
			EqamaNumber: driverEqama,
		}
		switch normalizeShift(cell(row, "shift_type")) {
		case "DAY":
			d.DayShiftEquipmentID = &eq.ID
		case "NIGHT":
			d.NightShiftEquipmentID = &eq.ID
		case "BOTH":
			d.DayShiftEquipmentID = &eq.ID
			d.NightShiftEquipmentID = &eq.ID
		}
		if err := imp.drivers.Create(ctx, d); err != nil {
			return nil, fmt.Errorf("row %d: %w", rowIndex+2, err)
		}
		driversByEqama[driverEqama] = true
		summary.DriversInserted++
	}

	return summary, nil
}

// normalizeShift folds free-form shift labels down to DAY, NIGHT or BOTH.
func normalizeShift(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	hasDay := strings.Contains(s, "DAY")
	hasNight := strings.Contains(s, "NIGHT")
	switch {
	case hasDay && hasNight:
		return "BOTH"
	case hasDay:
		return "DAY"
	case hasNight:
		return "NIGHT"
	default:
		return ""
	}
}
