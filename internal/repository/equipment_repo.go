package repository

import (
	"context"
	"database/sql"
	"fmt"

	"equipment_management/internal/domain"
)

type EquipmentRepo struct {
	db *sql.DB
}

func NewEquipmentRepo(db *sql.DB) *EquipmentRepo {
	return &EquipmentRepo{db: db}
}

const equipmentColumns = `equipment_id, asset_no, equipment_name, plate_serial_no, shift_type,
	num_shifts_requested, status, zone_department, mobilized_date, demobilization_date,
	company_supplier, remarks`

func scanEquipment(row interface{ Scan(...any) error }) (*domain.Equipment, error) {
	var eq domain.Equipment
	var numShifts sql.NullInt64
	var zone, supplier, remarks sql.NullString
	var mobilized, demobilized sql.NullTime

	err := row.Scan(&eq.ID, &eq.AssetNo, &eq.EquipmentName, &eq.PlateSerialNo, &eq.ShiftType,
		&numShifts, &eq.Status, &zone, &mobilized, &demobilized, &supplier, &remarks)
	if err != nil {
		return nil, err
	}

	if numShifts.Valid {
		n := int(numShifts.Int64)
		eq.NumShiftsRequested = &n
	}
	eq.ZoneDepartment = strPtr(zone)
	eq.MobilizedDate = timePtr(mobilized)
	eq.DemobilizationDate = timePtr(demobilized)
	eq.CompanySupplier = strPtr(supplier)
	eq.Remarks = strPtr(remarks)
	return &eq, nil
}

func (r *EquipmentRepo) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	eq, err := scanEquipment(r.db.QueryRowContext(ctx,
		"SELECT "+equipmentColumns+" FROM equipment WHERE equipment_id = $1", id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: equipment %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return eq, nil
}

func (r *EquipmentRepo) List(ctx context.Context) ([]*domain.Equipment, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+equipmentColumns+" FROM equipment ORDER BY equipment_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*domain.Equipment
	for rows.Next() {
		eq, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, eq)
	}
	return list, rows.Err()
}

func (r *EquipmentRepo) Create(ctx context.Context, eq *domain.Equipment) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO equipment (asset_no, equipment_name, plate_serial_no, shift_type,
			num_shifts_requested, status, zone_department, mobilized_date,
			demobilization_date, company_supplier, remarks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING equipment_id`,
		eq.AssetNo, eq.EquipmentName, eq.PlateSerialNo, eq.ShiftType,
		eq.NumShiftsRequested, eq.Status, eq.ZoneDepartment, eq.MobilizedDate,
		eq.DemobilizationDate, eq.CompanySupplier, eq.Remarks).Scan(&eq.ID)
	if uniqueViolation(err) {
		return fmt.Errorf("%w: asset_no %q already exists", domain.ErrConflict, eq.AssetNo)
	}
	return err
}

func (r *EquipmentRepo) Update(ctx context.Context, eq *domain.Equipment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE equipment SET asset_no = $1, equipment_name = $2, plate_serial_no = $3,
			shift_type = $4, num_shifts_requested = $5, status = $6, zone_department = $7,
			mobilized_date = $8, demobilization_date = $9, company_supplier = $10, remarks = $11
		WHERE equipment_id = $12`,
		eq.AssetNo, eq.EquipmentName, eq.PlateSerialNo, eq.ShiftType,
		eq.NumShiftsRequested, eq.Status, eq.ZoneDepartment, eq.MobilizedDate,
		eq.DemobilizationDate, eq.CompanySupplier, eq.Remarks, eq.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: equipment %d", domain.ErrNotFound, eq.ID)
	}
	return nil
}
