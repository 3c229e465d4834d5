package repository

import (
	"context"
	"database/sql"
	"fmt"

	"equipment_management/internal/domain"
)

type DriverRepo struct {
	db *sql.DB
}

func NewDriverRepo(db *sql.DB) *DriverRepo {
	return &DriverRepo{db: db}
}

const driverColumns = `driver_id, driver_name, phone_number, eqama_number,
	day_shift_equipment_id, night_shift_equipment_id`

func scanDriver(row interface{ Scan(...any) error }) (*domain.Driver, error) {
	var d domain.Driver
	var dayEq, nightEq sql.NullInt64

	err := row.Scan(&d.ID, &d.DriverName, &d.PhoneNumber, &d.EqamaNumber, &dayEq, &nightEq)
	if err != nil {
		return nil, err
	}
	d.DayShiftEquipmentID = intPtr(dayEq)
	d.NightShiftEquipmentID = intPtr(nightEq)
	return &d, nil
}

func (r *DriverRepo) GetByID(ctx context.Context, id int64) (*domain.Driver, error) {
	d, err := scanDriver(r.db.QueryRowContext(ctx,
		"SELECT "+driverColumns+" FROM drivers WHERE driver_id = $1", id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: driver %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DriverRepo) List(ctx context.Context) ([]*domain.Driver, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+driverColumns+" FROM drivers ORDER BY driver_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*domain.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (r *DriverRepo) Create(ctx context.Context, d *domain.Driver) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO drivers (driver_name, phone_number, eqama_number,
			day_shift_equipment_id, night_shift_equipment_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING driver_id`,
		d.DriverName, d.PhoneNumber, d.EqamaNumber,
		d.DayShiftEquipmentID, d.NightShiftEquipmentID).Scan(&d.ID)
	if uniqueViolation(err) {
		return fmt.Errorf("%w: eqama_number %q already exists", domain.ErrConflict, d.EqamaNumber)
	}
	return err
}
