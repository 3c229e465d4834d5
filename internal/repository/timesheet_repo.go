package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"equipment_management/internal/domain"
)

type TimesheetRepo struct {
	db *sql.DB
}

func NewTimesheetRepo(db *sql.DB) *TimesheetRepo {
	return &TimesheetRepo{db: db}
}

const timesheetColumns = `timesheet_id, equipment_id, driver_id, month_year, project_location,
	supplier_name, chassis_no, start_meter, end_meter, diesel_consumption_ltrs,
	status, created_at, updated_at`

func scanTimesheet(row interface{ Scan(...any) error }) (*domain.TimesheetCard, error) {
	var card domain.TimesheetCard
	var supplier, chassis sql.NullString
	var startMeter, endMeter, diesel sql.NullFloat64
	var status string

	err := row.Scan(&card.ID, &card.EquipmentID, &card.DriverID, &card.MonthYear,
		&card.ProjectLocation, &supplier, &chassis, &startMeter, &endMeter, &diesel,
		&status, &card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		return nil, err
	}

	card.SupplierName = strPtr(supplier)
	card.ChassisNo = strPtr(chassis)
	card.StartMeter = floatPtr(startMeter)
	card.EndMeter = floatPtr(endMeter)
	card.DieselConsumptionLtrs = floatPtr(diesel)
	card.Status = domain.TimesheetStatus(status)
	return &card, nil
}

func (r *TimesheetRepo) Load(ctx context.Context, id int64) (*domain.TimesheetCard, error) {
	card, err := scanTimesheet(r.db.QueryRowContext(ctx,
		"SELECT "+timesheetColumns+" FROM timesheets WHERE timesheet_id = $1", id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: timesheet %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (r *TimesheetRepo) LoadByDay(ctx context.Context, dayID int64) (*domain.TimesheetCard, error) {
	var timesheetID int64
	err := r.db.QueryRowContext(ctx,
		"SELECT timesheet_id FROM timesheet_days WHERE day_id = $1", dayID).Scan(&timesheetID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: day %d", domain.ErrNotFound, dayID)
	}
	if err != nil {
		return nil, err
	}
	return r.Load(ctx, timesheetID)
}

func (r *TimesheetRepo) FindByTriple(ctx context.Context, equipmentID, driverID int64, monthYear time.Time) (*domain.TimesheetCard, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		SELECT timesheet_id FROM timesheets
		WHERE equipment_id = $1 AND driver_id = $2 AND month_year = $3
		ORDER BY timesheet_id DESC
		LIMIT 1`,
		equipmentID, driverID, monthYear).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.Load(ctx, id)
}

func (r *TimesheetRepo) loadChildren(ctx context.Context, card *domain.TimesheetCard) error {
	dayRows, err := r.db.QueryContext(ctx, `
		SELECT day_id, timesheet_id, log_date, time_start, time_end, duty_break_hrs,
			regular_working_hrs, overtime_hrs, total_using_hrs, breakdown_reason,
			created_at, updated_at
		FROM timesheet_days
		WHERE timesheet_id = $1
		ORDER BY log_date`, card.ID)
	if err != nil {
		return err
	}
	defer dayRows.Close()

	for dayRows.Next() {
		var d domain.DayEntry
		var timeStart, timeEnd sql.NullTime
		var breakdown sql.NullString
		var regular, overtime, total sql.NullFloat64

		err := dayRows.Scan(&d.ID, &d.TimesheetID, &d.LogDate, &timeStart, &timeEnd,
			&d.DutyBreakHrs, &regular, &overtime, &total, &breakdown,
			&d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			return err
		}
		d.TimeStart = clockPtr(timeStart)
		d.TimeEnd = clockPtr(timeEnd)
		d.RegularHrs = floatPtr(regular)
		d.OvertimeHrs = floatPtr(overtime)
		d.TotalHrs = floatPtr(total)
		d.BreakdownReason = strPtr(breakdown)
		card.Days = append(card.Days, &d)
	}
	if err := dayRows.Err(); err != nil {
		return err
	}

	approvalRows, err := r.db.QueryContext(ctx, `
		SELECT approval_id, timesheet_id, level, role, approver_user_id, status,
			comment, acted_at, created_at, updated_at
		FROM timesheet_approvals
		WHERE timesheet_id = $1
		ORDER BY approval_id`, card.ID)
	if err != nil {
		return err
	}
	defer approvalRows.Close()

	for approvalRows.Next() {
		var a domain.Approval
		var approver sql.NullInt64
		var comment sql.NullString
		var actedAt sql.NullTime
		var status string

		err := approvalRows.Scan(&a.ID, &a.TimesheetID, &a.Level, &a.Role, &approver,
			&status, &comment, &actedAt, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return err
		}
		a.ApproverUserID = intPtr(approver)
		a.Status = domain.ApprovalStatus(status)
		a.Comment = strPtr(comment)
		a.ActedAt = timePtr(actedAt)
		card.Approvals = append(card.Approvals, &a)
	}
	return approvalRows.Err()
}

func (r *TimesheetRepo) Create(ctx context.Context, card *domain.TimesheetCard) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO timesheets (equipment_id, driver_id, month_year, project_location,
			supplier_name, chassis_no, start_meter, end_meter, diesel_consumption_ltrs,
			status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING timesheet_id`,
		card.EquipmentID, card.DriverID, card.MonthYear, card.ProjectLocation,
		card.SupplierName, card.ChassisNo, card.StartMeter, card.EndMeter,
		card.DieselConsumptionLtrs, string(card.Status), card.CreatedAt, card.UpdatedAt).
		Scan(&card.ID)
	if uniqueViolation(err) {
		return fmt.Errorf("%w: timesheet for this equipment, driver and month already exists", domain.ErrConflict)
	}
	if err != nil {
		return err
	}

	for _, a := range card.Approvals {
		a.TimesheetID = card.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO timesheet_approvals (timesheet_id, level, role, approver_user_id,
				status, comment, acted_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING approval_id`,
			a.TimesheetID, a.Level, a.Role, a.ApproverUserID, string(a.Status),
			a.Comment, a.ActedAt, a.CreatedAt, a.UpdatedAt).Scan(&a.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Save writes the card header and upserts all days and approvals in one
// transaction. New days (id 0) are inserted, everything else updated.
func (r *TimesheetRepo) Save(ctx context.Context, card *domain.TimesheetCard) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE timesheets SET project_location = $1, supplier_name = $2, chassis_no = $3,
			start_meter = $4, end_meter = $5, diesel_consumption_ltrs = $6,
			status = $7, updated_at = $8
		WHERE timesheet_id = $9`,
		card.ProjectLocation, card.SupplierName, card.ChassisNo,
		card.StartMeter, card.EndMeter, card.DieselConsumptionLtrs,
		string(card.Status), card.UpdatedAt, card.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: timesheet %d", domain.ErrNotFound, card.ID)
	}

	for _, d := range card.Days {
		if d.ID == 0 {
			d.TimesheetID = card.ID
			err = tx.QueryRowContext(ctx, `
				INSERT INTO timesheet_days (timesheet_id, log_date, time_start, time_end,
					duty_break_hrs, regular_working_hrs, overtime_hrs, total_using_hrs,
					breakdown_reason, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
				RETURNING day_id`,
				d.TimesheetID, d.LogDate, d.TimeStart, d.TimeEnd, d.DutyBreakHrs,
				d.RegularHrs, d.OvertimeHrs, d.TotalHrs, d.BreakdownReason,
				d.CreatedAt, d.UpdatedAt).Scan(&d.ID)
			if uniqueViolation(err) {
				return fmt.Errorf("%w: day entry for %s already exists", domain.ErrConflict, d.LogDate.Format("2006-01-02"))
			}
		} else {
			_, err = tx.ExecContext(ctx, `
				UPDATE timesheet_days SET time_start = $1, time_end = $2, duty_break_hrs = $3,
					regular_working_hrs = $4, overtime_hrs = $5, total_using_hrs = $6,
					breakdown_reason = $7, updated_at = $8
				WHERE day_id = $9`,
				d.TimeStart, d.TimeEnd, d.DutyBreakHrs,
				d.RegularHrs, d.OvertimeHrs, d.TotalHrs,
				d.BreakdownReason, d.UpdatedAt, d.ID)
		}
		if err != nil {
			return err
		}
	}

	for _, a := range card.Approvals {
		if a.ID == 0 {
			continue // approvals are only created alongside the card
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE timesheet_approvals SET approver_user_id = $1, status = $2,
				comment = $3, acted_at = $4, updated_at = $5
			WHERE approval_id = $6`,
			a.ApproverUserID, string(a.Status), a.Comment, a.ActedAt, a.UpdatedAt, a.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *TimesheetRepo) ListPending(ctx context.Context) ([]*domain.TimesheetCard, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT ta.timesheet_id
		FROM timesheet_approvals ta
		WHERE ta.level = $1 AND ta.role = $2 AND ta.status = $3
		ORDER BY ta.timesheet_id`,
		domain.ApprovalLevelOne, domain.RoleSiteEngineer, string(domain.ApprovalPending))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var cards []*domain.TimesheetCard
	for _, id := range ids {
		card, err := r.Load(ctx, id)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}
