package db

import (
	"database/sql"
	"log"
)

// Migrate creates the schema if it does not exist yet. Statements are
// idempotent so the server can run them on every startup.
func Migrate(conn *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id SERIAL PRIMARY KEY,
			username VARCHAR(64) UNIQUE NOT NULL,
			email VARCHAR(120) UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(32)
		)`,
		`CREATE TABLE IF NOT EXISTS equipment (
			equipment_id SERIAL PRIMARY KEY,
			asset_no VARCHAR(50) UNIQUE NOT NULL,
			equipment_name VARCHAR(100) NOT NULL,
			plate_serial_no VARCHAR(100) NOT NULL,
			shift_type VARCHAR(50) NOT NULL,
			num_shifts_requested INTEGER,
			status VARCHAR(50) DEFAULT 'Available',
			zone_department VARCHAR(100),
			mobilized_date DATE,
			demobilization_date DATE,
			company_supplier VARCHAR(100),
			remarks VARCHAR(255)
		)`,
		`CREATE TABLE IF NOT EXISTS drivers (
			driver_id SERIAL PRIMARY KEY,
			driver_name VARCHAR(100) NOT NULL,
			phone_number VARCHAR(20) NOT NULL,
			eqama_number VARCHAR(20) UNIQUE NOT NULL,
			day_shift_equipment_id INTEGER REFERENCES equipment (equipment_id),
			night_shift_equipment_id INTEGER REFERENCES equipment (equipment_id)
		)`,
		`CREATE TABLE IF NOT EXISTS requests (
			request_id SERIAL PRIMARY KEY,
			engineer_name VARCHAR(100) NOT NULL,
			requested_equipment INTEGER NOT NULL REFERENCES equipment (equipment_id),
			request_time TIMESTAMP NOT NULL DEFAULT NOW(),
			status VARCHAR(20) DEFAULT 'Pending',
			notes TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS timesheets (
			timesheet_id SERIAL PRIMARY KEY,
			equipment_id INTEGER NOT NULL REFERENCES equipment (equipment_id),
			driver_id INTEGER NOT NULL REFERENCES drivers (driver_id),
			month_year DATE NOT NULL,
			project_location VARCHAR(255) NOT NULL DEFAULT 'HAYA AL ANDLUS',
			supplier_name VARCHAR(255),
			chassis_no VARCHAR(255),
			start_meter NUMERIC(10,1),
			end_meter NUMERIC(10,1),
			diesel_consumption_ltrs NUMERIC(10,2),
			status VARCHAR(32) NOT NULL DEFAULT 'draft',
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			UNIQUE (equipment_id, driver_id, month_year)
		)`,
		`CREATE TABLE IF NOT EXISTS timesheet_days (
			day_id SERIAL PRIMARY KEY,
			timesheet_id INTEGER NOT NULL REFERENCES timesheets (timesheet_id) ON DELETE CASCADE,
			log_date DATE NOT NULL,
			time_start TIME,
			time_end TIME,
			duty_break_hrs NUMERIC(5,2) NOT NULL DEFAULT 1,
			regular_working_hrs NUMERIC(5,2),
			overtime_hrs NUMERIC(5,2),
			total_using_hrs NUMERIC(5,2),
			breakdown_reason VARCHAR(255),
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			UNIQUE (timesheet_id, log_date)
		)`,
		`CREATE TABLE IF NOT EXISTS timesheet_approvals (
			approval_id SERIAL PRIMARY KEY,
			timesheet_id INTEGER NOT NULL REFERENCES timesheets (timesheet_id) ON DELETE CASCADE,
			level INTEGER NOT NULL,
			role VARCHAR(64) NOT NULL,
			approver_user_id INTEGER REFERENCES users (user_id),
			status VARCHAR(32) NOT NULL DEFAULT 'pending',
			comment TEXT,
			acted_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_timesheet_days_card_date
			ON timesheet_days (timesheet_id, log_date)`,
		`CREATE INDEX IF NOT EXISTS idx_approvals_pending
			ON timesheet_approvals (level, role, status)`,
	}

	for _, stmt := range statements {
		if _, err := conn.Exec(stmt); err != nil {
			return err
		}
	}

	log.Println("Database initialized successfully")
	return nil
}
