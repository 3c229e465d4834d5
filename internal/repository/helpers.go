package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"equipment_management/internal/timecalc"
)

// uniqueViolation reports whether err is a postgres unique-constraint error.
func uniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func strPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func intPtr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	i := v.Int64
	return &i
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

// clockPtr renders a TIME column value back in "HH:MM:SS" form. pq decodes
// TIME as a time.Time on the zero date, not as a string.
func clockPtr(v sql.NullTime) *string {
	if !v.Valid {
		return nil
	}
	s := timecalc.FormatClock(v.Time)
	return &s
}
