package repository

import (
	"database/sql"
	"testing"
	"time"

	"equipment_management/internal/timecalc"
)

// The postgres driver hands TIME column values back as time.Time on the zero
// date, so the conversion must restore the "HH:MM:SS" clock form the rest of
// the code works with.
func TestClockPtrRestoresClockForm(t *testing.T) {
	cases := []struct {
		value time.Time
		want  string
	}{
		{time.Date(0, 1, 1, 8, 0, 0, 0, time.UTC), "08:00:00"},
		{time.Date(0, 1, 1, 19, 30, 5, 0, time.UTC), "19:30:05"},
	}
	for _, tc := range cases {
		got := clockPtr(sql.NullTime{Time: tc.value, Valid: true})
		if got == nil || *got != tc.want {
			t.Errorf("clockPtr(%v) = %v, want %q", tc.value, got, tc.want)
			continue
		}
		if _, err := timecalc.ParseClock(*got); err != nil {
			t.Errorf("restored value %q does not parse: %v", *got, err)
		}
	}
}

func TestClockPtrNull(t *testing.T) {
	if got := clockPtr(sql.NullTime{}); got != nil {
		t.Errorf("clockPtr(null) = %v, want nil", got)
	}
}
