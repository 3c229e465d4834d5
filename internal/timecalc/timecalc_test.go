package timecalc_test

import (
	"testing"
	"time"

	"equipment_management/internal/timecalc"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"08:00", 8 * time.Hour},
		{"08:00:00", 8 * time.Hour},
		{"20:30", 20*time.Hour + 30*time.Minute},
		{"23:59:59", 23*time.Hour + 59*time.Minute + 59*time.Second},
		{"00:00", 0},
	}
	for _, tt := range tests {
		got, err := timecalc.ParseClock(tt.value)
		if err != nil {
			t.Errorf("ParseClock(%q) error: %v", tt.value, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestParseClockInvalid(t *testing.T) {
	for _, value := range []string{"", "25:00", "12:60", "nope", "12"} {
		if _, err := timecalc.ParseClock(value); err == nil {
			t.Errorf("ParseClock(%q) expected error", value)
		}
	}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name          string
		start, end    string
		dutyBreak     float64
		wantRegular   float64
		wantOvertime  float64
		wantTotal     float64
	}{
		{"full regular day", "08:00", "19:00", 1.0, 10, 0, 10},
		{"day with overtime", "07:00", "20:30", 1.5, 10, 2, 12},
		{"short day", "09:00", "13:00", 1.0, 3, 0, 3},
		{"break eats the shift", "09:00", "09:30", 1.0, 0, 0, 0},
		{"end before start clamps to zero", "18:00", "06:00", 1.0, 0, 0, 0},
		{"zero break", "08:00", "18:00", 0, 10, 0, 10},
		{"fractional result", "08:15", "12:35", 0.5, 3.83, 0, 3.83},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timecalc.Compute(tt.start, tt.end, tt.dutyBreak)
			if err != nil {
				t.Fatalf("Compute(%q, %q, %v) error: %v", tt.start, tt.end, tt.dutyBreak, err)
			}
			if got.Regular != tt.wantRegular || got.Overtime != tt.wantOvertime || got.Total != tt.wantTotal {
				t.Errorf("Compute(%q, %q, %v) = %+v, want regular=%v overtime=%v total=%v",
					tt.start, tt.end, tt.dutyBreak, got, tt.wantRegular, tt.wantOvertime, tt.wantTotal)
			}
			if got.Total != got.Regular+got.Overtime {
				t.Errorf("total %v != regular %v + overtime %v", got.Total, got.Regular, got.Overtime)
			}
			if got.Regular > timecalc.RegularHoursPerDay {
				t.Errorf("regular %v exceeds cap", got.Regular)
			}
		})
	}
}

func TestComputeInvalidClock(t *testing.T) {
	if _, err := timecalc.Compute("bad", "19:00", 1); err == nil {
		t.Error("expected error for invalid start time")
	}
	if _, err := timecalc.Compute("08:00", "bad", 1); err == nil {
		t.Error("expected error for invalid end time")
	}
}

func TestFormatClock(t *testing.T) {
	ts := time.Date(2025, 6, 1, 7, 5, 9, 0, time.UTC)
	if got := timecalc.FormatClock(ts); got != "07:05:09" {
		t.Errorf("FormatClock = %q, want %q", got, "07:05:09")
	}
}
