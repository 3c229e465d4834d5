// Package timecalc computes the regular/overtime split for a timesheet day.
package timecalc

import (
	"fmt"
	"math"
	"time"
)

// RegularHoursPerDay is the CRCC policy cap: everything above it is overtime.
const RegularHoursPerDay = 10.0

// Hours holds the derived hour quantities for one day, rounded to two
// decimals. Total always equals Regular + Overtime.
type Hours struct {
	Regular  float64
	Overtime float64
	Total    float64
}

// ParseClock parses a clock-of-day value in "HH:MM" or "HH:MM:SS" form and
// returns it as an offset from midnight.
func ParseClock(value string) (time.Duration, error) {
	var h, m, s int
	if _, err := fmt.Sscanf(value, "%d:%d:%d", &h, &m, &s); err != nil {
		s = 0
		if _, err := fmt.Sscanf(value, "%d:%d", &h, &m); err != nil {
			return 0, fmt.Errorf("invalid clock time %q", value)
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || s < 0 || s > 59 {
		return 0, fmt.Errorf("invalid clock time %q", value)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second, nil
}

// NormalizeClock validates a clock value and rewrites it in canonical
// "HH:MM:SS" form.
func NormalizeClock(value string) (string, error) {
	d, err := ParseClock(value)
	if err != nil {
		return "", err
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total/60%60, total%60), nil
}

// FormatClock renders the clock-of-day portion of t as "HH:MM:SS".
func FormatClock(t time.Time) string {
	return t.Format("15:04:05")
}

// Compute derives the hour quantities for a closed day entry. Both clock
// values are interpreted on the same calendar date, so an end before the
// start clamps to zero elapsed time; overnight shifts are not supported.
func Compute(timeStart, timeEnd string, dutyBreakHrs float64) (Hours, error) {
	start, err := ParseClock(timeStart)
	if err != nil {
		return Hours{}, err
	}
	end, err := ParseClock(timeEnd)
	if err != nil {
		return Hours{}, err
	}

	elapsed := (end - start).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}

	net := elapsed/3600.0 - dutyBreakHrs
	if net < 0 {
		net = 0
	}

	regular := math.Min(net, RegularHoursPerDay)
	overtime := math.Max(net-RegularHoursPerDay, 0)

	h := Hours{
		Regular:  Round2(regular),
		Overtime: Round2(overtime),
	}
	h.Total = Round2(h.Regular + h.Overtime)
	return h, nil
}

// Round2 rounds to two decimal places, matching the NUMERIC(5,2) columns the
// derived values are persisted into.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
