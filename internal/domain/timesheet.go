package domain

import (
	"fmt"
	"sort"
	"time"

	"equipment_management/internal/timecalc"
)

// TimesheetStatus is the lifecycle state of a card.
type TimesheetStatus string

const (
	TimesheetDraft     TimesheetStatus = "draft"
	TimesheetSubmitted TimesheetStatus = "submitted"
	TimesheetApproved  TimesheetStatus = "approved"
	TimesheetRejected  TimesheetStatus = "rejected"
)

// ApprovalStatus is the state of a single approval record.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

const (
	// RoleSiteEngineer is the only approval role enforced in v1.
	RoleSiteEngineer = "SiteEngineer"
	// ApprovalLevelOne is the single supported approval level.
	ApprovalLevelOne = 1

	// DefaultProjectLocation is stamped on new cards when the caller does
	// not supply one.
	DefaultProjectLocation = "HAYA AL ANDLUS"
	// DefaultDutyBreakHrs is the unpaid break assumed for a fresh day entry.
	DefaultDutyBreakHrs = 1.0
)

// TimesheetCard is one month of daily duty records for an (equipment, driver)
// pair, together with its single-level approval. The card owns its days and
// approval; equipment and driver are referenced by id only.
type TimesheetCard struct {
	ID          int64
	EquipmentID int64
	DriverID    int64

	// MonthYear is normalized to the first day of the covered month.
	MonthYear time.Time

	ProjectLocation       string
	SupplierName          *string
	ChassisNo             *string
	StartMeter            *float64
	EndMeter              *float64
	DieselConsumptionLtrs *float64

	Status TimesheetStatus

	Days      []*DayEntry
	Approvals []*Approval

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DayEntry is one calendar day's clock record within a card. The derived
// hour fields are only ever written by Recalculate.
type DayEntry struct {
	ID          int64
	TimesheetID int64

	LogDate time.Time

	// Clock-of-day values, "HH:MM:SS", both interpreted on LogDate.
	TimeStart *string
	TimeEnd   *string

	DutyBreakHrs float64

	RegularHrs  *float64
	OvertimeHrs *float64
	TotalHrs    *float64

	BreakdownReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Approval is the level-1 sign-off record for a card. Created pending
// alongside the card and acted on exactly once.
type Approval struct {
	ID          int64
	TimesheetID int64

	Level int
	Role  string

	// ApproverUserID nil means any holder of the role may act.
	ApproverUserID *int64

	Status  ApprovalStatus
	Comment *string
	ActedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTimesheetCard builds a draft card with its pending level-1 SiteEngineer
// approval. No specific approver is assigned in v1.
func NewTimesheetCard(equipmentID, driverID int64, monthYear time.Time, projectLocation string, supplierName, chassisNo *string, now time.Time) *TimesheetCard {
	if projectLocation == "" {
		projectLocation = DefaultProjectLocation
	}
	card := &TimesheetCard{
		EquipmentID:     equipmentID,
		DriverID:        driverID,
		MonthYear:       FirstOfMonth(monthYear),
		ProjectLocation: projectLocation,
		SupplierName:    supplierName,
		ChassisNo:       chassisNo,
		Status:          TimesheetDraft,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	card.Approvals = append(card.Approvals, &Approval{
		Level:     ApprovalLevelOne,
		Role:      RoleSiteEngineer,
		Status:    ApprovalPending,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return card
}

// FirstOfMonth truncates d to the first day of its month.
func FirstOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether a and b fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DayFor returns the entry for logDate, or nil.
func (c *TimesheetCard) DayFor(logDate time.Time) *DayEntry {
	for _, d := range c.Days {
		if SameDate(d.LogDate, logDate) {
			return d
		}
	}
	return nil
}

// SortedDays returns the entries ordered by log date.
func (c *TimesheetCard) SortedDays() []*DayEntry {
	days := make([]*DayEntry, len(c.Days))
	copy(days, c.Days)
	sort.Slice(days, func(i, j int) bool {
		return days[i].LogDate.Before(days[j].LogDate)
	})
	return days
}

// ClockIn records a start time for logDate, creating the day entry if
// needed. Clocking in twice for the same date is a conflict. Card status is
// deliberately not checked here; v1 allows clocking in at any stage.
func (c *TimesheetCard) ClockIn(logDate time.Time, now time.Time) (*DayEntry, error) {
	clock := timecalc.FormatClock(now)
	day := c.DayFor(logDate)
	if day == nil {
		day = &DayEntry{
			TimesheetID:  c.ID,
			LogDate:      logDate,
			TimeStart:    &clock,
			DutyBreakHrs: DefaultDutyBreakHrs,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		c.Days = append(c.Days, day)
	} else {
		if day.TimeStart != nil {
			return nil, fmt.Errorf("%w: already clocked in for %s", ErrConflict, logDate.Format("2006-01-02"))
		}
		day.TimeStart = &clock
		day.UpdatedAt = now
	}
	if err := day.Recalculate(); err != nil {
		return nil, err
	}
	c.UpdatedAt = now
	return day, nil
}

// ClockOut records an end time for logDate. Requires an open entry with a
// start time; a second clock-out is a conflict.
func (c *TimesheetCard) ClockOut(logDate time.Time, now time.Time) (*DayEntry, error) {
	day := c.DayFor(logDate)
	if day == nil || day.TimeStart == nil {
		return nil, fmt.Errorf("%w: no clock-in found for %s", ErrInvalidState, logDate.Format("2006-01-02"))
	}
	if day.TimeEnd != nil {
		return nil, fmt.Errorf("%w: already clocked out for %s", ErrConflict, logDate.Format("2006-01-02"))
	}
	clock := timecalc.FormatClock(now)
	day.TimeEnd = &clock
	day.UpdatedAt = now
	if err := day.Recalculate(); err != nil {
		return nil, err
	}
	c.UpdatedAt = now
	return day, nil
}

// Submit moves the card to submitted. v1 does not gate on the current status,
// so a card can be re-submitted from any state.
func (c *TimesheetCard) Submit(now time.Time) {
	c.Status = TimesheetSubmitted
	c.UpdatedAt = now
}

// PendingApproval returns the latest pending level-1 SiteEngineer approval,
// or nil if none exists.
func (c *TimesheetCard) PendingApproval() *Approval {
	var latest *Approval
	for _, a := range c.Approvals {
		if a.Level != ApprovalLevelOne || a.Role != RoleSiteEngineer || a.Status != ApprovalPending {
			continue
		}
		if latest == nil || a.ID > latest.ID {
			latest = a
		}
	}
	return latest
}

// Approve acts on the pending approval as callerID and moves the card to
// approved. The same now is stamped on the approval and the card so one
// operation stays internally consistent.
func (c *TimesheetCard) Approve(callerID int64, comment string, now time.Time) error {
	approval := c.PendingApproval()
	if approval == nil {
		return fmt.Errorf("%w: no pending approval", ErrInvalidState)
	}
	if !approval.CanAct(callerID) {
		return fmt.Errorf("%w: not authorized for approval", ErrForbidden)
	}
	approval.Status = ApprovalApproved
	approval.Comment = &comment
	approval.ActedAt = &now
	approval.UpdatedAt = now
	c.Status = TimesheetApproved
	c.UpdatedAt = now
	return nil
}

// CanAct decides whether callerID may act on this approval: when a specific
// approver is assigned the caller must match; otherwise any authenticated
// caller may act. Kept as an isolated predicate so a role-based model can
// replace it without touching the lifecycle.
func (a *Approval) CanAct(callerID int64) bool {
	if a.ApproverUserID == nil {
		return true
	}
	return *a.ApproverUserID == callerID
}

// Recalculate re-derives the hour fields from the raw clock values. Open
// entries (missing either clock time) carry no derived hours.
func (d *DayEntry) Recalculate() error {
	if d.TimeStart == nil || d.TimeEnd == nil {
		d.RegularHrs = nil
		d.OvertimeHrs = nil
		d.TotalHrs = nil
		return nil
	}
	h, err := timecalc.Compute(*d.TimeStart, *d.TimeEnd, d.DutyBreakHrs)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	d.RegularHrs = &h.Regular
	d.OvertimeHrs = &h.Overtime
	d.TotalHrs = &h.Total
	return nil
}
