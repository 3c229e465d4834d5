package domain

import (
	"errors"
	"testing"
	"time"
)

var (
	testNow  = time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	testDate = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
)

func newTestCard() *TimesheetCard {
	card := NewTimesheetCard(1, 2, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), "", nil, nil, testNow)
	card.ID = 42
	return card
}

func TestNewTimesheetCard(t *testing.T) {
	card := newTestCard()

	if card.Status != TimesheetDraft {
		t.Errorf("status = %q, want draft", card.Status)
	}
	if card.ProjectLocation != DefaultProjectLocation {
		t.Errorf("project location = %q, want default", card.ProjectLocation)
	}
	if !card.MonthYear.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("month_year = %v, not normalized to first of month", card.MonthYear)
	}
	if len(card.Approvals) != 1 {
		t.Fatalf("approvals = %d, want 1", len(card.Approvals))
	}
	a := card.Approvals[0]
	if a.Level != ApprovalLevelOne || a.Role != RoleSiteEngineer || a.Status != ApprovalPending {
		t.Errorf("unexpected approval %+v", a)
	}
	if a.ApproverUserID != nil {
		t.Error("new approval should not pin an approver")
	}
}

func TestClockInCreatesDay(t *testing.T) {
	card := newTestCard()

	day, err := card.ClockIn(testDate, testNow)
	if err != nil {
		t.Fatalf("ClockIn: %v", err)
	}
	if day.TimeStart == nil || *day.TimeStart != "08:00:00" {
		t.Errorf("time_start = %v, want 08:00:00", day.TimeStart)
	}
	if day.DutyBreakHrs != DefaultDutyBreakHrs {
		t.Errorf("duty_break_hrs = %v, want %v", day.DutyBreakHrs, DefaultDutyBreakHrs)
	}
	if day.RegularHrs != nil || day.OvertimeHrs != nil || day.TotalHrs != nil {
		t.Error("open entry must not carry derived hours")
	}
}

func TestClockInTwiceConflicts(t *testing.T) {
	card := newTestCard()
	if _, err := card.ClockIn(testDate, testNow); err != nil {
		t.Fatalf("first ClockIn: %v", err)
	}
	_, err := card.ClockIn(testDate, testNow.Add(time.Hour))
	if !errors.Is(err, ErrConflict) {
		t.Errorf("second ClockIn error = %v, want ErrConflict", err)
	}
}

func TestClockInFillsOpenEntry(t *testing.T) {
	card := newTestCard()
	card.Days = append(card.Days, &DayEntry{LogDate: testDate, DutyBreakHrs: 1})

	day, err := card.ClockIn(testDate, testNow)
	if err != nil {
		t.Fatalf("ClockIn: %v", err)
	}
	if day != card.Days[0] {
		t.Error("ClockIn should reuse the existing entry for the date")
	}
	if day.TimeStart == nil {
		t.Error("time_start not set")
	}
}

func TestClockOutBeforeClockIn(t *testing.T) {
	card := newTestCard()
	_, err := card.ClockOut(testDate, testNow)
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("ClockOut error = %v, want ErrInvalidState", err)
	}
}

func TestClockOutComputesHours(t *testing.T) {
	card := newTestCard()
	if _, err := card.ClockIn(testDate, testNow); err != nil {
		t.Fatalf("ClockIn: %v", err)
	}
	day, err := card.ClockOut(testDate, testNow.Add(11*time.Hour))
	if err != nil {
		t.Fatalf("ClockOut: %v", err)
	}
	// 08:00-19:00 with the default 1h break: 10 regular, 0 overtime.
	if day.RegularHrs == nil || *day.RegularHrs != 10 {
		t.Errorf("regular = %v, want 10", day.RegularHrs)
	}
	if day.OvertimeHrs == nil || *day.OvertimeHrs != 0 {
		t.Errorf("overtime = %v, want 0", day.OvertimeHrs)
	}
	if day.TotalHrs == nil || *day.TotalHrs != 10 {
		t.Errorf("total = %v, want 10", day.TotalHrs)
	}

	_, err = card.ClockOut(testDate, testNow.Add(12*time.Hour))
	if !errors.Is(err, ErrConflict) {
		t.Errorf("second ClockOut error = %v, want ErrConflict", err)
	}
}

func TestSubmitFromAnyState(t *testing.T) {
	for _, status := range []TimesheetStatus{TimesheetDraft, TimesheetSubmitted, TimesheetApproved, TimesheetRejected} {
		card := newTestCard()
		card.Status = status
		card.Submit(testNow)
		if card.Status != TimesheetSubmitted {
			t.Errorf("Submit from %q: status = %q", status, card.Status)
		}
	}
}

func TestApproveUnassignedApprover(t *testing.T) {
	card := newTestCard()
	if err := card.Approve(7, "looks good", testNow); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if card.Status != TimesheetApproved {
		t.Errorf("card status = %q, want approved", card.Status)
	}
	a := card.Approvals[0]
	if a.Status != ApprovalApproved {
		t.Errorf("approval status = %q, want approved", a.Status)
	}
	if a.Comment == nil || *a.Comment != "looks good" {
		t.Errorf("comment = %v", a.Comment)
	}
	if a.ActedAt == nil || !a.ActedAt.Equal(testNow) {
		t.Errorf("acted_at = %v, want %v", a.ActedAt, testNow)
	}
	if a.ApproverUserID != nil {
		t.Errorf("approver_user_id = %v, want nil when unassigned", a.ApproverUserID)
	}
}

func TestApproveAssignedApprover(t *testing.T) {
	card := newTestCard()
	userA := int64(5)
	card.Approvals[0].ApproverUserID = &userA

	err := card.Approve(6, "", testNow)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("Approve by wrong user = %v, want ErrForbidden", err)
	}
	if err := card.Approve(userA, "", testNow); err != nil {
		t.Errorf("Approve by assigned user: %v", err)
	}
}

func TestApproveWithoutPendingApproval(t *testing.T) {
	card := newTestCard()
	card.Approvals[0].Status = ApprovalApproved

	err := card.Approve(1, "", testNow)
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("Approve error = %v, want ErrInvalidState", err)
	}
}

func TestPendingApprovalPicksLatest(t *testing.T) {
	card := newTestCard()
	card.Approvals[0].ID = 1
	card.Approvals = append(card.Approvals, &Approval{
		ID: 2, Level: ApprovalLevelOne, Role: RoleSiteEngineer, Status: ApprovalPending,
	})
	if got := card.PendingApproval(); got == nil || got.ID != 2 {
		t.Errorf("PendingApproval = %+v, want ID 2", got)
	}
}

func TestSortedDays(t *testing.T) {
	card := newTestCard()
	d1 := testDate
	d2 := testDate.AddDate(0, 0, -3)
	card.Days = append(card.Days, &DayEntry{LogDate: d1}, &DayEntry{LogDate: d2})

	days := card.SortedDays()
	if !days[0].LogDate.Equal(d2) || !days[1].LogDate.Equal(d1) {
		t.Error("days not sorted by log date")
	}
}

func TestRecalculateClearsHoursWhenOpen(t *testing.T) {
	start := "08:00:00"
	ten := 10.0
	day := &DayEntry{LogDate: testDate, TimeStart: &start, DutyBreakHrs: 1, RegularHrs: &ten, TotalHrs: &ten}
	if err := day.Recalculate(); err != nil {
		t.Fatalf("Recalculate: %v", err)
	}
	if day.RegularHrs != nil || day.OvertimeHrs != nil || day.TotalHrs != nil {
		t.Error("derived hours must be cleared while the entry is open")
	}
}

func TestRecalculateInvalidClock(t *testing.T) {
	start, end := "bad", "19:00:00"
	day := &DayEntry{LogDate: testDate, TimeStart: &start, TimeEnd: &end, DutyBreakHrs: 1}
	if err := day.Recalculate(); !errors.Is(err, ErrValidation) {
		t.Errorf("Recalculate error = %v, want ErrValidation", err)
	}
}
