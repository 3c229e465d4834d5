package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"equipment_management/internal/domain"
)

// mock implementations

type mockEquipmentRepo struct {
	equipment map[int64]*domain.Equipment
}

func (m *mockEquipmentRepo) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	if eq, ok := m.equipment[id]; ok {
		return eq, nil
	}
	return nil, fmt.Errorf("%w: equipment %d", domain.ErrNotFound, id)
}
func (m *mockEquipmentRepo) List(ctx context.Context) ([]*domain.Equipment, error) { return nil, nil }
func (m *mockEquipmentRepo) Create(ctx context.Context, eq *domain.Equipment) error { return nil }
func (m *mockEquipmentRepo) Update(ctx context.Context, eq *domain.Equipment) error { return nil }

type mockDriverRepo struct {
	drivers map[int64]*domain.Driver
}

func (m *mockDriverRepo) GetByID(ctx context.Context, id int64) (*domain.Driver, error) {
	if d, ok := m.drivers[id]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("%w: driver %d", domain.ErrNotFound, id)
}
func (m *mockDriverRepo) List(ctx context.Context) ([]*domain.Driver, error) { return nil, nil }
func (m *mockDriverRepo) Create(ctx context.Context, d *domain.Driver) error { return nil }

type mockTimesheetRepo struct {
	cards      map[int64]*domain.TimesheetCard
	nextCardID int64
	nextDayID  int64
	creates    int
	saves      int
}

func newMockTimesheetRepo() *mockTimesheetRepo {
	return &mockTimesheetRepo{cards: map[int64]*domain.TimesheetCard{}, nextCardID: 1, nextDayID: 1}
}

func (m *mockTimesheetRepo) Load(ctx context.Context, id int64) (*domain.TimesheetCard, error) {
	if card, ok := m.cards[id]; ok {
		return card, nil
	}
	return nil, fmt.Errorf("%w: timesheet %d", domain.ErrNotFound, id)
}

func (m *mockTimesheetRepo) LoadByDay(ctx context.Context, dayID int64) (*domain.TimesheetCard, error) {
	for _, card := range m.cards {
		for _, d := range card.Days {
			if d.ID == dayID {
				return card, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: day %d", domain.ErrNotFound, dayID)
}

func (m *mockTimesheetRepo) FindByTriple(ctx context.Context, equipmentID, driverID int64, monthYear time.Time) (*domain.TimesheetCard, error) {
	for _, card := range m.cards {
		if card.EquipmentID == equipmentID && card.DriverID == driverID && card.MonthYear.Equal(monthYear) {
			return card, nil
		}
	}
	return nil, nil
}

func (m *mockTimesheetRepo) Create(ctx context.Context, card *domain.TimesheetCard) error {
	m.creates++
	card.ID = m.nextCardID
	m.nextCardID++
	for i, a := range card.Approvals {
		a.TimesheetID = card.ID
		a.ID = int64(i + 1)
	}
	m.cards[card.ID] = card
	return nil
}

func (m *mockTimesheetRepo) Save(ctx context.Context, card *domain.TimesheetCard) error {
	m.saves++
	if _, ok := m.cards[card.ID]; !ok {
		return fmt.Errorf("%w: timesheet %d", domain.ErrNotFound, card.ID)
	}
	for _, d := range card.Days {
		if d.ID == 0 {
			d.ID = m.nextDayID
			m.nextDayID++
		}
	}
	m.cards[card.ID] = card
	return nil
}

func (m *mockTimesheetRepo) ListPending(ctx context.Context) ([]*domain.TimesheetCard, error) {
	var out []*domain.TimesheetCard
	for _, card := range m.cards {
		if card.PendingApproval() != nil {
			out = append(out, card)
		}
	}
	return out, nil
}

// fixtures

var (
	serviceNow = time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	month      = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
)

func newTestService() (*TimesheetService, *mockTimesheetRepo) {
	supplier := "Al Rajhi Heavy Equipment"
	repo := newMockTimesheetRepo()
	eqRepo := &mockEquipmentRepo{equipment: map[int64]*domain.Equipment{
		1: {ID: 1, AssetNo: "EX-101", EquipmentName: "Excavator", PlateSerialNo: "4411 XKA", CompanySupplier: &supplier},
	}}
	drRepo := &mockDriverRepo{drivers: map[int64]*domain.Driver{
		2: {ID: 2, DriverName: "Imran Khan", PhoneNumber: "0551234567", EqamaNumber: "2456789012"},
	}}
	svc := NewTimesheetService(repo, eqRepo, drRepo).WithClock(func() time.Time { return serviceNow })
	return svc, repo
}

// tests

func TestCreateOrGetIsIdempotent(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	first, err := svc.CreateOrGet(ctx, CreateCardInput{EquipmentID: 1, DriverID: 2, MonthYear: month})
	if err != nil {
		t.Fatalf("CreateOrGet: %v", err)
	}
	second, err := svc.CreateOrGet(ctx, CreateCardInput{EquipmentID: 1, DriverID: 2, MonthYear: month.AddDate(0, 0, 14)})
	if err != nil {
		t.Fatalf("second CreateOrGet: %v", err)
	}

	if first.Card.ID != second.Card.ID {
		t.Errorf("card ids differ: %d vs %d", first.Card.ID, second.Card.ID)
	}
	if repo.creates != 1 {
		t.Errorf("creates = %d, want 1", repo.creates)
	}
	if len(second.Card.Approvals) != 1 {
		t.Errorf("approvals = %d, want 1", len(second.Card.Approvals))
	}
	if first.Card.SupplierName == nil || *first.Card.SupplierName != "Al Rajhi Heavy Equipment" {
		t.Errorf("supplier not copied from equipment: %v", first.Card.SupplierName)
	}
}

func TestCreateOrGetUnknownEquipment(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.CreateOrGet(context.Background(), CreateCardInput{EquipmentID: 99, DriverID: 2, MonthYear: month})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestClockInThenConflict(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	detail, err := svc.CreateOrGet(ctx, CreateCardInput{EquipmentID: 1, DriverID: 2, MonthYear: month})
	if err != nil {
		t.Fatalf("CreateOrGet: %v", err)
	}

	res, err := svc.ClockIn(ctx, detail.Card.ID, nil)
	if err != nil {
		t.Fatalf("ClockIn: %v", err)
	}
	day := res.Card.DayFor(serviceNow)
	if day == nil || day.TimeStart == nil || *day.TimeStart != "08:00:00" {
		t.Fatalf("unexpected day entry %+v", day)
	}
	if day.ID == 0 {
		t.Error("day entry not persisted")
	}

	_, err = svc.ClockIn(ctx, detail.Card.ID, nil)
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("second ClockIn err = %v, want ErrConflict", err)
	}
}

func TestClockOutWithoutClockIn(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	detail, _ := svc.CreateOrGet(ctx, CreateCardInput{EquipmentID: 1, DriverID: 2, MonthYear: month})

	_, err := svc.ClockOut(ctx, detail.Card.ID, nil)
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("ClockOut err = %v, want ErrInvalidState", err)
	}
}

func TestUpdateDayNullBreakNormalizesToZero(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	detail, _ := svc.CreateOrGet(ctx, CreateCardInput{EquipmentID: 1, DriverID: 2, MonthYear: month})
	res, err := svc.ClockIn(ctx, detail.Card.ID, nil)
	if err != nil {
		t.Fatalf("ClockIn: %v", err)
	}
	dayID := res.Card.DayFor(serviceNow).ID

	start, end := "08:00", "19:00"
	res, err = svc.UpdateDay(ctx, dayID, DayPatch{
		TimeStart: &start, SetTimeStart: true,
		TimeEnd: &end, SetTimeEnd: true,
		DutyBreakHrs: nil, SetDutyBreakHrs: true,
	})
	if err != nil {
		t.Fatalf("UpdateDay: %v", err)
	}

	day := res.Card.DayFor(serviceNow)
	if day.DutyBreakHrs != 0 {
		t.Errorf("duty_break_hrs = %v, want 0", day.DutyBreakHrs)
	}
	// 11 elapsed hours, no break: 10 regular + 1 overtime.
	if day.RegularHrs == nil || *day.RegularHrs != 10 {
		t.Errorf("regular = %v, want 10", day.RegularHrs)
	}
	if day.OvertimeHrs == nil || *day.OvertimeHrs != 1 {
		t.Errorf("overtime = %v, want 1", day.OvertimeHrs)
	}
	if day.TotalHrs == nil || *day.TotalHrs != 11 {
		t.Errorf("total = %v, want 11", day.TotalHrs)
	}
}

func TestUpdateDayClearingEndClearsHours(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	detail, _ := svc.CreateOrGet(ctx, CreateCardInput{EquipmentID: 1, DriverID: 2, MonthYear: month})
	res, _ := svc.ClockIn(ctx, detail.Card.ID, nil)
	dayID := res.Card.DayFor(serviceNow).ID

	end := "19:00"
	if _, err := svc.UpdateDay(ctx, dayID, DayPatch{TimeEnd: &end, SetTimeEnd: true}); err != nil {
		t.Fatalf("UpdateDay set end: %v", err)
	}
	res, err := svc.UpdateDay(ctx, dayID, DayPatch{TimeEnd: nil, SetTimeEnd: true})
	if err != nil {
		t.Fatalf("UpdateDay clear end: %v", err)
	}
	day := res.Card.DayFor(serviceNow)
	if day.RegularHrs != nil || day.OvertimeHrs != nil || day.TotalHrs != nil {
		t.Error("derived hours should be cleared when time_end is nulled")
	}
}

func TestUpdateDayEmptyStringClearsClock(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	detail, _ := svc.CreateOrGet(ctx, CreateCardInput{EquipmentID: 1, DriverID: 2, MonthYear: month})
	res, _ := svc.ClockIn(ctx, detail.Card.ID, nil)
	dayID := res.Card.DayFor(serviceNow).ID

	end := "19:00"
	if _, err := svc.UpdateDay(ctx, dayID, DayPatch{TimeEnd: &end, SetTimeEnd: true}); err != nil {
		t.Fatalf("UpdateDay set end: %v", err)
	}
	empty := ""
	res, err := svc.UpdateDay(ctx, dayID, DayPatch{TimeEnd: &empty, SetTimeEnd: true})
	if err != nil {
		t.Fatalf("UpdateDay empty end: %v", err)
	}
	day := res.Card.DayFor(serviceNow)
	if day.TimeEnd != nil {
		t.Errorf("time_end = %v, want cleared by empty string", day.TimeEnd)
	}
	if day.RegularHrs != nil || day.TotalHrs != nil {
		t.Error("derived hours should be cleared with the clock value")
	}
}

func TestSubmitUnknownCard(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Submit(context.Background(), 123)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Submit err = %v, want ErrNotFound", err)
	}
}

func TestApproveFlow(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	detail, _ := svc.CreateOrGet(ctx, CreateCardInput{EquipmentID: 1, DriverID: 2, MonthYear: month})

	if _, err := svc.Submit(ctx, detail.Card.ID); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	pending, err := svc.ListPending(ctx)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(pending))
	}

	res, err := svc.Approve(ctx, detail.Card.ID, 7, "verified on site")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if res.Card.Status != domain.TimesheetApproved {
		t.Errorf("status = %q, want approved", res.Card.Status)
	}
	a := res.Card.Approvals[0]
	if a.ActedAt == nil || !a.ActedAt.Equal(serviceNow) {
		t.Errorf("acted_at = %v, want %v", a.ActedAt, serviceNow)
	}

	pending, _ = svc.ListPending(ctx)
	if len(pending) != 0 {
		t.Errorf("pending after approve = %d, want 0", len(pending))
	}

	_, err = svc.Approve(ctx, detail.Card.ID, 7, "")
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("second Approve err = %v, want ErrInvalidState", err)
	}
}

func TestApproveAssignedApproverMismatch(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	detail, _ := svc.CreateOrGet(ctx, CreateCardInput{EquipmentID: 1, DriverID: 2, MonthYear: month})

	userA := int64(5)
	repo.cards[detail.Card.ID].Approvals[0].ApproverUserID = &userA

	if _, err := svc.Approve(ctx, detail.Card.ID, 6, ""); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Approve by wrong user err = %v, want ErrForbidden", err)
	}
	if _, err := svc.Approve(ctx, detail.Card.ID, userA, ""); err != nil {
		t.Errorf("Approve by assigned user: %v", err)
	}
}
