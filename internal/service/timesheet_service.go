// Package service orchestrates the timesheet lifecycle over the storage
// collaborators. Every operation loads the aggregate fresh, mutates it
// through the domain rules, and persists it as one atomic unit.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"equipment_management/internal/domain"
	"equipment_management/internal/repository"
	"equipment_management/internal/timecalc"
)

// CardDetail is a timesheet card together with its referenced equipment and
// driver, ready for serialization.
type CardDetail struct {
	Card      *domain.TimesheetCard
	Equipment *domain.Equipment
	Driver    *domain.Driver
}

// CreateCardInput identifies the (equipment, driver, month) triple a card
// covers.
type CreateCardInput struct {
	EquipmentID     int64
	DriverID        int64
	MonthYear       time.Time
	ProjectLocation string
}

// DayPatch is a partial day update; the Set flags record which fields were
// present in the request so an explicit null can be told apart from an
// omitted key.
type DayPatch struct {
	TimeStart    *string
	SetTimeStart bool

	TimeEnd    *string
	SetTimeEnd bool

	// A null duty break normalizes to 0, not "unchanged".
	DutyBreakHrs    *float64
	SetDutyBreakHrs bool

	BreakdownReason    *string
	SetBreakdownReason bool
}

// TimesheetService exposes the timesheet lifecycle operations.
type TimesheetService struct {
	timesheets repository.TimesheetRepository
	equipment  repository.EquipmentRepository
	drivers    repository.DriverRepository

	// now is read once per operation so clock fields and acted_at within a
	// single call are consistent.
	now func() time.Time
}

func NewTimesheetService(
	timesheets repository.TimesheetRepository,
	equipment repository.EquipmentRepository,
	drivers repository.DriverRepository,
) *TimesheetService {
	return &TimesheetService{
		timesheets: timesheets,
		equipment:  equipment,
		drivers:    drivers,
		now:        time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (s *TimesheetService) WithClock(now func() time.Time) *TimesheetService {
	s.now = now
	return s
}

// CreateOrGet returns the existing card for the triple or creates a new draft
// card with its pending level-1 approval. Fails with NotFound when the
// equipment or driver does not resolve.
func (s *TimesheetService) CreateOrGet(ctx context.Context, in CreateCardInput) (*CardDetail, error) {
	eq, err := s.equipment.GetByID(ctx, in.EquipmentID)
	if err != nil {
		return nil, err
	}
	driver, err := s.drivers.GetByID(ctx, in.DriverID)
	if err != nil {
		return nil, err
	}

	monthYear := domain.FirstOfMonth(in.MonthYear)
	card, err := s.timesheets.FindByTriple(ctx, in.EquipmentID, in.DriverID, monthYear)
	if err != nil {
		return nil, err
	}
	if card == nil {
		now := s.now()
		card = domain.NewTimesheetCard(in.EquipmentID, in.DriverID, monthYear,
			in.ProjectLocation, eq.CompanySupplier, nil, now)
		err = s.timesheets.Create(ctx, card)
		if errors.Is(err, domain.ErrConflict) {
			// Lost a create race; the winner's card is the card.
			card, err = s.timesheets.FindByTriple(ctx, in.EquipmentID, in.DriverID, monthYear)
			if err == nil && card == nil {
				err = fmt.Errorf("%w: timesheet", domain.ErrNotFound)
			}
		}
		if err != nil {
			return nil, err
		}
	}

	return &CardDetail{Card: card, Equipment: eq, Driver: driver}, nil
}

// Get returns the card with its equipment and driver summaries.
func (s *TimesheetService) Get(ctx context.Context, cardID int64) (*CardDetail, error) {
	card, err := s.timesheets.Load(ctx, cardID)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, card)
}

// ClockIn records a start time for logDate (today when nil) on the card.
func (s *TimesheetService) ClockIn(ctx context.Context, cardID int64, logDate *time.Time) (*CardDetail, error) {
	card, err := s.timesheets.Load(ctx, cardID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if _, err := card.ClockIn(s.resolveDate(logDate, now), now); err != nil {
		return nil, err
	}
	if err := s.timesheets.Save(ctx, card); err != nil {
		return nil, err
	}
	return s.detail(ctx, card)
}

// ClockOut records an end time for logDate (today when nil) and recomputes
// the derived hours.
func (s *TimesheetService) ClockOut(ctx context.Context, cardID int64, logDate *time.Time) (*CardDetail, error) {
	card, err := s.timesheets.Load(ctx, cardID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if _, err := card.ClockOut(s.resolveDate(logDate, now), now); err != nil {
		return nil, err
	}
	if err := s.timesheets.Save(ctx, card); err != nil {
		return nil, err
	}
	return s.detail(ctx, card)
}

// UpdateDay applies a partial edit to a day entry and recomputes its hours.
// Returns the parent card.
func (s *TimesheetService) UpdateDay(ctx context.Context, dayID int64, patch DayPatch) (*CardDetail, error) {
	card, err := s.timesheets.LoadByDay(ctx, dayID)
	if err != nil {
		return nil, err
	}

	var day *domain.DayEntry
	for _, d := range card.Days {
		if d.ID == dayID {
			day = d
			break
		}
	}
	if day == nil {
		return nil, fmt.Errorf("%w: day %d", domain.ErrNotFound, dayID)
	}

	if patch.SetTimeStart {
		if day.TimeStart, err = normalizeClock(patch.TimeStart); err != nil {
			return nil, err
		}
	}
	if patch.SetTimeEnd {
		if day.TimeEnd, err = normalizeClock(patch.TimeEnd); err != nil {
			return nil, err
		}
	}
	if patch.SetDutyBreakHrs {
		if patch.DutyBreakHrs == nil {
			day.DutyBreakHrs = 0
		} else {
			day.DutyBreakHrs = *patch.DutyBreakHrs
		}
	}
	if patch.SetBreakdownReason {
		day.BreakdownReason = patch.BreakdownReason
	}

	if err := day.Recalculate(); err != nil {
		return nil, err
	}
	now := s.now()
	day.UpdatedAt = now
	card.UpdatedAt = now

	if err := s.timesheets.Save(ctx, card); err != nil {
		return nil, err
	}
	return s.detail(ctx, card)
}

// Submit moves the card to submitted, from any state.
func (s *TimesheetService) Submit(ctx context.Context, cardID int64) (*CardDetail, error) {
	card, err := s.timesheets.Load(ctx, cardID)
	if err != nil {
		return nil, err
	}
	card.Submit(s.now())
	if err := s.timesheets.Save(ctx, card); err != nil {
		return nil, err
	}
	return s.detail(ctx, card)
}

// Approve acts on the card's pending level-1 approval as callerID.
func (s *TimesheetService) Approve(ctx context.Context, cardID, callerID int64, comment string) (*CardDetail, error) {
	card, err := s.timesheets.Load(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if err := card.Approve(callerID, comment, s.now()); err != nil {
		return nil, err
	}
	if err := s.timesheets.Save(ctx, card); err != nil {
		return nil, err
	}
	return s.detail(ctx, card)
}

// ListPending returns every card still waiting for Site Engineer approval,
// unfiltered by caller.
func (s *TimesheetService) ListPending(ctx context.Context) ([]*CardDetail, error) {
	cards, err := s.timesheets.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	details := make([]*CardDetail, 0, len(cards))
	for _, card := range cards {
		detail, err := s.detail(ctx, card)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

func (s *TimesheetService) detail(ctx context.Context, card *domain.TimesheetCard) (*CardDetail, error) {
	eq, err := s.equipment.GetByID(ctx, card.EquipmentID)
	if err != nil {
		return nil, err
	}
	driver, err := s.drivers.GetByID(ctx, card.DriverID)
	if err != nil {
		return nil, err
	}
	return &CardDetail{Card: card, Equipment: eq, Driver: driver}, nil
}

// normalizeClock canonicalizes a clock value; nil and "" both clear the
// field.
func normalizeClock(value *string) (*string, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	normalized, err := timecalc.NormalizeClock(*value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return &normalized, nil
}

func (s *TimesheetService) resolveDate(logDate *time.Time, now time.Time) time.Time {
	if logDate != nil {
		return time.Date(logDate.Year(), logDate.Month(), logDate.Day(), 0, 0, 0, 0, time.UTC)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
