package repository

import (
	"context"
	"time"

	"equipment_management/internal/domain"
)

// EquipmentRepository manages equipment persistence. Lookups for absent rows
// return an error wrapping domain.ErrNotFound.
type EquipmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	List(ctx context.Context) ([]*domain.Equipment, error)
	Create(ctx context.Context, eq *domain.Equipment) error
	Update(ctx context.Context, eq *domain.Equipment) error
}

// DriverRepository manages driver persistence.
type DriverRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Driver, error)
	List(ctx context.Context) ([]*domain.Driver, error)
	Create(ctx context.Context, d *domain.Driver) error
}

// RequestRepository manages equipment request persistence.
type RequestRepository interface {
	List(ctx context.Context) ([]*domain.Request, error)
	Create(ctx context.Context, r *domain.Request) error
	UpdateStatus(ctx context.Context, id int64, status string) (*domain.Request, error)
}

// UserRepository manages operator accounts.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}

// TimesheetRepository loads and saves the timesheet card aggregate (card +
// days + approvals) as one unit. Save and Create run inside a single
// transaction so partial writes are never observable.
type TimesheetRepository interface {
	// Load returns the card with its days and approvals.
	Load(ctx context.Context, id int64) (*domain.TimesheetCard, error)
	// LoadByDay resolves a day id to its parent card.
	LoadByDay(ctx context.Context, dayID int64) (*domain.TimesheetCard, error)
	// FindByTriple returns the latest card for the triple, or (nil, nil)
	// when none exists.
	FindByTriple(ctx context.Context, equipmentID, driverID int64, monthYear time.Time) (*domain.TimesheetCard, error)
	// Create persists a new card with its approvals and fills in the ids.
	Create(ctx context.Context, card *domain.TimesheetCard) error
	// Save persists the card header plus any new or changed days and
	// approvals.
	Save(ctx context.Context, card *domain.TimesheetCard) error
	// ListPending returns all cards whose level-1 SiteEngineer approval is
	// still pending.
	ListPending(ctx context.Context) ([]*domain.TimesheetCard, error)
}

// DashboardRepository aggregates the landing-page counts.
type DashboardRepository interface {
	Stats(ctx context.Context) (*domain.DashboardStats, error)
}
