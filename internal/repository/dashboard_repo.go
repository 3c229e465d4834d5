package repository

import (
	"context"
	"database/sql"

	"equipment_management/internal/domain"
)

type DashboardRepo struct {
	db *sql.DB
}

func NewDashboardRepo(db *sql.DB) *DashboardRepo {
	return &DashboardRepo{db: db}
}

func (r *DashboardRepo) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM equipment),
			(SELECT COUNT(*) FROM equipment WHERE status = 'Active'),
			(SELECT COUNT(*) FROM drivers),
			(SELECT COUNT(*) FROM requests WHERE status = 'Pending')`).
		Scan(&stats.TotalEquipment, &stats.AvailableEquipment,
			&stats.TotalDrivers, &stats.PendingRequests)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
