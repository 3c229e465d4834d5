package repository

import (
	"context"
	"database/sql"
	"fmt"

	"equipment_management/internal/domain"
)

type RequestRepo struct {
	db *sql.DB
}

func NewRequestRepo(db *sql.DB) *RequestRepo {
	return &RequestRepo{db: db}
}

func (r *RequestRepo) List(ctx context.Context) ([]*domain.Request, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT request_id, engineer_name, requested_equipment, request_time, status, COALESCE(notes, '')
		FROM requests
		ORDER BY request_time DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*domain.Request
	for rows.Next() {
		var req domain.Request
		if err := rows.Scan(&req.ID, &req.EngineerName, &req.EquipmentID,
			&req.RequestTime, &req.Status, &req.Notes); err != nil {
			return nil, err
		}
		list = append(list, &req)
	}
	return list, rows.Err()
}

func (r *RequestRepo) Create(ctx context.Context, req *domain.Request) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO requests (engineer_name, requested_equipment, notes)
		VALUES ($1, $2, $3)
		RETURNING request_id, request_time, status`,
		req.EngineerName, req.EquipmentID, req.Notes).
		Scan(&req.ID, &req.RequestTime, &req.Status)
}

func (r *RequestRepo) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Request, error) {
	var req domain.Request
	err := r.db.QueryRowContext(ctx, `
		UPDATE requests SET status = $1 WHERE request_id = $2
		RETURNING request_id, engineer_name, requested_equipment, request_time, status, COALESCE(notes, '')`,
		status, id).
		Scan(&req.ID, &req.EngineerName, &req.EquipmentID, &req.RequestTime, &req.Status, &req.Notes)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: request %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}
