package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/saleem-shalabi/Medi-Care-App/internal/domain"
	"github.com/saleem-shalabi/Medi-Care-App/internal/repository"
)

type maintenanceRepository struct {
	db DBTX
}

func NewMaintenanceRepository(db DBTX) repository.MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

const maintenanceColumns = `id, customer_id, product_id, technician_id, issue_description,
	          preferred_service_date, service_date, estimated_cost_cents, final_cost_cents,
	          technician_notes, status, created_on, updated_on`

func (r *maintenanceRepository) Create(ctx context.Context, req *domain.MaintenanceRequest) error {
	now := time.Now()
	req.CreatedOn = now
	req.UpdatedOn = now
	query := `INSERT INTO maintenance_requests
	          (customer_id, product_id, issue_description, preferred_service_date, technician_notes, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		req.CustomerID, req.ProductID, req.IssueDescription, req.PreferredServiceDate,
		req.TechnicianNotes, req.Status, req.CreatedOn, req.UpdatedOn).Scan(&req.ID)
}

func (r *maintenanceRepository) GetByID(ctx context.Context, id int64) (*domain.MaintenanceRequest, error) {
	req := &domain.MaintenanceRequest{}
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_requests WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.CustomerID, &req.ProductID, &req.TechnicianID, &req.IssueDescription,
		&req.PreferredServiceDate, &req.ServiceDate, &req.EstimatedCostCents, &req.FinalCostCents,
		&req.TechnicianNotes, &req.Status, &req.CreatedOn, &req.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: request %d", domain.ErrRequestNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *maintenanceRepository) Update(ctx context.Context, req *domain.MaintenanceRequest) error {
	req.UpdatedOn = time.Now()
	res, err := r.db.ExecContext(ctx,
		`UPDATE maintenance_requests
		 SET technician_id = $1, service_date = $2, estimated_cost_cents = $3, final_cost_cents = $4,
		     technician_notes = $5, status = $6, updated_on = $7
		 WHERE id = $8`,
		req.TechnicianID, req.ServiceDate, req.EstimatedCostCents, req.FinalCostCents,
		req.TechnicianNotes, req.Status, req.UpdatedOn, req.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: request %d", domain.ErrRequestNotFound, req.ID)
	}
	return nil
}

func (r *maintenanceRepository) List(ctx context.Context, status domain.MaintenanceStatus, technicianID int64) ([]domain.MaintenanceRequest, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_requests`
	args := []any{}
	conditions := ""
	if status != "" {
		args = append(args, status)
		conditions = fmt.Sprintf(" WHERE status = $%d", len(args))
	}
	if technicianID != 0 {
		args = append(args, technicianID)
		if conditions == "" {
			conditions = fmt.Sprintf(" WHERE technician_id = $%d", len(args))
		} else {
			conditions += fmt.Sprintf(" AND technician_id = $%d", len(args))
		}
	}
	query += conditions + " ORDER BY created_on DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.MaintenanceRequest
	for rows.Next() {
		var req domain.MaintenanceRequest
		if err := rows.Scan(&req.ID, &req.CustomerID, &req.ProductID, &req.TechnicianID, &req.IssueDescription,
			&req.PreferredServiceDate, &req.ServiceDate, &req.EstimatedCostCents, &req.FinalCostCents,
			&req.TechnicianNotes, &req.Status, &req.CreatedOn, &req.UpdatedOn); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}
