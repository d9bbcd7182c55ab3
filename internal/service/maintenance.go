package service

import (
	"context"
	"fmt"
	"time"

	"github.com/saleem-shalabi/Medi-Care-App/internal/domain"
	"github.com/saleem-shalabi/Medi-Care-App/internal/logger"
	"github.com/saleem-shalabi/Medi-Care-App/internal/repository"
)

type maintenanceService struct {
	store repository.Store
}

func NewMaintenanceService(store repository.Store) MaintenanceService {
	return &maintenanceService{store: store}
}

func (s *maintenanceService) CreateRequest(ctx context.Context, customerID, productID int64, issueDescription string, preferredServiceDate *time.Time) (*domain.MaintenanceRequest, error) {
	if issueDescription == "" {
		return nil, fmt.Errorf("issue description is required")
	}
	if _, err := s.store.Repos().Products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	req := &domain.MaintenanceRequest{
		CustomerID:           customerID,
		ProductID:            productID,
		IssueDescription:     issueDescription,
		PreferredServiceDate: preferredServiceDate,
		Status:               domain.MaintenanceStatusPending,
	}
	if err := s.store.Repos().Maintenance.Create(ctx, req); err != nil {
		return nil, err
	}

	logger.WithService("maintenance").Info("maintenance request created",
		"request_id", req.ID, "customer_id", customerID, "product_id", productID)
	return req, nil
}

// AssignRequest approves a pending request, books it on a technician with
// a service date and a cost estimate, and moves it to IN_PROGRESS.
func (s *maintenanceService) AssignRequest(ctx context.Context, requestID, technicianID int64, serviceDate time.Time, estimatedCostCents int64) (*domain.MaintenanceRequest, error) {
	var req *domain.MaintenanceRequest
	err := s.store.InTx(ctx, func(r repository.Repositories) error {
		var err error
		req, err = r.Maintenance.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if req.Status != domain.MaintenanceStatusPending {
			return fmt.Errorf("%w: request %d is %s", domain.ErrInvalidTransition, requestID, req.Status)
		}

		technician, err := r.Users.GetByID(ctx, technicianID)
		if err != nil {
			return err
		}
		if technician.Role != domain.UserRoleMaintenance {
			return fmt.Errorf("%w: user %d is not a technician", domain.ErrForbidden, technicianID)
		}

		req.TechnicianID = &technicianID
		req.ServiceDate = &serviceDate
		req.EstimatedCostCents = &estimatedCostCents
		req.Status = domain.MaintenanceStatusInProgress
		return r.Maintenance.Update(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	logger.WithService("maintenance").Info("maintenance request assigned",
		"request_id", requestID, "technician_id", technicianID)
	return req, nil
}

// CompleteRequest closes an in-progress request with the final cost. Only
// the assigned technician or an admin may complete it.
func (s *maintenanceService) CompleteRequest(ctx context.Context, requestID int64, requester *domain.User, finalCostCents int64, completionNote string) (*domain.MaintenanceRequest, error) {
	var req *domain.MaintenanceRequest
	err := s.store.InTx(ctx, func(r repository.Repositories) error {
		var err error
		req, err = r.Maintenance.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if req.Status != domain.MaintenanceStatusInProgress {
			return fmt.Errorf("%w: request %d is %s", domain.ErrInvalidTransition, requestID, req.Status)
		}
		if requester.Role != domain.UserRoleAdmin &&
			(req.TechnicianID == nil || *req.TechnicianID != requester.ID) {
			return fmt.Errorf("%w: request %d is not assigned to user %d", domain.ErrForbidden, requestID, requester.ID)
		}

		req.FinalCostCents = &finalCostCents
		if completionNote != "" {
			if req.TechnicianNotes != "" {
				req.TechnicianNotes += domain.NotesDelimiter
			}
			req.TechnicianNotes += completionNote
		}
		req.Status = domain.MaintenanceStatusCompleted
		return r.Maintenance.Update(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	logger.WithService("maintenance").Info("maintenance request completed",
		"request_id", requestID, "final_cost_cents", finalCostCents)
	return req, nil
}

// GetRequest fetches one request. Customers see only their own requests;
// technicians see their assignments; admins see everything.
func (s *maintenanceService) GetRequest(ctx context.Context, requestID int64, requester *domain.User) (*domain.MaintenanceRequest, error) {
	req, err := s.store.Repos().Maintenance.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	switch requester.Role {
	case domain.UserRoleAdmin:
	case domain.UserRoleMaintenance:
		if req.TechnicianID == nil || *req.TechnicianID != requester.ID {
			return nil, fmt.Errorf("%w: request %d is not assigned to user %d", domain.ErrForbidden, requestID, requester.ID)
		}
	default:
		if req.CustomerID != requester.ID {
			return nil, fmt.Errorf("%w: request %d does not belong to user %d", domain.ErrForbidden, requestID, requester.ID)
		}
	}
	return req, nil
}

func (s *maintenanceService) ListRequests(ctx context.Context, status domain.MaintenanceStatus, technicianID int64) ([]domain.MaintenanceRequest, error) {
	if status != "" && !domain.ValidMaintenanceStatus(status) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	return s.store.Repos().Maintenance.List(ctx, status, technicianID)
}
