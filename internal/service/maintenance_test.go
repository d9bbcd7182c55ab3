package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saleem-shalabi/Medi-Care-App/internal/domain"
)

func TestMaintenanceLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	customerID, productID := seedCatalog(store)
	adminID := store.addUser(domain.User{Username: "admin", Role: domain.UserRoleAdmin})
	techID := store.addUser(domain.User{Username: "tech", Role: domain.UserRoleMaintenance})
	svc := NewMaintenanceService(store)

	req, err := svc.CreateRequest(ctx, customerID, productID, "Compressor rattles under load", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.MaintenanceStatusPending, req.Status)

	// Only MAINTENANCE-role users can take assignments.
	_, err = svc.AssignRequest(ctx, req.ID, adminID, mustDate("2026-09-05"), 4500)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assigned, err := svc.AssignRequest(ctx, req.ID, techID, mustDate("2026-09-05"), 4500)
	require.NoError(t, err)
	assert.Equal(t, domain.MaintenanceStatusInProgress, assigned.Status)
	require.NotNil(t, assigned.TechnicianID)
	assert.Equal(t, techID, *assigned.TechnicianID)
	assert.Equal(t, int64(4500), *assigned.EstimatedCostCents)

	// Assignment is a PENDING-only transition; a booked request cannot be
	// reassigned.
	_, err = svc.AssignRequest(ctx, req.ID, techID, mustDate("2026-09-06"), 4000)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// A different technician cannot complete someone else's job.
	stranger := &domain.User{ID: store.addUser(domain.User{Username: "tech2", Role: domain.UserRoleMaintenance}), Role: domain.UserRoleMaintenance}
	_, err = svc.CompleteRequest(ctx, req.ID, stranger, 5000, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	tech := &domain.User{ID: techID, Role: domain.UserRoleMaintenance}
	done, err := svc.CompleteRequest(ctx, req.ID, tech, 5000, "Replaced the compressor mount.")
	require.NoError(t, err)
	assert.Equal(t, domain.MaintenanceStatusCompleted, done.Status)
	assert.Equal(t, int64(5000), *done.FinalCostCents)
	assert.Contains(t, done.TechnicianNotes, "compressor mount")

	// Completed requests cannot be completed again.
	_, err = svc.CompleteRequest(ctx, req.ID, tech, 5000, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestMaintenanceGetRequest_Visibility(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	customerID, productID := seedCatalog(store)
	otherCustomerID := store.addUser(domain.User{Username: "someone", Role: domain.UserRoleCustomer})
	adminID := store.addUser(domain.User{Username: "admin", Role: domain.UserRoleAdmin})
	svc := NewMaintenanceService(store)

	req, err := svc.CreateRequest(ctx, customerID, productID, "Battery will not hold a charge", nil)
	require.NoError(t, err)

	_, err = svc.GetRequest(ctx, req.ID, &domain.User{ID: customerID, Role: domain.UserRoleCustomer})
	assert.NoError(t, err)

	_, err = svc.GetRequest(ctx, req.ID, &domain.User{ID: otherCustomerID, Role: domain.UserRoleCustomer})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.GetRequest(ctx, req.ID, &domain.User{ID: adminID, Role: domain.UserRoleAdmin})
	assert.NoError(t, err)
}

func TestMaintenanceListRequests(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	customerID, productID := seedCatalog(store)
	techID := store.addUser(domain.User{Username: "tech", Role: domain.UserRoleMaintenance})
	svc := NewMaintenanceService(store)

	first, err := svc.CreateRequest(ctx, customerID, productID, "Wheel bearing noise", nil)
	require.NoError(t, err)
	_, err = svc.CreateRequest(ctx, customerID, productID, "Display flickers", nil)
	require.NoError(t, err)

	_, err = svc.AssignRequest(ctx, first.ID, techID, mustDate("2026-09-05"), 2000)
	require.NoError(t, err)

	pending, err := svc.ListRequests(ctx, domain.MaintenanceStatusPending, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	mine, err := svc.ListRequests(ctx, "", techID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = svc.ListRequests(ctx, "BROKEN", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestEarningsReportValidation(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewReportService(store)

	_, err := svc.EarningsReport(ctx, mustDate("2026-09-30"), mustDate("2026-09-01"))
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)

	report, err := svc.EarningsReport(ctx, mustDate("2026-09-01"), mustDate("2026-09-30"))
	require.NoError(t, err)
	assert.True(t, report.PeriodStart.Equal(mustDate("2026-09-01")))
}
