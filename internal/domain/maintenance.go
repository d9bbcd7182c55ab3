package domain

import "time"

type MaintenanceStatus string

const (
	MaintenanceStatusPending    MaintenanceStatus = "PENDING"
	MaintenanceStatusInProgress MaintenanceStatus = "IN_PROGRESS"
	MaintenanceStatusCompleted  MaintenanceStatus = "COMPLETED"
)

// ValidMaintenanceStatus reports whether s is a recognized request status.
func ValidMaintenanceStatus(s MaintenanceStatus) bool {
	switch s {
	case MaintenanceStatusPending, MaintenanceStatusInProgress, MaintenanceStatusCompleted:
		return true
	}
	return false
}

// MaintenanceRequest is a customer service request against a product.
// It is assigned to a MAINTENANCE-role technician while PENDING and
// completed by the assigned technician or an admin.
type MaintenanceRequest struct {
	ID                   int64             `json:"id"`
	CustomerID           int64             `json:"customer_id"`
	ProductID            int64             `json:"product_id"`
	TechnicianID         *int64            `json:"technician_id,omitempty"`
	IssueDescription     string            `json:"issue_description"`
	PreferredServiceDate *time.Time        `json:"preferred_service_date,omitempty"`
	ServiceDate          *time.Time        `json:"service_date,omitempty"`
	EstimatedCostCents   *int64            `json:"estimated_cost_cents,omitempty"`
	FinalCostCents       *int64            `json:"final_cost_cents,omitempty"`
	TechnicianNotes      string            `json:"technician_notes"`
	Status               MaintenanceStatus `json:"status"`
	CreatedOn            time.Time         `json:"created_on"`
	UpdatedOn            time.Time         `json:"updated_on"`
}
