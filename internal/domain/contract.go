package domain

import "time"

type RentalStatus string

const (
	RentalStatusUpcoming  RentalStatus = "UPCOMING"
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusOverdue   RentalStatus = "OVERDUE"
	RentalStatusCompleted RentalStatus = "COMPLETED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
)

// ValidRentalStatus reports whether s is a recognized contract status.
func ValidRentalStatus(s RentalStatus) bool {
	switch s {
	case RentalStatusUpcoming, RentalStatusActive, RentalStatusOverdue, RentalStatusCompleted, RentalStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further status change is permitted.
func (s RentalStatus) IsTerminal() bool {
	return s == RentalStatusCompleted || s == RentalStatusCancelled
}

// NotesDelimiter separates appended note entries on a contract. Notes are
// append-only; prior entries are never overwritten.
const NotesDelimiter = "\n---\n"

// RentalContract is the durable record of one physical rental. It is
// created when a rental order item is confirmed paid and outlives the
// order item that created it: an extension creates a new order item that
// points back at this contract. Contracts are never deleted.
type RentalContract struct {
	ID                int64           `json:"id"`
	ContractNumber    string          `json:"contract_number"`
	UserID            int64           `json:"user_id"`
	ProductID         int64           `json:"product_id"`
	OrderItemID       *int64          `json:"order_item_id,omitempty"` // nil signals a data bug
	StartDate         time.Time       `json:"start_date"`
	EndDate           time.Time       `json:"end_date"`
	Status            RentalStatus    `json:"status"`
	ConditionOnReturn *AssetCondition `json:"condition_on_return,omitempty"`
	ActualReturnDate  *time.Time      `json:"actual_return_date,omitempty"`
	Notes             string          `json:"notes"`
	AgreedToTermsAt   time.Time       `json:"agreed_to_terms_at"`
	DocumentURL       *string         `json:"document_url,omitempty"`
	CreatedOn         time.Time       `json:"created_on"`
	UpdatedOn         time.Time       `json:"updated_on"`
}

// AppendNote adds a note entry, preserving everything already there.
func (c *RentalContract) AppendNote(note string) {
	if note == "" {
		return
	}
	if c.Notes == "" {
		c.Notes = note
		return
	}
	c.Notes = c.Notes + NotesDelimiter + note
}
