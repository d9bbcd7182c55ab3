package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// orderTransitions is the full transition table for orders. Anything not
// listed here is rejected; DELIVERED and CANCELLED are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:      {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// ValidOrderStatus reports whether s is a recognized order status.
func ValidOrderStatus(s OrderStatus) bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionTo reports whether the transition s -> next is allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is one checkout transaction. TotalAmountCents is computed at
// creation and immutable afterwards. Orders are never deleted; they are
// the financial record.
type Order struct {
	ID               int64       `json:"id"`
	UserID           int64       `json:"user_id"`
	TotalAmountCents int64       `json:"total_amount_cents"`
	ShippingAddress  *string     `json:"shipping_address,omitempty"` // nil for extension orders
	Status           OrderStatus `json:"status"`
	Items            []OrderItem `json:"items"`
	CreatedOn        time.Time   `json:"created_on"`
	UpdatedOn        time.Time   `json:"updated_on"`
}

// OrderItem belongs to exactly one order and one product.
// PriceCents is the per-unit charge snapshotted at checkout: the sell
// price for sales, the full rental charge (daily rate x days) for rentals.
// It is never recomputed from live product prices.
type OrderItem struct {
	ID              int64           `json:"id"`
	OrderID         int64           `json:"order_id"`
	ProductID       int64           `json:"product_id"`
	Quantity        int32           `json:"quantity"`
	TransactionType TransactionType `json:"transaction_type"`
	PriceCents      int64           `json:"price_cents"`
	CostCents       int64           `json:"cost_cents"`
	RentalStartDate *time.Time      `json:"rental_start_date,omitempty"`
	RentalEndDate   *time.Time      `json:"rental_end_date,omitempty"`

	// Extension items fund extending an existing contract instead of
	// creating a new rental. ExtendedContractID alone marks an item as
	// an extension item.
	ExtendedContractID *int64     `json:"extended_contract_id,omitempty"`
	NewEndDate         *time.Time `json:"new_end_date,omitempty"`
}

// IsExtension reports whether the item extends an existing rental
// contract rather than opening a new one.
func (it *OrderItem) IsExtension() bool {
	return it.ExtendedContractID != nil
}
