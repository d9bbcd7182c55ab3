package domain

import "time"

type PaymentStatus string

const PaymentStatusSuccess PaymentStatus = "SUCCESS"

// Payment is an append-only audit record of one successful payment event.
// Rows are never mutated after creation.
type Payment struct {
	ID            int64         `json:"id"`
	OrderID       int64         `json:"order_id"`
	AmountCents   int64         `json:"amount_cents"`
	PaymentMethod string        `json:"payment_method"`
	TransactionID string        `json:"transaction_id"`
	Status        PaymentStatus `json:"status"`
	CreatedOn     time.Time     `json:"created_on"`
}

// PaymentDetails is the confirmation payload delivered by the payment
// provider for one order.
type PaymentDetails struct {
	PaymentMethod   string `json:"payment_method"`
	AmountPaidCents int64  `json:"amount_paid_cents"`
	TransactionID   string `json:"transaction_id"`
}

// WebhookEvent is the parsed, signature-verified result of a payment
// provider callback.
type WebhookEvent struct {
	OrderID         int64
	AmountPaidCents int64
	PaymentMethod   string
	TransactionID   string
}
