package domain

import "time"

type TransactionType string

const (
	TransactionTypeSale TransactionType = "SALE"
	TransactionTypeRent TransactionType = "RENT"
)

// CartItem is ephemeral: it lives until the user removes it or checkout
// consumes the whole cart into an order. (userID, productID) is unique.
type CartItem struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	ProductID       int64           `json:"product_id"`
	Quantity        int32           `json:"quantity"`
	TransactionType TransactionType `json:"transaction_type"`
	CreatedOn       time.Time       `json:"created_on"`
}

// RentalDetail carries the requested rental window for one cart item,
// keyed by cart item id in the checkout payload.
type RentalDetail struct {
	CartItemID int64  `json:"cart_item_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}
