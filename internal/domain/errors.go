package domain

import "errors"

// Sentinel errors for the order and contract engines. Callers match with
// errors.Is; call sites wrap them with fmt.Errorf("%w: ...") to carry the
// offending product, status, or id.
var (
	// Not found
	ErrProductNotFound  = errors.New("product not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrContractNotFound = errors.New("rental contract not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrRequestNotFound  = errors.New("maintenance request not found")
	ErrUserNotFound     = errors.New("user not found")

	// Validation
	ErrEmptyCart          = errors.New("cart is empty")
	ErrMissingRentalDates = errors.New("rental dates are required")
	ErrInvalidDateRange   = errors.New("rental start date must be before end date")
	ErrInvalidEndDate     = errors.New("new end date must be after the current end date")
	ErrInvalidStatus      = errors.New("unrecognized status")
	ErrInvalidCondition   = errors.New("unrecognized return condition")
	ErrAmountMismatch     = errors.New("amount paid does not match the order total")

	// Precondition failed
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrOrderNotPending   = errors.New("order is not pending")
	ErrContractNotActive = errors.New("contract is not active")
	ErrNotReturnable     = errors.New("contract cannot be returned in its current state")
	ErrTerminalState     = errors.New("contract is in a terminal state")

	// Authorization
	ErrForbidden = errors.New("forbidden")

	// Resource conflicts
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotAvailable      = errors.New("product is not available for the requested period")

	// ErrDataInconsistency signals a corrupted invariant (for example a
	// contract with no linked order item). It indicates a prior bug, not
	// user error, and must be flagged for operator attention.
	ErrDataInconsistency = errors.New("data inconsistency")
)
