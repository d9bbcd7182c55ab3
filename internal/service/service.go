package service

import (
	"context"
	"time"

	"github.com/saleem-shalabi/Medi-Care-App/internal/domain"
)

// CreateOrderInput is the checkout payload for turning a cart into an
// order. RentalDetails must contain an entry for every rental cart item.
type CreateOrderInput struct {
	ShippingAddress string                `json:"shipping_address"`
	RentalDetails   []domain.RentalDetail `json:"rental_details"`
}

// ReturnInput captures the physical hand-back of a rented product.
type ReturnInput struct {
	ConditionOnReturn domain.AssetCondition `json:"condition_on_return"`
	Notes             string                `json:"notes"`
}

type CartService interface {
	AddToCart(ctx context.Context, userID, productID int64, quantity int32, txType domain.TransactionType) (*domain.CartItem, error)
	UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int32) error
	RemoveFromCart(ctx context.Context, userID, itemID int64) error
	ListCart(ctx context.Context, userID int64) ([]domain.CartItem, error)
}

type OrderService interface {
	CreateOrderFromCart(ctx context.Context, userID int64, input CreateOrderInput) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, newStatus domain.OrderStatus) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	ListUserOrders(ctx context.Context, userID int64) ([]domain.Order, error)
	ListAllOrders(ctx context.Context) ([]domain.Order, error)
}

type PaymentService interface {
	CreateCheckoutIntent(ctx context.Context, orderID int64) (string, error)
	ConfirmOrderPayment(ctx context.Context, orderID int64, details domain.PaymentDetails) (*domain.Order, error)
	HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error
}

type ContractService interface {
	CreateExtensionOrder(ctx context.Context, userID, contractID int64, newEndDate time.Time) (*domain.Order, error)
	UpdateContractStatus(ctx context.Context, contractID int64, newStatus domain.RentalStatus) (*domain.RentalContract, error)
	ProcessContractReturn(ctx context.Context, contractID int64, input ReturnInput) (*domain.RentalContract, error)
	GetContract(ctx context.Context, userID, contractID int64) (*domain.RentalContract, error)
	ListUserContracts(ctx context.Context, userID int64) ([]domain.RentalContract, error)
}

type MaintenanceService interface {
	CreateRequest(ctx context.Context, customerID, productID int64, issueDescription string, preferredServiceDate *time.Time) (*domain.MaintenanceRequest, error)
	AssignRequest(ctx context.Context, requestID, technicianID int64, serviceDate time.Time, estimatedCostCents int64) (*domain.MaintenanceRequest, error)
	CompleteRequest(ctx context.Context, requestID int64, requester *domain.User, finalCostCents int64, completionNote string) (*domain.MaintenanceRequest, error)
	GetRequest(ctx context.Context, requestID int64, requester *domain.User) (*domain.MaintenanceRequest, error)
	ListRequests(ctx context.Context, status domain.MaintenanceStatus, technicianID int64) ([]domain.MaintenanceRequest, error)
}

type ReportService interface {
	EarningsReport(ctx context.Context, start, end time.Time) (*domain.EarningsReport, error)
}

// EmailService is the outbound notification collaborator. Failures never
// propagate as fatal errors to callers of the engine; they are logged for
// reconciliation.
type EmailService interface {
	SendOrderStatusUpdate(ctx context.Context, to, name string, order *domain.Order) error
	SendOrderConfirmation(ctx context.Context, to, name string, order *domain.Order, documentURLs []string) error
	SendContractStatusUpdate(ctx context.Context, to, name string, contract *domain.RentalContract) error
}

// CheckoutLineItem is one display line on the provider's hosted checkout
// page, priced in cents per unit.
type CheckoutLineItem struct {
	Name            string
	UnitAmountCents int64
	Quantity        int64
}

// PaymentProvider is the opaque payment processor: create a hosted
// checkout intent, verify a confirmation webhook. Neither call runs
// inside a database transaction.
type PaymentProvider interface {
	CreateCheckoutIntent(ctx context.Context, order *domain.Order, customerEmail string, lines []CheckoutLineItem) (string, error)
	// VerifyWebhook returns (nil, nil) for event types the engine does
	// not care about.
	VerifyWebhook(payload []byte, signatureHeader string) (*domain.WebhookEvent, error)
}

// DocumentService renders the contract agreement document and returns a
// stable URL for it.
type DocumentService interface {
	GenerateContractDocument(ctx context.Context, user *domain.User, product *domain.Product, contract *domain.RentalContract) (string, error)
}

// EventPublisher emits domain events after a transaction commits.
// Publishing is fire-and-forget; errors are logged by callers.
type EventPublisher interface {
	PublishOrderPaid(ctx context.Context, order *domain.Order) error
	PublishContractCreated(ctx context.Context, contract *domain.RentalContract) error
	PublishContractReturned(ctx context.Context, contract *domain.RentalContract) error
}
