package repository

import (
	"context"
	"time"

	"github.com/saleem-shalabi/Medi-Care-App/internal/domain"
)

type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	// AdjustStock applies a delta to one stock pool. The update is guarded:
	// it refuses to drive the counter negative and returns
	// domain.ErrInsufficientStock instead. Callers run it inside the same
	// transaction as the dependent writes.
	AdjustStock(ctx context.Context, productID int64, pool domain.StockPool, delta int32) error
}

type CartRepository interface {
	Upsert(ctx context.Context, item *domain.CartItem) error
	UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int32) error
	Delete(ctx context.Context, userID, itemID int64) error
	ListByUser(ctx context.Context, userID int64) ([]domain.CartItem, error)
	DeleteByUser(ctx context.Context, userID int64) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	CreateItem(ctx context.Context, item *domain.OrderItem) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	GetByIDWithItems(ctx context.Context, id int64) (*domain.Order, error)
	GetItem(ctx context.Context, itemID int64) (*domain.OrderItem, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
}

type ContractRepository interface {
	Create(ctx context.Context, contract *domain.RentalContract) error
	GetByID(ctx context.Context, id int64) (*domain.RentalContract, error)
	Update(ctx context.Context, contract *domain.RentalContract) error
	SetDocumentURL(ctx context.Context, id int64, url string) error
	ListByUser(ctx context.Context, userID int64) ([]domain.RentalContract, error)
	// ListByOrder returns the contracts linked to an order through its
	// order items, whether the item created or extended them.
	ListByOrder(ctx context.Context, orderID int64) ([]domain.RentalContract, error)
	// CountOverlapping counts contracts on a product whose [start, end)
	// interval overlaps the given half-open window, excluding one contract
	// id and any terminal contracts.
	CountOverlapping(ctx context.Context, productID int64, start, end time.Time, excludeContractID int64) (int32, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	ListByOrder(ctx context.Context, orderID int64) ([]domain.Payment, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type MaintenanceRepository interface {
	Create(ctx context.Context, req *domain.MaintenanceRequest) error
	GetByID(ctx context.Context, id int64) (*domain.MaintenanceRequest, error)
	Update(ctx context.Context, req *domain.MaintenanceRequest) error
	List(ctx context.Context, status domain.MaintenanceStatus, technicianID int64) ([]domain.MaintenanceRequest, error)
}

type ReportRepository interface {
	EarningsReport(ctx context.Context, start, end time.Time) (*domain.EarningsReport, error)
}

// Repositories bundles every repository bound to one database handle,
// either the base pool or a single open transaction.
type Repositories struct {
	Products    ProductRepository
	Carts       CartRepository
	Orders      OrderRepository
	Contracts   ContractRepository
	Payments    PaymentRepository
	Users       UserRepository
	Maintenance MaintenanceRepository
	Reports     ReportRepository
}

// Store is the persistence entry point for the service layer. Repos gives
// plain, auto-committed access for reads; InTx runs fn against
// repositories bound to a single transaction and commits only if fn
// returns nil. Every invariant-bearing sequence in the engine goes
// through InTx.
type Store interface {
	Repos() Repositories
	InTx(ctx context.Context, fn func(r Repositories) error) error
}
