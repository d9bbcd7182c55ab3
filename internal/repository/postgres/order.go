package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/saleem-shalabi/Medi-Care-App/internal/domain"
	"github.com/saleem-shalabi/Medi-Care-App/internal/repository"
)

type orderRepository struct {
	db DBTX
}

func NewOrderRepository(db DBTX) repository.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, user_id, total_amount_cents, shipping_address, status, created_on, updated_on`

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	now := time.Now()
	o.CreatedOn = now
	o.UpdatedOn = now
	query := `INSERT INTO orders (user_id, total_amount_cents, shipping_address, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		o.UserID, o.TotalAmountCents, o.ShippingAddress, o.Status, o.CreatedOn, o.UpdatedOn).Scan(&o.ID)
}

func (r *orderRepository) CreateItem(ctx context.Context, it *domain.OrderItem) error {
	query := `INSERT INTO order_items
	          (order_id, product_id, quantity, transaction_type, price_cents, cost_cents,
	           rental_start_date, rental_end_date, extended_contract_id, new_end_date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		it.OrderID, it.ProductID, it.Quantity, it.TransactionType, it.PriceCents, it.CostCents,
		it.RentalStartDate, it.RentalEndDate, it.ExtendedContractID, it.NewEndDate).Scan(&it.ID)
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	o := &domain.Order{}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.UserID, &o.TotalAmountCents, &o.ShippingAddress, &o.Status, &o.CreatedOn, &o.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: order %d", domain.ErrOrderNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) GetByIDWithItems(ctx context.Context, id int64) (*domain.Order, error) {
	o, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := r.itemsByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

const orderItemColumns = `id, order_id, product_id, quantity, transaction_type, price_cents, cost_cents,
	           rental_start_date, rental_end_date, extended_contract_id, new_end_date`

func (r *orderRepository) GetItem(ctx context.Context, itemID int64) (*domain.OrderItem, error) {
	it := &domain.OrderItem{}
	query := `SELECT ` + orderItemColumns + ` FROM order_items WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, itemID).Scan(
		&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.TransactionType, &it.PriceCents, &it.CostCents,
		&it.RentalStartDate, &it.RentalEndDate, &it.ExtendedContractID, &it.NewEndDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: order item %d", domain.ErrDataInconsistency, itemID)
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *orderRepository) itemsByOrder(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderItemColumns+` FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.TransactionType,
			&it.PriceCents, &it.CostCents, &it.RentalStartDate, &it.RentalEndDate,
			&it.ExtendedContractID, &it.NewEndDate); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_on = $2 WHERE id = $3`, status, time.Now(), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: order %d", domain.ErrOrderNotFound, id)
	}
	return nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_on DESC`, userID)
}

func (r *orderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_on DESC`)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalAmountCents, &o.ShippingAddress, &o.Status, &o.CreatedOn, &o.UpdatedOn); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
