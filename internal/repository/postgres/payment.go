package postgres

import (
	"context"
	"time"

	"github.com/saleem-shalabi/Medi-Care-App/internal/domain"
	"github.com/saleem-shalabi/Medi-Care-App/internal/repository"
)

type paymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	p.CreatedOn = time.Now()
	query := `INSERT INTO payments (order_id, amount_cents, payment_method, transaction_id, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		p.OrderID, p.AmountCents, p.PaymentMethod, p.TransactionID, p.Status, p.CreatedOn).Scan(&p.ID)
}

func (r *paymentRepository) ListByOrder(ctx context.Context, orderID int64) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, amount_cents, payment_method, transaction_id, status, created_on
		 FROM payments WHERE order_id = $1 ORDER BY created_on`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.AmountCents, &p.PaymentMethod, &p.TransactionID, &p.Status, &p.CreatedOn); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
