package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/saleem-shalabi/Medi-Care-App/internal/domain"
	"github.com/saleem-shalabi/Medi-Care-App/internal/repository"
)

type cartRepository struct {
	db DBTX
}

func NewCartRepository(db DBTX) repository.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Upsert(ctx context.Context, item *domain.CartItem) error {
	query := `INSERT INTO cart_items (user_id, product_id, quantity, transaction_type, created_on)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (user_id, product_id)
	          DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	          RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		item.UserID, item.ProductID, item.Quantity, item.TransactionType, time.Now()).Scan(&item.ID)
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cart_items SET quantity = $1 WHERE id = $2 AND user_id = $3`,
		quantity, itemID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: item %d", domain.ErrCartItemNotFound, itemID)
	}
	return nil
}

func (r *cartRepository) Delete(ctx context.Context, userID, itemID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: item %d", domain.ErrCartItemNotFound, itemID)
	}
	return nil
}

func (r *cartRepository) ListByUser(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, product_id, quantity, transaction_type, created_on
		 FROM cart_items WHERE user_id = $1 ORDER BY created_on`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var it domain.CartItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.ProductID, &it.Quantity, &it.TransactionType, &it.CreatedOn); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *cartRepository) DeleteByUser(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}
