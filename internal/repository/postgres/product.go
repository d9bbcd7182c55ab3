package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/saleem-shalabi/Medi-Care-App/internal/domain"
	"github.com/saleem-shalabi/Medi-Care-App/internal/repository"
)

type productRepository struct {
	db DBTX
}

func NewProductRepository(db DBTX) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p := &domain.Product{}
	query := `SELECT id, name_en, name_ar, sell_price_cents, rent_price_cents, cost_cents, sale_stock, rent_stock
	          FROM products WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.NameEn, &p.NameAr, &p.SellPriceCents, &p.RentPriceCents, &p.CostCents, &p.SaleStock, &p.RentStock)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// AdjustStock mutates one stock pool in place. The WHERE guard keeps the
// counter non-negative and the row lock taken by UPDATE serializes
// concurrent adjustments on the same product, so a decrement is always
// checked against the latest committed value.
func (r *productRepository) AdjustStock(ctx context.Context, productID int64, pool domain.StockPool, delta int32) error {
	column := "sale_stock"
	if pool == domain.StockPoolRent {
		column = "rent_stock"
	}

	query := fmt.Sprintf(
		`UPDATE products SET %s = %s + $1 WHERE id = $2 AND %s + $1 >= 0`,
		column, column, column)

	res, err := r.db.ExecContext(ctx, query, delta, productID)
	if err != nil {
		return fmt.Errorf("adjust %s stock for product %d: %w", pool, productID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 1 {
		return nil
	}

	// The guard rejected the update: either the product is missing or the
	// delta would drive the counter negative.
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: product %d", domain.ErrProductNotFound, productID)
	}
	return fmt.Errorf("%w: product %d, %s pool", domain.ErrInsufficientStock, productID, pool)
}
