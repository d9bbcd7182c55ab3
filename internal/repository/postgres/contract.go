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

type contractRepository struct {
	db DBTX
}

func NewContractRepository(db DBTX) repository.ContractRepository {
	return &contractRepository{db: db}
}

const contractColumns = `id, contract_number, user_id, product_id, order_item_id, start_date, end_date,
	          status, condition_on_return, actual_return_date, notes, agreed_to_terms_at,
	          document_url, created_on, updated_on`

func (r *contractRepository) Create(ctx context.Context, c *domain.RentalContract) error {
	now := time.Now()
	c.CreatedOn = now
	c.UpdatedOn = now
	query := `INSERT INTO rental_contracts
	          (contract_number, user_id, product_id, order_item_id, start_date, end_date, status,
	           notes, agreed_to_terms_at, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		c.ContractNumber, c.UserID, c.ProductID, c.OrderItemID, c.StartDate, c.EndDate, c.Status,
		c.Notes, c.AgreedToTermsAt, c.CreatedOn, c.UpdatedOn).Scan(&c.ID)
}

func (r *contractRepository) GetByID(ctx context.Context, id int64) (*domain.RentalContract, error) {
	c := &domain.RentalContract{}
	query := `SELECT ` + contractColumns + ` FROM rental_contracts WHERE id = $1`
	err := r.scanContract(r.db.QueryRowContext(ctx, query, id), c)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: contract %d", domain.ErrContractNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *contractRepository) scanContract(row rowScanner, c *domain.RentalContract) error {
	var condition sql.NullString
	err := row.Scan(&c.ID, &c.ContractNumber, &c.UserID, &c.ProductID, &c.OrderItemID,
		&c.StartDate, &c.EndDate, &c.Status, &condition, &c.ActualReturnDate, &c.Notes,
		&c.AgreedToTermsAt, &c.DocumentURL, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return err
	}
	if condition.Valid {
		v := domain.AssetCondition(condition.String)
		c.ConditionOnReturn = &v
	}
	return nil
}

func (r *contractRepository) Update(ctx context.Context, c *domain.RentalContract) error {
	c.UpdatedOn = time.Now()
	var condition *string
	if c.ConditionOnReturn != nil {
		s := string(*c.ConditionOnReturn)
		condition = &s
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE rental_contracts
		 SET end_date = $1, status = $2, condition_on_return = $3, actual_return_date = $4,
		     notes = $5, order_item_id = $6, updated_on = $7
		 WHERE id = $8`,
		c.EndDate, c.Status, condition, c.ActualReturnDate, c.Notes, c.OrderItemID, c.UpdatedOn, c.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: contract %d", domain.ErrContractNotFound, c.ID)
	}
	return nil
}

func (r *contractRepository) SetDocumentURL(ctx context.Context, id int64, url string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE rental_contracts SET document_url = $1, updated_on = $2 WHERE id = $3`,
		url, time.Now(), id)
	return err
}

func (r *contractRepository) ListByUser(ctx context.Context, userID int64) ([]domain.RentalContract, error) {
	return r.list(ctx,
		`SELECT `+contractColumns+` FROM rental_contracts WHERE user_id = $1 ORDER BY created_on DESC`, userID)
}

func (r *contractRepository) ListByOrder(ctx context.Context, orderID int64) ([]domain.RentalContract, error) {
	query := `SELECT ` + contractColumns + ` FROM rental_contracts
	          WHERE order_item_id IN (SELECT id FROM order_items WHERE order_id = $1)
	             OR id IN (SELECT extended_contract_id FROM order_items
	                       WHERE order_id = $1 AND extended_contract_id IS NOT NULL)
	          ORDER BY id`
	return r.list(ctx, query, orderID)
}

func (r *contractRepository) list(ctx context.Context, query string, args ...any) ([]domain.RentalContract, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []domain.RentalContract
	for rows.Next() {
		var c domain.RentalContract
		if err := r.scanContract(rows, &c); err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

// CountOverlapping uses the half-open interval test (start < windowEnd AND
// end > windowStart). Terminal contracts no longer occupy a unit.
func (r *contractRepository) CountOverlapping(ctx context.Context, productID int64, start, end time.Time, excludeContractID int64) (int32, error) {
	var count int32
	query := `SELECT COUNT(*) FROM rental_contracts
	          WHERE product_id = $1
	            AND id <> $2
	            AND status NOT IN ($3, $4)
	            AND start_date < $5
	            AND end_date > $6`
	err := r.db.QueryRowContext(ctx, query,
		productID, excludeContractID,
		domain.RentalStatusCompleted, domain.RentalStatusCancelled,
		end, start).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
