package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/saleem-shalabi/Medi-Care-App/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Repositories are written against it so the same code runs inside and
// outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements repository.Store on PostgreSQL.
type Store struct {
	db    *sql.DB
	repos repository.Repositories
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:    db,
		repos: bindRepos(db),
	}
}

func bindRepos(db DBTX) repository.Repositories {
	return repository.Repositories{
		Products:    NewProductRepository(db),
		Carts:       NewCartRepository(db),
		Orders:      NewOrderRepository(db),
		Contracts:   NewContractRepository(db),
		Payments:    NewPaymentRepository(db),
		Users:       NewUserRepository(db),
		Maintenance: NewMaintenanceRepository(db),
		Reports:     NewReportRepository(db),
	}
}

// Repos returns repositories bound to the base pool.
func (s *Store) Repos() repository.Repositories {
	return s.repos
}

// InTx runs fn against repositories bound to a single transaction. If fn
// returns an error the transaction is rolled back and the error returned
// unchanged, so sentinel checks with errors.Is still work.
func (s *Store) InTx(ctx context.Context, fn func(r repository.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(bindRepos(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
