package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saleem-shalabi/Medi-Care-App/internal/domain"
	"github.com/saleem-shalabi/Medi-Care-App/internal/repository"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db), mock
}

func TestProductRepository_AdjustStock(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectExec(`UPDATE products SET rent_stock = rent_stock \+ \$1 WHERE id = \$2 AND rent_stock \+ \$1 >= 0`).
			WithArgs(int32(-2), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.Repos().Products.AdjustStock(ctx, 7, domain.StockPoolRent, -2)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectExec(`UPDATE products SET sale_stock = sale_stock \+ \$1`).
			WithArgs(int32(-5), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err := store.Repos().Products.AdjustStock(ctx, 7, domain.StockPoolSale, -5)
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ProductMissing", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectExec(`UPDATE products SET sale_stock = sale_stock \+ \$1`).
			WithArgs(int32(1), int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		err := store.Repos().Products.AdjustStock(ctx, 99, domain.StockPoolSale, 1)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		store, mock := newMockStore(t)

		order := &domain.Order{UserID: 3, TotalAmountCents: 12345, Status: domain.OrderStatusPending}
		mock.ExpectQuery(`INSERT INTO orders`).
			WithArgs(order.UserID, order.TotalAmountCents, order.ShippingAddress, order.Status, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

		err := store.Repos().Orders.Create(ctx, order)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), order.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectQuery(`SELECT id, user_id, total_amount_cents`).
			WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := store.Repos().Orders.GetByID(ctx, 404)
		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UpdateStatusMissingOrder", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectExec(`UPDATE orders SET status`).
			WithArgs(domain.OrderStatusPaid, sqlmock.AnyArg(), int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.Repos().Orders.UpdateStatus(ctx, 404, domain.OrderStatusPaid)
		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCartRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	store, mock := newMockStore(t)

	item := &domain.CartItem{UserID: 1, ProductID: 2, Quantity: 3, TransactionType: domain.TransactionTypeSale}
	mock.ExpectQuery(`INSERT INTO cart_items`).
		WithArgs(item.UserID, item.ProductID, item.Quantity, item.TransactionType, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

	err := store.Repos().Carts.Upsert(ctx, item)
	assert.NoError(t, err)
	assert.Equal(t, int64(9), item.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContractRepository_CountOverlapping(t *testing.T) {
	ctx := context.Background()
	store, mock := newMockStore(t)

	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM rental_contracts`).
		WithArgs(int64(5), int64(11), domain.RentalStatusCompleted, domain.RentalStatusCancelled, end, start).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := store.Repos().Contracts.CountOverlapping(ctx, 5, start, end, 11)
	assert.NoError(t, err)
	assert.Equal(t, int32(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContractRepository_UpdateMissing(t *testing.T) {
	ctx := context.Background()
	store, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE rental_contracts`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Repos().Contracts.Update(ctx, &domain.RentalContract{ID: 77})
	assert.ErrorIs(t, err, domain.ErrContractNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_InTx(t *testing.T) {
	ctx := context.Background()

	t.Run("CommitsOnSuccess", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM cart_items WHERE user_id`).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err := store.InTx(ctx, func(r repository.Repositories) error {
			return r.Carts.DeleteByUser(ctx, 1)
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollsBackAndPreservesSentinel", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE products SET sale_stock`).
			WithArgs(int32(-1), int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		err := store.InTx(ctx, func(r repository.Repositories) error {
			return r.Products.AdjustStock(ctx, 2, domain.StockPoolSale, -1)
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
