package postgres

import (
	"context"
	"time"

	"github.com/saleem-shalabi/Medi-Care-App/internal/domain"
	"github.com/saleem-shalabi/Medi-Care-App/internal/repository"
)

type reportRepository struct {
	db DBTX
}

func NewReportRepository(db DBTX) repository.ReportRepository {
	return &reportRepository{db: db}
}

// EarningsReport aggregates paid-order revenue and completed maintenance
// income over [start, end]. Revenue comes from the price snapshots on
// order items, never from live product prices.
func (r *reportRepository) EarningsReport(ctx context.Context, start, end time.Time) (*domain.EarningsReport, error) {
	report := &domain.EarningsReport{PeriodStart: start, PeriodEnd: end}

	query := `SELECT
	            COALESCE(SUM(oi.price_cents * oi.quantity) FILTER (WHERE oi.transaction_type = 'SALE'), 0),
	            COALESCE(SUM(oi.price_cents * oi.quantity) FILTER (WHERE oi.transaction_type = 'RENT'), 0),
	            COALESCE(SUM(oi.cost_cents * oi.quantity) FILTER (WHERE oi.transaction_type = 'SALE'), 0)
	          FROM order_items oi
	          JOIN orders o ON o.id = oi.order_id
	          WHERE o.status = 'PAID' AND o.updated_on BETWEEN $1 AND $2`
	err := r.db.QueryRowContext(ctx, query, start, end).Scan(
		&report.SalesRevenueCents, &report.RentalRevenueCents, &report.CostOfGoodsSoldCents)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(final_cost_cents), 0), COUNT(*)
		 FROM maintenance_requests
		 WHERE status = 'COMPLETED' AND updated_on BETWEEN $1 AND $2`,
		start, end).Scan(&report.MaintenanceRevenueCents, &report.CompletedMaintenanceCount)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE status = 'PAID' AND updated_on BETWEEN $1 AND $2`,
		start, end).Scan(&report.PaidOrderCount)
	if err != nil {
		return nil, err
	}

	report.GrossProfitCents = report.SalesRevenueCents + report.RentalRevenueCents +
		report.MaintenanceRevenueCents - report.CostOfGoodsSoldCents
	return report, nil
}
