package domain

import "time"

// EarningsReport is a read-only rollup over paid orders and completed
// maintenance work inside a date range.
type EarningsReport struct {
	PeriodStart               time.Time `json:"period_start"`
	PeriodEnd                 time.Time `json:"period_end"`
	SalesRevenueCents         int64     `json:"sales_revenue_cents"`
	RentalRevenueCents        int64     `json:"rental_revenue_cents"`
	MaintenanceRevenueCents   int64     `json:"maintenance_revenue_cents"`
	CostOfGoodsSoldCents      int64     `json:"cost_of_goods_sold_cents"`
	GrossProfitCents          int64     `json:"gross_profit_cents"`
	PaidOrderCount            int64     `json:"paid_order_count"`
	CompletedMaintenanceCount int64     `json:"completed_maintenance_count"`
}
