package jobs

import (
	"context"
	"time"

	"github.com/saleem-shalabi/Medi-Care-App/internal/logger"
)

// MarkOverdueContracts marks rental contracts as OVERDUE if they are past
// their end_date and still ACTIVE. The customer keeps the unit, so no
// stock moves; the contract stays returnable through the normal flow.
func (jr *JobRunner) MarkOverdueContracts() {
	jr.runWithRecovery("MarkOverdueContracts", func() {
		ctx := context.Background()

		query := `
			UPDATE rental_contracts
			SET status = 'OVERDUE',
			    updated_on = NOW()
			WHERE status = 'ACTIVE'
			  AND end_date < $1
			RETURNING id, contract_number, user_id, product_id, end_date
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to mark overdue contracts", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var overdue struct {
				ID             int64
				ContractNumber string
				UserID         int64
				ProductID      int64
				EndDate        time.Time
			}
			if err := rows.Scan(&overdue.ID, &overdue.ContractNumber, &overdue.UserID, &overdue.ProductID, &overdue.EndDate); err != nil {
				logger.Error("Failed to scan overdue contract", "error", err)
				continue
			}
			count++
			logger.Debug("Marked contract as overdue",
				"contract_id", overdue.ID,
				"contract_number", overdue.ContractNumber,
				"user_id", overdue.UserID,
				"product_id", overdue.ProductID,
				"end_date", overdue.EndDate.Format("2006-01-02"))
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue contracts", "error", err)
			return
		}

		logger.Info("Marked contracts as overdue", "count", count)
	})
}
