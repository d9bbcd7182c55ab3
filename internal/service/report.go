package service

import (
	"context"
	"fmt"
	"time"

	"github.com/saleem-shalabi/Medi-Care-App/internal/domain"
	"github.com/saleem-shalabi/Medi-Care-App/internal/repository"
)

type reportService struct {
	store repository.Store
}

func NewReportService(store repository.Store) ReportService {
	return &reportService{store: store}
}

// EarningsReport aggregates revenue and cost over [start, end).
func (s *reportService) EarningsReport(ctx context.Context, start, end time.Time) (*domain.EarningsReport, error) {
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: %s .. %s", domain.ErrInvalidDateRange,
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return s.store.Repos().Reports.EarningsReport(ctx, start, end)
}
