package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const defaultPeriodDays = 30

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Summary(ctx context.Context, householdID uuid.UUID, days int) (*Summary, error) {
	if days <= 0 {
		days = defaultPeriodDays
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	summary, err := s.repo.Summary(ctx, householdID, since)
	if err != nil {
		return nil, err
	}
	summary.PeriodDays = days
	summary.PeriodStart = since

	return summary, nil
}

func (s *Service) ByCategory(
	ctx context.Context,
	householdID uuid.UUID,
	days int,
) ([]CategorySpending, error) {
	if days <= 0 {
		days = defaultPeriodDays
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	return s.repo.ByCategory(ctx, householdID, since)
}
