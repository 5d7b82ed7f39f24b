package service

import (
	"context"

	"github.com/sangkips/insights/internal/domain/entity"
	"github.com/sangkips/insights/internal/domain/repository"
	"github.com/sangkips/insights/pkg/apperror"
	"github.com/sangkips/insights/pkg/normalize"
	"go.uber.org/zap"
)

// InvestorMetricsService backs the legacy investor endpoint.
//
// SECURITY: this function performs no identity check. The route that exposes
// it is unauthenticated and answers any origin; see routes.registerLegacy.
type InvestorMetricsService struct {
	analytics repository.AnalyticsRepository
	log       *zap.Logger
}

// NewInvestorMetricsService creates a new investor metrics service
func NewInvestorMetricsService(analytics repository.AnalyticsRepository, log *zap.Logger) *InvestorMetricsService {
	return &InvestorMetricsService{analytics: analytics, log: log}
}

// Run loads the three investor datasets in order: kpis, trends, byCategory.
func (s *InvestorMetricsService) Run(ctx context.Context) (*entity.InvestorMetrics, error) {
	kpis, err := s.analytics.InvestorKPIs(ctx)
	if err != nil {
		return nil, s.fail("kpis", err)
	}
	trends, err := s.analytics.InvestorTrends(ctx)
	if err != nil {
		return nil, s.fail("trends", err)
	}
	byCategory, err := s.analytics.InvestorByCategory(ctx)
	if err != nil {
		return nil, s.fail("byCategory", err)
	}

	return &entity.InvestorMetrics{
		KPIs:       normalize.Row(kpis),
		Trends:     normalize.Rows(trends),
		ByCategory: normalize.Rows(byCategory),
	}, nil
}

func (s *InvestorMetricsService) fail(dataset string, err error) error {
	s.log.Error("investor metrics query failed", zap.String("dataset", dataset), zap.Error(err))
	return apperror.NewInternalError("Failed to load investor metrics")
}
