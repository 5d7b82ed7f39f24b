package service

import (
	"context"

	"github.com/sangkips/insights/internal/domain/entity"
	"github.com/sangkips/insights/internal/domain/enum"
	"github.com/sangkips/insights/internal/domain/repository"
	"github.com/sangkips/insights/pkg/apperror"
	"github.com/sangkips/insights/pkg/normalize"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MarketingMetricsService serves the marketing dashboard.
type MarketingMetricsService struct {
	analytics repository.AnalyticsRepository
	log       *zap.Logger
}

// NewMarketingMetricsService creates a new marketing metrics service
func NewMarketingMetricsService(analytics repository.AnalyticsRepository, log *zap.Logger) *MarketingMetricsService {
	return &MarketingMetricsService{analytics: analytics, log: log}
}

// Run loads all five marketing datasets concurrently. Any single failure
// fails the whole call and no partial result is returned.
func (s *MarketingMetricsService) Run(ctx context.Context, ident *entity.Identity) (*entity.MarketingMetrics, error) {
	if !ident.IsAuthenticated() {
		return nil, apperror.ErrUnauthenticated
	}
	if !enum.CanReadMarketingData(ident.Email) {
		s.log.Warn("marketing metrics denied", zap.String("caller", ident.Email))
		return nil, apperror.ErrPermissionDenied
	}

	keys := enum.MarketingDatasets()
	results := make([][]entity.Row, len(keys))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, key := range keys {
		i, key := i, key
		eg.Go(func() error {
			rows, err := s.analytics.MarketingDataset(egCtx, key)
			if err != nil {
				s.log.Error("marketing dataset query failed",
					zap.Stringer("dataset", key),
					zap.Error(err),
				)
				return err
			}
			results[i] = normalize.Rows(rows)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, apperror.NewInternalError("Failed to load marketing metrics")
	}

	return &entity.MarketingMetrics{
		EngagementTrends:   results[0],
		TopCategories:      results[1],
		RatingDistribution: results[2],
		UserSegments:       results[3],
		TopCities:          results[4],
	}, nil
}
