package service

import (
	"context"
	"strings"

	"github.com/sangkips/insights/internal/domain/entity"
	"github.com/sangkips/insights/internal/domain/enum"
	"github.com/sangkips/insights/internal/domain/repository"
	"github.com/sangkips/insights/pkg/apperror"
	"github.com/sangkips/insights/pkg/normalize"
	"go.uber.org/zap"
)

// OperationalMetricsService serves the owner/manager dashboard.
type OperationalMetricsService struct {
	analytics repository.AnalyticsRepository
	log       *zap.Logger
}

// NewOperationalMetricsService creates a new operational metrics service
func NewOperationalMetricsService(analytics repository.AnalyticsRepository, log *zap.Logger) *OperationalMetricsService {
	return &OperationalMetricsService{analytics: analytics, log: log}
}

// Run executes the query bound to rawType. The caller must be signed in and
// rawType must name a known metric; neither failure touches the warehouse.
func (s *OperationalMetricsService) Run(ctx context.Context, ident *entity.Identity, rawType string) ([]entity.Row, error) {
	if !ident.IsAuthenticated() {
		return nil, apperror.ErrUnauthenticated
	}

	metric, err := enum.ParseMetricType(strings.TrimSpace(rawType))
	if err != nil {
		return nil, apperror.NewInvalidArgumentError("Unknown metric type: " + rawType)
	}

	rows, err := s.analytics.OperationalMetrics(ctx, metric)
	if err != nil {
		s.log.Error("operational metrics query failed",
			zap.Stringer("metric", metric),
			zap.String("caller", ident.Email),
			zap.Error(err),
		)
		return nil, apperror.NewInternalError("Failed to load " + metric.String() + " metrics")
	}
	return normalize.Rows(rows), nil
}
