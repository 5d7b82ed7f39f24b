package repository

import (
	"context"

	"github.com/sangkips/insights/internal/domain/entity"
	"github.com/sangkips/insights/internal/domain/enum"
)

// AnalyticsRepository runs the fixed warehouse aggregations. Rows are
// returned with driver-native values; callers normalize them.
type AnalyticsRepository interface {
	// OperationalMetrics runs the owner/manager template bound to metric
	OperationalMetrics(ctx context.Context, metric enum.MetricType) ([]entity.Row, error)

	// MarketingDataset runs one of the five marketing aggregations
	MarketingDataset(ctx context.Context, dataset enum.DatasetKey) ([]entity.Row, error)

	// InvestorKPIs returns the single investor headline row
	InvestorKPIs(ctx context.Context) (entity.Row, error)

	// InvestorTrends returns monthly review/check-in totals in chronological order
	InvestorTrends(ctx context.Context) ([]entity.Row, error)

	// InvestorByCategory returns business counts per category, largest first
	InvestorByCategory(ctx context.Context) ([]entity.Row, error)
}
