package view

import (
	"context"

	"github.com/sangkips/insights/internal/domain/entity"
	"github.com/sangkips/insights/internal/domain/enum"
	"go.uber.org/zap"
)

// Marketing is the marketing dashboard. The backend returns the five
// datasets together, so a failed call fails the whole view.
type Marketing struct {
	*board
	backend Backend
}

func NewMarketing(backend Backend, log *zap.Logger) *Marketing {
	return &Marketing{
		board:   newBoard(enum.ViewMarketing, log, enum.MarketingDatasets()...),
		backend: backend,
	}
}

func (v *Marketing) Mount() {
	v.mount()
	v.fetch(enum.MarketingDatasets(), true, func(ctx context.Context) (map[enum.DatasetKey][]entity.Row, error) {
		out, err := v.backend.MarketingMetrics(ctx)
		if err != nil {
			return nil, err
		}
		return map[enum.DatasetKey][]entity.Row{
			enum.DatasetEngagementTrends:   SortChronologically(out.EngagementTrends, "period", v.log),
			enum.DatasetTopCategories:      out.TopCategories,
			enum.DatasetRatingDistribution: out.RatingDistribution,
			enum.DatasetUserSegments:       out.UserSegments,
			enum.DatasetTopCities:          out.TopCities,
		}, nil
	})
}
