package view

import (
	"context"

	"github.com/sangkips/insights/internal/domain/entity"
	"github.com/sangkips/insights/internal/domain/enum"
	"go.uber.org/zap"
)

// Investor is the investor/analyst dashboard. One call to the legacy
// endpoint fills all three datasets; without kpis there is nothing to show,
// so a failed call fails the view.
type Investor struct {
	*board
	backend Backend
}

func NewInvestor(backend Backend, log *zap.Logger) *Investor {
	return &Investor{
		board:   newBoard(enum.ViewInvestor, log, enum.DatasetKPIs, enum.DatasetTrends, enum.DatasetByCategory),
		backend: backend,
	}
}

func (v *Investor) Mount() {
	v.mount()
	keys := []enum.DatasetKey{enum.DatasetKPIs, enum.DatasetTrends, enum.DatasetByCategory}
	v.fetch(keys, true, func(ctx context.Context) (map[enum.DatasetKey][]entity.Row, error) {
		out, err := v.backend.InvestorMetrics(ctx)
		if err != nil {
			return nil, err
		}
		kpis := []entity.Row{}
		if len(out.KPIs) > 0 {
			kpis = append(kpis, out.KPIs)
		}
		return map[enum.DatasetKey][]entity.Row{
			enum.DatasetKPIs:       kpis,
			enum.DatasetTrends:     out.Trends,
			enum.DatasetByCategory: out.ByCategory,
		}, nil
	})
}
