// Package view holds the four role dashboards. Each view owns its datasets,
// fetches them from the backend and publishes snapshots for rendering.
package view

import (
	"context"
	"fmt"

	"github.com/sangkips/insights/internal/domain/entity"
	"github.com/sangkips/insights/internal/domain/enum"
	"go.uber.org/zap"
)

// Backend is the set of backend functions the views call.
type Backend interface {
	OperationalMetrics(ctx context.Context, metric enum.MetricType) ([]entity.Row, error)
	MarketingMetrics(ctx context.Context) (*entity.MarketingMetrics, error)
	InvestorMetrics(ctx context.Context) (*entity.InvestorMetrics, error)
}

// View is a mounted dashboard.
type View interface {
	Kind() enum.ViewKind
	Mount()
	Unmount()
	Snapshot() Snapshot
	Subscribe(fn func(Snapshot)) (unsubscribe func())
	Wait()
}

// New builds the view for kind. It is not mounted yet.
func New(kind enum.ViewKind, backend Backend, log *zap.Logger) View {
	switch kind {
	case enum.ViewInvestor:
		return NewInvestor(backend, log)
	case enum.ViewManager:
		return NewManager(backend, log)
	case enum.ViewMarketing:
		return NewMarketing(backend, log)
	case enum.ViewDefault:
		return NewDefault(log)
	}
	panic(fmt.Sprintf("view: unhandled kind %d", int(kind)))
}
