package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/sangkips/insights/internal/domain/entity"
	"github.com/sangkips/insights/internal/domain/enum"
	"go.uber.org/zap"
)

// Tab is one tab of the manager dashboard.
type Tab int

const (
	TabOverview Tab = iota
	TabPerformanceTrends
	TabSentiment
	TabByDay
)

// Tabs lists the manager tabs in display order.
func Tabs() []Tab {
	return []Tab{TabOverview, TabPerformanceTrends, TabSentiment, TabByDay}
}

func (t Tab) String() string {
	switch t {
	case TabOverview:
		return "Overview"
	case TabPerformanceTrends:
		return "Performance Trends"
	case TabSentiment:
		return "Sentiment"
	case TabByDay:
		return "By Day"
	}
	return fmt.Sprintf("Tab(%d)", int(t))
}

// Metric is the operational metric the tab displays.
func (t Tab) Metric() enum.MetricType {
	switch t {
	case TabOverview:
		return enum.MetricTypeKPIs
	case TabPerformanceTrends:
		return enum.MetricTypeTimeSeries
	case TabSentiment:
		return enum.MetricTypeSentimentBreakdown
	case TabByDay:
		return enum.MetricTypePerformanceByDay
	}
	panic(fmt.Sprintf("view: unhandled tab %d", int(t)))
}

// ParseTab accepts a tab's display name or a short alias such as "trends"
// or "by-day".
func ParseTab(s string) (Tab, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "overview", "kpis":
		return TabOverview, nil
	case "performance trends", "performance-trends", "trends", "timeseries":
		return TabPerformanceTrends, nil
	case "sentiment", "sentimentbreakdown":
		return TabSentiment, nil
	case "by day", "by-day", "byday", "performancebyday":
		return TabByDay, nil
	}
	return 0, fmt.Errorf("unknown tab %q", s)
}

// Manager is the owner/manager dashboard. Each tab's dataset is fetched the
// first time the tab is activated and kept while the view is mounted.
type Manager struct {
	*board
	backend Backend
}

func NewManager(backend Backend, log *zap.Logger) *Manager {
	return &Manager{
		board: newBoard(enum.ViewManager, log,
			enum.DatasetKPIs,
			enum.DatasetTimeSeries,
			enum.DatasetSentimentBreakdown,
			enum.DatasetPerformanceByDay,
		),
		backend: backend,
	}
}

// Mount activates the Overview tab.
func (m *Manager) Mount() {
	m.mount()
	m.Activate(TabOverview)
}

// Activate switches to tab and fetches its dataset if it is still idle. It
// reports whether a fetch was issued.
func (m *Manager) Activate(tab Tab) bool {
	metric := tab.Metric()
	m.setTab(tab)

	key := metric.Dataset()
	return m.fetch([]enum.DatasetKey{key}, key == enum.DatasetKPIs, func(ctx context.Context) (map[enum.DatasetKey][]entity.Row, error) {
		rows, err := m.backend.OperationalMetrics(ctx, metric)
		if err != nil {
			return nil, err
		}
		if key == enum.DatasetPerformanceByDay {
			rows = SortByWeekday(rows, "day_of_week")
		}
		return map[enum.DatasetKey][]entity.Row{key: rows}, nil
	})
}
