package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sangkips/insights/internal/domain/entity"
	"github.com/sangkips/insights/internal/domain/enum"
)

type fakeAnalytics struct {
	mu        sync.Mutex
	calls     int
	metrics   []enum.MetricType
	datasets  []enum.DatasetKey
	rows      map[string][]entity.Row
	failOn    map[string]error
	investorK entity.Row
}

func newFakeAnalytics() *fakeAnalytics {
	return &fakeAnalytics{rows: map[string][]entity.Row{}, failOn: map[string]error{}}
}

func (f *fakeAnalytics) record(name string) ([]entity.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.failOn[name]; err != nil {
		return nil, err
	}
	return f.rows[name], nil
}

func (f *fakeAnalytics) OperationalMetrics(_ context.Context, metric enum.MetricType) ([]entity.Row, error) {
	f.mu.Lock()
	f.metrics = append(f.metrics, metric)
	f.mu.Unlock()
	return f.record(metric.String())
}

func (f *fakeAnalytics) MarketingDataset(_ context.Context, dataset enum.DatasetKey) ([]entity.Row, error) {
	f.mu.Lock()
	f.datasets = append(f.datasets, dataset)
	f.mu.Unlock()
	return f.record(dataset.String())
}

func (f *fakeAnalytics) InvestorKPIs(context.Context) (entity.Row, error) {
	if _, err := f.record("investor.kpis"); err != nil {
		return nil, err
	}
	return f.investorK, nil
}

func (f *fakeAnalytics) InvestorTrends(context.Context) ([]entity.Row, error) {
	return f.record("investor.trends")
}

func (f *fakeAnalytics) InvestorByCategory(context.Context) ([]entity.Row, error) {
	return f.record("investor.byCategory")
}

func signedIn(email string) *entity.Identity {
	return &entity.Identity{UserID: uuid.New(), Email: email, Authenticated: true}
}
