package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sangkips/insights/internal/config"
	"github.com/sangkips/insights/internal/domain/entity"
	"github.com/sangkips/insights/internal/domain/enum"
	domainRepo "github.com/sangkips/insights/internal/domain/repository"
)

// Querier is the subset of *pgxpool.Pool the warehouse repository uses.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type analyticsRepository struct {
	db        Querier
	investor  string
	manager   string
	marketing string
	timeout   time.Duration
}

// NewAnalyticsRepository creates the warehouse-backed analytics repository
func NewAnalyticsRepository(db Querier, cfg *config.WarehouseConfig) domainRepo.AnalyticsRepository {
	return &analyticsRepository{
		db:        db,
		investor:  cfg.InvestorSchema,
		manager:   cfg.ManagerSchema,
		marketing: cfg.MarketingSchema,
		timeout:   cfg.QueryTimeout,
	}
}

func (r *analyticsRepository) OperationalMetrics(ctx context.Context, metric enum.MetricType) ([]entity.Row, error) {
	sql, err := operationalSQL(metric)
	if err != nil {
		return nil, err
	}
	return r.query(ctx, bindSchema(sql, r.manager))
}

func (r *analyticsRepository) MarketingDataset(ctx context.Context, dataset enum.DatasetKey) ([]entity.Row, error) {
	sql, err := marketingSQL(dataset)
	if err != nil {
		return nil, err
	}
	return r.query(ctx, bindSchema(sql, r.marketing))
}

func (r *analyticsRepository) InvestorKPIs(ctx context.Context) (entity.Row, error) {
	rows, err := r.query(ctx, bindSchema(investorKPIsSQL, r.investor))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return entity.Row{}, nil
	}
	return rows[0], nil
}

func (r *analyticsRepository) InvestorTrends(ctx context.Context) ([]entity.Row, error) {
	return r.query(ctx, bindSchema(investorTrendsSQL, r.investor))
}

func (r *analyticsRepository) InvestorByCategory(ctx context.Context) ([]entity.Row, error) {
	return r.query(ctx, bindSchema(investorByCategorySQL, r.investor))
}

func (r *analyticsRepository) query(ctx context.Context, sql string) ([]entity.Row, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	result, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = []entity.Row{}
	}
	return result, nil
}

// operationalSQL binds each metric to exactly one template.
func operationalSQL(metric enum.MetricType) (string, error) {
	switch metric {
	case enum.MetricTypeKPIs:
		return managerKPIsSQL, nil
	case enum.MetricTypeTimeSeries:
		return managerTimeSeriesSQL, nil
	case enum.MetricTypeSentimentBreakdown:
		return managerSentimentSQL, nil
	case enum.MetricTypePerformanceByDay:
		return managerByDaySQL, nil
	}
	return "", fmt.Errorf("no query bound to metric %d", int(metric))
}

func marketingSQL(dataset enum.DatasetKey) (string, error) {
	switch dataset {
	case enum.DatasetEngagementTrends:
		return marketingEngagementTrendsSQL, nil
	case enum.DatasetTopCategories:
		return marketingTopCategoriesSQL, nil
	case enum.DatasetRatingDistribution:
		return marketingRatingDistributionSQL, nil
	case enum.DatasetUserSegments:
		return marketingUserSegmentsSQL, nil
	case enum.DatasetTopCities:
		return marketingTopCitiesSQL, nil
	}
	return "", fmt.Errorf("no marketing query bound to dataset %q", dataset)
}

func bindSchema(sql, schema string) string {
	return strings.ReplaceAll(sql, "{schema}", pgx.Identifier{schema}.Sanitize())
}
