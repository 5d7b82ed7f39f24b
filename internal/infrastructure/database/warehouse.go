package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sangkips/insights/internal/config"
	"go.uber.org/zap"
)

// NewWarehousePool connects to the analytics warehouse the ETL jobs fill.
func NewWarehousePool(ctx context.Context, cfg *config.WarehouseConfig, log *zap.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid warehouse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create warehouse pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach warehouse: %w", err)
	}

	log.Info("connected to warehouse",
		zap.String("host", poolCfg.ConnConfig.Host),
		zap.String("investor_schema", cfg.InvestorSchema),
		zap.String("manager_schema", cfg.ManagerSchema),
		zap.String("marketing_schema", cfg.MarketingSchema),
	)
	return pool, nil
}
