package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/insights/internal/application/service"
	"github.com/sangkips/insights/internal/config"
	"github.com/sangkips/insights/internal/infrastructure/database"
	"github.com/sangkips/insights/internal/infrastructure/repository"
	"github.com/sangkips/insights/internal/presentation/http/handler"
	"github.com/sangkips/insights/internal/presentation/http/routes"
	"github.com/sangkips/insights/pkg/logging"
	"github.com/sangkips/insights/pkg/oauth"
	"github.com/sangkips/insights/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	bootLog := zap.NewExample()
	cfg := config.Load(bootLog)

	log, err := logging.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		bootLog.Fatal("failed to build logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug, log)
	if err != nil {
		log.Fatal("failed to connect to accounts database", zap.Error(err))
	}
	if err := database.AutoMigrate(db, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	if err := database.SeedDemoUsers(ctx, db, cfg.DemoUsers, log); err != nil {
		log.Warn("failed to seed demo users", zap.Error(err))
	}

	warehouse, err := database.NewWarehousePool(ctx, &cfg.Warehouse, log)
	if err != nil {
		log.Fatal("failed to connect to warehouse", zap.Error(err))
	}
	defer warehouse.Close()

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	userRepo := repository.NewUserRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(warehouse, &cfg.Warehouse)

	googleProvider := oauth.NewGoogleProvider(oauth.GoogleConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	authService := service.NewAuthService(userRepo, jwtManager, log)
	operationalService := service.NewOperationalMetricsService(analyticsRepo, log)
	marketingService := service.NewMarketingMetricsService(analyticsRepo, log)
	investorService := service.NewInvestorMetricsService(analyticsRepo, log)

	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService, googleProvider, log),
		Metrics:  handler.NewMetricsHandler(operationalService, marketingService),
		Investor: handler.NewInvestorHandler(investorService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
		Log:        log,
		Done:       ctx.Done(),
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server", zap.String("service", cfg.App.Name), zap.String("port", port), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
