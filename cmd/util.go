package cmd

import (
	"fmt"
	"marketdash/api"
	"marketdash/internal/calculator"
	"marketdash/internal/config"
	"marketdash/internal/repository"
	"marketdash/internal/service"
	"os"
	"time"
)

func InitializeDependencies() (*api.ApiHandler, error) {
	configPath := os.Getenv("MARKETDASH_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	marketDataRepository := repository.NewMarketDataRepository()
	priceService := service.NewPriceService(
		marketDataRepository,
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
	)
	metricsService := calculator.NewMetricsService(
		cfg.Metrics.RiskFreeRate,
		cfg.Metrics.TradingDaysPerYear,
	)
	portfolioService := calculator.NewPortfolioService(metricsService)
	dashboardService := service.NewDashboardService(
		priceService,
		metricsService,
		portfolioService,
	)

	return &api.ApiHandler{
		DashboardService: dashboardService,
		Config:           cfg,
	}, nil
}
