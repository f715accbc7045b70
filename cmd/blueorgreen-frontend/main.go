package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"blueorgreen/internal/discovery"
	csvcatalog "blueorgreen/internal/discovery/csv"
	sqliteregistry "blueorgreen/internal/discovery/sqlite"
	"blueorgreen/internal/env"
	"blueorgreen/internal/handler"
	"blueorgreen/internal/loadbalancer"
	"blueorgreen/internal/logging"
	"blueorgreen/internal/routes"
	"blueorgreen/internal/server"
)

func main() {
	cfg := env.MustLoadFrontend()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("konfiguration geladen",
		zap.String("backend_service", cfg.BackendService),
		zap.String("server_addr", cfg.ServerAddr),
		zap.String("discovery", cfg.Discovery),
		zap.String("lb_strategy", cfg.LBStrategy),
		zap.Duration("client_timeout", cfg.ClientTimeout),
		zap.Float64("rate_limit", cfg.RateLimit),
	)

	resolver, cleanup := mustInitResolver(cfg, logger)
	if cleanup != nil {
		defer cleanup()
	}

	balancer, err := loadbalancer.NewBalancer(cfg.LBStrategy)
	if err != nil {
		logger.Fatal("load-balancer konnte nicht erstellt werden", zap.Error(err))
	}
	client := loadbalancer.NewClient(resolver, balancer, &http.Client{Timeout: cfg.ClientTimeout}, logger)
	h := handler.NewFrontendHandler(client, cfg.BackendService, logger)

	r := chi.NewRouter()
	routes.SetupFrontend(r, cfg.BackendService, h, client, logger, cfg.RateLimit)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, server.New(cfg.ServerAddr, r), logger, nil); err != nil {
		logger.Error("server beendet mit fehler", zap.Error(err))
		os.Exit(1)
	}
}

// mustInitResolver erstellt je nach DISCOVERY die passende Katalogquelle.
func mustInitResolver(cfg env.FrontendConfig, logger *zap.Logger) (discovery.Resolver, func()) {
	switch cfg.Discovery {
	case env.DiscoverySQLite:
		reg, err := sqliteregistry.NewRegistry(cfg.RegistryDSN, 0, logger)
		if err != nil {
			logger.Fatal("sqlite-registry konnte nicht initialisiert werden", zap.Error(err))
		}
		return reg, func() { _ = reg.Close() }

	case env.DiscoveryCSV:
		catalog, err := csvcatalog.NewCatalog(cfg.CatalogFile, logger)
		if err != nil {
			logger.Fatal("csv-katalog konnte nicht geladen werden", zap.Error(err))
		}
		return catalog, nil

	default:
		logger.Fatal("frontend benötigt eine discovery-quelle", zap.String("discovery", cfg.Discovery))
		return nil, nil
	}
}
