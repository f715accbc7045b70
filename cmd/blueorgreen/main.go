package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"blueorgreen/internal/discovery"
	sqliteregistry "blueorgreen/internal/discovery/sqlite"
	"blueorgreen/internal/domain"
	"blueorgreen/internal/env"
	"blueorgreen/internal/handler"
	"blueorgreen/internal/logging"
	"blueorgreen/internal/routes"
	"blueorgreen/internal/server"
	"blueorgreen/internal/service"
)

func main() {
	cfg := env.MustLoadBackend()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("konfiguration geladen",
		zap.String("color", cfg.Color),
		zap.String("service", cfg.ServiceName),
		zap.String("server_addr", cfg.ServerAddr),
		zap.String("discovery", cfg.Discovery),
		zap.Float64("rate_limit", cfg.RateLimit),
	)

	svc := service.NewColorService(cfg.Color, logger)
	h := handler.NewColorHandler(svc, logger)

	r := chi.NewRouter()
	routes.SetupBackend(r, cfg.ServiceName, h, logger, cfg.RateLimit)

	registrar, cleanup := mustInitRegistrar(cfg, logger)
	if cleanup != nil {
		defer cleanup()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	self := domain.Instance{
		Service: cfg.ServiceName,
		URL:     cfg.InstanceURL,
		Zone:    cfg.InstanceZone,
		Status:  domain.StatusUp,
	}
	srvErr := server.RunRegistered(ctx, server.New(cfg.ServerAddr, r), logger, registrar, self)

	if srvErr != nil {
		logger.Error("server beendet mit fehler", zap.Error(srvErr))
		os.Exit(1)
	}
}

// mustInitRegistrar liefert bei DISCOVERY=sqlite die gemeinsame Registry,
// in die sich die Instanz selbst einträgt. Bei "csv" und "none" pflegt die
// Plattform den Katalog, und es wird nichts registriert.
func mustInitRegistrar(cfg env.BackendConfig, logger *zap.Logger) (discovery.Registrar, func()) {
	switch cfg.Discovery {
	case env.DiscoverySQLite:
		reg, err := sqliteregistry.NewRegistry(cfg.RegistryDSN, 0, logger)
		if err != nil {
			logger.Fatal("sqlite-registry konnte nicht initialisiert werden", zap.Error(err))
		}
		return reg, func() { _ = reg.Close() }

	case env.DiscoveryCSV, env.DiscoveryNone:
		return nil, nil

	default:
		logger.Fatal("unbekannte discovery-quelle", zap.String("discovery", cfg.Discovery))
		return nil, nil
	}
}
