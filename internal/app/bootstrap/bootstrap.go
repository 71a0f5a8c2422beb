package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	catalog "turbo/contexts/commerce/catalog-service"
	catalogpostgres "turbo/contexts/commerce/catalog-service/adapters/postgres"
	redisadapter "turbo/contexts/commerce/catalog-service/adapters/redis"
	catalogports "turbo/contexts/commerce/catalog-service/ports"
	orders "turbo/contexts/commerce/order-service"
	orderevents "turbo/contexts/commerce/order-service/adapters/events"
	orderpostgres "turbo/contexts/commerce/order-service/adapters/postgres"
	"turbo/contexts/commerce/order-service/adapters/pricing"
	orderworkers "turbo/contexts/commerce/order-service/application/workers"
	identity "turbo/contexts/identity-access/identity-service"
	bcryptadapter "turbo/contexts/identity-access/identity-service/adapters/bcrypt"
	identitypostgres "turbo/contexts/identity-access/identity-service/adapters/postgres"
	requestgate "turbo/contexts/identity-access/request-gate"
	"turbo/internal/platform/config"
	"turbo/internal/platform/db"
	"turbo/internal/platform/httpserver"
	"turbo/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	cache    *redisadapter.PriceCache
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	relay        orderworkers.OutboxRelay
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	gateModule, err := requestgate.NewHS256Module(cfg.JWTSecret, logger)
	if err != nil {
		return nil, err
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	if err := pg.Migrate(cfg.MigrationsPath); err != nil {
		_ = pg.Close()
		return nil, err
	}
	logger.Info("database migrations applied",
		"event", "migrations_applied",
		"module", "platform/db",
		"path", cfg.MigrationsPath,
	)

	identityRepo := identitypostgres.NewRepository(pg.DB, logger)
	identityModule := identity.NewModule(identity.Dependencies{
		Repository: identityRepo,
		Hasher:     bcryptadapter.Hasher{},
		Tokens:     gateModule.Codec,
		Clock:      identitypostgres.SystemClock{},
		IDs:        identitypostgres.UUIDGenerator{},
		TokenTTL:   cfg.JWTTTL,
		Logger:     logger,
	})

	var priceCache catalogports.PriceCache
	var redisCache *redisadapter.PriceCache
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		redisCache, err = redisadapter.NewPriceCache(cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		priceCache = redisCache
	}

	catalogRepo := catalogpostgres.NewRepository(pg.DB, logger)
	catalogModule := catalog.NewModule(catalog.Dependencies{
		Repository:    catalogRepo,
		PriceCache:    priceCache,
		Clock:         catalogpostgres.SystemClock{},
		IDs:           catalogpostgres.UUIDGenerator{},
		PriceCacheTTL: 5 * time.Minute,
		Logger:        logger,
	})

	orderRepo := orderpostgres.NewRepository(pg.DB, logger)
	bus := messaging.NewBus(logger)
	ordersModule := orders.NewModule(orders.Dependencies{
		Repository:  orderRepo,
		Outbox:      orderRepo,
		Pricing:     pricing.CatalogLookup{Catalog: catalogModule.Pricing},
		Publisher:   orderevents.NewPublisher(bus, logger),
		Clock:       orderpostgres.SystemClock{},
		IDGenerator: orderpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	server := httpserver.New(gateModule, identityModule, catalogModule, ordersModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		cache:    redisCache,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	orderRepo := orderpostgres.NewRepository(pg.DB, logger)
	bus := messaging.NewBus(logger)
	return &WorkerApp{
		postgres: pg,
		relay: orderworkers.OutboxRelay{
			Outbox:    orderRepo,
			Publisher: orderevents.NewPublisher(bus, logger),
			Clock:     orderpostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		pollInterval: cfg.OutboxPollInterval,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			return err
		}
	}
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.relay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
