package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrymomot/premiumkit/pkg/billing"
	"github.com/dmitrymomot/premiumkit/pkg/billing/paddle"
	"github.com/dmitrymomot/premiumkit/pkg/billing/rediscache"
	"github.com/dmitrymomot/premiumkit/pkg/billing/static"
	"github.com/dmitrymomot/premiumkit/pkg/config"
	"github.com/dmitrymomot/premiumkit/pkg/httpserver"
	"github.com/dmitrymomot/premiumkit/pkg/logger"
	"github.com/dmitrymomot/premiumkit/pkg/redis"
	"github.com/dmitrymomot/premiumkit/svc/premium"
)

// Provider kinds.
const (
	providerStatic = "static"
	providerPaddle = "paddle"
)

var errUnknownProvider = errors.New("unknown billing provider")

// settings is the daemon-level configuration.
type settings struct {
	Provider    string `env:"PREMIUM_PROVIDER" envDefault:"static"`
	CatalogPath string `env:"PREMIUM_STATIC_CATALOG" envDefault:"catalog.yaml"`
	MaxAttempts int    `env:"PREMIUM_FETCH_MAX_ATTEMPTS" envDefault:"10"`
	ServiceName string `env:"PREMIUM_SERVICE_NAME" envDefault:"premiumd"`
}

// app holds the wired dependencies shared by all commands.
type app struct {
	log      *slog.Logger
	manager  *premium.Manager
	registry *prometheus.Registry
	storage  *redis.Storage
	http     httpserver.Config
}

func loadEnvFiles(files []string) error {
	return config.LoadEnv(files...)
}

// newApp loads configuration, builds the provider chain and configures the
// manager. Logs go to logOut.
func newApp(ctx context.Context, logOut io.Writer) (*app, error) {
	var (
		s        settings
		logCfg   logger.Config
		cfg      premium.Config
		redisCfg redis.Config
		httpCfg  httpserver.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&s) },
		func() error { return config.Load(&logCfg) },
		func() error { return config.Load(&cfg) },
		func() error { return config.Load(&redisCfg) },
		func() error { return config.Load(&httpCfg) },
	} {
		if err := load(); err != nil {
			return nil, err
		}
	}

	log := logger.New(
		logger.WithConfig(logCfg),
		logger.WithDebugMode(cfg.DebugMode),
		logger.WithOutput(logOut),
		logger.WithService(s.ServiceName),
	)
	logger.SetAsDefault(log)

	provider, err := newProvider(s, log)
	if err != nil {
		return nil, err
	}

	a := &app{log: log, http: httpCfg, registry: prometheus.NewRegistry()}
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.storage = redis.NewStorage(client, redisCfg)
		provider = rediscache.New(provider, a.storage, rediscache.WithLogger(log))
	}

	a.manager = premium.New(provider,
		premium.WithLogger(log),
		premium.WithMaxAttempts(s.MaxAttempts),
		premium.WithMetrics(premium.NewMetrics(a.registry)),
	)
	if err := a.manager.Configure(ctx, cfg); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func newProvider(s settings, log *slog.Logger) (billing.Provider, error) {
	switch s.Provider {
	case providerStatic:
		catalog, err := static.Load(s.CatalogPath)
		if err != nil {
			return nil, err
		}
		return static.New(catalog, static.WithLogger(log)), nil
	case providerPaddle:
		var cfg paddle.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		return paddle.New(cfg, paddle.WithLogger(log))
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownProvider, s.Provider)
	}
}

// checks are the readiness checks of the health endpoint.
func (a *app) checks() map[string]httpserver.Check {
	checks := map[string]httpserver.Check{
		"manager": func(context.Context) error {
			if !a.manager.Configured() {
				return premium.ErrNotConfigured
			}
			return nil
		},
	}
	if a.storage != nil {
		checks["redis"] = a.storage.Healthcheck
	}
	return checks
}

func (a *app) close() {
	if a.manager != nil {
		a.manager.Close()
	}
	if a.storage != nil {
		if err := a.storage.Close(); err != nil {
			a.log.Warn("failed to close redis", logger.Error(err))
		}
	}
}
