package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/cache"
	memorycache "github.com/SANJANA-DHAGE05/job-market-analysis/internal/cache/memory"
	rediscache "github.com/SANJANA-DHAGE05/job-market-analysis/internal/cache/redis"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/config"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/dataset"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/events"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/server"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/telemetry"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return zap.NewProduction()
}

func newCache(cfg *config.Config, logger *zap.Logger) cache.Cache {
	opts := cache.Options{
		DefaultTTL:      cfg.CacheTTL,
		CleanupInterval: cache.DefaultOptions().CleanupInterval,
		RedisAddr:       cfg.RedisAddr,
		RedisPassword:   cfg.RedisPassword,
		RedisDB:         cfg.RedisDB,
	}
	if cfg.RedisAddr != "" {
		logger.Info("using redis response cache", zap.String("addr", cfg.RedisAddr))
		return rediscache.New(opts)
	}
	logger.Info("using in-memory response cache")
	return memorycache.New(opts)
}

func main() {
	_ = godotenv.Load()

	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			newLogger,
			newCache,
			dataset.NewStore,
			events.Connect,
			events.NewHandler,
			server.New,
		),
		fx.Invoke(
			func(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) {
				var shutdown func()
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						var err error
						shutdown, err = telemetry.InitTracer(ctx, "jobmarket-dashboard", cfg.OTLPCollectorURL)
						if err != nil {
							logger.Warn("tracing disabled", zap.Error(err))
						}
						return nil
					},
					OnStop: func(context.Context) error {
						if shutdown != nil {
							shutdown()
						}
						return nil
					},
				})
			},
			func(handler *events.Handler, lc fx.Lifecycle) error {
				return handler.RegisterSubscriptions(lc)
			},
			func(srv *server.Server, lc fx.Lifecycle) {
				srv.Register(lc)
			},
		),
	)

	startCtx := context.Background()
	if err := app.Start(startCtx); err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	stopCtx := context.Background()
	if err := app.Stop(stopCtx); err != nil {
		log.Fatal(err)
	}
}
