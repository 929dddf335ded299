package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Ahmad-Arslan-10/Steakaway/api/controllers"
	"github.com/Ahmad-Arslan-10/Steakaway/api/routes"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/cart"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/catalog"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/session"
	"github.com/Ahmad-Arslan-10/Steakaway/pkg/config"
	"github.com/Ahmad-Arslan-10/Steakaway/pkg/instance"
	"github.com/Ahmad-Arslan-10/Steakaway/pkg/kv"
	"github.com/Ahmad-Arslan-10/Steakaway/pkg/logger"
	"github.com/Ahmad-Arslan-10/Steakaway/pkg/metrics"
	"github.com/Ahmad-Arslan-10/Steakaway/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	menu, err := loadCatalog(cfg)
	if err != nil {
		logg.Error(context.Background(), "failed to load catalog", err)
		os.Exit(1)
	}

	var store kv.Store
	var pinger controllers.Pinger
	if cfg.Redis.Configured() {
		redisClient, err := redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		store = redisClient
		pinger = redisClient
	} else {
		logg.Warn(context.Background(), "redis not configured, session state is in-process only")
		store = kv.NewMemory()
	}

	policy := cart.MergeQuantities
	if !cfg.Cart.MergesDuplicates() {
		policy = cart.AppendDuplicates
	}

	engineMetrics := metrics.NewEngineMetrics(prometheus.DefaultRegisterer)
	sessions := session.NewManager(store, cart.Options{
		TaxRate: cfg.Cart.TaxRate,
		Policy:  policy,
	}, logg, engineMetrics)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
		"products": menu.Len(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, menu, sessions, pinger, engineMetrics),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.Path != "" {
		return catalog.LoadFile(cfg.Catalog.Path)
	}
	return catalog.Default()
}
