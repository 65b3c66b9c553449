package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/cloud-ru/mcp-amortization-go/internal/cache"
	"github.com/cloud-ru/mcp-amortization-go/internal/config"
	"github.com/cloud-ru/mcp-amortization-go/internal/log"
	"github.com/cloud-ru/mcp-amortization-go/internal/server"
	"github.com/cloud-ru/mcp-amortization-go/internal/tools"
	"github.com/cloud-ru/mcp-amortization-go/internal/tracing"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "amortization-server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := log.New(log.Config{Level: log.ParseLevel(cfg.LogLevel), Component: log.ComponentApp})
	log.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracer, shutdownTracing, err := tracing.InitTracing(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	responses := newCache(ctx, cfg, logger)
	srv := server.New(tools.Registry(cfg, tracer, logger), responses, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(gctx, fmt.Sprintf(":%d", cfg.Port))
	})
	g.Go(func() error {
		<-gctx.Done()
		return shutdownTracing(context.Background())
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server exited")
	return nil
}

// newCache выбирает Redis, если он настроен и доступен, иначе кэш в памяти
func newCache(ctx context.Context, cfg *config.Config, logger *log.Logger) cache.Cache {
	logger = logger.WithComponent(log.ComponentCache)
	if cfg.RedisAddr == "" {
		logger.Info("using in-memory response cache", "ttl", cfg.CacheTTL)
		return cache.NewMemoryCache(cfg.CacheTTL)
	}

	rc := cache.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
	if err := rc.Ping(ctx); err != nil {
		logger.Warn("redis unavailable, falling back to in-memory cache", log.FieldAddr, cfg.RedisAddr, log.FieldError, err)
		_ = rc.Close()
		return cache.NewMemoryCache(cfg.CacheTTL)
	}
	logger.Info("using redis response cache", log.FieldAddr, cfg.RedisAddr, "ttl", cfg.CacheTTL)
	return rc
}
