package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/splitpay/splitpay/internal/auth"
	"github.com/splitpay/splitpay/internal/cache"
	"github.com/splitpay/splitpay/internal/config"
	splithttp "github.com/splitpay/splitpay/internal/http"
	"github.com/splitpay/splitpay/internal/service"
	"github.com/splitpay/splitpay/internal/storage/sqlite"
	"github.com/splitpay/splitpay/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	var planCache cache.Cache = cache.Noop{}
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer redisCache.Close()
		planCache = redisCache
		slog.Info("Redis cache connected", "addr", cfg.RedisAddr)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenLifetime)
	server := splithttp.NewServer(
		service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, store),
		service.NewGroupService(store),
		service.NewExpenseService(store, planCache),
		service.NewSettlementService(store, planCache, cfg.PlanTTL),
		service.NewReportService(store),
		jwtManager,
	)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
