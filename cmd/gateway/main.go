package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/vouh/Spectre-payment-server/internal/application"
	"github.com/vouh/Spectre-payment-server/internal/application/services"
	"github.com/vouh/Spectre-payment-server/internal/config"
	"github.com/vouh/Spectre-payment-server/internal/infrastructure/daraja"
	"github.com/vouh/Spectre-payment-server/internal/infrastructure/persistence/postgres"
	"github.com/vouh/Spectre-payment-server/internal/infrastructure/ratelimit"
	"github.com/vouh/Spectre-payment-server/internal/infrastructure/store"
	"github.com/vouh/Spectre-payment-server/internal/interfaces/rest/handlers"
	"github.com/vouh/Spectre-payment-server/internal/interfaces/rest/middleware"
	"github.com/vouh/Spectre-payment-server/internal/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting gateway service",
		"env", cfg.Primary.Env,
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
		"daraja_base_url", cfg.Daraja.BaseURL,
		"store_backend", cfg.Store.Backend,
		"cors_origins", cfg.Server.CORSOrigins,
	)

	ctx := context.Background()
	reapTargets := map[string]worker.Reaper{}

	txStore, closeStore, err := buildStore(ctx, cfg, logger, reapTargets)
	if err != nil {
		logger.Error("failed to initialise transaction store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	recorder, closeRecorder, err := buildRecorder(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialise transaction recorder", "error", err)
		os.Exit(1)
	}
	defer closeRecorder()

	darajaClient := daraja.NewClient(cfg.Daraja, logger)
	tokens := services.NewTokenCache(darajaClient, cfg.Daraja.TokenSafetyMargin, cfg.Daraja.Timeout, time.Now, logger)

	pushService := services.NewPushService(darajaClient, tokens, recorder, cfg.Daraja, time.Now, logger)
	statusResolver := services.NewStatusResolver(txStore, darajaClient, tokens, cfg.Daraja, time.Now, logger)
	callbackService := services.NewCallbackService(daraja.NewCallbackParser(), txStore, recorder, time.Now, logger)

	limiter := ratelimit.NewFixedWindowLimiter(cfg.RateLimit.Window, cfg.RateLimit.MaxRequests, time.Now)
	reapTargets["rate_limits"] = limiter
	logger.Warn("rate limiting is process-local; each instance enforces its own limit",
		"window", cfg.RateLimit.Window,
		"max_requests", cfg.RateLimit.MaxRequests,
	)

	h := handlers.NewPaymentHandler(pushService, statusResolver, callbackService, logger)

	mux := http.NewServeMux()
	if err := h.RegisterRoutes(mux, middleware.RateLimit(limiter, cfg.Server.TrustProxy, logger)); err != nil {
		logger.Error("failed to register routes", "error", err)
		os.Exit(1)
	}

	handler := middleware.Recovery(logger)(mux)
	handler = middleware.Timeout(cfg.Server.RequestTimeout)(handler)
	handler = middleware.CORS(cfg.Server.CORSOrigins)(handler)
	handler = middleware.Logging(logger)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	reaper := worker.NewReaperWorker(reapTargets, cfg.Store.ReapInterval, logger)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	go reaper.Start(workerCtx)

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	cancelWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

// buildStore returns the configured TransactionStore. The memory store is
// registered with the reaper; redis expires keys itself.
func buildStore(ctx context.Context, cfg *config.Config, logger *slog.Logger, reapTargets map[string]worker.Reaper) (application.TransactionStore, func(), error) {
	if cfg.Store.Backend == config.StoreBackendRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rs := store.NewRedisStore(client, cfg.Redis.KeyPrefix, cfg.Store.Retention)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rs.Ping(pingCtx); err != nil {
			_ = rs.Close()
			return nil, nil, err
		}

		logger.Info("using redis transaction store", "addr", cfg.Redis.Addr, "key_prefix", cfg.Redis.KeyPrefix)
		return rs, func() { _ = rs.Close() }, nil
	}

	ms := store.NewMemoryStore(cfg.Store.Retention, time.Now)
	reapTargets["transactions"] = ms
	logger.Warn("transaction store is process-local; run a single instance or use the redis backend",
		"retention", cfg.Store.Retention,
	)
	return ms, func() {}, nil
}

// buildRecorder connects the postgres recorder when enabled, else a no-op.
func buildRecorder(ctx context.Context, cfg *config.Config, logger *slog.Logger) (application.TransactionRecorder, func(), error) {
	if !cfg.Database.Enabled {
		logger.Info("transaction recording disabled")
		return application.NopRecorder{}, func() {}, nil
	}

	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
	}

	return postgres.NewTransactionRepository(db.Pool), db.Close, nil
}
