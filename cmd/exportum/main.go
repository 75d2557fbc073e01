package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Urushihara24/exportum/internal/config"
	"github.com/Urushihara24/exportum/internal/engine"
	"github.com/Urushihara24/exportum/internal/handler"
	"github.com/Urushihara24/exportum/internal/notify"
	"github.com/Urushihara24/exportum/internal/service"
	"github.com/Urushihara24/exportum/internal/store"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "Run health check against running server")
	flag.Parse()

	// Handle -healthcheck flag: HTTP GET to localhost:PORT/healthz, exit 0/1.
	if *healthcheck {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		resp, err := http.Get(fmt.Sprintf("http://localhost:%s/healthz", port))
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load .env if present, then configuration.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up slog logger with configured level.
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Durable snapshots.
	persister, err := store.NewFilePersister(cfg.DataDir, logger)
	if err != nil {
		logger.Error("failed to open data dir", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Stores: loaded from the last snapshots, ID counters reseeded.
	userStore := store.NewUserStore(persister, logger)
	batchStore := store.NewBatchStore(persister, logger)
	marketStore := store.NewMarketStore(persister, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Notification sink: HTTP when configured, otherwise a no-op.
	var notifier notify.Notifier
	if cfg.NotifyURL != "" {
		httpNotifier := notify.NewHTTPNotifier(cfg.NotifyURL, cfg.NotifyTimeout, cfg.NotifyDelay, logger)
		httpNotifier.Start(ctx)
		notifier = httpNotifier
	} else {
		logger.Warn("NOTIFY_URL not set, notifications disabled")
		notifier = notify.Nop{}
	}

	// Engine and sweep scheduler.
	eng := engine.NewEngine(batchStore, marketStore, notifier, cfg.ExchangeRate, logger)
	sweeper := engine.NewSweeper(cfg.SweepInterval, eng, logger)
	sweeper.Start(ctx)

	// Services.
	userSvc := service.NewUserService(userStore)
	batchSvc := service.NewBatchService(batchStore, userStore, eng)
	poolSvc := service.NewPoolService(marketStore, userStore, eng)
	marketSvc := service.NewMarketService(marketStore, eng)

	// Router.
	router := handler.NewRouter(userSvc, batchSvc, poolSvc, marketSvc, cfg.ExchangeRate, logger)

	// Configure HTTP server.
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start HTTP server in a goroutine.
	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutdown signal received", slog.String("signal", sig.String()))

	// Graceful shutdown: stop HTTP server, cancel context (stops the
	// sweeper and the notification dispatcher).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
	cancel()

	logger.Info("server stopped")
}
