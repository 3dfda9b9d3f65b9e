// TemberaNawe - USSD tourism dialog server
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

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/temberanawe/ussd/internal/api"
	"github.com/temberanawe/ussd/internal/catalog"
	"github.com/temberanawe/ussd/internal/config"
	"github.com/temberanawe/ussd/internal/dialog"
	"github.com/temberanawe/ussd/internal/notify"
	"github.com/temberanawe/ussd/internal/session"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "session_backend", cfg.SessionBackend)

	// Load the catalog snapshot; the database is only touched at startup.
	catalogDB, err := catalog.Open(cfg.CatalogDBPath)
	if err != nil {
		slog.Error("Failed to open catalog database", "error", err)
		os.Exit(1)
	}
	cat, err := catalogDB.Snapshot(context.Background())
	if err != nil {
		slog.Error("Failed to load catalog", "error", err)
		os.Exit(1)
	}
	if err := catalogDB.Close(); err != nil {
		slog.Warn("Failed to close catalog database", "error", err)
	}
	slog.Info("Catalog loaded", "regions", len(cat.Regions()), "places", cat.PlaceCount())

	// Session store.
	var store session.Store
	switch cfg.SessionBackend {
	case config.BackendRedis:
		redisStore := session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, time.Now)
		if err := redisStore.Ping(context.Background()); err != nil {
			slog.Error("Redis health check failed", "error", err)
			os.Exit(1)
		}
		defer func() {
			if closeErr := redisStore.Close(); closeErr != nil {
				slog.Error("Failed to close redis store", "error", closeErr)
			}
		}()
		store = redisStore
		slog.Info("Redis session store connected", "addr", cfg.RedisAddr)
	default:
		store = session.NewMemoryStore(time.Now)
	}

	// Outbound SMS.
	var sender notify.Sender
	if cfg.SMS.APIKey == "" {
		sender = notify.NopSender{}
		slog.Info("SMS delivery disabled (AT_API_KEY not set)")
	} else {
		sender = notify.NewSMSSender(cfg.SMS.Username, cfg.SMS.APIKey, cfg.SMS.Endpoint)
		slog.Info("SMS delivery enabled", "username", cfg.SMS.Username)
	}
	dispatcher := notify.NewAsyncDispatcher(sender, 100)
	defer dispatcher.Close()

	engine := dialog.NewEngine(store, cat, dispatcher, dialog.Options{
		BookingLeadDays: cfg.BookingLeadDays,
		SupportPhone:    cfg.SupportPhone,
	})

	// Setup router.
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	api.NewHandler(engine).RegisterRoutes(r)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session.StartSweeper(ctx, store, cfg.SweepInterval, cfg.SessionTTL, time.Now)

	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
