package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/prayer-wall/cliparse"
	"github.com/danielhkuo/prayer-wall/db"
	"github.com/danielhkuo/prayer-wall/middleware"
	"github.com/danielhkuo/prayer-wall/notify"
	"github.com/danielhkuo/prayer-wall/router"
	"github.com/danielhkuo/prayer-wall/store"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(cliparse.NewLogger(cfg, os.Stderr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect and verify
	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err, "type", cfg.DatabaseType)
		os.Exit(1)
	}
	defer conn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(ctx, conn, cfg.DatabaseType); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}

	st := store.New(conn, store.WithTTL(cfg.PrayerTTL))

	topics, err := db.DefaultTopics()
	if err != nil {
		slog.Error("topic catalog invalid", "error", err)
		os.Exit(1)
	}
	seeded, err := st.SeedTopics(ctx, topics)
	if err != nil {
		slog.Error("topic seeding failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "topics_inserted", seeded.Inserted, "topics_existing", seeded.Ignored)

	// Push delivery
	var notifier notify.Notifier = notify.Nop{}
	if cfg.PushURL != "" {
		notifier = notify.NewExpoClient(cfg.PushURL, cfg.PushAccessToken, cfg.PushTimeout)
		slog.Info("push notifications enabled", "url", cfg.PushURL)
	} else {
		slog.Info("push notifications disabled")
	}
	dispatcher := notify.NewDispatcher(notifier, cfg.PushConcurrency, cfg.PushTimeout)

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, cfg.AdminKey)
	limiter.StartCleanup(ctx, time.Minute, 10*time.Minute)

	mux := router.NewRouter(st, dispatcher, cfg)

	server := http.Server{
		Handler:           router.Wrap(mux, limiter),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		// Wait for Ctrl-C or SIGTERM
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Warn("graceful shutdown incomplete", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "ttl", cfg.PrayerTTL.String())
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}

	// Let in-flight notifications finish before the database closes
	dispatcher.Wait()
}
