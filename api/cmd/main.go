package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/real-time-ressys/services/listing-service/internal/application/listing"
	"github.com/baechuer/real-time-ressys/services/listing-service/internal/config"
	"github.com/baechuer/real-time-ressys/services/listing-service/internal/infrastructure/db/postgres"
	"github.com/baechuer/real-time-ressys/services/listing-service/internal/logger"
	"github.com/baechuer/real-time-ressys/services/listing-service/internal/transport/http/handlers"
	"github.com/baechuer/real-time-ressys/services/listing-service/internal/transport/http/router"
)

// App holds all dependencies for the service
type App struct {
	Config *config.Config
	Server *http.Server
	DB     *sql.DB
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("info", "console")
		zlog.Fatal().Err(err).Msg("config load failed")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	if u, err := url.Parse(cfg.DatabaseURL); err == nil {
		zlog.Info().
			Str("db_driver", cfg.DBDriver).
			Str("db_host", u.Host).
			Str("db_db", u.Path).
			Msg("db config loaded")
	}

	db, err := postgres.Open(context.Background(), cfg.DatabaseURL, postgres.PoolConfig{
		Driver:          cfg.DBDriver,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
		ConnectTimeout:  cfg.DBConnectTimeout,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("db open failed")
	}
	defer db.Close()

	app := NewApp(cfg, db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zlog.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		errCh <- app.Server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal().Err(err).Msg("server crashed")
		}
	case <-ctx.Done():
		zlog.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Server.Shutdown(shutdownCtx); err != nil {
			zlog.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}

func NewApp(cfg *config.Config, db *sql.DB) *App {
	// 1) Infrastructure
	repo := postgres.New(db)

	// 2) Application
	svc := listing.New(repo, listing.Config{
		FailSoft:      cfg.ListingFailSoft,
		SnapshotReads: cfg.ListingSnapshotReads,
		Location:      cfg.ListingLocation,
	})

	// 3) Transport
	h := handlers.NewEventsHandler(svc)
	z := handlers.NewHealthHandler(repo)

	// 4) Router
	httpHandler := router.New(h, z, cfg)

	// 5) Server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpHandler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &App{
		Config: cfg,
		Server: srv,
		DB:     db,
	}
}
