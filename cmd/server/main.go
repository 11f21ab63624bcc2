// Command server runs the travel planner HTTP API.
//
// @title           Travel Planner API
// @version         1.0
// @description     Plans trips, generates itineraries, recommends catalogue trips and learns from feedback.
// @BasePath        /
// @schemes         http https
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	_ "github.com/tbourn/go-travel-planner/docs"
	"github.com/tbourn/go-travel-planner/internal/config"
	httpapi "github.com/tbourn/go-travel-planner/internal/http"
	"github.com/tbourn/go-travel-planner/internal/ml"
	"github.com/tbourn/go-travel-planner/internal/observability"
	"github.com/tbourn/go-travel-planner/internal/repo"
	"github.com/tbourn/go-travel-planner/internal/services"
	"github.com/tbourn/go-travel-planner/internal/sysutil"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	sysutil.SetupLogger(cfg.LogLevel, cfg.LogPretty, os.Stderr)
	appVersion := sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, appVersion)
	if err != nil {
		log.Fatal().Err(err).Msg("setup tracing")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("tracing shutdown")
		}
	}()

	for _, p := range []string{cfg.DBPath, cfg.ModelPath} {
		if err := sysutil.EnsureParentDir(p); err != nil {
			log.Fatal().Err(err).Str("path", p).Msg("create data dir")
		}
	}
	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("db_path", cfg.DBPath).Msg("open database")
	}
	if cfg.OTEL.Enabled {
		if err := repo.EnableTracing(db); err != nil {
			log.Warn().Err(err).Msg("gorm tracing disabled")
		}
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	if cfg.SeedOnStart {
		res, err := repo.Seed(ctx, db, true)
		if err != nil {
			log.Fatal().Err(err).Msg("seed")
		}
		log.Info().Int("trips", res.Trips).Int("feedback", res.Feedback).Msg("seeded demo catalogue")
	}

	retrainer := services.NewRetrainer(db, ml.NewHolder(nil), cfg)
	if loaded, err := retrainer.LoadModel(); err != nil {
		log.Warn().Err(err).Str("model_path", cfg.ModelPath).Msg("model artifact unreadable, scoring falls back to baseline")
	} else {
		log.Info().Bool("model_loaded", loaded).Str("model_path", cfg.ModelPath).Msg("model")
	}

	go purgeIdempotency(ctx, db, time.Hour)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, retrainer, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", appVersion).Str("base_path", cfg.APIBasePath).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// purgeIdempotency deletes expired idempotency records every interval until
// ctx is done.
func purgeIdempotency(ctx context.Context, db *gorm.DB, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := repo.PurgeExpiredIdempotency(ctx, db, now.UTC())
			if err != nil {
				log.Warn().Err(err).Msg("purge idempotency records")
				continue
			}
			if n > 0 {
				log.Debug().Int64("deleted", n).Msg("purged expired idempotency records")
			}
		}
	}
}
