// Command trainer fits the like-probability classifier on all stored trip
// feedback and writes the JSON model artifact. A running server picks the new
// artifact up on restart or through POST /admin/retrain.
//
// Usage:
//
//	trainer [-db data/travel.db] [-model data/travel_model.json] [-min-rows 5]
package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-travel-planner/internal/config"
	"github.com/tbourn/go-travel-planner/internal/ml"
	"github.com/tbourn/go-travel-planner/internal/repo"
	"github.com/tbourn/go-travel-planner/internal/services"
	"github.com/tbourn/go-travel-planner/internal/sysutil"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	flag.StringVar(&cfg.ModelPath, "model", cfg.ModelPath, "output model artifact path")
	flag.IntVar(&cfg.MinTrainRows, "min-rows", cfg.MinTrainRows, "minimum labelled rows required to train")
	flag.Parse()

	sysutil.SetupLogger(cfg.LogLevel, true, os.Stderr)

	if err := sysutil.EnsureParentDir(cfg.ModelPath); err != nil {
		log.Fatal().Err(err).Msg("create model dir")
	}
	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("db_path", cfg.DBPath).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	rep, err := services.NewRetrainer(db, nil, cfg).Retrain(context.Background())
	switch {
	case errors.Is(err, ml.ErrInsufficientData):
		log.Warn().Int("min_rows", cfg.MinTrainRows).Msg("not enough feedback to train, model unchanged")
		os.Exit(2)
	case err != nil:
		log.Fatal().Err(err).Msg("train")
	}
	log.Info().
		Int("rows", rep.Rows).
		Int("train_rows", rep.TrainRows).
		Int("test_rows", rep.TestRows).
		Float64("accuracy", rep.Accuracy).
		Str("model_path", cfg.ModelPath).
		Msg("model saved")
}
