// Command seed loads the demo trip catalogue (and optionally its feedback)
// into an empty database.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-travel-planner/internal/config"
	"github.com/tbourn/go-travel-planner/internal/repo"
	"github.com/tbourn/go-travel-planner/internal/sysutil"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	withFeedback := flag.Bool("feedback", true, "also insert demo feedback rows")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	flag.Parse()

	sysutil.SetupLogger(cfg.LogLevel, true, os.Stderr)

	if err := sysutil.EnsureParentDir(cfg.DBPath); err != nil {
		log.Fatal().Err(err).Msg("create data dir")
	}
	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("db_path", cfg.DBPath).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	res, err := repo.Seed(context.Background(), db, *withFeedback)
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	if res.Trips == 0 {
		log.Info().Str("db_path", cfg.DBPath).Msg("database already has trips, nothing seeded")
		return
	}
	log.Info().Int("trips", res.Trips).Int("feedback", res.Feedback).Str("db_path", cfg.DBPath).Msg("seeded")
}
