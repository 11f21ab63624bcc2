package services

import (
	"context"
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-travel-planner/internal/domain"
	"github.com/tbourn/go-travel-planner/internal/ml"
	"github.com/tbourn/go-travel-planner/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seedTrip(t *testing.T, db *gorm.DB, tr domain.Trip) domain.Trip {
	t.Helper()
	if err := repo.CreateTrip(context.Background(), db, &tr); err != nil {
		t.Fatalf("seed trip: %v", err)
	}
	return tr
}

func seedFeedback(t *testing.T, db *gorm.DB, tripID uint, rating int, liked bool, comment string) {
	t.Helper()
	fb := domain.Feedback{TripID: tripID, Rating: rating, Liked: liked, Comment: comment}
	if err := repo.CreateFeedback(context.Background(), db, &fb); err != nil {
		t.Fatalf("seed feedback: %v", err)
	}
}

// fixedModel scores every trip with a function of its features.
type fixedModel func(ml.Features) float64

func (f fixedModel) PredictProbability(x ml.Features) (float64, error) { return f(x), nil }

// failingModel always errors.
type failingModel struct{ err error }

func (f failingModel) PredictProbability(ml.Features) (float64, error) { return 0, f.err }
