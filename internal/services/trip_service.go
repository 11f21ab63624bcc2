// Package services – TripService
//
// Read-side use-cases over stored trips and learned preferences: paginated
// listing, a single trip with its itinerary days, and a user's interest
// weights.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/go-travel-planner/internal/domain"
	"github.com/tbourn/go-travel-planner/internal/repo"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TripService exposes stored trips.
type TripService struct {
	DB *gorm.DB
}

// ListPage returns paginated trips, newest first, plus the total count.
func (s *TripService) ListPage(ctx context.Context, page, pageSize int) ([]domain.Trip, int64, error) {
	tr := otel.Tracer("services/TripService")
	ctx, span := tr.Start(ctx, "ListPage",
		trace.WithAttributes(
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountTrips(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Trip{}, 0, nil
	}
	items, err := repo.ListTripsPage(ctx, s.DB, offset, pageSize)
	return items, total, err
}

// Version returns (count, max id) of the trip table for list ETags.
func (s *TripService) Version(ctx context.Context) (int64, uint, error) {
	return repo.TripsStats(ctx, s.DB)
}

// Get returns a trip and its stored itinerary days (empty for plan trips).
func (s *TripService) Get(ctx context.Context, id uint) (*domain.Trip, []domain.TripDay, error) {
	tr := otel.Tracer("services/TripService")
	ctx, span := tr.Start(ctx, "Get", trace.WithAttributes(attribute.Int64("trip.id", int64(id))))
	defer span.End()

	t, err := repo.GetTrip(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, ErrTripNotFound
		}
		return nil, nil, err
	}
	days, err := repo.ListTripDays(ctx, s.DB, id)
	if err != nil {
		return nil, nil, err
	}
	return t, days, nil
}

// Preferences returns the user's interest weights, heaviest first.
func (s *TripService) Preferences(ctx context.Context, userID string) ([]domain.UserPreference, error) {
	tr := otel.Tracer("services/TripService")
	ctx, span := tr.Start(ctx, "Preferences", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	prefs, err := repo.ListPreferences(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	if prefs == nil {
		prefs = []domain.UserPreference{}
	}
	return prefs, nil
}
