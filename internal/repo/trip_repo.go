// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Trip and
// TripDay models.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a trip is not found, functions return ErrNotFound
//     (an alias of gorm.ErrRecordNotFound).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// Functions:
//
//   - CreateTrip(ctx, db, trip) -> error
//     Inserts a new Trip row; the autoincrement ID is written back.
//
//   - CreateTripWithDays(ctx, db, trip, days) -> error
//     Inserts a trip and its itinerary days in one transaction.
//
//   - GetTrip(ctx, db, id) -> *domain.Trip, error
//     Fetches a single trip, or ErrNotFound if missing.
//
//   - ListTripDays(ctx, db, tripID) -> []domain.TripDay, error
//     Returns the stored itinerary for a trip ordered by day.
//
//   - CountTrips / ListTripsPage
//     Pagination helpers ordered by creation time descending.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-travel-planner/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateTrip inserts t. CreatedAt is set to UTC now when zero.
func CreateTrip(ctx context.Context, db *gorm.DB, t *domain.Trip) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(t).Error
}

// CreateTripWithDays inserts t and its itinerary days atomically. The days
// receive the new trip ID before insertion.
func CreateTripWithDays(ctx context.Context, db *gorm.DB, t *domain.Trip, days []domain.TripDay) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := CreateTrip(ctx, tx, t); err != nil {
			return err
		}
		if len(days) == 0 {
			return nil
		}
		for i := range days {
			days[i].TripID = t.ID
		}
		return tx.Omit("Trip").Create(&days).Error
	})
}

// GetTrip fetches a single trip by ID. If the record does not exist, it
// returns ErrNotFound.
func GetTrip(ctx context.Context, db *gorm.DB, id uint) (*domain.Trip, error) {
	var t domain.Trip
	if err := db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTripDays returns the itinerary days of a trip ordered by day number.
func ListTripDays(ctx context.Context, db *gorm.DB, tripID uint) ([]domain.TripDay, error) {
	var out []domain.TripDay
	err := db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("day ASC").
		Find(&out).Error
	return out, err
}

// CountTrips returns the total number of stored trips.
func CountTrips(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Trip{}).Count(&total).Error
	return total, err
}

// ListTripsPage returns a page of trips, most recent first (ties by id desc).
func ListTripsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Trip, error) {
	var out []domain.Trip
	err := db.WithContext(ctx).
		Order("created_at desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
