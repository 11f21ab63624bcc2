// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file holds the candidate queries used by the
// recommendation search.
//
// Functions:
//
//   - FindTrips(ctx, db, travelType, maxBudget, maxDays) -> []domain.Trip
//     Trips of one travel type within budget/day bounds, in id order.
//
//   - PopularTrips(ctx, db, travelType, limit) -> []domain.Trip
//     Trips of one travel type ranked by mean "liked" feedback; trips without
//     feedback sort last, ties by id.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-travel-planner/internal/domain"
)

// FindTrips returns trips whose travel type matches and whose budget and
// days do not exceed the given bounds.
func FindTrips(ctx context.Context, db *gorm.DB, travelType string, maxBudget int64, maxDays int) ([]domain.Trip, error) {
	var out []domain.Trip
	err := db.WithContext(ctx).
		Where("travel_type = ? AND budget <= ? AND days <= ?", travelType, maxBudget, maxDays).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

// PopularTrips returns up to limit trips of travelType ordered by their
// average liked rate, descending.
func PopularTrips(ctx context.Context, db *gorm.DB, travelType string, limit int) ([]domain.Trip, error) {
	var out []domain.Trip
	err := db.WithContext(ctx).
		Table("trips AS t").
		Select("t.*, AVG(CAST(f.liked AS REAL)) AS avg_liked").
		Joins("LEFT JOIN feedback f ON f.trip_id = t.id").
		Where("t.travel_type = ?", travelType).
		Group("t.id").
		Order("avg_liked IS NULL, avg_liked DESC, t.id ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
