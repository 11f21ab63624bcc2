// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the aggregate queries behind the
// confidence estimator, the destination like rate and the trainer.
// Each function is context-aware and safe to call from services or the
// batch trainer.
package repo

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/tbourn/go-travel-planner/internal/domain"
)

// LikeStats returns how many feedback rows exist for trips with the given
// destination (case-insensitive) and how many of them were liked.
//
// Return values:
//   - liked: feedback rows with liked = true
//   - total: all feedback rows for the destination
//   - err:   database error, if any
func LikeStats(ctx context.Context, db *gorm.DB, destination string) (liked, total int64, err error) {
	var row struct {
		Liked sql.NullInt64
		Total int64
	}
	err = db.WithContext(ctx).Raw(`
		SELECT SUM(CASE WHEN f.liked THEN 1 ELSE 0 END) AS liked, COUNT(f.id) AS total
		FROM feedback f
		JOIN trips t ON t.id = f.trip_id
		WHERE LOWER(t.destination) = LOWER(?)`, destination).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Liked.Int64, row.Total, nil
}

// FeedbackTally counts positive (liked) and negative (not liked) feedback
// for a (destination, travel type) pair. Destination matching is
// case-insensitive.
func FeedbackTally(ctx context.Context, db *gorm.DB, destination, travelType string) (positive, negative int64, err error) {
	var row struct {
		Positive sql.NullInt64
		Negative sql.NullInt64
	}
	err = db.WithContext(ctx).Raw(`
		SELECT
			SUM(CASE WHEN f.liked THEN 1 ELSE 0 END)     AS positive,
			SUM(CASE WHEN f.liked THEN 0 ELSE 1 END)     AS negative
		FROM feedback f
		JOIN trips t ON t.id = f.trip_id
		WHERE LOWER(t.destination) = LOWER(?) AND t.travel_type = ?`, destination, travelType).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Positive.Int64, row.Negative.Int64, nil
}

// TrainingRow is one joined trip+feedback observation.
type TrainingRow struct {
	Rating      int
	Budget      int64
	Days        int
	TravelType  string
	Destination string
	Liked       bool
	Comment     string
}

// TrainingRows returns every feedback row joined with its trip where all
// model inputs are present, in feedback id order.
func TrainingRows(ctx context.Context, db *gorm.DB) ([]TrainingRow, error) {
	var out []TrainingRow
	err := db.WithContext(ctx).Raw(`
		SELECT
			f.rating                 AS rating,
			t.budget                 AS budget,
			t.days                   AS days,
			t.travel_type            AS travel_type,
			t.destination            AS destination,
			f.liked                  AS liked,
			COALESCE(f.comment, '')  AS comment
		FROM feedback f
		JOIN trips t ON t.id = f.trip_id
		WHERE f.rating IS NOT NULL
		  AND f.liked IS NOT NULL
		  AND t.budget IS NOT NULL
		  AND t.days IS NOT NULL
		  AND t.travel_type IS NOT NULL AND t.travel_type <> ''
		ORDER BY f.id ASC`).
		Scan(&out).Error
	return out, err
}

// TripsStats returns the number of stored trips and the highest trip id.
// Trips are immutable, so the pair changes exactly when a trip is added and
// works as a cheap list version for ETags. With no rows both are zero.
func TripsStats(ctx context.Context, db *gorm.DB) (count int64, maxID uint, err error) {
	q := db.WithContext(ctx).Model(&domain.Trip{})
	if err = q.Count(&count).Error; err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return 0, 0, nil
	}
	var row struct{ ID uint }
	if err = q.Select("id").Order("id DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, 0, err
	}
	return count, row.ID, nil
}
