// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the per-user interest weight store.
//
// Weights are only ever incremented. IncrementPreferences performs a single
// INSERT … ON CONFLICT DO UPDATE statement so concurrent feedback for the
// same (user, interest) cannot lose an update.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-travel-planner/internal/domain"
)

// IncrementPreferences adds delta to the weight of every interest for
// userID, creating missing rows with weight = delta. Interests are expected
// to be normalized and de-duplicated by the caller. An empty interest list
// is a no-op.
func IncrementPreferences(ctx context.Context, db *gorm.DB, userID string, interests []string, delta int) error {
	if len(interests) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]domain.UserPreference, 0, len(interests))
	for _, in := range interests {
		rows = append(rows, domain.UserPreference{
			UserID:    userID,
			Interest:  in,
			Weight:    delta,
			UpdatedAt: now,
		})
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "interest"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"weight":     gorm.Expr("user_preferences.weight + excluded.weight"),
			"updated_at": now,
		}),
	}).Create(&rows).Error
}

// ListPreferences returns the user's interest weights, heaviest first.
// Ties are ordered by interest name so the result is deterministic.
func ListPreferences(ctx context.Context, db *gorm.DB, userID string) ([]domain.UserPreference, error) {
	var out []domain.UserPreference
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("weight DESC, interest ASC").
		Find(&out).Error
	return out, err
}
