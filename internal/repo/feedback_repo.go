// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Feedback
// model.
//
// Feedback is append-only: there is no update or delete helper. trip_id is
// not a foreign key, so callers that care about the trip's existence must
// check it themselves (see services.FeedbackService).
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-travel-planner/internal/domain"
)

// CreateFeedback inserts fb. CreatedAt is set to UTC now when zero and the
// autoincrement ID is written back into fb.
func CreateFeedback(ctx context.Context, db *gorm.DB, fb *domain.Feedback) error {
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(fb).Error
}

// CountFeedback returns the total number of feedback rows. It uses a raw
// COUNT so a missing table surfaces as an error.
func CountFeedback(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Raw("SELECT COUNT(*) FROM feedback").Scan(&total).Error
	return total, err
}
