// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the users table helpers.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-travel-planner/internal/domain"
)

// EnsureUser inserts a users row for id unless one already exists.
func EnsureUser(ctx context.Context, db *gorm.DB, id string) error {
	u := &domain.User{ID: id, CreatedAt: time.Now().UTC()}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(u).Error
}
