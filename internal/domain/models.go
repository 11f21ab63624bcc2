// Package domain defines the persistence models for trips, itinerary days,
// feedback, users and per-user interest weights. These types are mapped with
// GORM and form the core data layer of the travel planner.
package domain

import (
	"strings"
	"time"
)

// Trip sources recorded on creation.
const (
	SourcePlan      = "plan"
	SourceItinerary = "itinerary"
	SourceSeed      = "seed"
)

// Trip is a submitted (or seeded) trip request. Trips are immutable once
// created; feedback and itinerary days reference them by ID.
//
// Fields:
//   - ID: autoincrement integer primary key.
//   - UserID: optional owner (empty for anonymous plans and seed data).
//   - Destination: free-text destination name.
//   - Budget: total budget in whole currency units.
//   - Days: trip length.
//   - TravelType: enum-like lower-case tag ("leisure", "adventure", …).
//   - Interests: comma-joined ordered interest tags (see InterestList).
//   - Source: which endpoint created the row (plan|itinerary|seed).
type Trip struct {
	ID          uint      `json:"id"          gorm:"primaryKey;autoIncrement"`
	UserID      string    `json:"user_id,omitempty" gorm:"type:varchar(64);index"`
	Destination string    `json:"destination" gorm:"type:varchar(100);not null;index"`
	Budget      int64     `json:"budget"      gorm:"not null;default:0"`
	Days        int       `json:"days"        gorm:"not null;default:0"`
	TravelType  string    `json:"travel_type" gorm:"type:varchar(32);index"`
	Interests   string    `json:"-"           gorm:"type:varchar(200)"`
	Source      string    `json:"source"      gorm:"type:varchar(16);not null;default:'plan'"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the database table name for Trip.
func (Trip) TableName() string { return "trips" }

// InterestList splits the stored interests back into an ordered slice,
// dropping blanks.
func (t Trip) InterestList() []string { return SplitInterests(t.Interests) }

// TripDay is one generated itinerary day for a trip.
type TripDay struct {
	ID        uint   `json:"-"         gorm:"primaryKey;autoIncrement"`
	TripID    uint   `json:"-"         gorm:"not null;index:idx_trip_day,priority:1"`
	Day       int    `json:"day"       gorm:"not null;index:idx_trip_day,priority:2"`
	Morning   string `json:"morning"   gorm:"type:text"`
	Afternoon string `json:"afternoon" gorm:"type:text"`
	Evening   string `json:"evening"   gorm:"type:text"`

	Trip Trip `json:"-" gorm:"foreignKey:TripID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for TripDay.
func (TripDay) TableName() string { return "trip_days" }

// Feedback is a rating left on a trip. Rows are append-only. TripID is
// indexed but not a foreign key; feedback history outlives trips.
type Feedback struct {
	ID        uint      `json:"id"         gorm:"primaryKey;autoIncrement"`
	TripID    uint      `json:"trip_id"    gorm:"not null;index"`
	UserID    string    `json:"user_id,omitempty" gorm:"type:varchar(64);index"`
	Rating    int       `json:"rating"     gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Liked     bool      `json:"liked"      gorm:"not null"`
	Comment   string    `json:"comment,omitempty" gorm:"type:varchar(300)"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for Feedback.
func (Feedback) TableName() string { return "feedback" }

// User is a lightweight traveller record created the first time an id is seen.
type User struct {
	ID        string    `json:"id"         gorm:"type:varchar(64);primaryKey"`
	Name      string    `json:"name,omitempty"  gorm:"type:varchar(100)"`
	Email     *string   `json:"email,omitempty" gorm:"type:varchar(255);uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// UserPreference is the learned weight of one interest for one user.
// At most one row exists per (user_id, interest).
type UserPreference struct {
	ID        uint      `json:"-"        gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id"  gorm:"type:varchar(64);not null;uniqueIndex:ux_user_interest,priority:1"`
	Interest  string    `json:"interest" gorm:"type:varchar(64);not null;uniqueIndex:ux_user_interest,priority:2"`
	Weight    int       `json:"weight"   gorm:"not null;default:1"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for UserPreference.
func (UserPreference) TableName() string { return "user_preferences" }

// SplitInterests parses a comma-joined interest string.
func SplitInterests(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinInterests normalizes (trim, lower-case, dedupe) and joins interests
// for storage, preserving first-seen order.
func JoinInterests(in []string) string {
	return strings.Join(NormalizeInterests(in), ",")
}

// NormalizeInterests trims, lower-cases and dedupes tags, keeping order.
// Commas inside a tag are dropped since they delimit the stored form.
func NormalizeInterests(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, ",", " ")))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
