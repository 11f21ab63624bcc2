// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file seeds a small demo catalogue of trips and
// feedback so the recommendation search and the trainer have something to
// work with on a fresh database.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-travel-planner/internal/domain"
)

// seedTrips is the demo trip catalogue (destination, budget, days, type).
var seedTrips = []domain.Trip{
	{Destination: "Manali", Budget: 25000, Days: 7, TravelType: "leisure"},
	{Destination: "Shimla", Budget: 20000, Days: 5, TravelType: "leisure"},
	{Destination: "Goa", Budget: 30000, Days: 6, TravelType: "leisure"},
	{Destination: "Udaipur", Budget: 22000, Days: 4, TravelType: "leisure"},
	{Destination: "Jaipur", Budget: 18000, Days: 3, TravelType: "leisure"},
	{Destination: "Coorg", Budget: 24000, Days: 5, TravelType: "leisure"},
	{Destination: "Darjeeling", Budget: 26000, Days: 6, TravelType: "leisure"},

	{Destination: "Rishikesh", Budget: 18000, Days: 4, TravelType: "adventure"},
	{Destination: "Bir Billing", Budget: 20000, Days: 4, TravelType: "adventure"},
	{Destination: "Spiti Valley", Budget: 42000, Days: 9, TravelType: "adventure"},
	{Destination: "Ladakh", Budget: 48000, Days: 10, TravelType: "adventure"},
	{Destination: "Meghalaya", Budget: 35000, Days: 8, TravelType: "adventure"},
	{Destination: "Andaman", Budget: 55000, Days: 7, TravelType: "adventure"},
}

// seedFeedback is keyed by destination; trip ids are resolved after insert.
var seedFeedback = []struct {
	Destination string
	Rating      int
	Liked       bool
	Comment     string
}{
	{"Manali", 5, true, "Amazing views and weather"},
	{"Goa", 4, true, "Great beaches and food"},
	{"Udaipur", 4, true, "Beautiful and peaceful"},
	{"Coorg", 5, true, "Very relaxing experience"},
	{"Rishikesh", 5, true, "Perfect for adventure sports"},
	{"Bir Billing", 4, true, "Paragliding was awesome"},
	{"Ladakh", 5, true, "Once in a lifetime experience"},
	{"Shimla", 2, false, "Too crowded during season"},
}

// SeedResult reports how many rows Seed inserted.
type SeedResult struct {
	Trips    int
	Feedback int
}

// Seed inserts the demo catalogue when the trips table is empty. With
// withFeedback it also inserts the demo feedback rows. A non-empty database
// is left untouched and a zero SeedResult is returned.
func Seed(ctx context.Context, db *gorm.DB, withFeedback bool) (SeedResult, error) {
	var res SeedResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&domain.Trip{}).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		now := time.Now().UTC()
		trips := make([]domain.Trip, len(seedTrips))
		copy(trips, seedTrips)
		for i := range trips {
			trips[i].Source = domain.SourceSeed
			trips[i].CreatedAt = now
		}
		if err := tx.Create(&trips).Error; err != nil {
			return err
		}
		res.Trips = len(trips)

		if !withFeedback {
			return nil
		}
		ids := make(map[string]uint, len(trips))
		for _, t := range trips {
			ids[t.Destination] = t.ID
		}
		rows := make([]domain.Feedback, 0, len(seedFeedback))
		for _, f := range seedFeedback {
			rows = append(rows, domain.Feedback{
				TripID:    ids[f.Destination],
				Rating:    f.Rating,
				Liked:     f.Liked,
				Comment:   f.Comment,
				CreatedAt: now,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		res.Feedback = len(rows)
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}
	return res, nil
}
