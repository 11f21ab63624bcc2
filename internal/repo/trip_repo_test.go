package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbourn/go-travel-planner/internal/domain"
)

func TestCreateTrip_SetsIDAndCreatedAt(t *testing.T) {
	db := newMigratedDB(t)
	start := time.Now().UTC()

	tr := &domain.Trip{Destination: "Manali", Budget: 25000, Days: 7, TravelType: "leisure", Interests: "nature,food"}
	if err := CreateTrip(context.Background(), db, tr); err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}
	if tr.ID == 0 {
		t.Fatalf("expected id to be assigned")
	}
	if tr.CreatedAt.IsZero() || tr.CreatedAt.Before(start.Add(-time.Minute)) {
		t.Fatalf("CreatedAt not set reasonably: %v", tr.CreatedAt)
	}

	got, err := GetTrip(context.Background(), db, tr.ID)
	if err != nil {
		t.Fatalf("GetTrip: %v", err)
	}
	if got.Destination != "Manali" || got.Budget != 25000 || got.Days != 7 || got.Source != domain.SourcePlan {
		t.Fatalf("unexpected trip: %+v", got)
	}
	if il := got.InterestList(); len(il) != 2 || il[0] != "nature" || il[1] != "food" {
		t.Fatalf("unexpected interests: %v", il)
	}
}

func TestGetTrip_NotFound(t *testing.T) {
	db := newMigratedDB(t)
	_, err := GetTrip(context.Background(), db, 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateTrip_Error_NoTable(t *testing.T) {
	db := newTestDB(t /* no migrations */)
	if err := CreateTrip(context.Background(), db, &domain.Trip{Destination: "x"}); err == nil {
		t.Fatalf("expected error when trips table is missing")
	}
}

func TestCreateTripWithDays_PersistsDaysInOrder(t *testing.T) {
	db := newMigratedDB(t)
	tr := &domain.Trip{Destination: "Goa", Days: 2, Source: domain.SourceItinerary}
	days := []domain.TripDay{
		{Day: 2, Morning: "m2", Afternoon: "a2", Evening: "e2"},
		{Day: 1, Morning: "m1", Afternoon: "a1", Evening: "e1"},
	}
	if err := CreateTripWithDays(context.Background(), db, tr, days); err != nil {
		t.Fatalf("CreateTripWithDays: %v", err)
	}

	got, err := ListTripDays(context.Background(), db, tr.ID)
	if err != nil {
		t.Fatalf("ListTripDays: %v", err)
	}
	if len(got) != 2 || got[0].Day != 1 || got[1].Day != 2 {
		t.Fatalf("unexpected days: %+v", got)
	}
	if got[0].TripID != tr.ID || got[0].Morning != "m1" {
		t.Fatalf("day not linked to trip: %+v", got[0])
	}
}

func TestCreateTripWithDays_RollsBackOnDayError(t *testing.T) {
	db := newTestDB(t, &domain.Trip{}) // trip_days missing
	tr := &domain.Trip{Destination: "Goa", Days: 1}
	err := CreateTripWithDays(context.Background(), db, tr, []domain.TripDay{{Day: 1}})
	if err == nil {
		t.Fatalf("expected error when trip_days table is missing")
	}
	n, _ := CountTrips(context.Background(), db)
	if n != 0 {
		t.Fatalf("expected trip insert to be rolled back, found %d trips", n)
	}
}

func TestListTripsPage_OrderAndWindow(t *testing.T) {
	db := newMigratedDB(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, d := range []string{"A", "B", "C", "D"} {
		tr := &domain.Trip{Destination: d, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := CreateTrip(context.Background(), db, tr); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	total, err := CountTrips(context.Background(), db)
	if err != nil || total != 4 {
		t.Fatalf("CountTrips = %d, %v", total, err)
	}

	page, err := ListTripsPage(context.Background(), db, 1, 2)
	if err != nil {
		t.Fatalf("ListTripsPage: %v", err)
	}
	if len(page) != 2 || page[0].Destination != "C" || page[1].Destination != "B" {
		t.Fatalf("unexpected page: %+v", page)
	}
}
