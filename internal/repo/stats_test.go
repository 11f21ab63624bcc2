package repo

import (
	"context"
	"testing"
)

func TestLikeStats_NoFeedback(t *testing.T) {
	db := newMigratedDB(t)
	mustTrip(t, db, "Goa", 30000, 6, "leisure")
	liked, total, err := LikeStats(context.Background(), db, "Goa")
	if err != nil || liked != 0 || total != 0 {
		t.Fatalf("expected (0,0,nil), got (%d,%d,%v)", liked, total, err)
	}
}

func TestLikeStats_AcrossTripsCaseInsensitive(t *testing.T) {
	db := newMigratedDB(t)
	a := mustTrip(t, db, "Goa", 30000, 6, "leisure")
	b := mustTrip(t, db, "goa", 10000, 3, "adventure")
	other := mustTrip(t, db, "Shimla", 20000, 5, "leisure")
	mustFeedback(t, db, a.ID, 5, true, "")
	mustFeedback(t, db, b.ID, 2, false, "")
	mustFeedback(t, db, b.ID, 4, true, "")
	mustFeedback(t, db, other.ID, 1, false, "")

	liked, total, err := LikeStats(context.Background(), db, "GOA")
	if err != nil {
		t.Fatalf("LikeStats: %v", err)
	}
	if liked != 2 || total != 3 {
		t.Fatalf("expected (2,3), got (%d,%d)", liked, total)
	}
}

func TestLikeStats_Error_NoTable(t *testing.T) {
	db := newTestDB(t)
	if _, _, err := LikeStats(context.Background(), db, "Goa"); err == nil {
		t.Fatalf("expected error due to missing tables")
	}
}

func TestFeedbackTally_FiltersByTravelType(t *testing.T) {
	db := newMigratedDB(t)
	l := mustTrip(t, db, "Manali", 25000, 7, "leisure")
	a := mustTrip(t, db, "Manali", 30000, 5, "adventure")
	mustFeedback(t, db, l.ID, 5, true, "")
	mustFeedback(t, db, l.ID, 4, true, "")
	mustFeedback(t, db, l.ID, 4, true, "")
	mustFeedback(t, db, l.ID, 2, false, "")
	mustFeedback(t, db, a.ID, 1, false, "")

	pos, neg, err := FeedbackTally(context.Background(), db, "manali", "leisure")
	if err != nil {
		t.Fatalf("FeedbackTally: %v", err)
	}
	if pos != 3 || neg != 1 {
		t.Fatalf("expected (3,1), got (%d,%d)", pos, neg)
	}

	pos, neg, err = FeedbackTally(context.Background(), db, "Nowhere", "leisure")
	if err != nil || pos != 0 || neg != 0 {
		t.Fatalf("expected zero tally, got (%d,%d,%v)", pos, neg, err)
	}
}

func TestTrainingRows_JoinsAndFilters(t *testing.T) {
	db := newMigratedDB(t)
	goa := mustTrip(t, db, "Goa", 30000, 6, "leisure")
	untyped := mustTrip(t, db, "Somewhere", 1000, 1, "")
	mustFeedback(t, db, goa.ID, 4, true, "Great beaches and food")
	mustFeedback(t, db, untyped.ID, 3, false, "")
	mustFeedback(t, db, 9999, 5, true, "orphan") // no trip, dropped by the join

	rows, err := TrainingRows(context.Background(), db)
	if err != nil {
		t.Fatalf("TrainingRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %+v", rows)
	}
	r := rows[0]
	if r.Rating != 4 || r.Budget != 30000 || r.Days != 6 || r.TravelType != "leisure" ||
		r.Destination != "Goa" || !r.Liked || r.Comment != "Great beaches and food" {
		t.Fatalf("unexpected row: %+v", r)
	}
}

func TestTripsStats(t *testing.T) {
	db := newMigratedDB(t)
	ctx := context.Background()

	n, maxID, err := TripsStats(ctx, db)
	if err != nil || n != 0 || maxID != 0 {
		t.Fatalf("empty: (%d,%d,%v)", n, maxID, err)
	}

	mustTrip(t, db, "Goa", 30000, 6, "leisure")
	last := mustTrip(t, db, "Manali", 25000, 7, "leisure")

	n, maxID, err = TripsStats(ctx, db)
	if err != nil || n != 2 || maxID != last.ID {
		t.Fatalf("got (%d,%d,%v), want (2,%d,nil)", n, maxID, err, last.ID)
	}
}

func TestTripsStats_Error_NoTable(t *testing.T) {
	if _, _, err := TripsStats(context.Background(), newTestDB(t)); err == nil {
		t.Fatalf("expected error due to missing tables")
	}
}
