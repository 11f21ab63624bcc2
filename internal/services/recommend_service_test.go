package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tbourn/go-travel-planner/internal/ml"
)

func TestRelaxedBudget(t *testing.T) {
	cases := map[int64]int64{
		0:                         0,
		20000:                     24000,
		1:                         1,
		9:                         10,
		25000:                     30000,
		4_000_000_000_000_000_000: 4_800_000_000_000_000_000,
		math.MaxInt64 / 6 * 5:     math.MaxInt64 / 6 * 6,
		math.MaxInt64 - 1:         math.MaxInt64,
		math.MaxInt64:             math.MaxInt64,
	}
	for in, want := range cases {
		if got := RelaxedBudget(in); got != want {
			t.Errorf("RelaxedBudget(%d) = %d, want %d", in, got, want)
		}
		if got := RelaxedBudget(in); got < in {
			t.Errorf("RelaxedBudget(%d) = %d is below its input", in, got)
		}
	}
}

func TestRelaxedDays(t *testing.T) {
	cases := map[int]int{0: 2, 5: 7, math.MaxInt - 2: math.MaxInt, math.MaxInt: math.MaxInt}
	for in, want := range cases {
		if got := relaxedDays(in); got != want {
			t.Errorf("relaxedDays(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestRecommend_HugeBoundsKeepCascadeOrder(t *testing.T) {
	db := newTestDB(t)
	seedTrip(t, db, tripOf("Goa", 3_000_000_000_000_000_000, 6, "leisure"))
	seedTrip(t, db, tripOf("Shimla", 5_000_000_000_000_000_000, 3, "leisure"))

	s := &RecommendService{DB: db}
	ctx := context.Background()

	rec, err := s.Recommend(ctx, RecommendInput{Budget: 4_000_000_000_000_000_000, Days: 4, TravelType: "leisure"})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if rec.Mode != ModeDaysRelaxed || len(rec.Trips) != 1 || rec.Trips[0].Trip.Destination != "Goa" {
		t.Fatalf("got mode=%s trips=%+v, want days_relaxed with Goa", rec.Mode, rec.Trips)
	}

	rec, err = s.Recommend(ctx, RecommendInput{Budget: math.MaxInt64, Days: math.MaxInt, TravelType: "leisure"})
	if err != nil {
		t.Fatalf("Recommend max bounds: %v", err)
	}
	if rec.Mode != ModeExact || len(rec.Trips) != 2 {
		t.Fatalf("got mode=%s count=%d, want exact/2", rec.Mode, len(rec.Trips))
	}
}

func TestRecommend_EmptyDBReturnsErrNoTrips(t *testing.T) {
	s := &RecommendService{DB: newTestDB(t)}
	_, err := s.Recommend(context.Background(), RecommendInput{Destination: "Goa", Budget: 20000, Days: 5, TravelType: "leisure"})
	if !errors.Is(err, ErrNoTrips) {
		t.Fatalf("expected ErrNoTrips, got %v", err)
	}
}

func TestRecommend_Validation(t *testing.T) {
	s := &RecommendService{DB: newTestDB(t)}
	ctx := context.Background()
	if _, err := s.Recommend(ctx, RecommendInput{Budget: 1, Days: 1}); !errors.Is(err, ErrEmptyTravelType) {
		t.Fatalf("expected ErrEmptyTravelType, got %v", err)
	}
	if _, err := s.Recommend(ctx, RecommendInput{TravelType: "x", Budget: -1}); !errors.Is(err, ErrInvalidBudget) {
		t.Fatalf("expected ErrInvalidBudget, got %v", err)
	}
	if _, err := s.Recommend(ctx, RecommendInput{TravelType: "x", Days: -1}); !errors.Is(err, ErrInvalidDays) {
		t.Fatalf("expected ErrInvalidDays, got %v", err)
	}
}

func TestRecommend_TierCascade(t *testing.T) {
	cases := []struct {
		name   string
		budget int64
		days   int
		mode   string
		count  int
	}{
		// Jaipur 18000/3 and Shimla 20000/5 fit exactly.
		{"exact", 20000, 5, ModeExact, 2},
		// nothing <= 17000, but <= 20400 gives Jaipur (18000/3) and Shimla (20000/5)
		{"budget relaxed", 17000, 5, ModeBudgetRelaxed, 2},
		// days <= 2 fails in tiers 1-2; D+2 = 4 admits Jaipur only
		{"days relaxed", 20000, 2, ModeDaysRelaxed, 1},
		// nothing within 1000 budget in any bounded tier
		{"popular", 1000, 1, ModePopularFallback, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := newTestDB(t)
			seedTrip(t, db, tripOf("Jaipur", 18000, 3, "leisure"))
			seedTrip(t, db, tripOf("Shimla", 20000, 5, "leisure"))
			seedTrip(t, db, tripOf("Goa", 30000, 6, "leisure"))
			seedTrip(t, db, tripOf("Rishikesh", 18000, 4, "adventure"))

			before := testutil.ToFloat64(recommendationsTotal.WithLabelValues(tc.mode))
			s := &RecommendService{DB: db}
			rec, err := s.Recommend(context.Background(), RecommendInput{Budget: tc.budget, Days: tc.days, TravelType: "Leisure"})
			if err != nil {
				t.Fatalf("Recommend: %v", err)
			}
			if rec.Mode != tc.mode || len(rec.Trips) != tc.count {
				t.Fatalf("got mode=%s count=%d, want %s/%d", rec.Mode, len(rec.Trips), tc.mode, tc.count)
			}
			for _, st := range rec.Trips {
				if st.Trip.TravelType != "leisure" {
					t.Fatalf("wrong travel type in results: %+v", st.Trip)
				}
			}
			if after := testutil.ToFloat64(recommendationsTotal.WithLabelValues(tc.mode)); after != before+1 {
				t.Fatalf("recommendations counter not incremented for %s", tc.mode)
			}
		})
	}
}

func TestRecommend_BaselineScoringUsesLikeRate(t *testing.T) {
	db := newTestDB(t)
	a := seedTrip(t, db, tripOf("Shimla", 20000, 5, "leisure"))
	b := seedTrip(t, db, tripOf("Coorg", 20000, 5, "leisure"))
	c := seedTrip(t, db, tripOf("Udaipur", 20000, 4, "leisure"))
	seedFeedback(t, db, a.ID, 2, false, "")
	seedFeedback(t, db, b.ID, 5, true, "")

	s := &RecommendService{DB: db}
	rec, err := s.Recommend(context.Background(), RecommendInput{Budget: 20000, Days: 5, TravelType: "leisure"})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if rec.ScoredBy != ScoredByBaseline {
		t.Fatalf("expected baseline scoring, got %s", rec.ScoredBy)
	}
	// Coorg 1.0, Udaipur default 0.5, Shimla 0.0
	wantIDs := []uint{b.ID, c.ID, a.ID}
	wantP := []float64{1, ml.DefaultLikeRate, 0}
	for i := range wantIDs {
		if rec.Trips[i].Trip.ID != wantIDs[i] || rec.Trips[i].LikeProbability != wantP[i] {
			t.Fatalf("rank %d: got %+v", i, rec.Trips[i])
		}
	}
}

func TestRecommend_ModelScoringSortsDescending(t *testing.T) {
	db := newTestDB(t)
	cheap := seedTrip(t, db, tripOf("Jaipur", 10000, 3, "leisure"))
	mid := seedTrip(t, db, tripOf("Shimla", 15000, 3, "leisure"))
	dear := seedTrip(t, db, tripOf("Goa", 20000, 3, "leisure"))

	// probability grows with budget
	model := fixedModel(func(f ml.Features) float64 { return f.Budget / 100000 })
	s := &RecommendService{DB: db, Model: model}
	rec, err := s.Recommend(context.Background(), RecommendInput{Budget: 20000, Days: 3, TravelType: "leisure"})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if rec.ScoredBy != ScoredByModel || rec.Mode != ModeExact {
		t.Fatalf("unexpected meta: %+v", rec)
	}
	order := []uint{dear.ID, mid.ID, cheap.ID}
	for i, id := range order {
		if rec.Trips[i].Trip.ID != id {
			t.Fatalf("rank %d: want %d got %d", i, id, rec.Trips[i].Trip.ID)
		}
		if rec.Trips[i].DestinationLikeRate != ml.DefaultLikeRate {
			t.Fatalf("expected default like rate, got %v", rec.Trips[i].DestinationLikeRate)
		}
	}
}

func TestRecommend_EmptyHolderFallsBackToBaseline(t *testing.T) {
	db := newTestDB(t)
	seedTrip(t, db, tripOf("Goa", 100, 1, "leisure"))
	s := &RecommendService{DB: db, Model: ml.NewHolder(nil)}
	rec, err := s.Recommend(context.Background(), RecommendInput{Budget: 100, Days: 1, TravelType: "leisure"})
	if err != nil || rec.ScoredBy != ScoredByBaseline {
		t.Fatalf("expected baseline, got %+v, %v", rec, err)
	}
	if rec.Trips[0].LikeProbability != ml.DefaultLikeRate {
		t.Fatalf("expected default like rate as probability, got %v", rec.Trips[0].LikeProbability)
	}
}
