// Package services – RecommendService
//
// This file implements the recommendation search. Candidates are found by a
// four-tier cascade that relaxes the budget and day bounds step by step:
//
//  1. exact:            budget <= B,        days <= D
//  2. budget_relaxed:   budget <= B*1.2,    days <= D
//  3. days_relaxed:     budget <= B*1.2,    days <= D+2
//  4. popular_fallback: ignore bounds, best liked trips of the type (max 5)
//
// The first tier with at least one row wins. Candidates are then scored by
// the classifier and sorted by probability, highest first.
package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-travel-planner/internal/domain"
	"github.com/tbourn/go-travel-planner/internal/ml"
	"github.com/tbourn/go-travel-planner/internal/repo"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Search tiers, reported as the response "mode".
const (
	ModeExact           = "exact"
	ModeBudgetRelaxed   = "budget_relaxed"
	ModeDaysRelaxed     = "days_relaxed"
	ModePopularFallback = "popular_fallback"
)

// Scoring sources, reported as "scored_by".
const (
	ScoredByModel    = "model"
	ScoredByBaseline = "baseline"
)

const (
	popularLimit   = 5
	daysRelaxation = 2
)

// RecommendInput is the validated shape of a recommendation request.
// Destination is informational; the search keys on travel type and bounds.
type RecommendInput struct {
	Destination string
	Budget      int64
	Days        int
	TravelType  string
}

// ScoredTrip is one ranked candidate.
type ScoredTrip struct {
	Trip                domain.Trip
	LikeProbability     float64
	DestinationLikeRate float64
}

// Recommendation is the ranked result of a search.
type Recommendation struct {
	Mode     string
	ScoredBy string
	Trips    []ScoredTrip
}

// RecommendService finds and ranks candidate trips.
type RecommendService struct {
	DB    *gorm.DB
	Model ml.Classifier
}

// RelaxedBudget returns floor(b * 1.2) for b >= 0, saturating at
// math.MaxInt64 so the relaxed bound never drops below b.
func RelaxedBudget(b int64) int64 {
	if b > math.MaxInt64-b/5 {
		return math.MaxInt64
	}
	return b + b/5
}

// relaxedDays widens the day bound by daysRelaxation, saturating at math.MaxInt.
func relaxedDays(d int) int {
	if d > math.MaxInt-daysRelaxation {
		return math.MaxInt
	}
	return d + daysRelaxation
}

// Recommend runs the tier cascade and ranks the winning tier's trips.
// It returns ErrNoTrips when no tier yields a candidate.
func (s *RecommendService) Recommend(ctx context.Context, in RecommendInput) (*Recommendation, error) {
	tr := otel.Tracer("services/RecommendService")
	ctx, span := tr.Start(ctx, "Recommend",
		trace.WithAttributes(
			attribute.String("trip.travel_type", in.TravelType),
			attribute.Int64("trip.budget", in.Budget),
			attribute.Int("trip.days", in.Days),
		),
	)
	defer span.End()

	travelType := normalizeTravelType(in.TravelType)
	if travelType == "" {
		return nil, ErrEmptyTravelType
	}
	if in.Budget < 0 {
		return nil, ErrInvalidBudget
	}
	if in.Days < 0 {
		return nil, ErrInvalidDays
	}

	mode, trips, err := s.search(ctx, travelType, in.Budget, in.Days)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("search.mode", mode), attribute.Int("search.candidates", len(trips)))
	recommendationsTotal.WithLabelValues(mode).Inc()

	scored, scoredBy, err := s.score(ctx, trips)
	if err != nil {
		return nil, err
	}
	return &Recommendation{Mode: mode, ScoredBy: scoredBy, Trips: scored}, nil
}

// search walks the tiers in order and returns the first non-empty one.
func (s *RecommendService) search(ctx context.Context, travelType string, budget int64, days int) (string, []domain.Trip, error) {
	relaxed := RelaxedBudget(budget)
	tiers := []struct {
		mode   string
		budget int64
		days   int
	}{
		{ModeExact, budget, days},
		{ModeBudgetRelaxed, relaxed, days},
		{ModeDaysRelaxed, relaxed, relaxedDays(days)},
	}
	for _, t := range tiers {
		trips, err := repo.FindTrips(ctx, s.DB, travelType, t.budget, t.days)
		if err != nil {
			return "", nil, fmt.Errorf("%s search: %w", t.mode, err)
		}
		if len(trips) > 0 {
			return t.mode, trips, nil
		}
	}

	trips, err := repo.PopularTrips(ctx, s.DB, travelType, popularLimit)
	if err != nil {
		return "", nil, fmt.Errorf("popular search: %w", err)
	}
	if len(trips) == 0 {
		return "", nil, ErrNoTrips
	}
	return ModePopularFallback, trips, nil
}

// score attaches a like probability to every trip and sorts them. Without
// a usable model the destination like rate stands in for the probability.
func (s *RecommendService) score(ctx context.Context, trips []domain.Trip) ([]ScoredTrip, string, error) {
	rates := make(map[string]float64)
	out := make([]ScoredTrip, len(trips))
	scoredBy := ScoredByModel
	if s.Model == nil {
		scoredBy = ScoredByBaseline
	}

	for i := range trips {
		t := trips[i]
		key := strings.ToLower(t.Destination)
		rate, ok := rates[key]
		if !ok {
			liked, total, err := repo.LikeStats(ctx, s.DB, t.Destination)
			if err != nil {
				return nil, "", fmt.Errorf("like stats: %w", err)
			}
			rate = ml.LikeRate(liked, total)
			rates[key] = rate
		}
		out[i] = ScoredTrip{Trip: t, DestinationLikeRate: rate, LikeProbability: rate}

		if scoredBy != ScoredByModel {
			continue
		}
		p, err := s.Model.PredictProbability(tripFeatures(&t, rate))
		if err != nil {
			if !errors.Is(err, ml.ErrNoModel) {
				log.Warn().Err(err).Uint("trip_id", t.ID).Msg("model prediction failed; using like rate")
			}
			scoredBy = ScoredByBaseline
			continue
		}
		out[i].LikeProbability = p
	}

	// A partial model run would mix scales; fall back for all rows.
	if scoredBy == ScoredByBaseline {
		for i := range out {
			out[i].LikeProbability = out[i].DestinationLikeRate
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].LikeProbability > out[b].LikeProbability
	})
	return out, scoredBy, nil
}
