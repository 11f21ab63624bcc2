// Package services – PlannerService
//
// This file implements PlannerService, which serves the simplest planning
// flow: store the requested trip, estimate a confidence label from historical
// feedback, optionally attach the classifier's like probability, and return a
// short explanation with a plain-text itinerary.
//
// Observability: Plan is OpenTelemetry-instrumented.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-travel-planner/internal/domain"
	"github.com/tbourn/go-travel-planner/internal/itinerary"
	"github.com/tbourn/go-travel-planner/internal/ml"
	"github.com/tbourn/go-travel-planner/internal/repo"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"golang.org/x/text/language"
)

// Defaults for PlannerService when the corresponding field is zero.
const (
	defaultPlanDays = 3
	defaultMaxDays  = 30
)

// PlanInput is the validated shape of a plan request.
type PlanInput struct {
	UserID      string
	Destination string
	Budget      int64
	Days        int
	TravelType  string
	Interests   []string
}

// PlanResult is what Plan returns to the handler.
type PlanResult struct {
	TripID          uint
	Destination     string
	Confidence      string
	LikeProbability *float64
	Explanation     string
	Itinerary       []string
}

// PlannerService creates plan trips and labels them with a confidence.
type PlannerService struct {
	DB *gorm.DB

	// Model is optional; when nil or empty the like probability is omitted.
	Model     ml.Classifier
	Generator *itinerary.Generator

	Locale      language.Tag
	DefaultDays int
	MaxDays     int
}

// Plan validates in, stores the trip and builds the response.
func (s *PlannerService) Plan(ctx context.Context, in PlanInput) (*PlanResult, error) {
	tr := otel.Tracer("services/PlannerService")
	ctx, span := tr.Start(ctx, "Plan",
		trace.WithAttributes(
			attribute.String("trip.destination", in.Destination),
			attribute.Int("trip.days", in.Days),
		),
	)
	defer span.End()

	dest := normalizeDestination(in.Destination, s.Locale)
	if dest == "" {
		return nil, ErrEmptyDestination
	}
	if in.Budget < 0 {
		return nil, ErrInvalidBudget
	}
	days := in.Days
	if days == 0 {
		days = s.defaultDays()
	}
	if days < 0 || days > s.maxDays() {
		return nil, ErrInvalidDays
	}
	travelType := normalizeTravelType(in.TravelType)
	interests := domain.NormalizeInterests(in.Interests)

	trip := &domain.Trip{
		UserID:      in.UserID,
		Destination: dest,
		Budget:      in.Budget,
		Days:        days,
		TravelType:  travelType,
		Interests:   strings.Join(interests, ","),
		Source:      domain.SourcePlan,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.UserID != "" {
			if err := repo.EnsureUser(ctx, tx, in.UserID); err != nil {
				return err
			}
		}
		return repo.CreateTrip(ctx, tx, trip)
	})
	if err != nil {
		return nil, fmt.Errorf("create trip: %w", err)
	}
	plansTotal.WithLabelValues(domain.SourcePlan).Inc()

	confidence, err := EstimateConfidence(ctx, s.DB, dest, travelType)
	if err != nil {
		return nil, fmt.Errorf("estimate confidence: %w", err)
	}

	res := &PlanResult{
		TripID:      trip.ID,
		Destination: dest,
		Confidence:  confidence,
		Explanation: Explain(interests, confidence),
		Itinerary:   s.itineraryLines(days, interests),
	}
	if p, ok := s.likeProbability(ctx, trip); ok {
		res.LikeProbability = &p
	}
	span.SetAttributes(attribute.String("plan.confidence", confidence))
	return res, nil
}

// likeProbability scores trip with the loaded model. ok is false when no
// model is available or scoring failed.
func (s *PlannerService) likeProbability(ctx context.Context, trip *domain.Trip) (float64, bool) {
	if s.Model == nil {
		return 0, false
	}
	liked, total, err := repo.LikeStats(ctx, s.DB, trip.Destination)
	if err != nil {
		log.Warn().Err(err).Str("destination", trip.Destination).Msg("like stats failed")
		return 0, false
	}
	p, err := s.Model.PredictProbability(tripFeatures(trip, ml.LikeRate(liked, total)))
	if err != nil {
		if !errors.Is(err, ml.ErrNoModel) {
			log.Warn().Err(err).Uint("trip_id", trip.ID).Msg("model prediction failed")
		}
		return 0, false
	}
	return p, true
}

func (s *PlannerService) itineraryLines(days int, interests []string) []string {
	gen := s.Generator
	if gen == nil {
		gen = itinerary.New()
	}
	plan := gen.Generate(days, interests)
	out := make([]string, len(plan))
	for i, d := range plan {
		out[i] = fmt.Sprintf("Day %d: %s, then %s. Evening: %s", d.Day, d.Morning, d.Afternoon, d.Evening)
	}
	return out
}

func (s *PlannerService) defaultDays() int {
	if s.DefaultDays > 0 {
		return s.DefaultDays
	}
	return defaultPlanDays
}

func (s *PlannerService) maxDays() int {
	if s.MaxDays > 0 {
		return s.MaxDays
	}
	return defaultMaxDays
}

// tripFeatures builds the classifier input for a candidate trip. Rating is
// the neutral midpoint and the comment sentiment is zero since neither is
// known before the trip is taken.
func tripFeatures(t *domain.Trip, likeRate float64) ml.Features {
	return ml.Features{
		Rating:              3,
		Budget:              float64(t.Budget),
		Days:                float64(t.Days),
		TravelType:          t.TravelType,
		DestinationLikeRate: likeRate,
		CommentSentiment:    0,
	}
}

// Explain returns a one-sentence justification for a plan.
func Explain(interests []string, confidence string) string {
	if confidence == ConfidenceBaseline {
		return "Recommendation based on general travel popularity."
	}
	var reasons []string
	for _, in := range interests {
		switch in {
		case "nature":
			reasons = append(reasons, "you prefer nature-based trips")
		case "food":
			reasons = append(reasons, "you enjoy food experiences")
		case "adventure":
			reasons = append(reasons, "you like adventurous activities")
		case "culture", "history":
			reasons = append(reasons, "you are interested in local culture")
		}
	}
	reasons = dedupe(reasons)
	reasons = append(reasons, "similar trips received positive feedback")
	return "Recommended because " + strings.Join(reasons, " and ") + "."
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
