// Package services – ItineraryService
//
// This file implements ItineraryService, the personalized itinerary flow.
// The caller's interests are re-ordered by the user's learned preference
// weights, a day-by-day plan is generated from the reordered list, and the
// trip is stored together with its days.
package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-travel-planner/internal/domain"
	"github.com/tbourn/go-travel-planner/internal/itinerary"
	"github.com/tbourn/go-travel-planner/internal/repo"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"golang.org/x/text/language"
)

// ItineraryInput is the validated shape of an itinerary request.
type ItineraryInput struct {
	UserID      string
	Destination string
	Days        int
	Interests   []string
	Budget      int64
	TravelType  string
}

// ItineraryResult is the generated itinerary and the interest order used.
type ItineraryResult struct {
	TripID               uint
	Destination          string
	Days                 []itinerary.Day
	PrioritizedInterests []string
}

// ItineraryService generates and stores personalized itineraries.
type ItineraryService struct {
	DB        *gorm.DB
	Generator *itinerary.Generator
	Locale    language.Tag
	MaxDays   int
}

// Generate builds an itinerary for in. Days must be between 1 and MaxDays.
func (s *ItineraryService) Generate(ctx context.Context, in ItineraryInput) (*ItineraryResult, error) {
	tr := otel.Tracer("services/ItineraryService")
	ctx, span := tr.Start(ctx, "Generate",
		trace.WithAttributes(
			attribute.String("user.id", in.UserID),
			attribute.Int("trip.days", in.Days),
		),
	)
	defer span.End()

	dest := normalizeDestination(in.Destination, s.Locale)
	if dest == "" {
		return nil, ErrEmptyDestination
	}
	maxDays := s.MaxDays
	if maxDays <= 0 {
		maxDays = defaultMaxDays
	}
	if in.Days < 1 || in.Days > maxDays {
		return nil, ErrInvalidDays
	}
	if in.Budget < 0 {
		return nil, ErrInvalidBudget
	}
	interests := domain.NormalizeInterests(in.Interests)

	prioritized := interests
	if in.UserID != "" {
		prefs, err := repo.ListPreferences(ctx, s.DB, in.UserID)
		if err != nil {
			return nil, fmt.Errorf("load preferences: %w", err)
		}
		prioritized = Prioritize(prefs, interests)
	}

	gen := s.Generator
	if gen == nil {
		gen = itinerary.New()
	}
	plan := gen.Generate(in.Days, prioritized)

	trip := &domain.Trip{
		UserID:      in.UserID,
		Destination: dest,
		Budget:      in.Budget,
		Days:        in.Days,
		TravelType:  normalizeTravelType(in.TravelType),
		Interests:   strings.Join(interests, ","),
		Source:      domain.SourceItinerary,
	}
	rows := make([]domain.TripDay, len(plan))
	for i, d := range plan {
		rows[i] = domain.TripDay{Day: d.Day, Morning: d.Morning, Afternoon: d.Afternoon, Evening: d.Evening}
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.UserID != "" {
			if err := repo.EnsureUser(ctx, tx, in.UserID); err != nil {
				return err
			}
		}
		return repo.CreateTripWithDays(ctx, tx, trip, rows)
	})
	if err != nil {
		return nil, fmt.Errorf("create itinerary trip: %w", err)
	}
	plansTotal.WithLabelValues(domain.SourceItinerary).Inc()

	return &ItineraryResult{
		TripID:               trip.ID,
		Destination:          dest,
		Days:                 plan,
		PrioritizedInterests: prioritized,
	}, nil
}

// Prioritize orders interests by learned weight. prefs must already be
// sorted by weight (heaviest first). With no prefs the caller's list is
// returned unchanged; otherwise the weighted interests come first, followed
// by caller interests not already present in their original order.
func Prioritize(prefs []domain.UserPreference, interests []string) []string {
	if len(prefs) == 0 {
		return interests
	}
	out := make([]string, 0, len(prefs)+len(interests))
	seen := make(map[string]struct{}, len(prefs)+len(interests))
	for _, p := range prefs {
		if _, ok := seen[p.Interest]; ok {
			continue
		}
		seen[p.Interest] = struct{}{}
		out = append(out, p.Interest)
	}
	for _, in := range interests {
		if _, ok := seen[in]; ok {
			continue
		}
		seen[in] = struct{}{}
		out = append(out, in)
	}
	return out
}
