// Package services defines the business logic for trip planning, itinerary
// generation, recommendations, feedback and model retraining.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
package services

import "errors"

// Input validation errors.
var (
	// ErrEmptyDestination is returned when a request has no destination.
	ErrEmptyDestination = errors.New("destination is empty")

	// ErrInvalidBudget is returned for a negative budget.
	ErrInvalidBudget = errors.New("budget must be zero or positive")

	// ErrInvalidDays is returned when the day count is out of range.
	ErrInvalidDays = errors.New("days out of range")

	// ErrEmptyTravelType is returned when a recommendation request has no
	// travel type.
	ErrEmptyTravelType = errors.New("travel_type is empty")

	// ErrInvalidRating is returned when a rating is outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrCommentTooLong is returned when a feedback comment exceeds the
	// allowed length.
	ErrCommentTooLong = errors.New("comment too long")
)

// Lookup errors.
var (
	// ErrTripNotFound indicates that the referenced trip does not exist.
	ErrTripNotFound = errors.New("trip not found")

	// ErrNoTrips is returned by the recommendation search when no tier,
	// including the popularity fallback, produced a candidate.
	ErrNoTrips = errors.New("no matching trips")
)
