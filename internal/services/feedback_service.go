// Package services – FeedbackService
//
// This file implements FeedbackService, which records a rating on a trip.
// It enforces the rating range, checks that the trip exists, folds the
// rating into the user's interest weights and, every N-th feedback row,
// retrains the classifier. Service-level errors (ErrInvalidRating,
// ErrCommentTooLong, ErrTripNotFound) are returned for predictable cases so
// handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/tbourn/go-travel-planner/internal/domain"
	"github.com/tbourn/go-travel-planner/internal/repo"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MaxCommentRunes bounds the feedback comment length.
const MaxCommentRunes = 300

// FeedbackInput is the validated shape of a feedback request. A nil Liked
// is derived from the rating (rating >= 4).
type FeedbackInput struct {
	TripID  uint
	UserID  string
	Rating  int
	Liked   *bool
	Comment string
}

// FeedbackResult reports the stored row and what happened to the model.
type FeedbackResult struct {
	FeedbackID    uint
	Liked         bool
	RetrainStatus string
}

// FeedbackService implements the use-cases around trip feedback.
type FeedbackService struct {
	// DB is the database handle used for all feedback operations.
	DB *gorm.DB

	// Retrainer is optional; without it the status is always "waiting".
	Retrainer *Retrainer

	// RetrainEvery triggers a retrain whenever the total feedback count is a
	// multiple of it. Zero disables the trigger.
	RetrainEvery int
}

// Submit stores feedback for a trip.
//
// Semantics and validation:
//   - Rating must be 1..5; otherwise ErrInvalidRating.
//   - Comment must be at most MaxCommentRunes; otherwise ErrCommentTooLong.
//   - The trip must exist; otherwise ErrTripNotFound.
//   - When a user is known (from the input, else the trip owner) every
//     interest of the trip gains Rating weight for that user.
//
// The insert and the preference update commit together. Retraining runs
// after the commit and never fails the request.
func (s *FeedbackService) Submit(ctx context.Context, in FeedbackInput) (*FeedbackResult, error) {
	tr := otel.Tracer("services/FeedbackService")
	ctx, span := tr.Start(ctx, "Submit",
		trace.WithAttributes(
			attribute.Int64("trip.id", int64(in.TripID)),
			attribute.Int("feedback.rating", in.Rating),
		),
	)
	defer span.End()

	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if utf8.RuneCountInString(in.Comment) > MaxCommentRunes {
		return nil, ErrCommentTooLong
	}
	liked := in.Rating >= 4
	if in.Liked != nil {
		liked = *in.Liked
	}

	fb := &domain.Feedback{
		TripID:  in.TripID,
		UserID:  in.UserID,
		Rating:  in.Rating,
		Liked:   liked,
		Comment: in.Comment,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		trip, err := repo.GetTrip(ctx, tx, in.TripID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrTripNotFound
			}
			return err
		}

		userID := in.UserID
		if userID == "" {
			userID = trip.UserID
		}
		if userID != "" {
			if err := repo.EnsureUser(ctx, tx, userID); err != nil {
				return err
			}
		}
		if err := repo.CreateFeedback(ctx, tx, fb); err != nil {
			return err
		}
		if userID == "" {
			return nil
		}
		return repo.IncrementPreferences(ctx, tx, userID, trip.InterestList(), in.Rating)
	})
	if err != nil {
		if errors.Is(err, ErrTripNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("store feedback: %w", err)
	}
	feedbackTotal.Inc()

	res := &FeedbackResult{FeedbackID: fb.ID, Liked: liked, RetrainStatus: RetrainWaiting}
	if s.shouldRetrain(ctx) {
		res.RetrainStatus = s.Retrainer.Status(ctx)
	}
	span.SetAttributes(attribute.String("retrain.status", res.RetrainStatus))
	return res, nil
}

// shouldRetrain reports whether the current feedback count hits the
// retrain interval. A count error skips retraining.
func (s *FeedbackService) shouldRetrain(ctx context.Context) bool {
	if s.Retrainer == nil || s.RetrainEvery <= 0 {
		return false
	}
	n, err := repo.CountFeedback(ctx, s.DB)
	if err != nil || n == 0 {
		return false
	}
	return n%int64(s.RetrainEvery) == 0
}
