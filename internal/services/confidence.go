package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-travel-planner/internal/repo"
)

// Confidence labels returned by the estimator.
const (
	ConfidenceBaseline = "baseline"
	ConfidenceMedium   = "medium"
	ConfidenceHigh     = "high"
)

// Bucket maps positive/negative feedback counts to a confidence label.
//
// "baseline" covers both the no-data case and a negative majority; callers
// cannot tell the two apart from the label alone.
func Bucket(positive, negative int64) string {
	switch {
	case positive > negative:
		return ConfidenceHigh
	case positive == negative && positive > 0:
		return ConfidenceMedium
	default:
		return ConfidenceBaseline
	}
}

// EstimateConfidence tallies historical feedback for (destination,
// travelType) and buckets it.
func EstimateConfidence(ctx context.Context, db *gorm.DB, destination, travelType string) (string, error) {
	pos, neg, err := repo.FeedbackTally(ctx, db, destination, travelType)
	if err != nil {
		return ConfidenceBaseline, err
	}
	return Bucket(pos, neg), nil
}
