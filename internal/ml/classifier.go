// Package ml holds the "liked" classifier used to rank trip recommendations:
// feature vectors, a small logistic-regression model, its trainer, the
// on-disk artifact and a concurrency-safe holder for the live model.
package ml

import (
	"errors"
	"sync"
)

var (
	// ErrNoModel is returned when no trained model is loaded.
	ErrNoModel = errors.New("no model loaded")
	// ErrInsufficientData is returned when there are too few rows to train.
	ErrInsufficientData = errors.New("insufficient training data")
	// ErrCorruptModel is returned when a model's parameters are inconsistent.
	ErrCorruptModel = errors.New("corrupt model")
)

// DefaultLikeRate is the destination like rate assumed without feedback.
const DefaultLikeRate = 0.5

// Features is the classifier input for one trip.
type Features struct {
	Rating              float64
	Budget              float64
	Days                float64
	TravelType          string
	DestinationLikeRate float64
	CommentSentiment    float64
}

// Classifier predicts the probability that a trip will be liked.
type Classifier interface {
	PredictProbability(f Features) (float64, error)
}

// LikeRate returns liked/total, or DefaultLikeRate when total is zero.
func LikeRate(liked, total int64) float64 {
	if total <= 0 {
		return DefaultLikeRate
	}
	return float64(liked) / float64(total)
}

// Holder stores the live classifier and lets it be swapped while requests
// are reading it. The zero value holds no model.
type Holder struct {
	mu sync.RWMutex
	c  Classifier
}

// NewHolder returns a Holder seeded with c (which may be nil).
func NewHolder(c Classifier) *Holder {
	return &Holder{c: c}
}

// Set replaces the live classifier. A nil c unloads the model.
func (h *Holder) Set(c Classifier) {
	h.mu.Lock()
	h.c = c
	h.mu.Unlock()
}

// Get returns the live classifier or nil.
func (h *Holder) Get() Classifier {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.c
}

// Loaded reports whether a classifier is set.
func (h *Holder) Loaded() bool { return h.Get() != nil }

// PredictProbability delegates to the live classifier, or returns ErrNoModel.
func (h *Holder) PredictProbability(f Features) (float64, error) {
	c := h.Get()
	if c == nil {
		return 0, ErrNoModel
	}
	return c.PredictProbability(f)
}
