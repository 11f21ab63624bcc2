package ml

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

// ModelVersion is bumped whenever the feature layout changes.
const ModelVersion = 1

// numeric feature columns that are standardized before use
const numStandardized = 3

// Model is a fitted L2-regularized logistic regression over
//
//	[z(rating), z(budget), z(days), onehot(travel_type)..., like_rate, sentiment]
//
// Means and Stds hold the standardization parameters learned at fit time.
// Unknown travel types encode as all zeros.
type Model struct {
	Version     int       `json:"version"`
	TrainedAt   time.Time `json:"trained_at"`
	Rows        int       `json:"rows"`
	Accuracy    float64   `json:"accuracy"`
	TravelTypes []string  `json:"travel_types"`
	Means       []float64 `json:"means"`
	Stds        []float64 `json:"stds"`
	Weights     []float64 `json:"weights"`
	Bias        float64   `json:"bias"`
}

// dim is the expected feature vector length.
func (m *Model) dim() int { return numStandardized + len(m.TravelTypes) + 2 }

// Validate checks that the parameter shapes agree with each other.
func (m *Model) Validate() error {
	if m == nil {
		return ErrNoModel
	}
	if m.Version != ModelVersion {
		return fmt.Errorf("%w: version %d, want %d", ErrCorruptModel, m.Version, ModelVersion)
	}
	if len(m.Means) != numStandardized || len(m.Stds) != numStandardized {
		return fmt.Errorf("%w: standardization params", ErrCorruptModel)
	}
	if len(m.Weights) != m.dim() {
		return fmt.Errorf("%w: %d weights for %d features", ErrCorruptModel, len(m.Weights), m.dim())
	}
	return nil
}

// PredictProbability implements Classifier.
func (m *Model) PredictProbability(f Features) (float64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	return sigmoid(floats.Dot(m.Weights, m.vector(f)) + m.Bias), nil
}

// vector encodes f with the model's standardization and vocabulary.
func (m *Model) vector(f Features) []float64 {
	x := make([]float64, m.dim())
	raw := [numStandardized]float64{f.Rating, f.Budget, f.Days}
	for i, v := range raw {
		x[i] = (v - m.Means[i]) / m.Stds[i]
	}
	for i, tt := range m.TravelTypes {
		if tt == f.TravelType {
			x[numStandardized+i] = 1
			break
		}
	}
	x[len(x)-2] = f.DestinationLikeRate
	x[len(x)-1] = f.CommentSentiment
	return x
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
