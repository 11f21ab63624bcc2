package ml

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Example is one labelled observation: a feedback row joined with its trip.
type Example struct {
	Rating      int
	Budget      int64
	Days        int
	TravelType  string
	Destination string
	Comment     string
	Liked       bool
}

// TrainConfig controls fitting.
type TrainConfig struct {
	MinRows      int
	Epochs       int
	LearningRate float64
	L2           float64
	HoldoutRatio float64
	Seed         int64
}

// DefaultTrainConfig returns the settings used by the server and trainer.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		MinRows:      5,
		Epochs:       500,
		LearningRate: 0.1,
		L2:           0.01,
		HoldoutRatio: 0.2,
		Seed:         42,
	}
}

// Report summarizes a training run.
type Report struct {
	Rows      int     `json:"rows"`
	TrainRows int     `json:"train_rows"`
	TestRows  int     `json:"test_rows"`
	Accuracy  float64 `json:"accuracy"`
}

// DestinationLikeRates returns the mean liked label per lower-cased
// destination across examples.
func DestinationLikeRates(examples []Example) map[string]float64 {
	liked := map[string]int64{}
	total := map[string]int64{}
	for _, e := range examples {
		k := strings.ToLower(e.Destination)
		total[k]++
		if e.Liked {
			liked[k]++
		}
	}
	out := make(map[string]float64, len(total))
	for k, n := range total {
		out[k] = LikeRate(liked[k], n)
	}
	return out
}

// buildFeatures turns examples into feature rows and labels. Destination
// like rates come from the training rows only; a destination seen only in
// the holdout gets DefaultLikeRate.
func buildFeatures(examples []Example, trainIdx []int) ([]Features, []float64) {
	train := make([]Example, len(trainIdx))
	for j, i := range trainIdx {
		train[j] = examples[i]
	}
	rates := DestinationLikeRates(train)

	feats := make([]Features, len(examples))
	labels := make([]float64, len(examples))
	for i, e := range examples {
		rate, ok := rates[strings.ToLower(e.Destination)]
		if !ok {
			rate = DefaultLikeRate
		}
		feats[i] = Features{
			Rating:              float64(e.Rating),
			Budget:              float64(e.Budget),
			Days:                float64(e.Days),
			TravelType:          e.TravelType,
			DestinationLikeRate: rate,
			CommentSentiment:    Sentiment(e.Comment),
		}
		if e.Liked {
			labels[i] = 1
		}
	}
	return feats, labels
}

// Train fits a Model on examples. It returns ErrInsufficientData when there
// are fewer than cfg.MinRows examples. The holdout split is a seeded shuffle,
// so the same rows and config always produce the same model. Fitting stops
// with ctx.Err() when ctx is done.
func Train(ctx context.Context, examples []Example, cfg TrainConfig) (*Model, Report, error) {
	if cfg.MinRows <= 0 {
		cfg.MinRows = 1
	}
	if len(examples) < cfg.MinRows {
		return nil, Report{Rows: len(examples)}, ErrInsufficientData
	}

	perm := rand.New(rand.NewSource(cfg.Seed)).Perm(len(examples))
	nTest := int(math.Round(float64(len(examples)) * cfg.HoldoutRatio))
	if nTest >= len(examples) {
		nTest = len(examples) - 1
	}
	if nTest < 0 {
		nTest = 0
	}
	testIdx, trainIdx := perm[:nTest], perm[nTest:]

	feats, labels := buildFeatures(examples, trainIdx)

	m := &Model{
		Version:     ModelVersion,
		TravelTypes: vocabulary(feats, trainIdx),
		Means:       make([]float64, numStandardized),
		Stds:        make([]float64, numStandardized),
	}
	for col := 0; col < numStandardized; col++ {
		vals := make([]float64, len(trainIdx))
		for j, i := range trainIdx {
			vals[j] = rawColumn(feats[i], col)
		}
		mean, std := stat.MeanStdDev(vals, nil)
		if math.IsNaN(std) || std == 0 {
			std = 1
		}
		m.Means[col], m.Stds[col] = mean, std
	}
	m.Weights = make([]float64, m.dim())

	xs := make([][]float64, len(trainIdx))
	ys := make([]float64, len(trainIdx))
	for j, i := range trainIdx {
		xs[j] = m.vector(feats[i])
		ys[j] = labels[i]
	}
	if err := fit(ctx, m, xs, ys, cfg); err != nil {
		return nil, Report{Rows: len(examples)}, err
	}

	correct := 0
	for _, i := range testIdx {
		p := sigmoid(floats.Dot(m.Weights, m.vector(feats[i])) + m.Bias)
		if (p >= 0.5) == (labels[i] == 1) {
			correct++
		}
	}
	rep := Report{Rows: len(examples), TrainRows: len(trainIdx), TestRows: len(testIdx)}
	if len(testIdx) > 0 {
		rep.Accuracy = float64(correct) / float64(len(testIdx))
	}
	m.Rows = rep.Rows
	m.Accuracy = rep.Accuracy
	m.TrainedAt = time.Now().UTC()
	return m, rep, nil
}

// fit runs batch gradient descent on the L2-regularized log loss.
func fit(ctx context.Context, m *Model, xs [][]float64, ys []float64, cfg TrainConfig) error {
	n := float64(len(xs))
	if n == 0 {
		return nil
	}
	grad := make([]float64, len(m.Weights))
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		if epoch%50 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		for k := range grad {
			grad[k] = 0
		}
		var gBias float64
		for j, x := range xs {
			diff := sigmoid(floats.Dot(m.Weights, x)+m.Bias) - ys[j]
			floats.AddScaled(grad, diff/n, x)
			gBias += diff / n
		}
		floats.AddScaled(grad, cfg.L2, m.Weights)
		floats.AddScaled(m.Weights, -cfg.LearningRate, grad)
		m.Bias -= cfg.LearningRate * gBias
	}
	return nil
}

func vocabulary(feats []Features, idx []int) []string {
	seen := map[string]struct{}{}
	for _, i := range idx {
		seen[feats[i].TravelType] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for tt := range seen {
		out = append(out, tt)
	}
	sort.Strings(out)
	return out
}

func rawColumn(f Features, col int) float64 {
	switch col {
	case 0:
		return f.Rating
	case 1:
		return f.Budget
	default:
		return f.Days
	}
}
