// Package services – Retrainer
//
// This file implements model retraining: load the joined trip+feedback rows,
// fit a new classifier, persist it atomically and swap it into the live
// holder. Concurrent triggers share a single run.
package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/tbourn/go-travel-planner/internal/config"
	"github.com/tbourn/go-travel-planner/internal/ml"
	"github.com/tbourn/go-travel-planner/internal/repo"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Status strings reported in the feedback response.
const (
	RetrainWaiting = "Waiting for more feedback"
	RetrainSuccess = "Model retrained successfully"
	RetrainFailed  = "Model retraining failed"
)

// Retrainer fits and publishes new models.
type Retrainer struct {
	DB        *gorm.DB
	Holder    *ml.Holder
	ModelPath string
	Config    ml.TrainConfig

	// Timeout bounds a single run; zero means no extra deadline.
	Timeout time.Duration

	group singleflight.Group
}

// NewRetrainer builds the Retrainer for cfg around holder. A nil holder is
// allowed for batch runs that only write the artifact.
func NewRetrainer(db *gorm.DB, holder *ml.Holder, cfg config.Config) *Retrainer {
	tc := ml.DefaultTrainConfig()
	if cfg.MinTrainRows > 0 {
		tc.MinRows = cfg.MinTrainRows
	}
	return &Retrainer{
		DB:        db,
		Holder:    holder,
		ModelPath: cfg.ModelPath,
		Config:    tc,
		Timeout:   cfg.RetrainTimeout,
	}
}

// Retrain runs one training cycle and returns its report. Callers that
// arrive while a run is in flight wait for it and share its result.
// ml.ErrInsufficientData is returned when there are too few rows; the
// previous model stays in place.
func (r *Retrainer) Retrain(ctx context.Context) (ml.Report, error) {
	ch := r.group.DoChan("retrain", func() (any, error) {
		// detach from the first caller's cancellation; the run is shared
		runCtx := context.WithoutCancel(ctx)
		if r.Timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(runCtx, r.Timeout)
			defer cancel()
		}
		return r.run(runCtx)
	})

	select {
	case res := <-ch:
		rep, _ := res.Val.(ml.Report)
		return rep, res.Err
	case <-ctx.Done():
		return ml.Report{}, ctx.Err()
	}
}

func (r *Retrainer) run(ctx context.Context) (rep ml.Report, err error) {
	tr := otel.Tracer("services/Retrainer")
	ctx, span := tr.Start(ctx, "Retrain")
	defer span.End()

	start := time.Now()
	defer func() {
		outcome := outcomeSuccess
		switch {
		case errors.Is(err, ml.ErrInsufficientData):
			outcome = outcomeInsufficient
		case err != nil:
			outcome = outcomeFailure
		}
		retrainTotal.WithLabelValues(outcome).Inc()
		span.SetAttributes(attribute.String("retrain.outcome", outcome), attribute.Int("retrain.rows", rep.Rows))

		ev := log.Info()
		if outcome == outcomeFailure {
			ev = log.Error().Err(err)
		}
		ev.Str("outcome", outcome).
			Int("rows", rep.Rows).
			Float64("accuracy", rep.Accuracy).
			Dur("took", time.Since(start)).
			Msg("model retrain")
	}()

	rows, err := repo.TrainingRows(ctx, r.DB)
	if err != nil {
		return ml.Report{}, fmt.Errorf("load training rows: %w", err)
	}
	examples := make([]ml.Example, len(rows))
	for i, row := range rows {
		examples[i] = ml.Example{
			Rating:      row.Rating,
			Budget:      row.Budget,
			Days:        row.Days,
			TravelType:  row.TravelType,
			Destination: row.Destination,
			Comment:     row.Comment,
			Liked:       row.Liked,
		}
	}

	cfg := r.Config
	if cfg.Epochs == 0 {
		cfg = ml.DefaultTrainConfig()
		if r.Config.MinRows > 0 {
			cfg.MinRows = r.Config.MinRows
		}
	}
	model, rep, err := ml.Train(ctx, examples, cfg)
	if err != nil {
		return rep, err
	}
	if r.ModelPath != "" {
		if err := ml.Save(r.ModelPath, model); err != nil {
			return rep, fmt.Errorf("save model: %w", err)
		}
	}
	if r.Holder != nil {
		r.Holder.Set(model)
	}
	return rep, nil
}

// Status runs Retrain and maps its outcome to a status string.
func (r *Retrainer) Status(ctx context.Context) string {
	_, err := r.Retrain(ctx)
	switch {
	case err == nil:
		return RetrainSuccess
	case errors.Is(err, ml.ErrInsufficientData):
		return RetrainWaiting
	default:
		return RetrainFailed
	}
}

// LoadModel loads the artifact at ModelPath into Holder. A missing file is
// not an error; it reports loaded=false.
func (r *Retrainer) LoadModel() (loaded bool, err error) {
	if r.ModelPath == "" || r.Holder == nil {
		return false, nil
	}
	m, err := ml.Load(r.ModelPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	r.Holder.Set(m)
	return true, nil
}
