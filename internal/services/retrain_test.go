package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tbourn/go-travel-planner/internal/config"
	"github.com/tbourn/go-travel-planner/internal/ml"
	"github.com/tbourn/go-travel-planner/internal/repo"
)

func seededRetrainer(t *testing.T) *Retrainer {
	t.Helper()
	db := newTestDB(t)
	if _, err := repo.Seed(context.Background(), db, true); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return &Retrainer{
		DB:        db,
		Holder:    ml.NewHolder(nil),
		ModelPath: filepath.Join(t.TempDir(), "travel_model.json"),
	}
}

func TestRetrain_TrainsSavesAndSwaps(t *testing.T) {
	r := seededRetrainer(t)
	before := testutil.ToFloat64(retrainTotal.WithLabelValues(outcomeSuccess))

	rep, err := r.Retrain(context.Background())
	if err != nil {
		t.Fatalf("Retrain: %v", err)
	}
	if rep.Rows != 8 {
		t.Fatalf("expected 8 training rows from seed data, got %d", rep.Rows)
	}
	if !r.Holder.Loaded() {
		t.Fatalf("holder not populated")
	}
	if _, err := os.Stat(r.ModelPath); err != nil {
		t.Fatalf("artifact missing: %v", err)
	}
	if after := testutil.ToFloat64(retrainTotal.WithLabelValues(outcomeSuccess)); after != before+1 {
		t.Fatalf("success counter not incremented")
	}
}

func TestRetrain_InsufficientKeepsPreviousModel(t *testing.T) {
	db := newTestDB(t)
	prev := fixedModel(func(ml.Features) float64 { return 0.1 })
	r := &Retrainer{DB: db, Holder: ml.NewHolder(prev)}
	before := testutil.ToFloat64(retrainTotal.WithLabelValues(outcomeInsufficient))

	_, err := r.Retrain(context.Background())
	if !errors.Is(err, ml.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
	if p, _ := r.Holder.PredictProbability(ml.Features{}); p != 0.1 {
		t.Fatalf("previous model should stay live, got %v", p)
	}
	if r.Status(context.Background()) != RetrainWaiting {
		t.Fatalf("insufficient data should report waiting")
	}
	if after := testutil.ToFloat64(retrainTotal.WithLabelValues(outcomeInsufficient)); after != before+2 {
		t.Fatalf("insufficient counter: before=%v after=%v", before, after)
	}
}

func TestRetrain_ConcurrentCallersShareRun(t *testing.T) {
	r := seededRetrainer(t)
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Retrain(context.Background())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent retrain: %v", err)
		}
	}
}

func TestRetrain_CancelledCallerReturnsContextError(t *testing.T) {
	r := seededRetrainer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// the caller gives up immediately; the shared run may still finish
	if _, err := r.Retrain(ctx); err != nil && !errors.Is(err, context.Canceled) {
		t.Fatalf("expected nil or context.Canceled, got %v", err)
	}
}

func TestLoadModel(t *testing.T) {
	r := seededRetrainer(t)

	loaded, err := r.LoadModel()
	if err != nil || loaded {
		t.Fatalf("missing artifact should be (false, nil), got (%v, %v)", loaded, err)
	}

	if _, err := r.Retrain(context.Background()); err != nil {
		t.Fatalf("Retrain: %v", err)
	}
	fresh := &Retrainer{ModelPath: r.ModelPath, Holder: ml.NewHolder(nil)}
	loaded, err = fresh.LoadModel()
	if err != nil || !loaded || !fresh.Holder.Loaded() {
		t.Fatalf("expected model to load, got (%v, %v)", loaded, err)
	}

	if err := os.WriteFile(r.ModelPath, []byte("garbage"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := fresh.LoadModel(); !errors.Is(err, ml.ErrCorruptModel) {
		t.Fatalf("expected ErrCorruptModel, got %v", err)
	}
}

func TestNewRetrainer(t *testing.T) {
	cfg := config.Config{MinTrainRows: 12, ModelPath: "x.json", RetrainTimeout: time.Second}
	h := ml.NewHolder(nil)
	rt := NewRetrainer(nil, h, cfg)
	if rt.Holder != h || rt.Config.MinRows != 12 || rt.ModelPath != "x.json" || rt.Timeout != time.Second {
		t.Fatalf("retrainer = %+v", rt)
	}

	rt = NewRetrainer(nil, nil, config.Config{})
	if rt.Config.MinRows != ml.DefaultTrainConfig().MinRows {
		t.Fatalf("min rows = %d, want default", rt.Config.MinRows)
	}
}
