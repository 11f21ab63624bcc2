package repo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/tbourn/go-travel-planner/internal/domain"
)

func TestIncrementPreferences_CreatesThenIncrements(t *testing.T) {
	db := newMigratedDB(t)
	ctx := context.Background()

	if err := IncrementPreferences(ctx, db, "u1", []string{"nature", "food"}, 4); err != nil {
		t.Fatalf("first increment: %v", err)
	}
	if err := IncrementPreferences(ctx, db, "u1", []string{"food"}, 5); err != nil {
		t.Fatalf("second increment: %v", err)
	}

	got, err := ListPreferences(ctx, db, "u1")
	if err != nil {
		t.Fatalf("ListPreferences: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %+v", got)
	}
	if got[0].Interest != "food" || got[0].Weight != 9 {
		t.Fatalf("expected food=9 first, got %+v", got[0])
	}
	if got[1].Interest != "nature" || got[1].Weight != 4 {
		t.Fatalf("expected nature=4 second, got %+v", got[1])
	}
}

func TestIncrementPreferences_EmptyIsNoop(t *testing.T) {
	db := newTestDB(t /* no table: would fail if a query ran */)
	if err := IncrementPreferences(context.Background(), db, "u1", nil, 3); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}

func TestIncrementPreferences_UsersAreIsolated(t *testing.T) {
	db := newMigratedDB(t)
	ctx := context.Background()
	_ = IncrementPreferences(ctx, db, "u1", []string{"beach"}, 2)
	_ = IncrementPreferences(ctx, db, "u2", []string{"beach"}, 5)

	got, err := ListPreferences(ctx, db, "u1")
	if err != nil || len(got) != 1 || got[0].Weight != 2 {
		t.Fatalf("u1 prefs = %+v, %v", got, err)
	}
}

func TestIncrementPreferences_ConcurrentNoLostUpdates(t *testing.T) {
	db := newMigratedDB(t)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			// shared-cache locks are transient; retry a bounded number of times
			for attempt := 0; attempt < 200; attempt++ {
				if err := IncrementPreferences(ctx, db, "u1", []string{"trek"}, 1); err == nil {
					return
				}
				time.Sleep(time.Millisecond)
			}
			t.Errorf("increment never succeeded")
		}()
	}
	wg.Wait()

	var p domain.UserPreference
	if err := db.Where("user_id = ? AND interest = ?", "u1", "trek").First(&p).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Weight != workers {
		t.Fatalf("expected weight %d, got %d", workers, p.Weight)
	}
}

func TestListPreferences_TiesByInterest(t *testing.T) {
	db := newMigratedDB(t)
	ctx := context.Background()
	_ = IncrementPreferences(ctx, db, "u1", []string{"zoo", "art", "museum"}, 3)

	got, err := ListPreferences(ctx, db, "u1")
	if err != nil {
		t.Fatalf("ListPreferences: %v", err)
	}
	if len(got) != 3 || got[0].Interest != "art" || got[1].Interest != "museum" || got[2].Interest != "zoo" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestEnsureUser_Idempotent(t *testing.T) {
	db := newMigratedDB(t)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := EnsureUser(ctx, db, "u1"); err != nil {
			t.Fatalf("EnsureUser #%d: %v", i, err)
		}
	}
	var n int64
	db.Model(&domain.User{}).Where("id = ?", "u1").Count(&n)
	if n != 1 {
		t.Fatalf("expected 1 user row, got %d", n)
	}
}
