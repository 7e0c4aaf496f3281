package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"savings-planner/domain"
)

func TestPlanRepositoryMemory(t *testing.T) {
	repo := NewPlanRepositoryMemory()
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	if err := repo.Save(samplePlan("late", base.Add(time.Hour))); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Save(samplePlan("early", base)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	plans, err := repo.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(plans) != 2 || plans[0].ID != "early" {
		t.Fatalf("unexpected plans: %+v", plans)
	}

	progress := domain.PlanProgress{
		MonthsElapsed:    3,
		EstimatedBalance: decimal.NewFromInt(16500),
		ProjectedBalance: decimal.NewFromInt(1),
	}
	if err := repo.UpdateProgress("early", progress, base); err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	got, err := repo.Get("early")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.ProjectedBalance.Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected 1, got %s", got.ProjectedBalance)
	}
	if got.MonthsElapsed != 3 || !got.EstimatedBalance.Equal(decimal.NewFromInt(16500)) {
		t.Errorf("unexpected progress: %d months, %s", got.MonthsElapsed, got.EstimatedBalance)
	}

	if _, err := repo.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := repo.UpdateProgress("missing", domain.PlanProgress{}, base); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMockCache(t *testing.T) {
	cache := NewMockCache()
	if _, ok := cache.Get("k"); ok {
		t.Errorf("expected miss")
	}
	if err := cache.Set("k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok := cache.Get("k"); !ok || v != "v" {
		t.Errorf("expected hit with v, got %q %v", v, ok)
	}
}

func TestMockCache_EvictsOldest(t *testing.T) {
	cache := NewMockCacheSize(2)
	_ = cache.Set("a", "1")
	_ = cache.Set("b", "2")
	_ = cache.Set("a", "3") // overwrite keeps position
	_ = cache.Set("c", "4")

	if _, ok := cache.Get("a"); ok {
		t.Errorf("expected a to be evicted")
	}
	for _, k := range []string{"b", "c"} {
		if _, ok := cache.Get(k); !ok {
			t.Errorf("expected %s to be cached", k)
		}
	}
	if len(cache.Data) != 2 {
		t.Errorf("expected 2 entries, got %d", len(cache.Data))
	}
}
