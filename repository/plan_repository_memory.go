package repository

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"savings-planner/domain"
)

// PlanRepositoryMemory is an in-memory implementation of PlanRepository.
type PlanRepositoryMemory struct {
	mu    sync.RWMutex
	plans map[string]domain.Plan
}

func NewPlanRepositoryMemory() *PlanRepositoryMemory {
	return &PlanRepositoryMemory{
		plans: make(map[string]domain.Plan),
	}
}

func (r *PlanRepositoryMemory) Save(plan domain.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[plan.ID] = plan
	return nil
}

func (r *PlanRepositoryMemory) Get(id string) (domain.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plan, ok := r.plans[id]
	if !ok {
		return domain.Plan{}, fmt.Errorf("plan %s: %w", id, ErrNotFound)
	}
	return plan, nil
}

// List returns plans oldest first.
func (r *PlanRepositoryMemory) List() ([]domain.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plans := make([]domain.Plan, 0, len(r.plans))
	for _, p := range r.plans {
		plans = append(plans, p)
	}
	sort.Slice(plans, func(i, j int) bool {
		if plans[i].CreatedAt.Equal(plans[j].CreatedAt) {
			return plans[i].ID < plans[j].ID
		}
		return plans[i].CreatedAt.Before(plans[j].CreatedAt)
	})
	return plans, nil
}

func (r *PlanRepositoryMemory) UpdateProgress(id string, progress domain.PlanProgress, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	plan, ok := r.plans[id]
	if !ok {
		return fmt.Errorf("plan %s: %w", id, ErrNotFound)
	}
	plan.MonthsElapsed = progress.MonthsElapsed
	plan.EstimatedBalance = progress.EstimatedBalance
	plan.ProjectedBalance = progress.ProjectedBalance
	plan.UpdatedAt = updatedAt
	r.plans[id] = plan
	return nil
}
