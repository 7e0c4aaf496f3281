package repository

import (
	"sync"

	"savings-planner/domain"
)

// CalculationRepositoryMemory is an in-memory implementation of CalculationRepository.
type CalculationRepositoryMemory struct {
	mu   sync.Mutex
	data []domain.ProjectionResult
}

// NewCalculationRepositoryMemory creates a new in-memory calculation repository.
func NewCalculationRepositoryMemory() *CalculationRepositoryMemory {
	return &CalculationRepositoryMemory{
		data: []domain.ProjectionResult{},
	}
}

// Save stores the projection result in memory.
func (r *CalculationRepositoryMemory) Save(
	input domain.ProjectionInput,
	result domain.ProjectionResult,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, result)
	return nil
}

// Count returns how many results have been saved.
func (r *CalculationRepositoryMemory) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data)
}
