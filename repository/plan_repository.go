package repository

import (
	"errors"
	"time"

	"savings-planner/domain"
)

var ErrNotFound = errors.New("not found")

type PlanRepository interface {
	Save(plan domain.Plan) error
	Get(id string) (domain.Plan, error)
	List() ([]domain.Plan, error)
	UpdateProgress(id string, progress domain.PlanProgress, updatedAt time.Time) error
}
