package repository

import "savings-planner/domain"

// CalculationRepository keeps an audit trail of projections served.
type CalculationRepository interface {
	Save(input domain.ProjectionInput, result domain.ProjectionResult) error
}
