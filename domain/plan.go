package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan is a persisted savings projection, e.g. a college fund. The input
// fields describe the plan as created and never change; MonthsElapsed and
// EstimatedBalance track where it should stand today.
type Plan struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	CurrentSavings      decimal.Decimal `json:"current_savings"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
	ExpectedReturnRate  decimal.Decimal `json:"expected_return_rate"`
	YearsUntilGoal      int             `json:"years_until_goal"`
	TargetGoal          decimal.Decimal `json:"target_goal"`
	ProjectedBalance    decimal.Decimal `json:"projected_balance"` // at the goal date
	MonthsElapsed       int             `json:"months_elapsed"`
	EstimatedBalance    decimal.Decimal `json:"estimated_balance"` // after MonthsElapsed months
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// GoalDate is the date the plan's horizon ends.
func (p Plan) GoalDate() time.Time {
	return p.CreatedAt.AddDate(p.YearsUntilGoal, 0, 0)
}

// PlanProgress is the part of a plan that moves as time passes.
type PlanProgress struct {
	MonthsElapsed    int
	EstimatedBalance decimal.Decimal
	ProjectedBalance decimal.Decimal
}

type PlanInput struct {
	Name                string          `json:"name"`
	CurrentSavings      decimal.Decimal `json:"current_savings"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
	ExpectedReturnRate  decimal.Decimal `json:"expected_return_rate"`
	YearsUntilGoal      int             `json:"years_until_goal"`
	TargetGoal          decimal.Decimal `json:"target_goal"`
}
