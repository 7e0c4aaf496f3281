package domain

import "github.com/shopspring/decimal"

type ProjectionInput struct {
	CurrentBalance      decimal.Decimal  `json:"current_balance"`
	MonthlyContribution decimal.Decimal  `json:"monthly_contribution"`
	AnnualReturnRate    decimal.Decimal  `json:"annual_return_rate"` // percent, 6 means 6%
	PeriodCount         int              `json:"period_count"`       // months
	TargetGoal          *decimal.Decimal `json:"target_goal,omitempty"`
}

type ProjectionResult struct {
	FutureValue          decimal.Decimal  `json:"future_value"`
	TotalContributions   decimal.Decimal  `json:"total_contributions"`
	TotalGrowth          decimal.Decimal  `json:"total_growth"`
	Gap                  *decimal.Decimal `json:"gap,omitempty"`
	RequiredContribution *decimal.Decimal `json:"required_contribution,omitempty"`
}

type GapInput struct {
	ProjectedBalance decimal.Decimal `json:"projected_balance"`
	TargetGoal       decimal.Decimal `json:"target_goal"`
}

// GapStatus classifies a goal gap.
type GapStatus string

const (
	GapSurplus   GapStatus = "surplus"
	GapShortfall GapStatus = "shortfall"
	GapOnTarget  GapStatus = "on_target"
)

type GapResult struct {
	Gap    decimal.Decimal `json:"gap"`
	Status GapStatus       `json:"status"`
}

type SolveInput struct {
	CurrentBalance   decimal.Decimal `json:"current_balance"`
	TargetGoal       decimal.Decimal `json:"target_goal"`
	AnnualReturnRate decimal.Decimal `json:"annual_return_rate"`
	PeriodCount      int             `json:"period_count"`
}

type SolveResult struct {
	RequiredContribution decimal.Decimal `json:"required_contribution"`
	// ContributionNeeded is false when growth of the current balance alone
	// reaches the target.
	ContributionNeeded bool `json:"contribution_needed"`
}

type ScheduleRow struct {
	Period       int             `json:"period"`
	Contribution decimal.Decimal `json:"contribution"`
	Growth       decimal.Decimal `json:"growth"`
	Balance      decimal.Decimal `json:"balance"`
}

type ScheduleResult struct {
	FutureValue decimal.Decimal `json:"future_value"`
	Periods     []ScheduleRow   `json:"periods"`
}
