package domain

import "github.com/shopspring/decimal"

type CompareInput struct {
	CurrentBalance      decimal.Decimal   `json:"current_balance"`
	MonthlyContribution decimal.Decimal   `json:"monthly_contribution"`
	TargetGoal          decimal.Decimal   `json:"target_goal"`
	PeriodCount         int               `json:"period_count"`
	Rates               []decimal.Decimal `json:"rates,omitempty"` // annual percents
}

type RateScenario struct {
	AnnualReturnRate     decimal.Decimal `json:"annual_return_rate"`
	ProjectedBalance     decimal.Decimal `json:"projected_balance"`
	Gap                  decimal.Decimal `json:"gap"`
	RequiredContribution decimal.Decimal `json:"required_contribution"`
	MeetsGoal            bool            `json:"meets_goal"`
}

type CompareResult struct {
	// RecommendedRate is the lowest compared rate that reaches the goal.
	RecommendedRate *decimal.Decimal `json:"recommended_rate,omitempty"`
	Scenarios       []RateScenario   `json:"scenarios"`
}
