package domain

import "github.com/shopspring/decimal"

type RetirementScenario struct {
	CurrentAge              int             `json:"current_age"`
	RetirementAge           int             `json:"retirement_age"`
	CurrentSavings          decimal.Decimal `json:"current_savings"`
	AnnualContribution      decimal.Decimal `json:"annual_contribution"`
	ExpectedReturnRate      decimal.Decimal `json:"expected_return_rate"`
	ProjectedAnnualIncome   decimal.Decimal `json:"projected_annual_income"`
	ProjectedAnnualExpenses decimal.Decimal `json:"projected_annual_expenses"`
}

type RetirementResult struct {
	MonthsToRetirement int             `json:"months_to_retirement"`
	ProjectedSavings   decimal.Decimal `json:"projected_savings"`
	// AnnualWithdrawalNeed is expenses minus income; negative when income
	// already covers expenses.
	AnnualWithdrawalNeed decimal.Decimal `json:"annual_withdrawal_need"`
}
