package projection

import "github.com/shopspring/decimal"

// SolveContribution returns the monthly deposit that grows currentBalance to
// targetGoal in periodCount months at annualRatePercent, using the same
// deposit-then-grow convention as Project.
//
// The result may be zero or negative when the balance alone reaches the
// target. A zero horizon yields zero.
func SolveContribution(
	currentBalance decimal.Decimal,
	targetGoal decimal.Decimal,
	annualRatePercent decimal.Decimal,
	periodCount int,
) (decimal.Decimal, error) {
	p, err := NewParameters(currentBalance, decimal.Zero, annualRatePercent, periodCount)
	if err != nil {
		return decimal.Zero, err
	}
	p, err = p.WithTarget(targetGoal)
	if err != nil {
		return decimal.Zero, err
	}
	return Solve(p), nil
}

// Solve is SolveContribution over an already validated parameter set. The
// contribution carried by p is ignored; a missing target is treated as zero.
func Solve(p Parameters) decimal.Decimal {
	if p.periodCount <= 0 {
		return decimal.Zero
	}

	n := decimal.NewFromInt(int64(p.periodCount))
	shortfall := p.targetGoal.Sub(p.currentBalance)

	r := p.MonthlyRate()
	if r.IsZero() {
		return RoundMoney(shortfall.DivRound(n, internalPlaces))
	}

	growth := compound(one.Add(r), p.periodCount)
	futureOfCurrent := p.currentBalance.Mul(growth)

	// Deposits land at the start of each month, so each one earns one
	// extra month of growth over an ordinary annuity.
	factor := growth.Sub(one).DivRound(r, internalPlaces).Mul(one.Add(r))
	if factor.IsZero() {
		return RoundMoney(shortfall.DivRound(n, internalPlaces))
	}

	return RoundMoney(p.targetGoal.Sub(futureOfCurrent).DivRound(factor, internalPlaces))
}
