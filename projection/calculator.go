package projection

import "github.com/shopspring/decimal"

// PeriodBalance is one row of an accumulation schedule. Amounts are rounded
// for display; the running balance behind them is not.
type PeriodBalance struct {
	Period       int             `json:"period"`
	Contribution decimal.Decimal `json:"contribution"`
	Growth       decimal.Decimal `json:"growth"`
	Balance      decimal.Decimal `json:"balance"`
}

// Project returns the balance after p.PeriodCount() months. Each month the
// contribution is deposited first and the monthly rate is applied to the
// result. Only the returned value is rounded.
func Project(p Parameters) decimal.Decimal {
	factor := one.Add(p.MonthlyRate())
	balance := p.currentBalance
	for i := 0; i < p.periodCount; i++ {
		balance = step(balance, p.contribution, factor)
	}
	return RoundMoney(balance)
}

// Schedule returns the month-by-month accumulation of p. The last row's
// balance equals Project(p); an empty horizon yields no rows.
func Schedule(p Parameters) []PeriodBalance {
	rate := p.MonthlyRate()
	factor := one.Add(rate)
	rows := make([]PeriodBalance, 0, p.periodCount)

	balance := p.currentBalance
	for i := 1; i <= p.periodCount; i++ {
		deposited := balance.Add(p.contribution)
		next := step(balance, p.contribution, factor)
		rows = append(rows, PeriodBalance{
			Period:       i,
			Contribution: RoundMoney(p.contribution),
			Growth:       RoundMoney(next.Sub(deposited)),
			Balance:      RoundMoney(next),
		})
		balance = next
	}
	return rows
}

// TotalContributions is the sum of deposits over the horizon.
func TotalContributions(p Parameters) decimal.Decimal {
	return RoundMoney(p.contribution.Mul(decimal.NewFromInt(int64(p.periodCount))))
}

func step(balance, contribution, factor decimal.Decimal) decimal.Decimal {
	return balance.Add(contribution).Mul(factor).Round(internalPlaces)
}

// compound returns factor^n by repeated squaring, holding internal precision.
func compound(factor decimal.Decimal, n int) decimal.Decimal {
	result := one
	base := factor
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Round(internalPlaces)
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base).Round(internalPlaces)
		}
	}
	return result
}
