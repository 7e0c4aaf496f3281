// Package projection implements the savings growth engine: future value of a
// balance under monthly contributions and compounding, the gap to a target
// goal, and the contribution required to reach that goal.
//
// Every function is pure and safe for concurrent use.
package projection

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidParameter is wrapped by every validation failure in this package.
var ErrInvalidParameter = errors.New("invalid parameter")

const (
	// MoneyPlaces is the scale of every monetary value returned by the engine.
	MoneyPlaces int32 = 2

	// internalPlaces bounds intermediate precision so long horizons do not
	// grow the decimal mantissa without limit.
	internalPlaces int32 = 28

	MonthsPerYear = 12
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)

	// ratePerPeriodDivisor turns an annual percentage into a monthly fraction.
	ratePerPeriodDivisor = hundred.Mul(decimal.NewFromInt(MonthsPerYear))

	// MinAnnualRatePercent is the exclusive lower bound: at -1200% the monthly
	// rate reaches -100% and the balance collapses to zero every period.
	MinAnnualRatePercent = ratePerPeriodDivisor.Neg()
)

// Parameters is an immutable, validated set of projection inputs.
// The zero value is valid and projects to zero.
type Parameters struct {
	currentBalance    decimal.Decimal
	contribution      decimal.Decimal
	annualRatePercent decimal.Decimal
	periodCount       int
	targetGoal        decimal.Decimal
	hasTarget         bool
}

// NewParameters validates the inputs and returns the parameter set.
func NewParameters(
	currentBalance decimal.Decimal,
	periodicContribution decimal.Decimal,
	annualRatePercent decimal.Decimal,
	periodCount int,
) (Parameters, error) {
	if err := validateAmount("current balance", currentBalance); err != nil {
		return Parameters{}, err
	}
	if err := validateAmount("periodic contribution", periodicContribution); err != nil {
		return Parameters{}, err
	}
	if err := validateRate(annualRatePercent); err != nil {
		return Parameters{}, err
	}
	if err := validatePeriods(periodCount); err != nil {
		return Parameters{}, err
	}

	return Parameters{
		currentBalance:    currentBalance,
		contribution:      periodicContribution,
		annualRatePercent: annualRatePercent,
		periodCount:       periodCount,
	}, nil
}

// WithTarget returns a copy of p carrying a target goal.
func (p Parameters) WithTarget(target decimal.Decimal) (Parameters, error) {
	if err := validateAmount("target goal", target); err != nil {
		return Parameters{}, err
	}
	p.targetGoal = target
	p.hasTarget = true
	return p, nil
}

// WithContribution returns a copy of p with a different periodic contribution.
func (p Parameters) WithContribution(contribution decimal.Decimal) (Parameters, error) {
	if err := validateAmount("periodic contribution", contribution); err != nil {
		return Parameters{}, err
	}
	p.contribution = contribution
	return p, nil
}

// WithPeriodCount returns a copy of p with a different horizon.
func (p Parameters) WithPeriodCount(periodCount int) (Parameters, error) {
	if err := validatePeriods(periodCount); err != nil {
		return Parameters{}, err
	}
	p.periodCount = periodCount
	return p, nil
}

func (p Parameters) CurrentBalance() decimal.Decimal       { return p.currentBalance }
func (p Parameters) PeriodicContribution() decimal.Decimal { return p.contribution }
func (p Parameters) AnnualRatePercent() decimal.Decimal    { return p.annualRatePercent }
func (p Parameters) PeriodCount() int                      { return p.periodCount }

// TargetGoal returns the target and whether one was set.
func (p Parameters) TargetGoal() (decimal.Decimal, bool) {
	return p.targetGoal, p.hasTarget
}

// MonthlyRate is annualRatePercent / 100 / 12.
func (p Parameters) MonthlyRate() decimal.Decimal {
	return monthlyRate(p.annualRatePercent)
}

func monthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.DivRound(ratePerPeriodDivisor, internalPlaces)
}

// RoundMoney applies the engine's rounding policy: half to even at two places.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(MoneyPlaces)
}

func validateAmount(name string, d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative, got %s", ErrInvalidParameter, name, d.String())
	}
	return nil
}

func validateRate(annualRatePercent decimal.Decimal) error {
	if annualRatePercent.LessThanOrEqual(MinAnnualRatePercent) {
		return fmt.Errorf("%w: annual return rate must be greater than %s%%, got %s%%",
			ErrInvalidParameter, MinAnnualRatePercent.String(), annualRatePercent.String())
	}
	return nil
}

func validatePeriods(periodCount int) error {
	if periodCount < 0 {
		return fmt.Errorf("%w: period count must not be negative, got %d", ErrInvalidParameter, periodCount)
	}
	return nil
}
