package service

import "github.com/shopspring/decimal"

const (
	DefaultMaxPeriodCount       = 1200          // 100 años de meses
	DefaultMaxAmount            = 1_000_000_000 // 1 billón
	DefaultMaxAnnualRatePercent = 1000          // 1000% anual

	// Límites para comparación de tasas
	MaxCompareRates = 10
)

// DefaultCompareRates are the conservative, moderate and aggressive
// scenarios offered when the caller names none.
var DefaultCompareRates = []decimal.Decimal{
	decimal.NewFromInt(5),
	decimal.NewFromInt(7),
	decimal.NewFromInt(9),
}

// Limits are application ceilings applied before the engine runs. They bound
// request latency; the engine itself has no upper limits.
type Limits struct {
	MaxPeriodCount       int
	MaxAmount            decimal.Decimal
	MaxAnnualRatePercent decimal.Decimal
}

func DefaultLimits() Limits {
	return Limits{
		MaxPeriodCount:       DefaultMaxPeriodCount,
		MaxAmount:            decimal.NewFromInt(DefaultMaxAmount),
		MaxAnnualRatePercent: decimal.NewFromInt(DefaultMaxAnnualRatePercent),
	}
}
