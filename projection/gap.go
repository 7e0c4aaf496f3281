package projection

import "github.com/shopspring/decimal"

// Gap is projected - target. Positive means surplus, negative a shortfall.
func Gap(projected, target decimal.Decimal) decimal.Decimal {
	return projected.Sub(target)
}
