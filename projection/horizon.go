package projection

import "time"

// PeriodsForYears converts a horizon in whole years to months. Horizons that
// are already past clamp to zero.
func PeriodsForYears(years int) int {
	if years <= 0 {
		return 0
	}
	return years * MonthsPerYear
}

// PeriodsBetweenAges is the accumulation horizon from currentAge to
// targetAge; zero once the target age is reached or passed.
func PeriodsBetweenAges(currentAge, targetAge int) int {
	return PeriodsForYears(targetAge - currentAge)
}

// PeriodsUntil counts the whole calendar months from from to to. A month
// that has not fully elapsed is not counted.
func PeriodsUntil(from, to time.Time) int {
	to = to.In(from.Location())
	months := (to.Year()-from.Year())*MonthsPerYear + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
