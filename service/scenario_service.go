package service

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"savings-planner/domain"
	"savings-planner/projection"
)

type ScenarioService struct {
	projections *ProjectionService
}

func NewScenarioService(projections *ProjectionService) *ScenarioService {
	return &ScenarioService{projections: projections}
}

// Compare projects the same plan at several annual return rates and
// recommends the most conservative rate that still reaches the target.
func (s *ScenarioService) Compare(
	input domain.CompareInput,
) (domain.CompareResult, error) {

	rates := input.Rates
	if len(rates) == 0 {
		rates = DefaultCompareRates
	}
	if len(rates) > MaxCompareRates {
		return domain.CompareResult{}, fmt.Errorf("%w: at most %d rates can be compared",
			projection.ErrInvalidParameter, MaxCompareRates)
	}

	target := input.TargetGoal
	scenarios := make([]domain.RateScenario, 0, len(rates))

	// Calcular escenarios para cada tasa
	for _, rate := range rates {
		result, err := s.projections.Calculate(domain.ProjectionInput{
			CurrentBalance:      input.CurrentBalance,
			MonthlyContribution: input.MonthlyContribution,
			AnnualReturnRate:    rate,
			PeriodCount:         input.PeriodCount,
			TargetGoal:          &target,
		})
		if err != nil {
			return domain.CompareResult{}, fmt.Errorf("rate %s%%: %w", rate, err)
		}

		scenarios = append(scenarios, domain.RateScenario{
			AnnualReturnRate:     rate,
			ProjectedBalance:     result.FutureValue,
			Gap:                  *result.Gap,
			RequiredContribution: *result.RequiredContribution,
			MeetsGoal:            !result.Gap.IsNegative(),
		})
	}

	// Ordenar por tasa ascendente
	sort.SliceStable(scenarios, func(i, j int) bool {
		return scenarios[i].AnnualReturnRate.LessThan(scenarios[j].AnnualReturnRate)
	})

	out := domain.CompareResult{Scenarios: scenarios}
	for _, sc := range scenarios {
		if sc.MeetsGoal {
			rate := sc.AnnualReturnRate
			out.RecommendedRate = &rate
			break
		}
	}
	return out, nil
}

// ParseRates converts textual percentages such as "5" or "6.5" into rates.
func ParseRates(values []string) ([]decimal.Decimal, error) {
	rates := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("%w: rate %q is not a number", projection.ErrInvalidParameter, v)
		}
		rates = append(rates, d)
	}
	return rates, nil
}
