package service

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"savings-planner/domain"
	"savings-planner/projection"
	"savings-planner/repository"
)

type ProjectionService struct {
	repo   repository.CalculationRepository
	cache  repository.CacheRepository
	limits Limits
}

// NewProjectionService creates a new ProjectionService with the given repository and cache.
func NewProjectionService(repo repository.CalculationRepository,
	cache repository.CacheRepository,
	limits Limits,
) *ProjectionService {
	return &ProjectionService{repo: repo, cache: cache, limits: limits}
}

// Calculate projects the future balance and, when a target goal is given,
// the gap to it and the contribution required to reach it.
func (s *ProjectionService) Calculate(
	input domain.ProjectionInput,
) (domain.ProjectionResult, error) {

	if err := s.checkLimits(input.CurrentBalance, input.MonthlyContribution, input.AnnualReturnRate, input.PeriodCount); err != nil {
		return domain.ProjectionResult{}, err
	}
	if input.TargetGoal != nil {
		if err := s.checkAmount("target goal", *input.TargetGoal); err != nil {
			return domain.ProjectionResult{}, err
		}
	}

	params, err := projection.NewParameters(
		input.CurrentBalance,
		input.MonthlyContribution,
		input.AnnualReturnRate,
		input.PeriodCount,
	)
	if err != nil {
		return domain.ProjectionResult{}, err
	}
	if input.TargetGoal != nil {
		if params, err = params.WithTarget(*input.TargetGoal); err != nil {
			return domain.ProjectionResult{}, err
		}
	}

	key := cacheKey(input)
	if cached, ok := s.lookup(key); ok {
		return cached, nil
	}

	futureValue := projection.Project(params)
	contributed := projection.TotalContributions(params)

	result := domain.ProjectionResult{
		FutureValue:        futureValue,
		TotalContributions: contributed,
		TotalGrowth:        futureValue.Sub(projection.RoundMoney(input.CurrentBalance)).Sub(contributed),
	}

	if target, ok := params.TargetGoal(); ok {
		gap := projection.Gap(futureValue, target)
		required := projection.Solve(params)
		result.Gap = &gap
		result.RequiredContribution = &required
	}

	s.store(key, result)

	// Guardar el resultado (no crítico si falla)
	if err := s.repo.Save(input, result); err != nil {
		log.Printf("[WARN] failed to save projection: %v", err)
	}

	return result, nil
}

// Gap compares a projected balance with a target goal.
func (s *ProjectionService) Gap(input domain.GapInput) domain.GapResult {
	gap := projection.Gap(input.ProjectedBalance, input.TargetGoal)

	status := domain.GapOnTarget
	switch gap.Sign() {
	case 1:
		status = domain.GapSurplus
	case -1:
		status = domain.GapShortfall
	}
	return domain.GapResult{Gap: gap, Status: status}
}

// Solve returns the monthly contribution needed to reach the target goal.
func (s *ProjectionService) Solve(input domain.SolveInput) (domain.SolveResult, error) {
	if err := s.checkLimits(input.CurrentBalance, decimal.Zero, input.AnnualReturnRate, input.PeriodCount); err != nil {
		return domain.SolveResult{}, err
	}
	if err := s.checkAmount("target goal", input.TargetGoal); err != nil {
		return domain.SolveResult{}, err
	}

	required, err := projection.SolveContribution(
		input.CurrentBalance,
		input.TargetGoal,
		input.AnnualReturnRate,
		input.PeriodCount,
	)
	if err != nil {
		return domain.SolveResult{}, err
	}

	return domain.SolveResult{
		RequiredContribution: required,
		ContributionNeeded:   required.IsPositive(),
	}, nil
}

// Schedule returns the month-by-month accumulation table.
func (s *ProjectionService) Schedule(input domain.ProjectionInput) (domain.ScheduleResult, error) {
	if err := s.checkLimits(input.CurrentBalance, input.MonthlyContribution, input.AnnualReturnRate, input.PeriodCount); err != nil {
		return domain.ScheduleResult{}, err
	}

	params, err := projection.NewParameters(
		input.CurrentBalance,
		input.MonthlyContribution,
		input.AnnualReturnRate,
		input.PeriodCount,
	)
	if err != nil {
		return domain.ScheduleResult{}, err
	}

	rows := projection.Schedule(params)
	periods := make([]domain.ScheduleRow, len(rows))
	for i, row := range rows {
		periods[i] = domain.ScheduleRow{
			Period:       row.Period,
			Contribution: row.Contribution,
			Growth:       row.Growth,
			Balance:      row.Balance,
		}
	}

	return domain.ScheduleResult{
		FutureValue: projection.Project(params),
		Periods:     periods,
	}, nil
}

// ProjectRetirement projects savings at retirement age. Annual contributions
// are spread evenly over the months of each year.
func (s *ProjectionService) ProjectRetirement(
	scenario domain.RetirementScenario,
) (domain.RetirementResult, error) {
	months := projection.PeriodsBetweenAges(scenario.CurrentAge, scenario.RetirementAge)
	monthly := scenario.AnnualContribution.Div(decimal.NewFromInt(projection.MonthsPerYear))

	if err := s.checkLimits(scenario.CurrentSavings, monthly, scenario.ExpectedReturnRate, months); err != nil {
		return domain.RetirementResult{}, err
	}

	params, err := projection.NewParameters(
		scenario.CurrentSavings,
		monthly,
		scenario.ExpectedReturnRate,
		months,
	)
	if err != nil {
		return domain.RetirementResult{}, err
	}

	withdrawal := projection.Gap(scenario.ProjectedAnnualExpenses, scenario.ProjectedAnnualIncome)

	return domain.RetirementResult{
		MonthsToRetirement:   months,
		ProjectedSavings:     projection.Project(params),
		AnnualWithdrawalNeed: withdrawal,
	}, nil
}

func (s *ProjectionService) checkLimits(
	balance, contribution, ratePercent decimal.Decimal,
	periods int,
) error {
	if err := s.checkAmount("current balance", balance); err != nil {
		return err
	}
	if err := s.checkAmount("monthly contribution", contribution); err != nil {
		return err
	}
	if ratePercent.GreaterThan(s.limits.MaxAnnualRatePercent) {
		return fmt.Errorf("%w: annual return rate exceeds the maximum of %s%%",
			projection.ErrInvalidParameter, s.limits.MaxAnnualRatePercent)
	}
	if periods > s.limits.MaxPeriodCount {
		return fmt.Errorf("%w: period count exceeds the maximum of %d months",
			projection.ErrInvalidParameter, s.limits.MaxPeriodCount)
	}
	return nil
}

func (s *ProjectionService) checkAmount(name string, d decimal.Decimal) error {
	if d.GreaterThan(s.limits.MaxAmount) {
		return fmt.Errorf("%w: %s exceeds the maximum of %s",
			projection.ErrInvalidParameter, name, s.limits.MaxAmount.StringFixed(projection.MoneyPlaces))
	}
	return nil
}

func cacheKey(input domain.ProjectionInput) string {
	target := "-"
	if input.TargetGoal != nil {
		target = input.TargetGoal.String()
	}
	return fmt.Sprintf("projection:%s:%s:%s:%d:%s",
		input.CurrentBalance.String(),
		input.MonthlyContribution.String(),
		input.AnnualReturnRate.String(),
		input.PeriodCount,
		target,
	)
}

func (s *ProjectionService) lookup(key string) (domain.ProjectionResult, bool) {
	raw, ok := s.cache.Get(key)
	if !ok {
		return domain.ProjectionResult{}, false
	}
	var result domain.ProjectionResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		log.Printf("[WARN] discarding unreadable cache entry %s: %v", key, err)
		return domain.ProjectionResult{}, false
	}
	return result, true
}

func (s *ProjectionService) store(key string, result domain.ProjectionResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		log.Printf("[WARN] failed to encode projection for cache: %v", err)
		return
	}
	if err := s.cache.Set(key, string(raw)); err != nil {
		log.Printf("[WARN] failed to cache projection: %v", err)
	}
}
