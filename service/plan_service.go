package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"savings-planner/domain"
	"savings-planner/projection"
	"savings-planner/repository"
)

// PlanService creates persisted plans and tracks where each should stand as
// months pass.
type PlanService struct {
	plans       repository.PlanRepository
	projections *ProjectionService
	now         func() time.Time
}

func NewPlanService(plans repository.PlanRepository, projections *ProjectionService) *PlanService {
	return &PlanService{
		plans:       plans,
		projections: projections,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreatePlan projects the plan over its full horizon and stores it with the
// projected balance filled in.
func (s *PlanService) CreatePlan(input domain.PlanInput) (domain.Plan, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.Plan{}, fmt.Errorf("%w: plan name is required", projection.ErrInvalidParameter)
	}
	if input.YearsUntilGoal < 0 {
		return domain.Plan{}, fmt.Errorf("%w: years until goal must not be negative, got %d",
			projection.ErrInvalidParameter, input.YearsUntilGoal)
	}

	target := input.TargetGoal
	result, err := s.projections.Calculate(domain.ProjectionInput{
		CurrentBalance:      input.CurrentSavings,
		MonthlyContribution: input.MonthlyContribution,
		AnnualReturnRate:    input.ExpectedReturnRate,
		PeriodCount:         projection.PeriodsForYears(input.YearsUntilGoal),
		TargetGoal:          &target,
	})
	if err != nil {
		return domain.Plan{}, err
	}

	now := s.now()
	plan := domain.Plan{
		ID:                  uuid.New().String(),
		Name:                name,
		CurrentSavings:      input.CurrentSavings,
		MonthlyContribution: input.MonthlyContribution,
		ExpectedReturnRate:  input.ExpectedReturnRate,
		YearsUntilGoal:      input.YearsUntilGoal,
		TargetGoal:          input.TargetGoal,
		ProjectedBalance:    result.FutureValue,
		EstimatedBalance:    projection.RoundMoney(input.CurrentSavings),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.plans.Save(plan); err != nil {
		return domain.Plan{}, fmt.Errorf("save plan: %w", err)
	}
	return plan, nil
}

func (s *PlanService) GetPlan(id string) (domain.Plan, error) {
	return s.plans.Get(id)
}

func (s *PlanService) ListPlans() ([]domain.Plan, error) {
	return s.plans.List()
}

// RefreshPlans moves every plan forward to the current date: the estimated
// balance after the whole months since creation, and the goal-date balance
// over the full horizon. Plans with nothing new are left untouched. It
// returns how many were updated; a plan that fails is logged and skipped.
func (s *PlanService) RefreshPlans() (int, error) {
	plans, err := s.plans.List()
	if err != nil {
		return 0, fmt.Errorf("list plans: %w", err)
	}

	now := s.now()
	updated := 0
	var errs []error
	for _, plan := range plans {
		progress, err := planProgress(plan, now)
		if err != nil {
			log.Printf("[WARN] skipping plan %s: %v", plan.ID, err)
			errs = append(errs, err)
			continue
		}

		if progress.MonthsElapsed == plan.MonthsElapsed &&
			progress.EstimatedBalance.Equal(plan.EstimatedBalance) &&
			progress.ProjectedBalance.Equal(plan.ProjectedBalance) {
			continue
		}
		if err := s.plans.UpdateProgress(plan.ID, progress, now); err != nil {
			log.Printf("[WARN] failed to update plan %s: %v", plan.ID, err)
			errs = append(errs, err)
			continue
		}
		updated++
	}

	return updated, errors.Join(errs...)
}

func planProgress(plan domain.Plan, now time.Time) (domain.PlanProgress, error) {
	horizon := projection.PeriodsForYears(plan.YearsUntilGoal)
	elapsed := min(projection.PeriodsUntil(plan.CreatedAt, now), horizon)

	params, err := projection.NewParameters(
		plan.CurrentSavings,
		plan.MonthlyContribution,
		plan.ExpectedReturnRate,
		horizon,
	)
	if err != nil {
		return domain.PlanProgress{}, err
	}
	sofar, err := params.WithPeriodCount(elapsed)
	if err != nil {
		return domain.PlanProgress{}, err
	}

	return domain.PlanProgress{
		MonthsElapsed:    elapsed,
		EstimatedBalance: projection.Project(sofar),
		ProjectedBalance: projection.Project(params),
	}, nil
}
