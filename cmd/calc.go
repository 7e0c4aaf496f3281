package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"savings-planner/domain"
	"savings-planner/projection"
	"savings-planner/repository"
	"savings-planner/service"
)

// calcFlags are the plan inputs shared by the offline calculation commands.
type calcFlags struct {
	balance      string
	contribution string
	rate         string
	target       string
	months       int
	years        int
}

func (f *calcFlags) registerHorizon(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.balance, "balance", "b", "0", "Current balance")
	cmd.Flags().IntVarP(&f.months, "months", "m", 0, "Horizon in months")
	cmd.Flags().IntVarP(&f.years, "years", "y", 0, "Horizon in years")
	cmd.MarkFlagsMutuallyExclusive("months", "years")
}

func (f *calcFlags) registerRate(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.rate, "rate", "r", "0", "Annual return rate in percent")
}

// periods converts the horizon flags to months. Negative years are rejected
// rather than clamped.
func (f *calcFlags) periods() (int, error) {
	if f.years < 0 {
		return 0, fmt.Errorf("%w: --years must not be negative, got %d", projection.ErrInvalidParameter, f.years)
	}
	if f.years != 0 {
		return projection.PeriodsForYears(f.years), nil
	}
	return f.months, nil
}

func (f *calcFlags) projectionInput() (domain.ProjectionInput, error) {
	balance, err := parseDecimal("balance", f.balance)
	if err != nil {
		return domain.ProjectionInput{}, err
	}
	contribution, err := parseDecimal("contribution", f.contribution)
	if err != nil {
		return domain.ProjectionInput{}, err
	}
	rate, err := parseDecimal("rate", f.rate)
	if err != nil {
		return domain.ProjectionInput{}, err
	}
	periods, err := f.periods()
	if err != nil {
		return domain.ProjectionInput{}, err
	}

	input := domain.ProjectionInput{
		CurrentBalance:      balance,
		MonthlyContribution: contribution,
		AnnualReturnRate:    rate,
		PeriodCount:         periods,
	}
	if f.target != "" {
		target, err := parseDecimal("target", f.target)
		if err != nil {
			return domain.ProjectionInput{}, err
		}
		input.TargetGoal = &target
	}
	return input, nil
}

func (f *calcFlags) requireTarget() (domain.ProjectionInput, error) {
	input, err := f.projectionInput()
	if err != nil {
		return domain.ProjectionInput{}, err
	}
	if input.TargetGoal == nil {
		return domain.ProjectionInput{}, fmt.Errorf("%w: --target is required", projection.ErrInvalidParameter)
	}
	return input, nil
}

func parseDecimal(name, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: --%s %q is not a number", projection.ErrInvalidParameter, name, value)
	}
	return d, nil
}

// offlineProjections computes without persistence, under the configured limits.
func offlineProjections() (*service.ProjectionService, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	limits, err := cfg.ServiceLimits()
	if err != nil {
		return nil, err
	}
	return service.NewProjectionService(
		repository.NewCalculationRepositoryMemory(),
		repository.NewMockCache(),
		limits,
	), nil
}

func money(d decimal.Decimal) string {
	return d.StringFixed(projection.MoneyPlaces)
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newProjectCmd() *cobra.Command {
	var f calcFlags
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project the balance at the end of the horizon",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := f.projectionInput()
			if err != nil {
				return err
			}
			svc, err := offlineProjections()
			if err != nil {
				return err
			}
			result, err := svc.Calculate(input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flagJSON {
				return printJSON(out, result)
			}
			fmt.Fprintf(out, "Future value:         %s\n", money(result.FutureValue))
			fmt.Fprintf(out, "Total contributions:  %s\n", money(result.TotalContributions))
			fmt.Fprintf(out, "Total growth:         %s\n", money(result.TotalGrowth))
			if result.Gap != nil {
				fmt.Fprintf(out, "Gap to goal:          %s\n", money(*result.Gap))
				fmt.Fprintf(out, "Required monthly:     %s\n", money(*result.RequiredContribution))
			}
			return nil
		},
	}
	f.registerHorizon(cmd)
	f.registerRate(cmd)
	cmd.Flags().StringVar(&f.contribution, "contribution", "0", "Monthly contribution")
	cmd.Flags().StringVarP(&f.target, "target", "t", "", "Target goal (optional)")
	return cmd
}

func newSolveCmd() *cobra.Command {
	var f calcFlags
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve for the monthly contribution that reaches a target",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := f.requireTarget()
			if err != nil {
				return err
			}
			svc, err := offlineProjections()
			if err != nil {
				return err
			}
			result, err := svc.Solve(domain.SolveInput{
				CurrentBalance:   input.CurrentBalance,
				TargetGoal:       *input.TargetGoal,
				AnnualReturnRate: input.AnnualReturnRate,
				PeriodCount:      input.PeriodCount,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flagJSON {
				return printJSON(out, result)
			}
			fmt.Fprintf(out, "Required monthly contribution: %s\n", money(result.RequiredContribution))
			if !result.ContributionNeeded {
				fmt.Fprintln(out, "The current balance reaches the target on its own.")
			}
			return nil
		},
	}
	f.registerHorizon(cmd)
	f.registerRate(cmd)
	cmd.Flags().StringVarP(&f.target, "target", "t", "", "Target goal")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func newGapCmd() *cobra.Command {
	var projected, target string
	cmd := &cobra.Command{
		Use:   "gap",
		Short: "Compare a projected balance with a target goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := parseDecimal("projected", projected)
			if err != nil {
				return err
			}
			t, err := parseDecimal("target", target)
			if err != nil {
				return err
			}
			svc, err := offlineProjections()
			if err != nil {
				return err
			}
			result := svc.Gap(domain.GapInput{ProjectedBalance: p, TargetGoal: t})

			out := cmd.OutOrStdout()
			if flagJSON {
				return printJSON(out, result)
			}
			fmt.Fprintf(out, "Gap: %s (%s)\n", result.Gap.String(), result.Status)
			return nil
		},
	}
	cmd.Flags().StringVarP(&projected, "projected", "p", "", "Projected balance")
	cmd.Flags().StringVarP(&target, "target", "t", "", "Target goal")
	_ = cmd.MarkFlagRequired("projected")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func newScheduleCmd() *cobra.Command {
	var f calcFlags
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the month-by-month accumulation table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := f.projectionInput()
			if err != nil {
				return err
			}
			svc, err := offlineProjections()
			if err != nil {
				return err
			}
			result, err := svc.Schedule(input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flagJSON {
				return printJSON(out, result)
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "Month\tContribution\tGrowth\tBalance\t")
			for _, row := range result.Periods {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n",
					row.Period, money(row.Contribution), money(row.Growth), money(row.Balance))
			}
			return tw.Flush()
		},
	}
	f.registerHorizon(cmd)
	f.registerRate(cmd)
	cmd.Flags().StringVar(&f.contribution, "contribution", "0", "Monthly contribution")
	return cmd
}

func newCompareCmd() *cobra.Command {
	var (
		f     calcFlags
		rates []string
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the plan across several annual return rates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := f.requireTarget()
			if err != nil {
				return err
			}
			parsed, err := service.ParseRates(rates)
			if err != nil {
				return err
			}
			svc, err := offlineProjections()
			if err != nil {
				return err
			}
			result, err := service.NewScenarioService(svc).Compare(domain.CompareInput{
				CurrentBalance:      input.CurrentBalance,
				MonthlyContribution: input.MonthlyContribution,
				TargetGoal:          *input.TargetGoal,
				PeriodCount:         input.PeriodCount,
				Rates:               parsed,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flagJSON {
				return printJSON(out, result)
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "Rate\tProjected\tGap\tRequired monthly\tMeets goal")
			for _, sc := range result.Scenarios {
				fmt.Fprintf(tw, "%s%%\t%s\t%s\t%s\t%t\n",
					sc.AnnualReturnRate.String(), money(sc.ProjectedBalance), money(sc.Gap),
					money(sc.RequiredContribution), sc.MeetsGoal)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if result.RecommendedRate != nil {
				fmt.Fprintf(out, "\nLowest rate reaching the goal: %s%%\n", result.RecommendedRate.String())
			} else {
				fmt.Fprintln(out, "\nNo compared rate reaches the goal.")
			}
			return nil
		},
	}
	f.registerHorizon(cmd)
	cmd.Flags().StringVar(&f.contribution, "contribution", "0", "Monthly contribution")
	cmd.Flags().StringVarP(&f.target, "target", "t", "", "Target goal")
	cmd.Flags().StringSliceVar(&rates, "rates", nil, "Annual rates to compare (default 5,7,9)")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func init() {
	rootCmd.AddCommand(newProjectCmd(), newSolveCmd(), newGapCmd(), newScheduleCmd(), newCompareCmd())
}
