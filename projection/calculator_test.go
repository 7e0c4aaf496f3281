package projection

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustParams(t *testing.T, balance, contribution, rate string, periods int) Parameters {
	t.Helper()
	p, err := NewParameters(dec(balance), dec(contribution), dec(rate), periods)
	if err != nil {
		t.Fatalf("NewParameters(%s, %s, %s, %d): unexpected error: %v", balance, contribution, rate, periods, err)
	}
	return p
}

func assertMoney(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("expected %s, got %s", want, got.StringFixed(MoneyPlaces))
	}
}

func TestProject_OneMonthAtTwelvePercent(t *testing.T) {
	p := mustParams(t, "1000.00", "0", "12", 1)
	assertMoney(t, Project(p), "1010.00")
}

func TestProject_ZeroRateIsLinear(t *testing.T) {
	p := mustParams(t, "0", "100.00", "0", 12)
	assertMoney(t, Project(p), "1200.00")

	p = mustParams(t, "250.50", "33.33", "0", 37)
	want := RoundMoney(dec("250.50").Add(dec("33.33").Mul(decimal.NewFromInt(37))))
	if got := Project(p); !got.Equal(want) {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestProject_ZeroHorizonReturnsBalance(t *testing.T) {
	for _, rate := range []string{"0", "6", "-50", "900"} {
		p := mustParams(t, "500.00", "12345.67", rate, 0)
		assertMoney(t, Project(p), "500.00")
	}
}

func TestProject_DepositsBeforeGrowth(t *testing.T) {
	// An end-of-month deposit would give 100.00.
	p := mustParams(t, "0", "100", "12", 1)
	assertMoney(t, Project(p), "101.00")
}

func TestProject_AnnuityDueClosedForm(t *testing.T) {
	// 100 * 1.01 * (1.01^12 - 1) / 0.01 = 1280.9328...
	p := mustParams(t, "0", "100", "12", 12)
	assertMoney(t, Project(p), "1280.93")
}

func TestProject_NegativeRate(t *testing.T) {
	p := mustParams(t, "1000", "0", "-12", 1)
	assertMoney(t, Project(p), "990.00")
}

func TestProject_RoundsHalfToEven(t *testing.T) {
	assertMoney(t, Project(mustParams(t, "0.125", "0", "5", 0)), "0.12")
	assertMoney(t, Project(mustParams(t, "0.135", "0", "5", 0)), "0.14")
	assertMoney(t, Project(mustParams(t, "2.005", "0", "0", 0)), "2.00")
}

func TestProject_LongHorizon(t *testing.T) {
	p := mustParams(t, "1000", "50", "4", 1500)
	got := Project(p)
	floor := dec("1000").Add(dec("50").Mul(decimal.NewFromInt(1500)))
	if !got.GreaterThan(floor) {
		t.Errorf("expected growth beyond %s, got %s", floor, got)
	}
}

func TestProject_MonotonicInContribution(t *testing.T) {
	prev := Project(mustParams(t, "1000", "0", "6", 60))
	for _, c := range []string{"0.01", "1", "10", "100", "1000"} {
		got := Project(mustParams(t, "1000", c, "6", 60))
		if !got.GreaterThan(prev) {
			t.Errorf("contribution %s: expected more than %s, got %s", c, prev, got)
		}
		prev = got
	}
}

func TestProject_MonotonicInPeriods(t *testing.T) {
	for _, rate := range []string{"0", "3.5", "10"} {
		prev := decimal.Zero
		for n := 0; n <= 48; n += 6 {
			got := Project(mustParams(t, "200", "25", rate, n))
			if got.LessThan(prev) {
				t.Errorf("rate %s, %d periods: %s is below %s", rate, n, got, prev)
			}
			prev = got
		}
	}
}

func TestSchedule_LastRowMatchesProject(t *testing.T) {
	p := mustParams(t, "10000", "500", "6", 24)
	rows := Schedule(p)
	if len(rows) != 24 {
		t.Fatalf("expected 24 rows, got %d", len(rows))
	}
	if rows[0].Period != 1 || rows[23].Period != 24 {
		t.Errorf("unexpected period numbering: first %d, last %d", rows[0].Period, rows[23].Period)
	}
	if !rows[23].Balance.Equal(Project(p)) {
		t.Errorf("expected last balance %s, got %s", Project(p), rows[23].Balance)
	}
	// 10500 * 0.005
	assertMoney(t, rows[0].Growth, "52.50")
}

func TestSchedule_EmptyHorizon(t *testing.T) {
	if rows := Schedule(mustParams(t, "100", "10", "5", 0)); len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestTotalContributions(t *testing.T) {
	assertMoney(t, TotalContributions(mustParams(t, "0", "125.25", "6", 12)), "1503.00")
}

func TestNewParameters_Rejects(t *testing.T) {
	cases := []struct {
		name         string
		balance      string
		contribution string
		rate         string
		periods      int
	}{
		{"negative periods", "500", "10", "6", -1},
		{"negative balance", "-0.01", "10", "6", 12},
		{"negative contribution", "500", "-10", "6", 12},
		{"rate at -100% monthly", "500", "10", "-1200", 12},
		{"rate below -100% monthly", "500", "10", "-1500", 12},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewParameters(dec(tc.balance), dec(tc.contribution), dec(tc.rate), tc.periods)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestNewParameters_AcceptsRateJustAboveFloor(t *testing.T) {
	p := mustParams(t, "100", "0", "-1199.88", 1)
	// monthly rate -0.9999
	assertMoney(t, Project(p), "0.01")
}

func TestParameters_CopiesAreIndependent(t *testing.T) {
	base := mustParams(t, "100", "10", "6", 12)

	more, err := base.WithContribution(dec("20"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !base.PeriodicContribution().Equal(dec("10")) {
		t.Errorf("base contribution changed to %s", base.PeriodicContribution())
	}
	if !more.PeriodicContribution().Equal(dec("20")) {
		t.Errorf("expected 20, got %s", more.PeriodicContribution())
	}

	if _, err := base.WithPeriodCount(-3); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
	if _, err := base.WithTarget(dec("-1")); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
	if _, ok := base.TargetGoal(); ok {
		t.Errorf("base should carry no target")
	}
}

func TestMonthlyRate(t *testing.T) {
	p := mustParams(t, "0", "0", "6", 1)
	if !p.MonthlyRate().Equal(dec("0.005")) {
		t.Errorf("expected 0.005, got %s", p.MonthlyRate())
	}
}
