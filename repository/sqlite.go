package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"savings-planner/domain"

	_ "modernc.org/sqlite" // register sqlite driver
)

// SQLiteStore persists plans and the calculation audit trail. It implements
// both PlanRepository and CalculationRepository. Money is stored as TEXT so
// no value passes through a float.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database at dbPath and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS plans (
			id                   TEXT PRIMARY KEY,
			name                 TEXT NOT NULL,
			current_savings      TEXT NOT NULL,
			monthly_contribution TEXT NOT NULL,
			expected_return_rate TEXT NOT NULL,
			years_until_goal     INTEGER NOT NULL,
			target_goal          TEXT NOT NULL,
			projected_balance    TEXT NOT NULL,
			months_elapsed       INTEGER NOT NULL DEFAULT 0,
			estimated_balance    TEXT NOT NULL DEFAULT '0',
			created_at           INTEGER NOT NULL,
			updated_at           INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_plans_created ON plans(created_at)`,

		`CREATE TABLE IF NOT EXISTS calculations (
			id                    INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp             INTEGER NOT NULL,
			current_balance       TEXT NOT NULL,
			monthly_contribution  TEXT NOT NULL,
			annual_return_rate    TEXT NOT NULL,
			period_count          INTEGER NOT NULL,
			target_goal           TEXT,
			future_value          TEXT NOT NULL,
			gap                   TEXT,
			required_contribution TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_calculations_ts ON calculations(timestamp)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Save(plan domain.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO plans
		(id, name, current_savings, monthly_contribution, expected_return_rate,
		 years_until_goal, target_goal, projected_balance, months_elapsed, estimated_balance,
		 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			current_savings = excluded.current_savings,
			monthly_contribution = excluded.monthly_contribution,
			expected_return_rate = excluded.expected_return_rate,
			years_until_goal = excluded.years_until_goal,
			target_goal = excluded.target_goal,
			projected_balance = excluded.projected_balance,
			months_elapsed = excluded.months_elapsed,
			estimated_balance = excluded.estimated_balance,
			updated_at = excluded.updated_at`,
		plan.ID, plan.Name,
		plan.CurrentSavings.String(), plan.MonthlyContribution.String(), plan.ExpectedReturnRate.String(),
		plan.YearsUntilGoal, plan.TargetGoal.String(), plan.ProjectedBalance.String(),
		plan.MonthsElapsed, plan.EstimatedBalance.String(),
		plan.CreatedAt.UnixNano(), plan.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

const planColumns = `id, name, current_savings, monthly_contribution, expected_return_rate,
	years_until_goal, target_goal, projected_balance, months_elapsed, estimated_balance,
	created_at, updated_at`

func (s *SQLiteStore) Get(id string) (domain.Plan, error) {
	row := s.db.QueryRow(`SELECT `+planColumns+` FROM plans WHERE id = ?`, id)
	plan, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Plan{}, fmt.Errorf("plan %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return domain.Plan{}, fmt.Errorf("query plan: %w", err)
	}
	return plan, nil
}

// List returns plans oldest first.
func (s *SQLiteStore) List() ([]domain.Plan, error) {
	rows, err := s.db.Query(`SELECT ` + planColumns + ` FROM plans ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var plans []domain.Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

func (s *SQLiteStore) UpdateProgress(id string, progress domain.PlanProgress, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE plans
		SET months_elapsed = ?, estimated_balance = ?, projected_balance = ?, updated_at = ?
		WHERE id = ?`,
		progress.MonthsElapsed, progress.EstimatedBalance.String(), progress.ProjectedBalance.String(),
		updatedAt.UnixNano(), id)
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("plan %s: %w", id, ErrNotFound)
	}
	return nil
}

// SaveCalculation records a served projection. Satisfies CalculationRepository
// through CalculationLog.
func (s *SQLiteStore) SaveCalculation(input domain.ProjectionInput, result domain.ProjectionResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO calculations
		(timestamp, current_balance, monthly_contribution, annual_return_rate, period_count,
		 target_goal, future_value, gap, required_contribution)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().Unix(),
		input.CurrentBalance.String(), input.MonthlyContribution.String(), input.AnnualReturnRate.String(),
		input.PeriodCount,
		nullable(input.TargetGoal), result.FutureValue.String(),
		nullable(result.Gap), nullable(result.RequiredContribution),
	)
	if err != nil {
		return fmt.Errorf("insert calculation: %w", err)
	}
	return nil
}

// CountCalculations returns the number of recorded calculations.
func (s *SQLiteStore) CountCalculations() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM calculations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count calculations: %w", err)
	}
	return n, nil
}

// CalculationLog adapts the store to CalculationRepository, whose Save
// signature collides with PlanRepository's.
func (s *SQLiteStore) CalculationLog() CalculationRepository {
	return calculationLog{s}
}

type calculationLog struct{ s *SQLiteStore }

func (c calculationLog) Save(input domain.ProjectionInput, result domain.ProjectionResult) error {
	return c.s.SaveCalculation(input, result)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlan(sc scanner) (domain.Plan, error) {
	var (
		plan               domain.Plan
		createdAt, updated int64
	)
	err := sc.Scan(
		&plan.ID, &plan.Name,
		&plan.CurrentSavings, &plan.MonthlyContribution, &plan.ExpectedReturnRate,
		&plan.YearsUntilGoal, &plan.TargetGoal, &plan.ProjectedBalance,
		&plan.MonthsElapsed, &plan.EstimatedBalance,
		&createdAt, &updated,
	)
	if err != nil {
		return domain.Plan{}, err
	}
	plan.CreatedAt = time.Unix(0, createdAt).UTC()
	plan.UpdatedAt = time.Unix(0, updated).UTC()
	return plan, nil
}

func nullable(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}
