package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"savings-planner/domain"
	"savings-planner/repository"
	"savings-planner/service"
)

func newTestRouter(t *testing.T, capacity int) *http.ServeMux {
	t.Helper()

	projections := service.NewProjectionService(
		repository.NewCalculationRepositoryMemory(),
		repository.NewMockCache(),
		service.DefaultLimits(),
	)
	plans := service.NewPlanService(repository.NewPlanRepositoryMemory(), projections)

	limiter := NewRateLimiter(capacity, time.Minute)
	t.Cleanup(limiter.Stop)

	return NewRouter(Handlers{
		Projection: NewProjectionHandler(projections),
		Scenario:   NewScenarioHandler(service.NewScenarioService(projections)),
		Plan:       NewPlanHandler(plans),
	}, limiter)
}

func post(t *testing.T, mux http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestCalculateHandler_OK(t *testing.T) {

	mux := newTestRouter(t, 100)

	w := post(t, mux, "/projection/calculate", `{
		"current_balance": "1000.00",
		"monthly_contribution": 0,
		"annual_return_rate": 12,
		"period_count": 1,
		"target_goal": "1500"
	}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result domain.ProjectionResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !result.FutureValue.Equal(decimal.NewFromInt(1010)) {
		t.Errorf("expected 1010.00, got %s", result.FutureValue)
	}
	if result.Gap == nil || !result.Gap.Equal(decimal.NewFromInt(-490)) {
		t.Errorf("expected gap -490, got %v", result.Gap)
	}
}

func TestCalculateHandler_MethodNotAllowed(t *testing.T) {

	mux := newTestRouter(t, 100)

	req := httptest.NewRequest(http.MethodGet, "/projection/calculate", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestCalculateHandler_BadRequest(t *testing.T) {

	mux := newTestRouter(t, 100)

	cases := map[string]string{
		"malformed json":   `{invalid-json}`,
		"unknown field":    `{"monto": 10000}`,
		"negative periods": `{"period_count": -1}`,
		"negative balance": `{"current_balance": "-5", "period_count": 3}`,
		"rate at floor":    `{"annual_return_rate": -1200, "period_count": 3}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := post(t, mux, "/projection/calculate", body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestCalculateHandler_UnsupportedMediaType(t *testing.T) {

	mux := newTestRouter(t, 100)

	req := httptest.NewRequest(http.MethodPost, "/projection/calculate", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("expected 415, got %d", w.Code)
	}
}

func TestSolveHandler_ZeroRate(t *testing.T) {

	mux := newTestRouter(t, 100)

	w := post(t, mux, "/projection/solve", `{
		"current_balance": 0,
		"target_goal": 1200,
		"annual_return_rate": 0,
		"period_count": 12
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result domain.SolveResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !result.RequiredContribution.Equal(decimal.NewFromInt(100)) || !result.ContributionNeeded {
		t.Errorf("expected 100.00, got %+v", result)
	}
}

func TestGapHandler(t *testing.T) {

	mux := newTestRouter(t, 100)

	w := post(t, mux, "/projection/gap", `{"projected_balance": "1200.00", "target_goal": "1500.00"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var result domain.GapResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !result.Gap.Equal(decimal.NewFromInt(-300)) || result.Status != domain.GapShortfall {
		t.Errorf("expected -300 shortfall, got %+v", result)
	}
}

func TestScheduleAndCompareHandlers(t *testing.T) {

	mux := newTestRouter(t, 100)

	w := post(t, mux, "/projection/schedule", `{"monthly_contribution": 100, "annual_return_rate": 0, "period_count": 3}`)
	if w.Code != http.StatusOK {
		t.Fatalf("schedule: expected 200, got %d", w.Code)
	}
	var schedule domain.ScheduleResult
	if err := json.NewDecoder(w.Body).Decode(&schedule); err != nil {
		t.Fatalf("decode schedule: %v", err)
	}
	if len(schedule.Periods) != 3 || !schedule.FutureValue.Equal(decimal.NewFromInt(300)) {
		t.Errorf("unexpected schedule %+v", schedule)
	}

	w = post(t, mux, "/projection/compare", `{
		"current_balance": 15000,
		"monthly_contribution": 500,
		"target_goal": 100000,
		"period_count": 96,
		"rates": [9, 5, 7]
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("compare: expected 200, got %d", w.Code)
	}
	var compare domain.CompareResult
	if err := json.NewDecoder(w.Body).Decode(&compare); err != nil {
		t.Fatalf("decode compare: %v", err)
	}
	if len(compare.Scenarios) != 3 || !compare.Scenarios[0].AnnualReturnRate.Equal(decimal.NewFromInt(5)) {
		t.Errorf("unexpected scenarios %+v", compare.Scenarios)
	}
}

func TestRetirementHandler(t *testing.T) {

	mux := newTestRouter(t, 100)

	w := post(t, mux, "/projection/retirement", `{
		"current_age": 65,
		"retirement_age": 65,
		"current_savings": 250000,
		"annual_contribution": 5000,
		"expected_return_rate": 7
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var result domain.RetirementResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !result.ProjectedSavings.Equal(decimal.NewFromInt(250000)) {
		t.Errorf("expected 250000, got %s", result.ProjectedSavings)
	}
}
