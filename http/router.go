package http

import "net/http"

// Handlers groups everything the router serves.
type Handlers struct {
	Projection *ProjectionHandler
	Scenario   *ScenarioHandler
	Plan       *PlanHandler
}

// NewRouter registers every route behind the rate limiter.
func NewRouter(h Handlers, limiter *RateLimiter) *http.ServeMux {
	mux := http.NewServeMux()

	routes := map[string]http.HandlerFunc{
		"/projection/calculate":  h.Projection.Calculate,
		"/projection/gap":        h.Projection.Gap,
		"/projection/solve":      h.Projection.Solve,
		"/projection/schedule":   h.Projection.Schedule,
		"/projection/retirement": h.Projection.Retirement,
		"/projection/compare":    h.Scenario.Compare,
		"/plans":                 h.Plan.Plans,
		"/plans/{id}":            h.Plan.Plan,
	}
	for pattern, handler := range routes {
		mux.Handle(pattern, RateLimitMiddleware(limiter, handler))
	}

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}
