package http

import (
	"net/http"

	"savings-planner/domain"
	"savings-planner/service"
)

type PlanHandler struct {
	service *service.PlanService
}

func NewPlanHandler(service *service.PlanService) *PlanHandler {
	return &PlanHandler{service: service}
}

// Plans serves GET (list) and POST (create) on the collection.
func (h *PlanHandler) Plans(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		plans, err := h.service.ListPlans()
		if err != nil {
			writeError(w, err)
			return
		}
		if plans == nil {
			plans = []domain.Plan{}
		}
		writeJSON(w, http.StatusOK, plans)

	case http.MethodPost:
		var input domain.PlanInput
		if !decodePOST(w, r, &input) {
			return
		}
		plan, err := h.service.CreatePlan(input)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, plan)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// Plan serves GET /plans/{id}.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	plan, err := h.service.GetPlan(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}
