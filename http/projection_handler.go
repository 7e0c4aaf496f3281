package http

import (
	"net/http"

	"savings-planner/domain"
	"savings-planner/service"
)

type ProjectionHandler struct {
	service *service.ProjectionService
}

func NewProjectionHandler(service *service.ProjectionService) *ProjectionHandler {
	return &ProjectionHandler{service: service}
}

func (h *ProjectionHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var input domain.ProjectionInput
	if !decodePOST(w, r, &input) {
		return
	}

	result, err := h.service.Calculate(input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ProjectionHandler) Gap(w http.ResponseWriter, r *http.Request) {
	var input domain.GapInput
	if !decodePOST(w, r, &input) {
		return
	}
	writeJSON(w, http.StatusOK, h.service.Gap(input))
}

func (h *ProjectionHandler) Solve(w http.ResponseWriter, r *http.Request) {
	var input domain.SolveInput
	if !decodePOST(w, r, &input) {
		return
	}

	result, err := h.service.Solve(input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ProjectionHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var input domain.ProjectionInput
	if !decodePOST(w, r, &input) {
		return
	}

	result, err := h.service.Schedule(input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ProjectionHandler) Retirement(w http.ResponseWriter, r *http.Request) {
	var input domain.RetirementScenario
	if !decodePOST(w, r, &input) {
		return
	}

	result, err := h.service.ProjectRetirement(input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
