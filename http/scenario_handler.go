package http

import (
	"net/http"

	"savings-planner/domain"
	"savings-planner/service"
)

type ScenarioHandler struct {
	service *service.ScenarioService
}

func NewScenarioHandler(service *service.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{service: service}
}

func (h *ScenarioHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var input domain.CompareInput
	if !decodePOST(w, r, &input) {
		return
	}

	result, err := h.service.Compare(input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
