package handlers

import (
	"net/http"

	"societyBack/internal/models"
	"societyBack/internal/services"
)

type TopHandler struct {
	Service *services.TopService
}

// limit reads ?limit=N. Zero lets the service apply its default.
func limit(r *http.Request) int {
	return queryInt(r, "limit", 0)
}

func (h *TopHandler) TopCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.TopCategories(r.Context(), limit(r))
	if err != nil {
		writeError(w, "TopCategories", err, "Failed to load top categories")
		return
	}
	if categories == nil {
		categories = []models.TopCategory{}
	}
	writeJSON(w, http.StatusOK, models.TopCategoriesResponse{Categories: categories})
}

func (h *TopHandler) TopServices(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.TopServices(r.Context(), limit(r))
	if err != nil {
		writeError(w, "TopServices", err, "Failed to load top services")
		return
	}
	if list == nil {
		list = []models.TopService{}
	}
	writeJSON(w, http.StatusOK, models.TopServicesResponse{Services: list})
}
