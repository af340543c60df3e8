package stats

import (
	"encoding/json"
	"net/http"
)

type VisitDTO struct {
	Visits int64 `json:"visits"`
}

type TotalsDTO struct {
	Visits int64 `json:"visits"`
	Edits  int64 `json:"edits"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RecordVisit godoc
// @Summary Record a page visit
// @Description Increment the site visit counter and return the new count
// @Tags Stats
// @Produce json
// @Success 200 {object} VisitDTO
// @Router /api/stats/visit [post]
func (h *Handler) RecordVisit(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	visits, err := h.service.RecordVisit(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(VisitDTO{Visits: visits}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetTotals godoc
// @Summary Get site counters
// @Description Return the current visit and edit counts
// @Tags Stats
// @Produce json
// @Success 200 {object} TotalsDTO
// @Router /api/stats [get]
func (h *Handler) GetTotals(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	totals, err := h.service.GetTotals(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(TotalsDTO{Visits: totals.Visits, Edits: totals.Edits}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
