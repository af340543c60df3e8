package app

import (
	"github.com/gorilla/mux"
	"github.com/mealweek/mealweek/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Weekly plan
	r.HandleFunc("/api/plan/week", deps.PlanHandler.GetWeek).Methods("GET")
	r.HandleFunc("/api/plan/week/copy", deps.PlanHandler.CopyLastWeek).Methods("POST")
	r.HandleFunc("/api/plan/day", deps.PlanHandler.SaveDay).Methods("PUT")

	// Site stats
	r.HandleFunc("/api/stats/visit", deps.StatsHandler.RecordVisit).Methods("POST")
	r.HandleFunc("/api/stats", deps.StatsHandler.GetTotals).Methods("GET")
}
