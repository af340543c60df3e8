package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mealweek/mealweek/internal/config"
	"github.com/mealweek/mealweek/internal/event_bus"
	"github.com/mealweek/mealweek/internal/utils"
	"github.com/mealweek/mealweek/pkg/holiday"
	"github.com/mealweek/mealweek/pkg/plan"
	"github.com/mealweek/mealweek/pkg/stats"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	HolidayCalendar *holiday.Calendar

	PlanRepo    plan.Repository
	PlanService plan.Service
	PlanHandler *plan.Handler

	StatsRepo    stats.Repository
	StatsService stats.Service
	StatsHandler *stats.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	if cfg.Planner.HolidaysFile != "" {
		calendar, err := holiday.Load(cfg.Planner.HolidaysFile)
		if err != nil {
			return nil, err
		}
		deps.HolidayCalendar = calendar
	} else {
		deps.HolidayCalendar = holiday.Default()
	}

	deps.PlanRepo = plan.NewRepo(db)
	deps.PlanService = plan.NewService(deps.PlanRepo, deps.HolidayCalendar, cfg.Planner.MemberId, deps.EventBus)
	deps.PlanHandler = plan.NewHandler(deps.PlanService, deps.Clock)

	deps.StatsRepo = stats.NewRepo(db)
	deps.StatsService = stats.NewService(deps.StatsRepo, deps.EventBus)
	deps.StatsHandler = stats.NewHandler(deps.StatsService)

	return deps, nil
}
