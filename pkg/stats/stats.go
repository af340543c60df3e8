package stats

import (
	"context"
	"fmt"

	"github.com/mealweek/mealweek/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

// Counter names stored in the site_stat table.
const (
	CounterVisits = "visits"
	CounterEdits  = "edits"
)

// Totals is the current value of every site counter.
type Totals struct {
	Visits int64
	Edits  int64
}

type Repository interface {
	// Increment adds one to the named counter, creating it at 1 when absent,
	// and returns the new value.
	Increment(ctx context.Context, name string) (int64, error)
	// Get returns the named counter's value, 0 when absent.
	Get(ctx context.Context, name string) (int64, error)
}

type Service interface {
	// RecordVisit bumps the visit counter and returns the new count.
	RecordVisit(ctx context.Context) (int64, error)
	GetTotals(ctx context.Context) (Totals, error)
}

type ServiceImpl struct {
	repo Repository
}

// NewService builds the stats service and subscribes the edit counter to plan
// changes, so every committed save or week copy is counted without the plan
// service knowing about stats.
func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	service := &ServiceImpl{repo: repo}
	event_bus.SubscribeTyped[event_bus.PlanDaySaved](
		eventBus,
		"plan.day.saved",
		func(e event_bus.EventT[event_bus.PlanDaySaved]) error {
			log.Debugf("received day saved event for %s", e.Data.Date)
			return service.recordEdit(e.Context())
		},
	)
	event_bus.SubscribeTyped[event_bus.PlanWeekCopied](
		eventBus,
		"plan.week.copied",
		func(e event_bus.EventT[event_bus.PlanWeekCopied]) error {
			log.Debugf("received week copied event: %d records into %s", e.Data.CopiedCount, e.Data.TargetWeekStart)
			return service.recordEdit(e.Context())
		},
	)
	return service
}

func (s *ServiceImpl) RecordVisit(ctx context.Context) (int64, error) {
	visits, err := s.repo.Increment(ctx, CounterVisits)
	if err != nil {
		return 0, fmt.Errorf("failed to record visit: %w", err)
	}
	return visits, nil
}

func (s *ServiceImpl) GetTotals(ctx context.Context) (Totals, error) {
	visits, err := s.repo.Get(ctx, CounterVisits)
	if err != nil {
		return Totals{}, fmt.Errorf("failed to get visit count: %w", err)
	}
	edits, err := s.repo.Get(ctx, CounterEdits)
	if err != nil {
		return Totals{}, fmt.Errorf("failed to get edit count: %w", err)
	}
	return Totals{Visits: visits, Edits: edits}, nil
}

func (s *ServiceImpl) recordEdit(ctx context.Context) error {
	if _, err := s.repo.Increment(ctx, CounterEdits); err != nil {
		log.Errorf("failed to record edit: %v", err)
		return err
	}
	return nil
}
