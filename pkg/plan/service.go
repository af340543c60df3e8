package plan

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/mealweek/mealweek/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

// ErrNothingToCopy is returned by CopyLastWeek when the source week holds no
// meal records. It is an informational condition, not a system fault.
var ErrNothingToCopy = errors.New("no meals found in the previous week")

// daysPerWeek is the shift applied when duplicating a week forward.
const daysPerWeek = 7

// WeekView is the merged weekly projection returned to the UI layer.
type WeekView struct {
	WeekStart civil.Date
	Days      map[civil.Date]DayView
}

// DayInput carries one day's form submission: three meal descriptions and the
// special note. Empty strings are persisted as-is (cleared state).
type DayInput struct {
	Date      civil.Date
	Breakfast string
	Lunch     string
	Dinner    string
	Note      string
}

type Service interface {
	// GetWeek builds the merged view of the week containing anchor.
	GetWeek(ctx context.Context, anchor civil.Date) (WeekView, error)
	// SaveDay upserts a full day (all meal slots plus the note) atomically.
	SaveDay(ctx context.Context, day DayInput) error
	// CopyLastWeek duplicates every meal record of the week before the week
	// containing anchor into that week, shifted by seven days, overwriting
	// whatever is already there. Notes are not copied. Returns the number of
	// records copied, or ErrNothingToCopy when the source week is empty.
	CopyLastWeek(ctx context.Context, anchor civil.Date) (int, error)
}

type ServiceImpl struct {
	repo     Repository
	holidays HolidayLookup
	memberId string
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, holidays HolidayLookup, memberId string, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{
		repo:     repo,
		holidays: holidays,
		memberId: memberId,
		eventBus: eventBus,
	}
}

func (s *ServiceImpl) GetWeek(ctx context.Context, anchor civil.Date) (WeekView, error) {
	weekStart := StartOfWeek(anchor)
	dates := WeekDates(weekStart)
	from, to := dates[0], dates[len(dates)-1]

	meals, err := s.repo.FetchMeals(ctx, s.memberId, from, to)
	if err != nil {
		log.Errorf("failed to fetch meals for week %s: %v", weekStart, err)
		return WeekView{}, fmt.Errorf("failed to fetch meals: %w", err)
	}

	// Notes are best-effort: a fresh deployment may not have any yet, and a
	// note-fetch failure must not take the meal table down with it.
	notes, err := s.repo.FetchNotes(ctx, from, to)
	if err != nil {
		log.Warnf("notes unavailable for week %s, continuing without them: %v", weekStart, err)
		notes = nil
	}

	return WeekView{
		WeekStart: weekStart,
		Days:      BuildWeekView(dates, s.holidays, meals, notes),
	}, nil
}

func (s *ServiceImpl) SaveDay(ctx context.Context, day DayInput) error {
	batch := WriteBatch{
		Meals: []MealRecord{
			{MemberId: s.memberId, Date: day.Date, Slot: Breakfast, Description: day.Breakfast},
			{MemberId: s.memberId, Date: day.Date, Slot: Lunch, Description: day.Lunch},
			{MemberId: s.memberId, Date: day.Date, Slot: Dinner, Description: day.Dinner},
		},
		Notes: []EventNote{
			{Date: day.Date, Note: day.Note},
		},
	}

	if err := s.repo.UpsertBatch(ctx, batch); err != nil {
		log.Errorf("failed to save day %s: %v", day.Date, err)
		return fmt.Errorf("failed to save day: %w", err)
	}

	s.publish(ctx, "plan.day.saved", event_bus.PlanDaySaved{
		MemberId: s.memberId,
		Date:     day.Date,
	})
	return nil
}

func (s *ServiceImpl) CopyLastWeek(ctx context.Context, anchor civil.Date) (int, error) {
	targetStart := StartOfWeek(anchor)
	sourceStart := targetStart.AddDays(-daysPerWeek)
	sourceEnd := sourceStart.AddDays(daysPerWeek - 1)

	meals, err := s.repo.FetchMeals(ctx, s.memberId, sourceStart, sourceEnd)
	if err != nil {
		log.Errorf("failed to fetch source week %s: %v", sourceStart, err)
		return 0, fmt.Errorf("failed to fetch meals: %w", err)
	}
	if len(meals) == 0 {
		return 0, ErrNothingToCopy
	}

	copied := make([]MealRecord, 0, len(meals))
	for _, meal := range meals {
		meal.Date = meal.Date.AddDays(daysPerWeek)
		copied = append(copied, meal)
	}

	if err := s.repo.UpsertBatch(ctx, WriteBatch{Meals: copied}); err != nil {
		log.Errorf("failed to copy week %s into %s: %v", sourceStart, targetStart, err)
		return 0, fmt.Errorf("failed to copy week: %w", err)
	}

	s.publish(ctx, "plan.week.copied", event_bus.PlanWeekCopied{
		MemberId:        s.memberId,
		SourceWeekStart: sourceStart,
		TargetWeekStart: targetStart,
		CopiedCount:     len(copied),
	})
	return len(copied), nil
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, data)); err != nil {
		log.Errorf("failed to publish %s event: %v", eventType, err)
	}
}
