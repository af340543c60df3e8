package plan

import "cloud.google.com/go/civil"

// HolidayLookup resolves the default note label for a date, if any.
type HolidayLookup interface {
	Lookup(date civil.Date) (string, bool)
}

// noteSource ranks where a day's note came from. A persisted note always wins
// over the static holiday default, even when its text is blank: a blank
// persisted note is how a user suppresses a holiday label.
type noteSource int

const (
	noteAbsent noteSource = iota
	noteHoliday
	notePersisted
)

type noteState struct {
	source noteSource
	text   string
}

func (n noteState) override(source noteSource, text string) noteState {
	if source < n.source {
		return n
	}
	return noteState{source: source, text: text}
}

// BuildWeekView merges the holiday defaults, persisted meals, and persisted
// notes for the given dates into one DayView per date. The result covers every
// date in dates, including ones with no data at all. Meals and notes outside
// the date window are ignored.
func BuildWeekView(dates []civil.Date, holidays HolidayLookup, meals []MealRecord, notes []EventNote) map[civil.Date]DayView {
	views := make(map[civil.Date]DayView, len(dates))
	noteStates := make(map[civil.Date]noteState, len(dates))

	for _, date := range dates {
		views[date] = DayView{}
		state := noteState{}
		if holidays != nil {
			if label, ok := holidays.Lookup(date); ok {
				state = state.override(noteHoliday, label)
			}
		}
		noteStates[date] = state
	}

	for _, meal := range meals {
		view, ok := views[meal.Date]
		if !ok {
			continue
		}
		switch meal.Slot {
		case Breakfast:
			view.Breakfast = meal.Description
		case Lunch:
			view.Lunch = meal.Description
		case Dinner:
			view.Dinner = meal.Description
		}
		views[meal.Date] = view
	}

	for _, note := range notes {
		state, ok := noteStates[note.Date]
		if !ok {
			continue
		}
		noteStates[note.Date] = state.override(notePersisted, note.Note)
	}

	for date, state := range noteStates {
		view := views[date]
		view.Note = state.text
		views[date] = view
	}

	return views
}
