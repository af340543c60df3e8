package plan

import (
	"fmt"

	"cloud.google.com/go/civil"
)

// MealSlot is one of the fixed daily meal subdivisions.
type MealSlot string

const (
	Breakfast MealSlot = "Breakfast"
	Lunch     MealSlot = "Lunch"
	Dinner    MealSlot = "Dinner"
)

// Slots lists all meal slots in table order.
var Slots = []MealSlot{Breakfast, Lunch, Dinner}

// ParseMealSlot converts the stored meal_type value back to a MealSlot.
func ParseMealSlot(s string) (MealSlot, error) {
	switch MealSlot(s) {
	case Breakfast, Lunch, Dinner:
		return MealSlot(s), nil
	}
	return "", fmt.Errorf("unknown meal slot: %q", s)
}

// MealKey is the identity of a meal record. It is a comparable struct rather
// than a concatenated string, so a member id containing a separator character
// cannot collide with another key.
type MealKey struct {
	MemberId string
	Date     civil.Date
	Slot     MealSlot
}

// MealRecord is one planned meal. At most one record exists per key; saving
// again overwrites. An empty description is a valid persisted "cleared" state.
type MealRecord struct {
	MemberId    string
	Date        civil.Date
	Slot        MealSlot
	Description string
}

func (m MealRecord) Key() MealKey {
	return MealKey{MemberId: m.MemberId, Date: m.Date, Slot: m.Slot}
}

// EventNote is the special note for a date, at most one per date. An empty
// note is meaningful: it suppresses the holiday default for that date.
type EventNote struct {
	Date civil.Date
	Note string
}

// DayView is the derived per-date projection shown in the weekly table. It is
// rebuilt on every read and never persisted. Empty fields mean "nothing
// planned" and are rendered by the UI as a placeholder.
type DayView struct {
	Breakfast string
	Lunch     string
	Dinner    string
	Note      string
}

// WriteBatch is a heterogeneous set of meal and note upserts that must be
// committed as one atomic transaction.
type WriteBatch struct {
	Meals []MealRecord
	Notes []EventNote
}

func (b WriteBatch) Empty() bool {
	return len(b.Meals) == 0 && len(b.Notes) == 0
}
