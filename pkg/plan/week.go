package plan

import (
	"time"

	"cloud.google.com/go/civil"
)

// StartOfWeek returns the Monday on or before date. The week starts on Monday
// regardless of locale; a Sunday maps to the Monday six days earlier.
func StartOfWeek(date civil.Date) civil.Date {
	delta := (int(date.In(time.UTC).Weekday()) - int(time.Monday) + 7) % 7
	return date.AddDays(-delta)
}

// WeekDates returns the seven consecutive dates starting at start.
func WeekDates(start civil.Date) []civil.Date {
	dates := make([]civil.Date, 7)
	for i := range dates {
		dates[i] = start.AddDays(i)
	}
	return dates
}
