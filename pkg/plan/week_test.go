package plan

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfWeek(t *testing.T) {
	t.Run("maps every weekday to the Monday of its week", func(t *testing.T) {
		monday := civil.Date{Year: 2026, Month: time.January, Day: 5}
		for offset := 0; offset < 7; offset++ {
			date := monday.AddDays(offset)
			assert.Equal(t, monday, StartOfWeek(date), "date %s", date)
		}
	})

	t.Run("maps a Sunday to the Monday six days earlier", func(t *testing.T) {
		sunday := civil.Date{Year: 2026, Month: time.January, Day: 11}
		expected := civil.Date{Year: 2026, Month: time.January, Day: 5}
		assert.Equal(t, expected, StartOfWeek(sunday))
	})

	t.Run("is idempotent and bounds the date within its week", func(t *testing.T) {
		date := civil.Date{Year: 2026, Month: time.January, Day: 1}
		for i := 0; i < 400; i++ {
			d := date.AddDays(i)
			start := StartOfWeek(d)

			assert.Equal(t, time.Monday, start.In(time.UTC).Weekday(), "start for %s", d)
			assert.Equal(t, start, StartOfWeek(start), "idempotence for %s", d)
			assert.False(t, d.Before(start), "start must not be after %s", d)
			assert.True(t, d.Before(start.AddDays(7)), "%s must fall inside its week", d)
		}
	})

	t.Run("handles a week spanning a year boundary", func(t *testing.T) {
		newYearsDay := civil.Date{Year: 2026, Month: time.January, Day: 1}
		expected := civil.Date{Year: 2025, Month: time.December, Day: 29}
		assert.Equal(t, expected, StartOfWeek(newYearsDay))
	})
}

func TestWeekDates(t *testing.T) {
	t.Run("returns seven consecutive dates starting at start", func(t *testing.T) {
		start := civil.Date{Year: 2026, Month: time.January, Day: 5}
		dates := WeekDates(start)

		require.Len(t, dates, 7)
		assert.Equal(t, start, dates[0])
		for i := 1; i < len(dates); i++ {
			assert.Equal(t, 1, dates[i].DaysSince(dates[i-1]), "dates must increase by one day")
		}
	})

	t.Run("crosses month boundaries without gaps", func(t *testing.T) {
		start := civil.Date{Year: 2026, Month: time.March, Day: 30}
		dates := WeekDates(start)

		require.Len(t, dates, 7)
		assert.Equal(t, civil.Date{Year: 2026, Month: time.April, Day: 5}, dates[6])
	})
}
