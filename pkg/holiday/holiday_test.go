package holiday

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendar_Lookup(t *testing.T) {
	t.Run("should return the label for a known date", func(t *testing.T) {
		calendar := NewCalendar(map[civil.Date]string{
			{Year: 2026, Month: time.November, Day: 8}: "Diwali",
		})

		label, ok := calendar.Lookup(civil.Date{Year: 2026, Month: time.November, Day: 8})

		assert.True(t, ok)
		assert.Equal(t, "Diwali", label)
	})

	t.Run("should report a miss for an unknown date", func(t *testing.T) {
		calendar := NewCalendar(nil)

		label, ok := calendar.Lookup(civil.Date{Year: 2026, Month: time.November, Day: 9})

		assert.False(t, ok)
		assert.Empty(t, label)
	})

	t.Run("should not observe later changes to the source map", func(t *testing.T) {
		entries := map[civil.Date]string{
			{Year: 2026, Month: time.December, Day: 25}: "Christmas",
		}
		calendar := NewCalendar(entries)

		entries[civil.Date{Year: 2026, Month: time.December, Day: 31}] = "New Year's Eve"

		assert.Equal(t, 1, calendar.Len())
	})
}

func TestDefault(t *testing.T) {
	calendar := Default()

	assert.Equal(t, 24, calendar.Len())

	label, ok := calendar.Lookup(civil.Date{Year: 2026, Month: time.November, Day: 8})
	require.True(t, ok)
	assert.Equal(t, "Diwali", label)

	label, ok = calendar.Lookup(civil.Date{Year: 2026, Month: time.August, Day: 15})
	require.True(t, ok)
	assert.Equal(t, "Independence Day", label)

	_, ok = calendar.Lookup(civil.Date{Year: 2026, Month: time.November, Day: 9})
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	t.Run("should load a calendar from a YAML file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "holidays.yaml")
		content := "\"2026-11-08\": \"Diwali\"\n\"2026-12-25\": \"Christmas\"\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		calendar, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, 2, calendar.Len())
		label, ok := calendar.Lookup(civil.Date{Year: 2026, Month: time.December, Day: 25})
		assert.True(t, ok)
		assert.Equal(t, "Christmas", label)
	})

	t.Run("should fail when the file does not exist", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.Error(t, err)
	})

	t.Run("should fail on a malformed date key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "holidays.yaml")
		content := "\"not-a-date\": \"Mystery\"\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		_, err := Load(path)

		require.Error(t, err)
	})
}
