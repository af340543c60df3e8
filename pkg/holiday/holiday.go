package holiday

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

// Calendar is an immutable date-to-label table, fixed at deploy time. It is
// not editable through the application.
type Calendar struct {
	entries map[civil.Date]string
}

func NewCalendar(entries map[civil.Date]string) *Calendar {
	copied := make(map[civil.Date]string, len(entries))
	for date, label := range entries {
		copied[date] = label
	}
	return &Calendar{entries: copied}
}

// Lookup returns the label for the given date, if one exists.
func (c *Calendar) Lookup(date civil.Date) (string, bool) {
	label, ok := c.entries[date]
	return label, ok
}

// Len returns the number of entries in the calendar.
func (c *Calendar) Len() int {
	return len(c.entries)
}

// Load reads a calendar from a YAML file mapping YYYY-MM-DD dates to labels.
func Load(path string) (*Calendar, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("could not read holidays file %s: %w", path, err)
	}

	var raw map[string]string
	if err := k.Unmarshal("", &raw); err != nil {
		return nil, fmt.Errorf("could not parse holidays file %s: %w", path, err)
	}

	entries := make(map[civil.Date]string, len(raw))
	for dateString, label := range raw {
		date, err := civil.ParseDate(dateString)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday date %q: %w", dateString, err)
		}
		entries[date] = label
	}

	log.Infof("Loaded %d holidays from %s", len(entries), path)
	return NewCalendar(entries), nil
}
