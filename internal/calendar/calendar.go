// Package calendar imports externally exported calendar events for conflict
// checking. Events are read-only once imported; nothing in the engine ever
// moves or edits them.
package calendar

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/blockday/blockday/internal/models"
	"github.com/blockday/blockday/internal/utils"
)

// LoadFile reads a JSON array of calendar events from disk, validates each
// one, and stamps the given day plus a fresh ID onto entries that lack one.
func LoadFile(path, day string) ([]models.CalendarEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar file: %w", err)
	}

	var events []models.CalendarEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("failed to parse calendar file: %w", err)
	}

	for i := range events {
		if err := validate(events[i]); err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		if events[i].ID == "" {
			events[i].ID = uuid.NewString()
		}
		events[i].Day = day
	}

	return events, nil
}

func validate(event models.CalendarEvent) error {
	if event.Title == "" {
		return fmt.Errorf("missing title")
	}
	start, err := utils.ParseTimeToMinutes(event.Start)
	if err != nil {
		return fmt.Errorf("bad start time %q", event.Start)
	}
	end, err := utils.ParseTimeToMinutes(event.End)
	if err != nil {
		return fmt.Errorf("bad end time %q", event.End)
	}
	if start >= end {
		return fmt.Errorf("start %s is not before end %s", event.Start, event.End)
	}
	return nil
}
