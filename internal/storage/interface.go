package storage

import (
	"strings"

	"github.com/blockday/blockday/internal/models"
	"github.com/blockday/blockday/internal/storage/sqlite"
)

// Provider is the persistence contract for day commitments, imported calendar
// events, and user settings. The engine never enforces lifecycle rules here;
// that lives in the commit store. Providers only move data.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Day commitments, keyed by date (YYYY-MM-DD). SaveCommit replaces the
	// whole record for its date atomically.
	SaveCommit(models.DayCommit) error
	GetCommit(date string) (models.DayCommit, error)
	GetCommitsInRange(startDate, endDate string) ([]models.DayCommit, error)
	GetAllCommits() ([]models.DayCommit, error)
	DeleteCommit(date string) error

	// Calendar events, keyed by day. SaveEvents replaces the day's events.
	SaveEvents(day string, events []models.CalendarEvent) error
	GetEventsForDay(day string) ([]models.CalendarEvent, error)
	DeleteEventsForDay(day string) error

	// Utils
	GetConfigPath() string
}

// NewProvider selects a storage backend from the config path extension.
// SQLite is the default; a .json path selects the flat-file store.
func NewProvider(path string) Provider {
	if strings.HasSuffix(path, ".json") {
		return NewJSONStore(path)
	}
	return sqlite.NewStore(path)
}
