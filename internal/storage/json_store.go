package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	apperrors "github.com/blockday/blockday/internal/errors"
	"github.com/blockday/blockday/internal/models"
)

type fileStore struct {
	Version  int                               `json:"version"`
	Settings models.Settings                   `json:"settings"`
	Commits  map[string]models.DayCommit       `json:"commits"` // date -> commit
	Events   map[string][]models.CalendarEvent `json:"events"`  // day -> events
}

// JSONStore is a flat-file fallback provider. The whole store is one JSON
// document, rewritten on every mutation.
type JSONStore struct {
	path  string
	store *fileStore
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{path: configPath}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &fileStore{
		Version: 1,
		Settings: models.Settings{
			DayStart:      "07:00",
			DayEnd:        "22:00",
			Timezone:      "Local",
			LookbackWeeks: 4,
		},
		Commits: make(map[string]models.DayCommit),
		Events:  make(map[string][]models.CalendarEvent),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'blockday init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &fileStore{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Commits == nil {
		s.store.Commits = make(map[string]models.DayCommit)
	}
	if s.store.Events == nil {
		s.store.Events = make(map[string][]models.CalendarEvent)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	// Write to a temp file and rename so a crash mid-write cannot corrupt
	// the store.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.store == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) SaveCommit(commit models.DayCommit) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Commits[commit.Date] = commit
	return s.save()
}

func (s *JSONStore) GetCommit(date string) (models.DayCommit, error) {
	if s.store == nil {
		return models.DayCommit{}, fmt.Errorf("storage not loaded")
	}
	commit, ok := s.store.Commits[date]
	if !ok {
		return models.DayCommit{}, fmt.Errorf("%s: %w", date, apperrors.ErrNotCommitted)
	}
	return commit, nil
}

func (s *JSONStore) GetCommitsInRange(startDate, endDate string) ([]models.DayCommit, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	var commits []models.DayCommit
	for date, commit := range s.store.Commits {
		if date >= startDate && date <= endDate {
			commits = append(commits, commit)
		}
	}
	sort.Slice(commits, func(i, j int) bool { return commits[i].Date < commits[j].Date })
	return commits, nil
}

func (s *JSONStore) GetAllCommits() ([]models.DayCommit, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	var commits []models.DayCommit
	for _, commit := range s.store.Commits {
		commits = append(commits, commit)
	}
	sort.Slice(commits, func(i, j int) bool { return commits[i].Date < commits[j].Date })
	return commits, nil
}

func (s *JSONStore) DeleteCommit(date string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	delete(s.store.Commits, date)
	return s.save()
}

func (s *JSONStore) SaveEvents(day string, events []models.CalendarEvent) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Events[day] = events
	return s.save()
}

func (s *JSONStore) GetEventsForDay(day string) ([]models.CalendarEvent, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	events := s.store.Events[day]
	sorted := make([]models.CalendarEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted, nil
}

func (s *JSONStore) DeleteEventsForDay(day string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	delete(s.store.Events, day)
	return s.save()
}
