package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/blockday/blockday/internal/constants"
	"github.com/blockday/blockday/internal/migration"
	"github.com/blockday/blockday/internal/models"
	"github.com/blockday/blockday/migrations"
)

// Store is the SQLite-backed persistence provider.
type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	runner := migration.NewRunner(s.db, migrations.SQLite())
	if _, err := runner.Apply(nil); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Seed default settings on first init.
	if _, err := s.GetSettings(); err != nil {
		defaults := models.Settings{
			DayStart:      "07:00",
			DayEnd:        "22:00",
			Timezone:      "Local",
			LookbackWeeks: constants.DefaultLookbackWeeks,
		}
		if err := s.SaveSettings(defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

// Open connects to an existing database without checking its schema version.
// Maintenance commands (migrate, doctor) use it to reach databases that Load
// would reject.
func (s *Store) Open() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if err := s.Open(); err != nil {
		return err
	}

	runner := migration.NewRunner(s.db, migrations.SQLite())
	return runner.ValidateVersion()
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB exposes the underlying handle for maintenance operations (backups,
// doctor checks).
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) GetConfigPath() string {
	return s.path
}

func (s *Store) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case "day_start":
			settings.DayStart = value
		case "day_end":
			settings.DayEnd = value
		case "timezone":
			settings.Timezone = value
		case "lookback_weeks":
			n, err := strconv.Atoi(value)
			if err != nil {
				return models.Settings{}, fmt.Errorf("parsing lookback_weeks: %w", err)
			}
			settings.LookbackWeeks = n
		case "routine_names":
			if value != "" {
				if err := json.Unmarshal([]byte(value), &settings.RoutineNames); err != nil {
					return models.Settings{}, fmt.Errorf("parsing routine_names: %w", err)
				}
			}
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	if count == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}

	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	routines, err := json.Marshal(settings.RoutineNames)
	if err != nil {
		return fmt.Errorf("serializing routine_names: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	pairs := [][2]string{
		{"day_start", settings.DayStart},
		{"day_end", settings.DayEnd},
		{"timezone", settings.Timezone},
		{"lookback_weeks", strconv.Itoa(settings.LookbackWeeks)},
		{"routine_names", string(routines)},
	}
	for _, p := range pairs {
		if _, err := stmt.Exec(p[0], p[1]); err != nil {
			return err
		}
	}

	return tx.Commit()
}
