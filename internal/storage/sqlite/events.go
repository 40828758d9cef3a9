package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/blockday/blockday/internal/models"
)

// SaveEvents replaces the stored events for a day with the given set.
func (s *Store) SaveEvents(day string, events []models.CalendarEvent) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM events WHERE day = ?", day); err != nil {
		return fmt.Errorf("clearing events for %s: %w", day, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO events (id, day, title, start_time, end_time, account_color)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, event := range events {
		var color sql.NullString
		if event.AccountColor != "" {
			color = sql.NullString{String: event.AccountColor, Valid: true}
		}
		if _, err := stmt.Exec(event.ID, day, event.Title, event.Start, event.End, color); err != nil {
			return fmt.Errorf("saving event %s: %w", event.ID, err)
		}
	}

	return tx.Commit()
}

// GetEventsForDay returns a day's events ordered by start time.
func (s *Store) GetEventsForDay(day string) ([]models.CalendarEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, day, title, start_time, end_time, account_color
		FROM events WHERE day = ? ORDER BY start_time, id`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.CalendarEvent
	for rows.Next() {
		var event models.CalendarEvent
		var color sql.NullString
		if err := rows.Scan(&event.ID, &event.Day, &event.Title, &event.Start, &event.End, &color); err != nil {
			return nil, err
		}
		if color.Valid {
			event.AccountColor = color.String
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// DeleteEventsForDay removes all stored events for a day.
func (s *Store) DeleteEventsForDay(day string) error {
	_, err := s.db.Exec("DELETE FROM events WHERE day = ?", day)
	return err
}
