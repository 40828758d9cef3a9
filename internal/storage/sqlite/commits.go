package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/blockday/blockday/internal/errors"
	"github.com/blockday/blockday/internal/models"
)

// SaveCommit replaces the commitment record for its date. The commit row and
// all of its blocks are written in one transaction so a failure leaves the
// previous record untouched.
func (s *Store) SaveCommit(commit models.DayCommit) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var finalizedAt sql.NullString
	if commit.FinalizedAt != nil {
		finalizedAt = sql.NullString{String: *commit.FinalizedAt, Valid: true}
	}

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO commits (date, committed_at, committed, finalized_at)
		VALUES (?, ?, ?, ?)`,
		commit.Date, commit.CommittedAt, commit.Committed, finalizedAt)
	if err != nil {
		return fmt.Errorf("saving commit %s: %w", commit.Date, err)
	}

	if _, err := tx.Exec("DELETE FROM blocks WHERE commit_date = ?", commit.Date); err != nil {
		return fmt.Errorf("clearing blocks for %s: %w", commit.Date, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO blocks (id, commit_date, identity, start_time, end_time, optional, completed, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, block := range commit.Blocks {
		var completed sql.NullBool
		if block.Completed != nil {
			completed = sql.NullBool{Bool: *block.Completed, Valid: true}
		}
		if _, err := stmt.Exec(block.ID, commit.Date, block.Identity, block.Start, block.End, block.Optional, completed, i); err != nil {
			return fmt.Errorf("saving block %s: %w", block.ID, err)
		}
	}

	return tx.Commit()
}

// GetCommit returns the commitment record for a date. A missing date yields
// ErrNotCommitted.
func (s *Store) GetCommit(date string) (models.DayCommit, error) {
	row := s.db.QueryRow("SELECT date, committed_at, committed, finalized_at FROM commits WHERE date = ?", date)

	commit, err := scanCommit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DayCommit{}, fmt.Errorf("%s: %w", date, apperrors.ErrNotCommitted)
		}
		return models.DayCommit{}, err
	}

	blocks, err := s.blocksForDate(date)
	if err != nil {
		return models.DayCommit{}, err
	}
	commit.Blocks = blocks

	return commit, nil
}

// GetCommitsInRange returns commits with startDate <= date <= endDate,
// ordered by date ascending.
func (s *Store) GetCommitsInRange(startDate, endDate string) ([]models.DayCommit, error) {
	return s.queryCommits("SELECT date, committed_at, committed, finalized_at FROM commits WHERE date >= ? AND date <= ? ORDER BY date", startDate, endDate)
}

// GetAllCommits returns every stored commit ordered by date ascending.
func (s *Store) GetAllCommits() ([]models.DayCommit, error) {
	return s.queryCommits("SELECT date, committed_at, committed, finalized_at FROM commits ORDER BY date")
}

// DeleteCommit removes a date's record and its blocks.
func (s *Store) DeleteCommit(date string) error {
	_, err := s.db.Exec("DELETE FROM commits WHERE date = ?", date)
	return err
}

func (s *Store) queryCommits(query string, args ...any) ([]models.DayCommit, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var commits []models.DayCommit
	for rows.Next() {
		commit, err := scanCommit(rows)
		if err != nil {
			return nil, err
		}
		commits = append(commits, commit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range commits {
		blocks, err := s.blocksForDate(commits[i].Date)
		if err != nil {
			return nil, err
		}
		commits[i].Blocks = blocks
	}

	return commits, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanCommit(row scannable) (models.DayCommit, error) {
	var commit models.DayCommit
	var finalizedAt sql.NullString
	if err := row.Scan(&commit.Date, &commit.CommittedAt, &commit.Committed, &finalizedAt); err != nil {
		return models.DayCommit{}, err
	}
	if finalizedAt.Valid {
		commit.FinalizedAt = &finalizedAt.String
	}
	return commit, nil
}

func (s *Store) blocksForDate(date string) ([]models.TimeBlock, error) {
	rows, err := s.db.Query(`
		SELECT id, identity, start_time, end_time, optional, completed
		FROM blocks WHERE commit_date = ? ORDER BY position`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []models.TimeBlock
	for rows.Next() {
		var block models.TimeBlock
		var completed sql.NullBool
		if err := rows.Scan(&block.ID, &block.Identity, &block.Start, &block.End, &block.Optional, &completed); err != nil {
			return nil, err
		}
		if completed.Valid {
			v := completed.Bool
			block.Completed = &v
		}
		blocks = append(blocks, block)
	}
	return blocks, rows.Err()
}
