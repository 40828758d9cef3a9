// Package commit owns the day-commitment state machine. A date moves from
// absent to draft to committed to finalized, and finalization is a one-way
// door: once a record is finalized no operation may touch it again. That
// guarantee is what keeps the adherence history honest.
package commit

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/blockday/blockday/internal/constants"
	apperrors "github.com/blockday/blockday/internal/errors"
	"github.com/blockday/blockday/internal/logger"
	"github.com/blockday/blockday/internal/models"
	"github.com/blockday/blockday/internal/storage"
	"github.com/blockday/blockday/internal/sync"
	"github.com/blockday/blockday/internal/utils"
)

// overridden in tests
var timeNow = time.Now

// Store serializes all commitment mutations. Every mutation validates first,
// then writes locally, then notifies the sync mirror. A mirror failure is
// logged and never rolls back the local write.
type Store struct {
	provider storage.Provider
	notifier sync.Notifier
	timezone string
}

func NewStore(provider storage.Provider, notifier sync.Notifier, timezone string) *Store {
	if notifier == nil {
		notifier = sync.Noop{}
	}
	return &Store{provider: provider, notifier: notifier, timezone: timezone}
}

func (s *Store) now() (time.Time, error) {
	loc, err := utils.LoadLocation(s.timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", s.timezone, err)
	}
	return timeNow().In(loc), nil
}

// Commit creates or replaces the record for date with the given blocks.
// Replacement is last-write-wins for the whole date. Fails with ErrFinalized
// when a finalized record already exists, and validates every block before
// anything is written.
func (s *Store) Commit(blocks []models.TimeBlock, date string) (models.DayCommit, error) {
	now, err := s.now()
	if err != nil {
		return models.DayCommit{}, err
	}

	if err := ValidateBlocks(blocks); err != nil {
		return models.DayCommit{}, err
	}

	existing, err := s.provider.GetCommit(date)
	exists := err == nil
	if err != nil && !apperrors.Is(err, apperrors.ErrNotCommitted) {
		return models.DayCommit{}, err
	}
	if exists && IsFinalized(existing, now) {
		return models.DayCommit{}, fmt.Errorf("%s: %w", date, apperrors.ErrFinalized)
	}

	record := models.DayCommit{
		Date:        date,
		Blocks:      make([]models.TimeBlock, len(blocks)),
		CommittedAt: now.Format(time.RFC3339),
		Committed:   true,
	}
	copy(record.Blocks, blocks)
	for i := range record.Blocks {
		if record.Blocks[i].ID == "" {
			record.Blocks[i].ID = uuid.NewString()
		}
	}

	// Committing an already-elapsed day finalizes it immediately.
	if isDue(record, now) {
		stamp := now.Format(time.RFC3339)
		record.FinalizedAt = &stamp
	}

	if err := s.provider.SaveCommit(record); err != nil {
		return models.DayCommit{}, err
	}

	op := constants.SyncOpInsert
	if exists {
		op = constants.SyncOpUpdate
	}
	s.notify(record, op)

	return record, nil
}

// SetCompletion records the tri-state outcome for one block. This is the only
// mutation permitted after commit and before finalization, and is idempotent
// per block.
func (s *Store) SetCompletion(date, blockID string, value bool) (models.DayCommit, error) {
	now, err := s.now()
	if err != nil {
		return models.DayCommit{}, err
	}

	record, err := s.provider.GetCommit(date)
	if err != nil {
		return models.DayCommit{}, err
	}
	if IsFinalized(record, now) {
		return models.DayCommit{}, fmt.Errorf("%s: %w", date, apperrors.ErrFinalized)
	}

	block := record.Block(blockID)
	if block == nil {
		return models.DayCommit{}, fmt.Errorf("%s in %s: %w", blockID, date, apperrors.ErrBlockNotFound)
	}
	block.Completed = &value

	if err := s.provider.SaveCommit(record); err != nil {
		return models.DayCommit{}, err
	}
	s.notify(record, constants.SyncOpUpdate)

	return record, nil
}

// Clear deletes a non-finalized record.
func (s *Store) Clear(date string) error {
	now, err := s.now()
	if err != nil {
		return err
	}

	record, err := s.provider.GetCommit(date)
	if err != nil {
		return err
	}
	if IsFinalized(record, now) {
		return fmt.Errorf("%s: %w", date, apperrors.ErrFinalized)
	}

	if err := s.provider.DeleteCommit(date); err != nil {
		return err
	}
	s.notify(record, constants.SyncOpDelete)

	return nil
}

// Refresh stamps finalized_at on a record whose finalization condition has
// since become true. Safe to call repeatedly.
func (s *Store) Refresh(date string) (models.DayCommit, error) {
	now, err := s.now()
	if err != nil {
		return models.DayCommit{}, err
	}

	record, err := s.provider.GetCommit(date)
	if err != nil {
		return models.DayCommit{}, err
	}
	if record.FinalizedAt != nil || !isDue(record, now) {
		return record, nil
	}

	stamp := now.Format(time.RFC3339)
	record.FinalizedAt = &stamp
	if err := s.provider.SaveCommit(record); err != nil {
		return models.DayCommit{}, err
	}
	s.notify(record, constants.SyncOpUpdate)

	return record, nil
}

// Get returns the record for a date.
func (s *Store) Get(date string) (models.DayCommit, error) {
	return s.provider.GetCommit(date)
}

// History returns every stored record ordered by date.
func (s *Store) History() ([]models.DayCommit, error) {
	return s.provider.GetAllCommits()
}

// IsFinalized reports whether the record is locked at the given instant:
// either finalized_at is already stamped, or the finalization condition holds
// (date in the past, or today with every block elapsed). Pure; callers use it
// to gate actions before attempting them.
func IsFinalized(c models.DayCommit, now time.Time) bool {
	return c.FinalizedAt != nil || isDue(c, now)
}

func isDue(c models.DayCommit, now time.Time) bool {
	today := now.Format(constants.DateFormat)
	if c.Date < today {
		return true
	}
	if c.Date > today {
		return false
	}
	for _, block := range c.Blocks {
		if !BlockElapsed(block, now) {
			return false
		}
	}
	return true
}

// BlockElapsed reports whether the block's end-time has passed within the
// given instant's day.
func BlockElapsed(block models.TimeBlock, now time.Time) bool {
	end, err := utils.ParseTimeToMinutes(block.End)
	if err != nil {
		return false
	}
	return end <= now.Hour()*60+now.Minute()
}

func (s *Store) notify(record models.DayCommit, op constants.SyncOp) {
	if err := s.notifier.Notify(record, op); err != nil {
		logger.Warn("Sync notification failed", "date", record.Date, "op", op, "error", err)
	}
}
