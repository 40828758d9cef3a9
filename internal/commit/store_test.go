package commit

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/blockday/blockday/internal/constants"
	apperrors "github.com/blockday/blockday/internal/errors"
	"github.com/blockday/blockday/internal/models"
	"github.com/blockday/blockday/internal/storage"
)

type recordedNotification struct {
	date string
	op   constants.SyncOp
}

type fakeNotifier struct {
	notifications []recordedNotification
	fail          bool
}

func (f *fakeNotifier) Notify(commit models.DayCommit, op constants.SyncOp) error {
	f.notifications = append(f.notifications, recordedNotification{date: commit.Date, op: op})
	if f.fail {
		return fmt.Errorf("mirror offline")
	}
	return nil
}

func (f *fakeNotifier) Close() error { return nil }

// Noon UTC on a fixed Wednesday.
var testNow = time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*Store, *fakeNotifier) {
	t.Helper()

	provider := storage.NewJSONStore(filepath.Join(t.TempDir(), "blockday.json"))
	if err := provider.Init(); err != nil {
		t.Fatalf("provider init failed: %v", err)
	}

	notifier := &fakeNotifier{}

	prev := timeNow
	timeNow = func() time.Time { return testNow }
	t.Cleanup(func() { timeNow = prev })

	return NewStore(provider, notifier, "UTC"), notifier
}

func futureBlocks() []models.TimeBlock {
	return []models.TimeBlock{
		{Identity: "Deep Work", Start: "14:00", End: "16:00"},
		{Identity: "Exercise", Start: "17:00", End: "18:00"},
	}
}

func TestCommitCreatesRecord(t *testing.T) {
	store, notifier := newTestStore(t)

	record, err := store.Commit(futureBlocks(), "2025-01-08")
	if err != nil {
		t.Fatalf("Commit() failed: %v", err)
	}
	if !record.Committed {
		t.Error("record not marked committed")
	}
	if record.FinalizedAt != nil {
		t.Error("today's commit with pending blocks must not be finalized")
	}
	if len(record.Blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(record.Blocks))
	}
	for _, block := range record.Blocks {
		if block.ID == "" {
			t.Error("block was not assigned an ID")
		}
	}
	if len(notifier.notifications) != 1 || notifier.notifications[0].op != constants.SyncOpInsert {
		t.Errorf("expected one insert notification, got %+v", notifier.notifications)
	}
}

func TestCommitPastDateFinalizesImmediately(t *testing.T) {
	store, _ := newTestStore(t)

	record, err := store.Commit(futureBlocks(), "2025-01-07")
	if err != nil {
		t.Fatalf("Commit() failed: %v", err)
	}
	if record.FinalizedAt == nil {
		t.Error("past-date commit should be finalized on write")
	}
}

func TestCommitRejectsFinalized(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.Commit(futureBlocks(), "2025-01-07"); err != nil {
		t.Fatalf("first Commit() failed: %v", err)
	}

	_, err := store.Commit(futureBlocks(), "2025-01-07")
	if !apperrors.Is(err, apperrors.ErrFinalized) {
		t.Errorf("Commit() against finalized record = %v, want ErrFinalized", err)
	}
}

func TestCommitReplacesExisting(t *testing.T) {
	store, notifier := newTestStore(t)

	if _, err := store.Commit(futureBlocks(), "2025-01-08"); err != nil {
		t.Fatalf("first Commit() failed: %v", err)
	}
	record, err := store.Commit(futureBlocks()[:1], "2025-01-08")
	if err != nil {
		t.Fatalf("second Commit() failed: %v", err)
	}
	if len(record.Blocks) != 1 {
		t.Errorf("got %d blocks after replace, want 1", len(record.Blocks))
	}
	if notifier.notifications[1].op != constants.SyncOpUpdate {
		t.Errorf("second notification op = %s, want update", notifier.notifications[1].op)
	}
}

func TestCommitValidatesBeforeWrite(t *testing.T) {
	store, notifier := newTestStore(t)

	if _, err := store.Commit(futureBlocks(), "2025-01-08"); err != nil {
		t.Fatalf("setup Commit() failed: %v", err)
	}

	bad := []models.TimeBlock{{Identity: "Deep Work", Start: "16:00", End: "14:00"}}
	if _, err := store.Commit(bad, "2025-01-08"); !apperrors.Is(err, apperrors.ErrInvalidBlock) {
		t.Fatalf("Commit() with inverted times = %v, want ErrInvalidBlock", err)
	}

	// The rejected write must leave the existing record untouched.
	got, err := store.Get("2025-01-08")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if len(got.Blocks) != 2 {
		t.Errorf("existing record mutated by rejected commit: %d blocks", len(got.Blocks))
	}
	if len(notifier.notifications) != 1 {
		t.Errorf("rejected commit must not notify sync, got %d notifications", len(notifier.notifications))
	}
}

func TestSetCompletion(t *testing.T) {
	store, _ := newTestStore(t)

	// One block already elapsed at noon, one still pending.
	blocks := []models.TimeBlock{
		{ID: "b1", Identity: "Exercise", Start: "08:00", End: "09:00"},
		{ID: "b2", Identity: "Deep Work", Start: "14:00", End: "16:00"},
	}
	if _, err := store.Commit(blocks, "2025-01-08"); err != nil {
		t.Fatalf("Commit() failed: %v", err)
	}

	record, err := store.SetCompletion("2025-01-08", "b1", true)
	if err != nil {
		t.Fatalf("SetCompletion() failed: %v", err)
	}
	if record.Block("b1").Completed == nil || !*record.Block("b1").Completed {
		t.Error("completion not recorded")
	}

	// Idempotent per block.
	again, err := store.SetCompletion("2025-01-08", "b1", true)
	if err != nil {
		t.Fatalf("second SetCompletion() failed: %v", err)
	}
	if again.Block("b1").Completed == nil || !*again.Block("b1").Completed {
		t.Error("repeated answer lost the completion")
	}
}

func TestSetCompletionUnknownBlock(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.Commit(futureBlocks(), "2025-01-08"); err != nil {
		t.Fatalf("Commit() failed: %v", err)
	}
	if _, err := store.SetCompletion("2025-01-08", "nope", true); !apperrors.Is(err, apperrors.ErrBlockNotFound) {
		t.Errorf("SetCompletion() unknown block = %v, want ErrBlockNotFound", err)
	}
}

func TestSetCompletionRejectsFinalized(t *testing.T) {
	store, _ := newTestStore(t)

	record, err := store.Commit(futureBlocks(), "2025-01-07")
	if err != nil {
		t.Fatalf("Commit() failed: %v", err)
	}

	_, err = store.SetCompletion("2025-01-07", record.Blocks[0].ID, true)
	if !apperrors.Is(err, apperrors.ErrFinalized) {
		t.Errorf("SetCompletion() against finalized record = %v, want ErrFinalized", err)
	}
}

func TestClear(t *testing.T) {
	store, notifier := newTestStore(t)

	if _, err := store.Commit(futureBlocks(), "2025-01-08"); err != nil {
		t.Fatalf("Commit() failed: %v", err)
	}
	if err := store.Clear("2025-01-08"); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if _, err := store.Get("2025-01-08"); !apperrors.Is(err, apperrors.ErrNotCommitted) {
		t.Errorf("Get() after Clear() = %v, want ErrNotCommitted", err)
	}
	last := notifier.notifications[len(notifier.notifications)-1]
	if last.op != constants.SyncOpDelete {
		t.Errorf("last notification op = %s, want delete", last.op)
	}
}

func TestClearRejectsFinalized(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.Commit(futureBlocks(), "2025-01-07"); err != nil {
		t.Fatalf("Commit() failed: %v", err)
	}
	if err := store.Clear("2025-01-07"); !apperrors.Is(err, apperrors.ErrFinalized) {
		t.Errorf("Clear() against finalized record = %v, want ErrFinalized", err)
	}
}

func TestSyncFailureDoesNotRollBack(t *testing.T) {
	store, notifier := newTestStore(t)
	notifier.fail = true

	if _, err := store.Commit(futureBlocks(), "2025-01-08"); err != nil {
		t.Fatalf("Commit() must succeed despite sync failure, got: %v", err)
	}
	if _, err := store.Get("2025-01-08"); err != nil {
		t.Errorf("local record missing after sync failure: %v", err)
	}
}

func TestIsFinalizedMonotonic(t *testing.T) {
	tests := []struct {
		name   string
		commit models.DayCommit
		now    time.Time
		want   bool
	}{
		{
			name:   "past date",
			commit: models.DayCommit{Date: "2025-01-07", Committed: true},
			now:    testNow,
			want:   true,
		},
		{
			name:   "future date",
			commit: models.DayCommit{Date: "2025-01-09", Committed: true},
			now:    testNow,
			want:   false,
		},
		{
			name: "today with pending block",
			commit: models.DayCommit{
				Date:      "2025-01-08",
				Committed: true,
				Blocks:    []models.TimeBlock{{Identity: "Deep Work", Start: "14:00", End: "16:00"}},
			},
			now:  testNow,
			want: false,
		},
		{
			name: "today with all blocks elapsed",
			commit: models.DayCommit{
				Date:      "2025-01-08",
				Committed: true,
				Blocks:    []models.TimeBlock{{Identity: "Exercise", Start: "08:00", End: "09:00"}},
			},
			now:  testNow,
			want: true,
		},
		{
			name: "stamped record stays finalized",
			commit: models.DayCommit{
				Date:        "2025-01-09",
				Committed:   true,
				FinalizedAt: ptr("2025-01-08T12:00:00Z"),
			},
			now:  testNow,
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFinalized(tt.commit, tt.now); got != tt.want {
				t.Errorf("IsFinalized() = %v, want %v", got, tt.want)
			}
			if tt.want {
				// Once finalized, later evaluations stay finalized.
				later := tt.now.Add(48 * time.Hour)
				if !IsFinalized(tt.commit, later) {
					t.Error("finalization must be monotonic")
				}
			}
		})
	}
}

func TestRefreshStampsDueRecord(t *testing.T) {
	store, _ := newTestStore(t)

	// All blocks already elapsed at noon, so the commit finalizes on write.
	blocks := []models.TimeBlock{{Identity: "Exercise", Start: "08:00", End: "09:00"}}
	record, err := store.Commit(blocks, "2025-01-08")
	if err != nil {
		t.Fatalf("Commit() failed: %v", err)
	}
	if record.FinalizedAt == nil {
		t.Fatal("elapsed-day commit should finalize on write")
	}

	// Refresh on an already-stamped record is a no-op.
	again, err := store.Refresh("2025-01-08")
	if err != nil {
		t.Fatalf("Refresh() failed: %v", err)
	}
	if again.FinalizedAt == nil || *again.FinalizedAt != *record.FinalizedAt {
		t.Error("Refresh() disturbed an existing finalization stamp")
	}
}

func TestBlockElapsed(t *testing.T) {
	tests := []struct {
		name  string
		block models.TimeBlock
		want  bool
	}{
		{name: "ended before now", block: models.TimeBlock{End: "11:00"}, want: true},
		{name: "ends exactly now", block: models.TimeBlock{End: "12:00"}, want: true},
		{name: "ends after now", block: models.TimeBlock{End: "12:01"}, want: false},
		{name: "invalid end", block: models.TimeBlock{End: "bad"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BlockElapsed(tt.block, testNow); got != tt.want {
				t.Errorf("BlockElapsed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func ptr(s string) *string { return &s }
