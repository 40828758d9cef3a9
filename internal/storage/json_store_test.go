package storage

import (
	"path/filepath"
	"testing"

	apperrors "github.com/blockday/blockday/internal/errors"
	"github.com/blockday/blockday/internal/models"
)

func newTestJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "blockday.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	return store
}

func TestJSONInitRefusesExisting(t *testing.T) {
	store := newTestJSONStore(t)
	if err := store.Init(); err == nil {
		t.Error("second Init() should fail on an existing store")
	}
}

func TestJSONCommitPersistsAcrossLoad(t *testing.T) {
	store := newTestJSONStore(t)

	commit := models.DayCommit{
		Date:        "2025-01-06",
		CommittedAt: "2025-01-06T08:00:00Z",
		Committed:   true,
		Blocks:      []models.TimeBlock{{ID: "b1", Identity: "Deep Work", Start: "09:00", End: "11:00"}},
	}
	if err := store.SaveCommit(commit); err != nil {
		t.Fatalf("SaveCommit() failed: %v", err)
	}

	reopened := NewJSONStore(store.GetConfigPath())
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	got, err := reopened.GetCommit("2025-01-06")
	if err != nil {
		t.Fatalf("GetCommit() failed: %v", err)
	}
	if len(got.Blocks) != 1 || got.Blocks[0].Identity != "Deep Work" {
		t.Errorf("commit did not survive reload: %+v", got)
	}
}

func TestJSONGetCommitMissing(t *testing.T) {
	store := newTestJSONStore(t)
	if _, err := store.GetCommit("2025-01-06"); !apperrors.Is(err, apperrors.ErrNotCommitted) {
		t.Errorf("GetCommit() error = %v, want ErrNotCommitted", err)
	}
}

func TestJSONGetCommitsInRange(t *testing.T) {
	store := newTestJSONStore(t)

	for _, date := range []string{"2025-01-04", "2025-01-06", "2025-01-08"} {
		if err := store.SaveCommit(models.DayCommit{Date: date, Committed: true}); err != nil {
			t.Fatalf("SaveCommit(%s) failed: %v", date, err)
		}
	}

	got, err := store.GetCommitsInRange("2025-01-05", "2025-01-08")
	if err != nil {
		t.Fatalf("GetCommitsInRange() failed: %v", err)
	}
	if len(got) != 2 || got[0].Date != "2025-01-06" || got[1].Date != "2025-01-08" {
		t.Errorf("unexpected range result: %+v", got)
	}
}

func TestJSONEventsSortedOnRead(t *testing.T) {
	store := newTestJSONStore(t)

	events := []models.CalendarEvent{
		{ID: "e2", Start: "14:00", End: "15:00"},
		{ID: "e1", Start: "09:00", End: "10:00"},
	}
	if err := store.SaveEvents("2025-01-06", events); err != nil {
		t.Fatalf("SaveEvents() failed: %v", err)
	}

	got, err := store.GetEventsForDay("2025-01-06")
	if err != nil {
		t.Fatalf("GetEventsForDay() failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != "e1" {
		t.Errorf("events not sorted: %+v", got)
	}
}

func TestNewProviderSelection(t *testing.T) {
	if _, ok := NewProvider("/tmp/x/blockday.json").(*JSONStore); !ok {
		t.Error("expected JSON store for .json path")
	}
	if _, ok := NewProvider("/tmp/x/blockday.db").(*JSONStore); ok {
		t.Error("expected SQLite store for .db path")
	}
}
