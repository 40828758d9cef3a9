package backup

import (
	"path/filepath"
	"testing"

	"github.com/blockday/blockday/internal/storage/sqlite"
)

func newBackedUpStore(t *testing.T) (*sqlite.Store, *Manager) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blockday.db")
	store := sqlite.NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("store init failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store, NewManager(path)
}

func TestCreateAndList(t *testing.T) {
	_, mgr := newBackedUpStore(t)

	path, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if filepath.Dir(path) != mgr.BackupDir() {
		t.Errorf("backup written outside backup dir: %s", path)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("got %d backups, want 1", len(backups))
	}
	if backups[0].Size == 0 {
		t.Error("backup file is empty")
	}
}

func TestCreateFailsWithoutDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "absent.db"))
	if _, err := mgr.Create(); err == nil {
		t.Error("Create() without a database should fail")
	}
}

func TestListEmptyDir(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "blockday.db"))
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("got %d backups in fresh dir, want 0", len(backups))
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	store, mgr := newBackedUpStore(t)

	snapshot, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("closing store failed: %v", err)
	}

	if err := mgr.Restore(snapshot); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}

	// The restored database must load cleanly.
	reopened := sqlite.NewStore(store.GetConfigPath())
	if err := reopened.Load(); err != nil {
		t.Fatalf("restored database failed to load: %v", err)
	}
	defer reopened.Close()

	if _, err := reopened.GetSettings(); err != nil {
		t.Errorf("restored database missing settings: %v", err)
	}
}

func TestRestoreRejectsGarbage(t *testing.T) {
	_, mgr := newBackedUpStore(t)
	if err := mgr.Restore(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("Restore() of a missing file should fail")
	}
}
