// Package backup snapshots the SQLite store with VACUUM INTO and keeps a
// rotating window of recent snapshots next to the database.
package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/blockday/blockday/internal/constants"
	"github.com/blockday/blockday/internal/logger"
)

const (
	backupDirName    = "backups"
	backupFileSuffix = ".db"
	timestampFormat  = "20060102-150405"
)

// Info describes one backup file on disk.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager handles backup and restore for one database path.
type Manager struct {
	dbPath    string
	backupDir string
}

func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), backupDirName),
	}
}

// BackupDir returns the directory snapshots are written to.
func (m *Manager) BackupDir() string {
	return m.backupDir
}

// Create writes a new snapshot and rotates out the oldest ones beyond the
// retention limit.
func (m *Manager) Create() (string, error) {
	return m.create(false)
}

func (m *Manager) create(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("database does not exist: %s", m.dbPath)
	}

	name := constants.BackupFilePrefix + time.Now().Format(timestampFormat) + backupFileSuffix
	backupPath := filepath.Join(m.backupDir, name)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(backupPath); os.IsNotExist(err) {
			break
		}
		name = fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, time.Now().Format(timestampFormat), counter, backupFileSuffix)
		backupPath = filepath.Join(m.backupDir, name)
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
	}

	if err := m.snapshot(backupPath); err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}

	if !skipRotation {
		if err := m.rotate(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	return backupPath, nil
}

// snapshot copies the live database with VACUUM INTO, falling back to a
// plain file copy on SQLite builds without it.
func (m *Manager) snapshot(destPath string) error {
	srcDB, err := sql.Open("sqlite", m.dbPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer srcDB.Close()

	var count int
	if err := srcDB.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := srcDB.Exec("VACUUM INTO ?", destPath); err != nil {
		return copyFile(m.dbPath, destPath)
	}
	return nil
}

// List returns all snapshots, newest first.
func (m *Manager) List() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, backupFileSuffix) {
			continue
		}

		stampStr := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), backupFileSuffix)
		// Drop a collision counter suffix if present.
		if idx := strings.LastIndex(stampStr, "-"); idx > len(timestampFormat)-1 {
			stampStr = stampStr[:idx]
		}
		stamp, err := time.Parse(timestampFormat, stampStr)
		if err != nil {
			continue
		}

		path := filepath.Join(m.backupDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		backups = append(backups, Info{Path: path, Timestamp: stamp, Size: info.Size()})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Restore replaces the live database with a snapshot. The current database
// is backed up first, and the swap happens through an atomic rename.
func (m *Manager) Restore(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := verify(backupPath); err != nil {
		return fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	if _, err := os.Stat(m.dbPath); err == nil {
		pre, err := m.create(true)
		if err != nil {
			return fmt.Errorf("failed to backup current database before restore: %w", err)
		}
		logger.Info("Backed up current database before restore", "backup", filepath.Base(pre))
	}

	tempPath := m.dbPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tempPath, m.dbPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to restore database: %w", err)
	}

	return nil
}

func verify(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
