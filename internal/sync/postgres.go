package sync

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/blockday/blockday/internal/constants"
	"github.com/blockday/blockday/internal/logger"
	"github.com/blockday/blockday/internal/migration"
	"github.com/blockday/blockday/internal/models"
	"github.com/blockday/blockday/migrations"
)

// PostgresNotifier mirrors commitments into a postgres database. Writes are
// retried a fixed number of times; exhausting the retries returns an error
// that callers treat as a warning.
type PostgresNotifier struct {
	connStr string
	db      *sql.DB
}

// NewPostgres opens a connection to the mirror database and ensures its
// schema is current.
func NewPostgres(connStr string) (*PostgresNotifier, error) {
	n := &PostgresNotifier{connStr: ensureSearchPath(connStr)}

	db, err := sql.Open("postgres", n.connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open sync mirror: %w", err)
	}
	n.db = db

	runner := migration.NewRunner(db, migrations.Postgres())
	if _, err := runner.Apply(nil); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate sync mirror: %w", err)
	}

	return n, nil
}

// ensureSearchPath pins the mirror schema to the app's own search_path unless
// the connection string already sets one.
func ensureSearchPath(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			logger.Warn("Failed to parse sync connection string", "error", err)
			return connStr
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
		}
		return u.String()
	}

	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], "search_path") {
			return connStr
		}
	}
	return strings.TrimSpace(connStr) + " search_path=" + constants.AppName
}

func (n *PostgresNotifier) Notify(commit models.DayCommit, op constants.SyncOp) error {
	var lastErr error
	for attempt := 1; attempt <= constants.SyncMaxRetries; attempt++ {
		if lastErr = n.write(commit, op); lastErr == nil {
			return nil
		}
		logger.Debug("Sync mirror write failed", "date", commit.Date, "op", op, "attempt", attempt, "error", lastErr)
		time.Sleep(constants.SyncRetryDelay)
	}
	return fmt.Errorf("sync mirror write for %s failed after %d attempts: %w", commit.Date, constants.SyncMaxRetries, lastErr)
}

func (n *PostgresNotifier) write(commit models.DayCommit, op constants.SyncOp) error {
	if op == constants.SyncOpDelete {
		_, err := n.db.Exec("DELETE FROM commits WHERE date = $1", commit.Date)
		return err
	}

	payload, err := json.Marshal(commit)
	if err != nil {
		return fmt.Errorf("serializing commit: %w", err)
	}

	var finalizedAt sql.NullString
	if commit.FinalizedAt != nil {
		finalizedAt = sql.NullString{String: *commit.FinalizedAt, Valid: true}
	}

	_, err = n.db.Exec(`
		INSERT INTO commits (date, payload, committed_at, finalized_at, synced_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (date) DO UPDATE
		SET payload = EXCLUDED.payload,
		    committed_at = EXCLUDED.committed_at,
		    finalized_at = EXCLUDED.finalized_at,
		    synced_at = now()`,
		commit.Date, payload, commit.CommittedAt, finalizedAt)
	return err
}

func (n *PostgresNotifier) Close() error {
	if n.db != nil {
		return n.db.Close()
	}
	return nil
}
