package cli

import (
	"fmt"
	"time"

	"github.com/blockday/blockday/internal/backup"
	"github.com/blockday/blockday/internal/commit"
	"github.com/blockday/blockday/internal/constants"
	"github.com/blockday/blockday/internal/logger"
	"github.com/blockday/blockday/internal/models"
	"github.com/blockday/blockday/internal/storage"
	"github.com/blockday/blockday/internal/sync"
	"github.com/blockday/blockday/internal/utils"
)

// Context carries the wired collaborators into every command.
type Context struct {
	Store    storage.Provider
	Notifier sync.Notifier
	Timezone string
}

// Commits builds the commitment store over the context's collaborators.
func (c *Context) Commits() *commit.Store {
	return commit.NewStore(c.Store, c.Notifier, c.Timezone)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Now returns the current time in the configured timezone. Every day-boundary
// decision (finalization, analytics counting) uses this clock so a commit is
// never "past" to one component and "today" to another.
func (c *Context) Now() (time.Time, error) {
	return utils.NowInTimezone(c.Timezone)
}

// ResolveDate turns a user-supplied date argument into YYYY-MM-DD. Accepts
// the literal words today/yesterday/tomorrow, or an explicit date.
func (c *Context) ResolveDate(arg string) (string, error) {
	now, err := c.Now()
	if err != nil {
		return "", err
	}

	switch arg {
	case "", "today":
		return now.Format(constants.DateFormat), nil
	case "yesterday":
		return now.AddDate(0, 0, -1).Format(constants.DateFormat), nil
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format(constants.DateFormat), nil
	}

	if _, err := time.Parse(constants.DateFormat, arg); err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD, today, yesterday, or tomorrow)", arg)
	}
	return arg, nil
}

// CompletionMark renders a block's tri-state outcome for display.
func CompletionMark(block models.TimeBlock) string {
	switch {
	case block.Completed == nil:
		return "·"
	case *block.Completed:
		return "✓"
	default:
		return "✗"
	}
}
