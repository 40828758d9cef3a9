// Package sync mirrors day commitments to an optional remote store. The
// mirror is strictly write-only and best-effort: local persistence never
// waits on it, and a mirror failure is logged, not surfaced.
package sync

import (
	"github.com/blockday/blockday/internal/constants"
	"github.com/blockday/blockday/internal/models"
)

// Notifier receives a notification after a commitment has been durably
// written locally. Implementations must tolerate being called with the same
// commit more than once.
type Notifier interface {
	Notify(commit models.DayCommit, op constants.SyncOp) error
	Close() error
}

// Noop is the notifier used when no remote mirror is configured.
type Noop struct{}

func (Noop) Notify(models.DayCommit, constants.SyncOp) error { return nil }
func (Noop) Close() error                                    { return nil }
