package constants

import "time"

const (
	// SyncRetryDelay is the pause between remote sync attempts
	SyncRetryDelay = 100 * time.Millisecond
)
