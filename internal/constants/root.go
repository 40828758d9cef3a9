package constants

// ConflictType represents the type of schedule conflict
type ConflictType string

// ConflictSeverity ranks how urgently a conflict needs attention
type ConflictSeverity string

// ResolutionAction represents the kind of transform a resolution applies
type ResolutionAction string

// RoutineStatus classifies the trend of a recurring identity
type RoutineStatus string

// SyncOp identifies the mutation being mirrored to the remote store
type SyncOp string

const (
	AppName            = "blockday"
	DefaultKeyringUser = "sync-connection"
	DefaultConfigPath  = "~/.config/blockday/blockday.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "blockday-"
	BackupFileSuffix = ".db"

	// Conflict Types
	ConflictOverlap          ConflictType = "overlap"
	ConflictInsufficientTime ConflictType = "insufficient-time"
	ConflictBackToBack       ConflictType = "back-to-back"
	ConflictOverbooked       ConflictType = "overbooked"

	// Conflict Severities
	SeverityCritical ConflictSeverity = "critical"
	SeverityWarning  ConflictSeverity = "warning"
	SeverityInfo     ConflictSeverity = "info"

	// Resolution Actions
	ActionMove   ResolutionAction = "move"
	ActionShrink ResolutionAction = "shrink"
	ActionMerge  ResolutionAction = "merge"
	ActionSplit  ResolutionAction = "split"
	ActionRemove ResolutionAction = "remove"

	// Routine Statuses
	RoutineEstablished RoutineStatus = "established"
	RoutineEmerging    RoutineStatus = "emerging"
	RoutineAlmost      RoutineStatus = "almost"
	RoutineFading      RoutineStatus = "fading"
	RoutineOneOff      RoutineStatus = "one-off"

	// Sync Ops
	SyncOpInsert SyncOp = "insert"
	SyncOpUpdate SyncOp = "update"
	SyncOpDelete SyncOp = "delete"
)

// Conflict thresholds. These mirror the product's original judgment calls
// and are deliberately not re-derived.
const (
	// SevereOverlapMin is the overlap in minutes above which a block-block
	// overlap is critical rather than a warning.
	SevereOverlapMin = 30

	// BackToBackGapMin is the exclusive upper bound, in minutes, for the gap
	// between adjacent blocks to count as back-to-back.
	BackToBackGapMin = 5

	// UsableDayStartMin and UsableDayEndMin bound the 17-hour usable day
	// window (06:00-23:00) used by the overbooking check.
	UsableDayStartMin = 6 * 60
	UsableDayEndMin   = 23 * 60

	// MoveFloorMin is the minimum leading gap, beyond the block's own
	// duration, required before a "move before event" resolution is offered.
	MoveFloorMin = 360

	// MoveCeilingMin is the end-of-day ceiling (23:00) a "move after event"
	// resolution must fit under.
	MoveCeilingMin = 1380
)

// Routine analyzer thresholds. Same policy: preserved, named, overridable
// via routine.Options.
const (
	DefaultLookbackWeeks = 4

	EstablishedWeeklyFreq    = 3
	EstablishedMinWeeks      = 2
	EstablishedCompletionMin = 0.7
	EmergingCompletionMin    = 0.5

	// AlmostFrequency is the exact last-week frequency that earns a
	// "commit 1 more time" nudge.
	AlmostFrequency = 2
)

// Remote sync retry policy (bounded, in-process; the sync channel is
// fire-and-forget and must never fail a local mutation).
const (
	SyncMaxRetries = 3
)
