package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/blockday/blockday/internal/logger"
)

// Sentinel errors for commitment lifecycle and lookup failures. Callers
// should match with errors.Is rather than string comparison.
var (
	// ErrFinalized is returned when a mutation targets a finalized commit.
	ErrFinalized = errors.New("cannot modify a finalized commit")

	// ErrNotCommitted is returned when an operation requires a committed
	// day but none exists for the date.
	ErrNotCommitted = errors.New("no commit exists for this date")

	// ErrBlockNotFound is returned when a block ID does not exist within
	// a day's committed blocks.
	ErrBlockNotFound = errors.New("block not found")

	// ErrInvalidBlock is returned when a block fails validation before a
	// write is attempted.
	ErrInvalidBlock = errors.New("invalid block")
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
