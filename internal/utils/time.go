package utils

import (
	"fmt"
	"time"

	"github.com/blockday/blockday/internal/constants"
	"github.com/blockday/blockday/internal/models"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// GetTodayInTimezone returns today's date string (YYYY-MM-DD) in the specified
// timezone. "Today" is determined by the user's configured timezone, not the
// system timezone.
func GetTodayInTimezone(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of
// minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatMinutes renders a minutes-from-midnight offset as HH:MM.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) at midnight in the
// specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

// BlockDuration returns the duration of a block in minutes, or 0 if either
// time string is invalid (callers validate formats before the block reaches
// the store, so 0 only shows up for unvalidated input).
func BlockDuration(block models.TimeBlock) int {
	return rangeDuration(block.Start, block.End)
}

// EventDuration returns the duration of a calendar event in minutes.
func EventDuration(event models.CalendarEvent) int {
	return rangeDuration(event.Start, event.End)
}

func rangeDuration(start, end string) int {
	s, err := ParseTimeToMinutes(start)
	if err != nil {
		return 0
	}
	e, err := ParseTimeToMinutes(end)
	if err != nil {
		return 0
	}
	if e < s {
		return 0
	}
	return e - s
}

// OverlapMinutes computes the half-open interval intersection of two HH:MM
// ranges: max(0, min(e1,e2) - max(s1,s2)). Invalid time strings yield 0.
func OverlapMinutes(start1, end1, start2, end2 string) int {
	s1, err := ParseTimeToMinutes(start1)
	if err != nil {
		return 0
	}
	e1, err := ParseTimeToMinutes(end1)
	if err != nil {
		return 0
	}
	s2, err := ParseTimeToMinutes(start2)
	if err != nil {
		return 0
	}
	e2, err := ParseTimeToMinutes(end2)
	if err != nil {
		return 0
	}

	lo := s1
	if s2 > lo {
		lo = s2
	}
	hi := e1
	if e2 < hi {
		hi = e2
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// GapMinutes returns the gap in minutes between the end of the earlier range
// and the start of the later one; negative when the ranges overlap.
func GapMinutes(end1, start2 string) (int, error) {
	e1, err := ParseTimeToMinutes(end1)
	if err != nil {
		return 0, err
	}
	s2, err := ParseTimeToMinutes(start2)
	if err != nil {
		return 0, err
	}
	return s2 - e1, nil
}
