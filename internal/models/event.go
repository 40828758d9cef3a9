package models

// CalendarEvent is an externally imported calendar entry. The engine treats
// events as read-only: they participate in conflict detection but are never
// moved, edited, or deleted by any resolution.
type CalendarEvent struct {
	ID           string `json:"id"`
	Day          string `json:"day,omitempty"` // YYYY-MM-DD format
	Title        string `json:"title"`
	Start        string `json:"start"` // HH:MM format
	End          string `json:"end"`   // HH:MM format
	AccountColor string `json:"accountColor,omitempty"`
}
