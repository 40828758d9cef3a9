package models

type Settings struct {
	DayStart      string   `json:"day_start"` // HH:MM format
	DayEnd        string   `json:"day_end"`   // HH:MM format
	Timezone      string   `json:"timezone"`  // IANA name, "Local" or empty for system
	LookbackWeeks int      `json:"lookback_weeks"`
	RoutineNames  []string `json:"routine_names,omitempty"` // user-declared canonical identities
}
