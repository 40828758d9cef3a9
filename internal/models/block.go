package models

// TimeBlock is a user-declared time interval labeled with an identity name.
// Completed is tri-state: nil means not yet due or not yet answered; true or
// false is the user's answer once the block has elapsed.
type TimeBlock struct {
	ID        string `json:"id"`
	Identity  string `json:"identity"`
	Start     string `json:"start"` // HH:MM format
	End       string `json:"end"`   // HH:MM format
	Optional  bool   `json:"optional,omitempty"`
	Completed *bool  `json:"completed,omitempty"`
}
