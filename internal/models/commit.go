package models

// DayCommit is one day's locked-in plan. At most one record exists per date.
// A record with Committed=false is a draft and is excluded from analytics.
// Once FinalizedAt is set the record is permanently immutable.
type DayCommit struct {
	Date        string      `json:"date"` // YYYY-MM-DD format
	Blocks      []TimeBlock `json:"blocks"`
	CommittedAt string      `json:"committed_at"` // RFC3339 timestamp
	Committed   bool        `json:"committed"`
	FinalizedAt *string     `json:"finalized_at,omitempty"` // RFC3339 timestamp
}

// Block returns the contained block with the given id, or nil.
func (c *DayCommit) Block(id string) *TimeBlock {
	for i := range c.Blocks {
		if c.Blocks[i].ID == id {
			return &c.Blocks[i]
		}
	}
	return nil
}
