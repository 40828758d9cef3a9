// Package analytics holds small stateless reducers over the commitment
// history: streaks, per-day heatmap scores, and per-identity adherence.
// Each reducer counts only blocks that can no longer be gamed, matching the
// routine analyzer's guard.
package analytics

import (
	"time"

	"github.com/blockday/blockday/internal/commit"
	"github.com/blockday/blockday/internal/constants"
	"github.com/blockday/blockday/internal/models"
	"github.com/blockday/blockday/internal/utils"
)

// Streaks summarizes consecutive adherent days.
type Streaks struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// dayAdherent reports whether every required (non-optional) countable block
// of the commit was completed. A day with no countable required blocks is
// not adherent; it simply does not count either way.
func dayAdherent(c models.DayCommit, now time.Time) (adherent, countable bool) {
	if !c.Committed {
		return false, false
	}

	today := now.Format(constants.DateFormat)
	finalized := commit.IsFinalized(c, now)
	if !finalized && c.Date != today {
		return false, false
	}

	required := 0
	for _, block := range c.Blocks {
		if block.Optional {
			continue
		}
		if !finalized && !commit.BlockElapsed(block, now) {
			continue
		}
		required++
		if block.Completed == nil || !*block.Completed {
			return false, true
		}
	}
	if required == 0 {
		return false, false
	}
	return true, true
}

// ComputeStreaks walks the history in date order and returns the longest run
// of consecutive adherent calendar days, plus the run ending at the most
// recent countable day.
func ComputeStreaks(commits []models.DayCommit, now time.Time) Streaks {
	type day struct {
		date     time.Time
		adherent bool
	}

	var days []day
	for _, c := range commits {
		adherent, countable := dayAdherent(c, now)
		if !countable {
			continue
		}
		date, err := utils.ParseDateInLocation(c.Date, now.Location())
		if err != nil {
			continue
		}
		days = append(days, day{date: date, adherent: adherent})
	}

	var streaks Streaks
	run := 0
	var prev time.Time
	for _, d := range days {
		if !d.adherent {
			run = 0
			prev = d.date
			continue
		}
		if run > 0 && prev.AddDate(0, 0, 1).Equal(d.date) {
			run++
		} else {
			run = 1
		}
		prev = d.date
		if run > streaks.Longest {
			streaks.Longest = run
		}
	}
	streaks.Current = run

	return streaks
}
