package analytics

import (
	"sort"
	"time"

	"github.com/blockday/blockday/internal/commit"
	"github.com/blockday/blockday/internal/constants"
	"github.com/blockday/blockday/internal/models"
	"github.com/blockday/blockday/internal/routine"
)

// IdentityAdherence is one bar in the per-identity adherence view: how often
// a canonical identity's due blocks were actually completed.
type IdentityAdherence struct {
	Identity string  `json:"identity"`
	Due      int     `json:"due"`
	Done     int     `json:"done"`
	Rate     float64 `json:"rate"`
}

// ComputeAdherence groups countable blocks by canonical identity and returns
// one record per identity, most-scheduled first.
func ComputeAdherence(commits []models.DayCommit, canonicalNames []string, now time.Time) []IdentityAdherence {
	today := now.Format(constants.DateFormat)

	type tally struct{ due, done int }
	tallies := make(map[string]*tally)

	for _, c := range commits {
		if !c.Committed {
			continue
		}
		finalized := commit.IsFinalized(c, now)
		if !finalized && c.Date != today {
			continue
		}

		for _, block := range c.Blocks {
			if !finalized && !commit.BlockElapsed(block, now) {
				continue
			}

			identity := routine.Normalize(block.Identity, canonicalNames)
			if identity == "" {
				continue
			}

			t := tallies[identity]
			if t == nil {
				t = &tally{}
				tallies[identity] = t
			}
			t.due++
			if block.Completed != nil && *block.Completed {
				t.done++
			}
		}
	}

	bars := make([]IdentityAdherence, 0, len(tallies))
	for identity, t := range tallies {
		bars = append(bars, IdentityAdherence{
			Identity: identity,
			Due:      t.due,
			Done:     t.done,
			Rate:     float64(t.done) / float64(t.due),
		})
	}

	sort.SliceStable(bars, func(i, j int) bool {
		if bars[i].Due != bars[j].Due {
			return bars[i].Due > bars[j].Due
		}
		return bars[i].Identity < bars[j].Identity
	})

	return bars
}
