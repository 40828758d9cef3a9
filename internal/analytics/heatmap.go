package analytics

import (
	"sort"
	"time"

	"github.com/blockday/blockday/internal/commit"
	"github.com/blockday/blockday/internal/constants"
	"github.com/blockday/blockday/internal/models"
)

// HeatmapLevel is a score bucketed for rendering.
type HeatmapLevel string

const (
	HeatmapNone HeatmapLevel = "none"
	HeatmapLow  HeatmapLevel = "low"
	HeatmapMid  HeatmapLevel = "mid"
	HeatmapHigh HeatmapLevel = "high"
)

// HeatmapBucket classifies a day score. The cut points reuse the routine
// analyzer's completion thresholds, so a "high" day is one that would keep an
// established routine established.
func HeatmapBucket(score float64) HeatmapLevel {
	switch {
	case score <= 0:
		return HeatmapNone
	case score < constants.EmergingCompletionMin:
		return HeatmapLow
	case score < constants.EstablishedCompletionMin:
		return HeatmapMid
	default:
		return HeatmapHigh
	}
}

// HeatmapCell is one day's schedule-quality score: the fraction of countable
// blocks that were completed, 0 when nothing was countable.
type HeatmapCell struct {
	Date  string       `json:"date"`
	Due   int          `json:"due"`
	Done  int          `json:"done"`
	Score float64      `json:"score"`
	Level HeatmapLevel `json:"level"`
}

// ComputeHeatmap scores every day in the history, ordered by date. Days with
// no countable blocks are skipped rather than scored zero, so an uncommitted
// day does not read as a failed one.
func ComputeHeatmap(commits []models.DayCommit, now time.Time) []HeatmapCell {
	today := now.Format(constants.DateFormat)

	var cells []HeatmapCell
	for _, c := range commits {
		if !c.Committed {
			continue
		}

		finalized := commit.IsFinalized(c, now)
		if !finalized && c.Date != today {
			continue
		}
		due, done := 0, 0
		for _, block := range c.Blocks {
			if !finalized && !commit.BlockElapsed(block, now) {
				continue
			}
			due++
			if block.Completed != nil && *block.Completed {
				done++
			}
		}
		if due == 0 {
			continue
		}

		score := float64(done) / float64(due)
		cells = append(cells, HeatmapCell{
			Date:  c.Date,
			Due:   due,
			Done:  done,
			Score: score,
			Level: HeatmapBucket(score),
		})
	}

	sort.Slice(cells, func(i, j int) bool { return cells[i].Date < cells[j].Date })
	return cells
}
