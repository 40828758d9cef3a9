// Package conflict detects scheduling problems between a day's committed
// blocks and externally imported calendar events, and proposes concrete
// resolutions. Detection is a pure function of its inputs: the same blocks
// and events always produce the same conflicts in the same order.
package conflict

import (
	"fmt"
	"sort"

	"github.com/blockday/blockday/internal/constants"
	"github.com/blockday/blockday/internal/models"
	"github.com/blockday/blockday/internal/utils"
)

// Conflict is a derived finding. It is never persisted; callers recompute it
// from the working set whenever they need it.
type Conflict struct {
	ID          string                     `json:"id"`
	Type        constants.ConflictType     `json:"type"`
	Severity    constants.ConflictSeverity `json:"severity"`
	Minutes     int                        `json:"minutes,omitempty"`
	Blocks      []models.TimeBlock         `json:"blocks"`
	Events      []models.CalendarEvent     `json:"events,omitempty"`
	Resolutions []Resolution               `json:"suggestedResolutions,omitempty"`
}

func severityRank(s constants.ConflictSeverity) int {
	switch s {
	case constants.SeverityCritical:
		return 0
	case constants.SeverityWarning:
		return 1
	default:
		return 2
	}
}

// Detect runs all conflict checks over one day's blocks and events and
// returns the findings sorted by severity, critical first.
func Detect(blocks []models.TimeBlock, events []models.CalendarEvent) []Conflict {
	var conflicts []Conflict

	conflicts = append(conflicts, blockOverlaps(blocks)...)
	conflicts = append(conflicts, eventOverlaps(blocks, events)...)
	conflicts = append(conflicts, backToBack(blocks)...)
	if c, ok := overbooked(blocks, events); ok {
		conflicts = append(conflicts, c)
	}

	sort.SliceStable(conflicts, func(i, j int) bool {
		return severityRank(conflicts[i].Severity) < severityRank(conflicts[j].Severity)
	})

	return conflicts
}

// blockOverlaps checks every unordered pair of blocks for a half-open
// interval intersection. Overlaps above the severe cutoff are critical,
// anything else a warning.
func blockOverlaps(blocks []models.TimeBlock) []Conflict {
	var conflicts []Conflict
	for i := 0; i < len(blocks); i++ {
		for j := i + 1; j < len(blocks); j++ {
			overlap := utils.OverlapMinutes(blocks[i].Start, blocks[i].End, blocks[j].Start, blocks[j].End)
			if overlap == 0 {
				continue
			}

			severity := constants.SeverityWarning
			if overlap > constants.SevereOverlapMin {
				severity = constants.SeverityCritical
			}

			pair := []models.TimeBlock{blocks[i], blocks[j]}
			conflicts = append(conflicts, Conflict{
				ID:          fmt.Sprintf("overlap-%s-%s", blocks[i].ID, blocks[j].ID),
				Type:        constants.ConflictOverlap,
				Severity:    severity,
				Minutes:     overlap,
				Blocks:      pair,
				Resolutions: blockPairResolutions(blocks[i], blocks[j]),
			})
		}
	}
	return conflicts
}

// eventOverlaps checks every block against every event. Events are externally
// fixed, so any overlap is critical.
func eventOverlaps(blocks []models.TimeBlock, events []models.CalendarEvent) []Conflict {
	var conflicts []Conflict
	for _, block := range blocks {
		for _, event := range events {
			overlap := utils.OverlapMinutes(block.Start, block.End, event.Start, event.End)
			if overlap == 0 {
				continue
			}

			conflicts = append(conflicts, Conflict{
				ID:          fmt.Sprintf("overlap-%s-%s", block.ID, event.ID),
				Type:        constants.ConflictOverlap,
				Severity:    constants.SeverityCritical,
				Minutes:     overlap,
				Blocks:      []models.TimeBlock{block},
				Events:      []models.CalendarEvent{event},
				Resolutions: blockEventResolutions(block, event),
			})
		}
	}
	return conflicts
}

// backToBack flags adjacent blocks with less than the buffer gap between
// them, an informational nudge rather than a hard problem.
func backToBack(blocks []models.TimeBlock) []Conflict {
	sorted := sortedByStart(blocks)

	var conflicts []Conflict
	for i := 0; i+1 < len(sorted); i++ {
		gap, err := utils.GapMinutes(sorted[i].End, sorted[i+1].Start)
		if err != nil || gap < 0 || gap >= constants.BackToBackGapMin {
			continue
		}

		conflicts = append(conflicts, Conflict{
			ID:          fmt.Sprintf("back-to-back-%s-%s", sorted[i].ID, sorted[i+1].ID),
			Type:        constants.ConflictBackToBack,
			Severity:    constants.SeverityInfo,
			Minutes:     gap,
			Blocks:      []models.TimeBlock{sorted[i], sorted[i+1]},
			Resolutions: backToBackResolutions(sorted[i], sorted[i+1], gap),
		})
	}
	return conflicts
}

// overbooked compares total scheduled minutes against the usable day window.
func overbooked(blocks []models.TimeBlock, events []models.CalendarEvent) (Conflict, bool) {
	total := 0
	for _, block := range blocks {
		total += utils.BlockDuration(block)
	}
	for _, event := range events {
		total += utils.EventDuration(event)
	}

	usable := constants.UsableDayEndMin - constants.UsableDayStartMin
	if total <= usable {
		return Conflict{}, false
	}

	return Conflict{
		ID:          "overbooked-day",
		Type:        constants.ConflictOverbooked,
		Severity:    constants.SeverityWarning,
		Minutes:     total - usable,
		Blocks:      sortedByStart(blocks),
		Events:      events,
		Resolutions: overbookedResolutions(blocks),
	}, true
}

func sortedByStart(blocks []models.TimeBlock) []models.TimeBlock {
	sorted := make([]models.TimeBlock, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, _ := utils.ParseTimeToMinutes(sorted[i].Start)
		sj, _ := utils.ParseTimeToMinutes(sorted[j].Start)
		return si < sj
	})
	return sorted
}
