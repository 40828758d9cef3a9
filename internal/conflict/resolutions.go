package conflict

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blockday/blockday/internal/constants"
	"github.com/blockday/blockday/internal/models"
	"github.com/blockday/blockday/internal/utils"
)

// Interval is a plain HH:MM range used in resolution previews.
type Interval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Resolution is one candidate fix for a conflict. Before/After preview the
// affected block's interval so the UI can show the change without applying it.
type Resolution struct {
	Action  constants.ResolutionAction `json:"action"`
	BlockID string                     `json:"blockId"`
	Before  Interval                   `json:"before"`
	After   Interval                   `json:"after,omitempty"`
	Note    string                     `json:"note,omitempty"`
}

// Apply transforms a block list by one resolution. Remove filters the block
// out; every other action replaces that block's interval with the After
// preview. Blocks not named by the resolution are untouched, and applying the
// same resolution twice is a no-op the second time.
func Apply(blocks []models.TimeBlock, res Resolution) []models.TimeBlock {
	result := make([]models.TimeBlock, 0, len(blocks))
	for _, block := range blocks {
		if block.ID != res.BlockID {
			result = append(result, block)
			continue
		}
		if res.Action == constants.ActionRemove {
			continue
		}
		block.Start = res.After.Start
		block.End = res.After.End
		result = append(result, block)
	}
	return result
}

// blockPairResolutions proposes fixes for two overlapping blocks. Blocks with
// the same identity (case-insensitive) additionally get a merge spanning the
// union interval.
func blockPairResolutions(a, b models.TimeBlock) []Resolution {
	earlier, later := orderByStart(a, b)

	var resolutions []Resolution

	if strings.EqualFold(strings.TrimSpace(a.Identity), strings.TrimSpace(b.Identity)) {
		union := unionInterval(a, b)
		resolutions = append(resolutions,
			Resolution{
				Action:  constants.ActionMerge,
				BlockID: earlier.ID,
				Before:  Interval{Start: earlier.Start, End: earlier.End},
				After:   union,
				Note:    fmt.Sprintf("merge into one %s block", earlier.Identity),
			},
			Resolution{
				Action:  constants.ActionRemove,
				BlockID: later.ID,
				Before:  Interval{Start: later.Start, End: later.End},
				Note:    "drop the duplicate",
			},
		)
		return resolutions
	}

	laterDur := utils.BlockDuration(later)
	earlierEnd, _ := utils.ParseTimeToMinutes(earlier.End)
	if earlierEnd+laterDur <= constants.MoveCeilingMin {
		resolutions = append(resolutions, Resolution{
			Action:  constants.ActionMove,
			BlockID: later.ID,
			Before:  Interval{Start: later.Start, End: later.End},
			After:   Interval{Start: earlier.End, End: utils.FormatMinutes(earlierEnd + laterDur)},
			Note:    fmt.Sprintf("move %s after %s", later.Identity, earlier.Identity),
		})
	}

	laterStart, _ := utils.ParseTimeToMinutes(later.Start)
	earlierStart, _ := utils.ParseTimeToMinutes(earlier.Start)
	if laterStart > earlierStart {
		resolutions = append(resolutions, Resolution{
			Action:  constants.ActionShrink,
			BlockID: earlier.ID,
			Before:  Interval{Start: earlier.Start, End: earlier.End},
			After:   Interval{Start: earlier.Start, End: later.Start},
			Note:    fmt.Sprintf("end %s when %s starts", earlier.Identity, later.Identity),
		})
	}

	resolutions = append(resolutions, Resolution{
		Action:  constants.ActionRemove,
		BlockID: later.ID,
		Before:  Interval{Start: later.Start, End: later.End},
		Note:    fmt.Sprintf("drop %s", later.Identity),
	})

	return resolutions
}

// blockEventResolutions proposes fixes for a block overlapping a fixed
// calendar event. The block can move before the event only when the new start
// stays at or after the day-start floor, and after it only when the new end
// stays within the day ceiling. Remove is always offered since the event
// takes priority.
func blockEventResolutions(block models.TimeBlock, event models.CalendarEvent) []Resolution {
	var resolutions []Resolution

	dur := utils.BlockDuration(block)
	eventStart, _ := utils.ParseTimeToMinutes(event.Start)
	eventEnd, _ := utils.ParseTimeToMinutes(event.End)

	if eventStart-dur >= constants.MoveFloorMin {
		resolutions = append(resolutions, Resolution{
			Action:  constants.ActionMove,
			BlockID: block.ID,
			Before:  Interval{Start: block.Start, End: block.End},
			After:   Interval{Start: utils.FormatMinutes(eventStart - dur), End: event.Start},
			Note:    fmt.Sprintf("move %s before %s", block.Identity, event.Title),
		})
	}

	if eventEnd+dur <= constants.MoveCeilingMin {
		resolutions = append(resolutions, Resolution{
			Action:  constants.ActionMove,
			BlockID: block.ID,
			Before:  Interval{Start: block.Start, End: block.End},
			After:   Interval{Start: event.End, End: utils.FormatMinutes(eventEnd + dur)},
			Note:    fmt.Sprintf("move %s after %s", block.Identity, event.Title),
		})
	}

	resolutions = append(resolutions, Resolution{
		Action:  constants.ActionRemove,
		BlockID: block.ID,
		Before:  Interval{Start: block.Start, End: block.End},
		Note:    fmt.Sprintf("drop %s, %s is fixed", block.Identity, event.Title),
	})

	return resolutions
}

// backToBackResolutions restores the minimum buffer between two adjacent
// blocks, either by pushing the later block out or trimming the earlier one.
func backToBackResolutions(earlier, later models.TimeBlock, gap int) []Resolution {
	need := constants.BackToBackGapMin - gap

	var resolutions []Resolution

	laterStart, _ := utils.ParseTimeToMinutes(later.Start)
	laterEnd, _ := utils.ParseTimeToMinutes(later.End)
	if laterEnd+need <= constants.MoveCeilingMin {
		resolutions = append(resolutions, Resolution{
			Action:  constants.ActionMove,
			BlockID: later.ID,
			Before:  Interval{Start: later.Start, End: later.End},
			After:   Interval{Start: utils.FormatMinutes(laterStart + need), End: utils.FormatMinutes(laterEnd + need)},
			Note:    fmt.Sprintf("push %s out by %d min", later.Identity, need),
		})
	}

	earlierEnd, _ := utils.ParseTimeToMinutes(earlier.End)
	if utils.BlockDuration(earlier) > need {
		resolutions = append(resolutions, Resolution{
			Action:  constants.ActionShrink,
			BlockID: earlier.ID,
			Before:  Interval{Start: earlier.Start, End: earlier.End},
			After:   Interval{Start: earlier.Start, End: utils.FormatMinutes(earlierEnd - need)},
			Note:    fmt.Sprintf("end %s %d min earlier", earlier.Identity, need),
		})
	}

	return resolutions
}

// overbookedResolutions suggests dropping optional blocks first. Required
// blocks are never suggested for removal here.
func overbookedResolutions(blocks []models.TimeBlock) []Resolution {
	var resolutions []Resolution
	for _, block := range blocks {
		if !block.Optional {
			continue
		}
		resolutions = append(resolutions, Resolution{
			Action:  constants.ActionRemove,
			BlockID: block.ID,
			Before:  Interval{Start: block.Start, End: block.End},
			Note:    fmt.Sprintf("drop optional %s", block.Identity),
		})
		if len(resolutions) == 4 {
			break
		}
	}
	return resolutions
}

// FindFreeSlot searches the usable day window for the first gap that fits the
// requested duration, around all existing blocks and events. The second
// return is false when no slot exists; callers report that as "no suitable
// resolution" and leave the schedule untouched.
func FindFreeSlot(blocks []models.TimeBlock, events []models.CalendarEvent, durationMin int) (Interval, bool) {
	type span struct{ start, end int }

	var occupied []span
	add := func(startStr, endStr string) {
		start, err := utils.ParseTimeToMinutes(startStr)
		if err != nil {
			return
		}
		end, err := utils.ParseTimeToMinutes(endStr)
		if err != nil {
			return
		}
		occupied = append(occupied, span{start, end})
	}
	for _, block := range blocks {
		add(block.Start, block.End)
	}
	for _, event := range events {
		add(event.Start, event.End)
	}

	sort.Slice(occupied, func(i, j int) bool { return occupied[i].start < occupied[j].start })

	cursor := constants.UsableDayStartMin
	for _, s := range occupied {
		if s.start-cursor >= durationMin {
			return Interval{Start: utils.FormatMinutes(cursor), End: utils.FormatMinutes(cursor + durationMin)}, true
		}
		if s.end > cursor {
			cursor = s.end
		}
	}
	if constants.UsableDayEndMin-cursor >= durationMin {
		return Interval{Start: utils.FormatMinutes(cursor), End: utils.FormatMinutes(cursor + durationMin)}, true
	}

	return Interval{}, false
}

// InsufficientTime builds the conflict reported when FindFreeSlot comes up
// empty for a requested placement.
func InsufficientTime(identity string, durationMin int, blocks []models.TimeBlock, events []models.CalendarEvent) Conflict {
	return Conflict{
		ID:       fmt.Sprintf("insufficient-time-%s", strings.ToLower(strings.TrimSpace(identity))),
		Type:     constants.ConflictInsufficientTime,
		Severity: constants.SeverityWarning,
		Minutes:  durationMin,
		Blocks:   sortedByStart(blocks),
		Events:   events,
	}
}

func orderByStart(a, b models.TimeBlock) (models.TimeBlock, models.TimeBlock) {
	sa, _ := utils.ParseTimeToMinutes(a.Start)
	sb, _ := utils.ParseTimeToMinutes(b.Start)
	if sb < sa {
		return b, a
	}
	return a, b
}

func unionInterval(a, b models.TimeBlock) Interval {
	sa, _ := utils.ParseTimeToMinutes(a.Start)
	sb, _ := utils.ParseTimeToMinutes(b.Start)
	ea, _ := utils.ParseTimeToMinutes(a.End)
	eb, _ := utils.ParseTimeToMinutes(b.End)
	start := sa
	if sb < start {
		start = sb
	}
	end := ea
	if eb > end {
		end = eb
	}
	return Interval{Start: utils.FormatMinutes(start), End: utils.FormatMinutes(end)}
}
