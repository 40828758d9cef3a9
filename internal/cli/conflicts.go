package cli

import (
	"fmt"

	"github.com/blockday/blockday/internal/conflict"
	"github.com/blockday/blockday/internal/constants"
	apperrors "github.com/blockday/blockday/internal/errors"
	"github.com/blockday/blockday/internal/models"
)

type ConflictsCmd struct {
	Date     string `arg:"" optional:"" help:"Date to inspect (YYYY-MM-DD, today, tomorrow). Defaults to today."`
	Place    string `help:"Identity to find a free slot for instead of scanning the day."`
	Duration int    `help:"Slot length in minutes for --place." default:"30"`
}

func (c *ConflictsCmd) Run(ctx *Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	var blocks []models.TimeBlock
	record, err := ctx.Commits().Get(date)
	if err != nil && !apperrors.Is(err, apperrors.ErrNotCommitted) {
		return err
	}
	if err == nil {
		blocks = record.Blocks
	}

	events, err := ctx.Store.GetEventsForDay(date)
	if err != nil {
		return err
	}

	if c.Place != "" {
		slot, ok := conflict.FindFreeSlot(blocks, events, c.Duration)
		if !ok {
			printConflicts([]conflict.Conflict{
				conflict.InsufficientTime(c.Place, c.Duration, blocks, events),
			})
			return nil
		}
		fmt.Printf("Free slot for %q: %s-%s (%dm)\n", c.Place, slot.Start, slot.End, c.Duration)
		return nil
	}

	conflicts := conflict.Detect(blocks, events)
	if len(conflicts) == 0 {
		fmt.Printf("%s: no conflicts\n", date)
		return nil
	}
	printConflicts(conflicts)
	return nil
}

func printConflicts(conflicts []conflict.Conflict) {
	for _, found := range conflicts {
		if found.Minutes > 0 {
			fmt.Printf("[%s] %s (%dm)\n", found.Severity, found.Type, found.Minutes)
		} else {
			fmt.Printf("[%s] %s\n", found.Severity, found.Type)
		}
		for _, block := range found.Blocks {
			fmt.Printf("    block  %s-%s  %s\n", block.Start, block.End, block.Identity)
		}
		for _, event := range found.Events {
			fmt.Printf("    event  %s-%s  %s\n", event.Start, event.End, event.Title)
		}
		for _, res := range found.Resolutions {
			if res.Action == constants.ActionRemove {
				fmt.Printf("    → remove %s-%s\n", res.Before.Start, res.Before.End)
				continue
			}
			fmt.Printf("    → %s %s-%s to %s-%s\n", res.Action, res.Before.Start, res.Before.End, res.After.Start, res.After.End)
		}
	}
}
