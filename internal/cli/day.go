package cli

import (
	"fmt"

	apperrors "github.com/blockday/blockday/internal/errors"
	"github.com/blockday/blockday/internal/utils"
)

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD, today, yesterday). Defaults to today."`
}

func (c *DayCmd) Run(ctx *Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	record, err := ctx.Commits().Refresh(date)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotCommitted) {
			fmt.Printf("%s: no commit\n", date)
			return nil
		}
		return err
	}

	state := "committed"
	if record.FinalizedAt != nil {
		state = "finalized"
	}
	fmt.Printf("%s (%s)\n", record.Date, state)

	for _, block := range record.Blocks {
		mark := CompletionMark(block)
		label := block.Identity
		if block.Optional {
			label += " (optional)"
		}
		fmt.Printf("  %s %s-%s  %s  %dm\n", mark, block.Start, block.End, label, utils.BlockDuration(block))
	}
	return nil
}
