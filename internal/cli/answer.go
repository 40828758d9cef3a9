package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/blockday/blockday/internal/commit"
)

type AnswerCmd struct {
	Identity string `arg:"" optional:"" help:"Identity to answer for. Omit for an interactive walk over elapsed blocks."`
	Date     string `help:"Date to answer for (YYYY-MM-DD, today, yesterday). Defaults to today."`
	Missed   bool   `help:"Mark the block missed instead of completed."`
}

func (c *AnswerCmd) Run(ctx *Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	store := ctx.Commits()

	if c.Identity != "" {
		return c.answerByIdentity(store, date)
	}

	record, err := store.Get(date)
	if err != nil {
		return err
	}

	now, err := ctx.Now()
	if err != nil {
		return err
	}
	answered := 0
	for _, block := range record.Blocks {
		if block.Completed != nil || !commit.BlockElapsed(block, now) {
			continue
		}

		var done bool
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Did you complete %q (%s-%s)?", block.Identity, block.Start, block.End)).
				Affirmative("Yes").
				Negative("No").
				Value(&done),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if _, err := store.SetCompletion(date, block.ID, done); err != nil {
			return err
		}
		answered++
	}

	if answered == 0 {
		fmt.Println("Nothing to answer yet.")
		return nil
	}
	fmt.Printf("✓ recorded %d answer(s)\n", answered)
	return nil
}

func (c *AnswerCmd) answerByIdentity(store *commit.Store, date string) error {
	record, err := store.Get(date)
	if err != nil {
		return err
	}

	answered := 0
	for _, block := range record.Blocks {
		if !strings.EqualFold(block.Identity, c.Identity) || block.Completed != nil {
			continue
		}
		if _, err := store.SetCompletion(date, block.ID, !c.Missed); err != nil {
			return err
		}
		answered++
	}
	if answered == 0 {
		return fmt.Errorf("no unanswered block named %q on %s", c.Identity, date)
	}
	fmt.Printf("✓ recorded %d answer(s) for %q\n", answered, c.Identity)
	return nil
}
