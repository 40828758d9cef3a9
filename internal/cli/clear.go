package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

type ClearCmd struct {
	Date string `arg:"" optional:"" help:"Date to clear (YYYY-MM-DD, today). Defaults to today."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ClearCmd) Run(ctx *Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	if !c.Yes {
		var confirmed bool
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Clear the draft for %s?", date)).
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := ctx.Commits().Clear(date); err != nil {
		return err
	}
	fmt.Printf("✓ cleared %s\n", date)
	return nil
}
