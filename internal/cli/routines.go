package cli

import (
	"fmt"
	"strings"

	"github.com/blockday/blockday/internal/routine"
)

type RoutinesCmd struct {
	Weeks int `help:"Lookback window in weeks. Defaults to the configured value."`
}

func (c *RoutinesCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	commits, err := ctx.Store.GetAllCommits()
	if err != nil {
		return err
	}

	weeks := c.Weeks
	if weeks <= 0 {
		weeks = settings.LookbackWeeks
	}

	now, err := ctx.Now()
	if err != nil {
		return err
	}
	analyses := routine.Analyze(commits, routine.Options{
		LookbackWeeks:  weeks,
		CanonicalNames: settings.RoutineNames,
		Now:            now,
	})
	if len(analyses) == 0 {
		fmt.Println("No routine history yet.")
		return nil
	}

	for _, a := range analyses {
		fmt.Printf("%-12s %s\n", a.Status, a.Identity)
		fmt.Printf("             %d time(s) over %d week(s), %.1f/week, %.0f%% completed\n",
			a.Occurrences, a.Consistency, a.Frequency, a.CompletionRate*100)
		if len(a.OriginalVariants) > 1 || (len(a.OriginalVariants) == 1 && !strings.EqualFold(a.OriginalVariants[0], a.Identity)) {
			fmt.Printf("             seen as: %s\n", strings.Join(a.OriginalVariants, ", "))
		}
		if a.Nudge != "" {
			fmt.Printf("             → %s\n", a.Nudge)
		}
	}
	return nil
}
