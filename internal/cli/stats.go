package cli

import (
	"fmt"
	"strings"

	"github.com/blockday/blockday/internal/analytics"
	"github.com/blockday/blockday/internal/constants"
)

type StatsCmd struct {
	Streak    StatsStreakCmd    `cmd:"" help:"Show current and longest adherence streaks."`
	Heatmap   StatsHeatmapCmd   `cmd:"" help:"Show a per-day adherence score for the history."`
	Adherence StatsAdherenceCmd `cmd:"" help:"Show completion rates grouped by identity."`
}

type StatsStreakCmd struct{}

func (c *StatsStreakCmd) Run(ctx *Context) error {
	commits, err := ctx.Store.GetAllCommits()
	if err != nil {
		return err
	}

	now, err := ctx.Now()
	if err != nil {
		return err
	}
	streaks := analytics.ComputeStreaks(commits, now)
	fmt.Printf("Current streak: %d day(s)\n", streaks.Current)
	fmt.Printf("Longest streak: %d day(s)\n", streaks.Longest)
	return nil
}

type StatsHeatmapCmd struct {
	Weeks int `help:"Limit the heatmap to the most recent N weeks."`
}

func (c *StatsHeatmapCmd) Run(ctx *Context) error {
	commits, err := ctx.Store.GetAllCommits()
	if err != nil {
		return err
	}

	now, err := ctx.Now()
	if err != nil {
		return err
	}
	cells := analytics.ComputeHeatmap(commits, now)
	if c.Weeks > 0 {
		cutoff := now.AddDate(0, 0, -7*c.Weeks).Format(constants.DateFormat)
		filtered := cells[:0]
		for _, cell := range cells {
			if cell.Date >= cutoff {
				filtered = append(filtered, cell)
			}
		}
		cells = filtered
	}
	if len(cells) == 0 {
		fmt.Println("No finalized days yet.")
		return nil
	}
	for _, cell := range cells {
		fmt.Printf("%s  %s  %d/%d (%.0f%%, %s)\n", cell.Date, scoreBar(cell.Score), cell.Done, cell.Due, cell.Score*100, cell.Level)
	}
	return nil
}

type StatsAdherenceCmd struct{}

func (c *StatsAdherenceCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	commits, err := ctx.Store.GetAllCommits()
	if err != nil {
		return err
	}

	now, err := ctx.Now()
	if err != nil {
		return err
	}
	rows := analytics.ComputeAdherence(commits, settings.RoutineNames, now)
	if len(rows) == 0 {
		fmt.Println("No finalized days yet.")
		return nil
	}
	for _, row := range rows {
		fmt.Printf("%-20s %s  %d/%d (%.0f%%)\n", row.Identity, scoreBar(row.Rate), row.Done, row.Due, row.Rate*100)
	}
	return nil
}

// scoreBar renders a ten-slot bar like "███████---".
func scoreBar(score float64) string {
	filled := int(score*10 + 0.5)
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("█", filled) + strings.Repeat("-", 10-filled)
}
