package cli

import (
	"fmt"
	"strings"

	"github.com/blockday/blockday/internal/conflict"
	"github.com/blockday/blockday/internal/models"
)

type CommitCmd struct {
	Date   string   `arg:"" optional:"" help:"Date to commit (YYYY-MM-DD, today, tomorrow). Defaults to today."`
	Block  []string `short:"b" help:"Block spec \"HH:MM-HH:MM Identity\" (append * to the range for optional), repeatable."`
	Strict bool     `help:"Refuse to commit when conflicts are detected."`
	DryRun bool     `help:"Show conflicts without committing."`
}

func (c *CommitCmd) Run(ctx *Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	if len(c.Block) == 0 {
		return fmt.Errorf("nothing to commit, pass at least one --block")
	}

	var blocks []models.TimeBlock
	for _, spec := range c.Block {
		block, err := ParseBlockSpec(spec)
		if err != nil {
			return err
		}
		blocks = append(blocks, block)
	}

	events, err := ctx.Store.GetEventsForDay(date)
	if err != nil {
		return err
	}

	conflicts := conflict.Detect(blocks, events)
	if len(conflicts) > 0 {
		printConflicts(conflicts)
		fmt.Println()
	}
	if c.DryRun {
		if len(conflicts) == 0 {
			fmt.Println("No conflicts detected.")
		}
		return nil
	}
	// Conflicts are advisory unless the user asks otherwise.
	if c.Strict && len(conflicts) > 0 {
		return fmt.Errorf("refusing to commit with %d conflict(s) (drop --strict to commit anyway)", len(conflicts))
	}

	record, err := ctx.Commits().Commit(blocks, date)
	if err != nil {
		return err
	}

	state := "committed"
	if record.FinalizedAt != nil {
		state = "committed and finalized"
	}
	fmt.Printf("✓ %s: %d block(s) %s\n", record.Date, len(record.Blocks), state)

	ctx.PerformAutomaticBackup()
	return nil
}

// ParseBlockSpec parses "HH:MM-HH:MM Identity". A trailing * on the time
// range marks the block optional: "07:00-07:30* Stretching".
func ParseBlockSpec(spec string) (models.TimeBlock, error) {
	fields := strings.Fields(strings.TrimSpace(spec))
	if len(fields) < 2 {
		return models.TimeBlock{}, fmt.Errorf("invalid block spec %q (expected \"HH:MM-HH:MM Identity\")", spec)
	}

	timeRange := fields[0]
	optional := strings.HasSuffix(timeRange, "*")
	timeRange = strings.TrimSuffix(timeRange, "*")

	parts := strings.SplitN(timeRange, "-", 2)
	if len(parts) != 2 {
		return models.TimeBlock{}, fmt.Errorf("invalid time range in %q (expected HH:MM-HH:MM)", spec)
	}

	return models.TimeBlock{
		Identity: strings.Join(fields[1:], " "),
		Start:    parts[0],
		End:      parts[1],
		Optional: optional,
	}, nil
}
