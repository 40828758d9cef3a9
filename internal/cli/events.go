package cli

import (
	"fmt"

	"github.com/blockday/blockday/internal/calendar"
)

type EventsCmd struct {
	Import EventsImportCmd `cmd:"" help:"Replace a day's calendar events from a JSON file."`
	List   EventsListCmd   `cmd:"" help:"List a day's calendar events."`
	Clear  EventsClearCmd  `cmd:"" help:"Remove all calendar events for a day."`
}

type EventsImportCmd struct {
	File string `arg:"" type:"existingfile" help:"JSON file holding an array of events."`
	Date string `arg:"" optional:"" help:"Day the events belong to. Defaults to today."`
}

func (c *EventsImportCmd) Run(ctx *Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	events, err := calendar.LoadFile(c.File, date)
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveEvents(date, events); err != nil {
		return err
	}
	fmt.Printf("✓ imported %d event(s) for %s\n", len(events), date)
	return nil
}

type EventsListCmd struct {
	Date string `arg:"" optional:"" help:"Day to list. Defaults to today."`
}

func (c *EventsListCmd) Run(ctx *Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	events, err := ctx.Store.GetEventsForDay(date)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Printf("%s: no events\n", date)
		return nil
	}
	for _, event := range events {
		fmt.Printf("  %s-%s  %s\n", event.Start, event.End, event.Title)
	}
	return nil
}

type EventsClearCmd struct {
	Date string `arg:"" optional:"" help:"Day to clear. Defaults to today."`
}

func (c *EventsClearCmd) Run(ctx *Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteEventsForDay(date); err != nil {
		return err
	}
	fmt.Printf("✓ cleared events for %s\n", date)
	return nil
}
