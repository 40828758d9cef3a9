package tui

import (
	"fmt"
	"strings"

	"github.com/blockday/blockday/internal/constants"
	"github.com/blockday/blockday/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	var tabs []string
	for i, title := range sectionTitles {
		if section(i) == m.section {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	if m.form != nil {
		b.WriteString(m.form.View())
		return docStyle.Render(b.String())
	}

	switch m.section {
	case sectionDay:
		b.WriteString(m.viewDay())
	case sectionConflicts:
		b.WriteString(m.viewConflicts())
	case sectionRoutines:
		b.WriteString(m.viewRoutines())
	case sectionStats:
		b.WriteString(m.viewStats())
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("⚠ " + m.errMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m))
	return docStyle.Render(b.String())
}

func (m Model) viewDay() string {
	var b strings.Builder

	state := "no commit"
	if m.hasRecord {
		state = "committed"
		if m.record.FinalizedAt != nil {
			state = "finalized"
		}
	}
	b.WriteString(fmt.Sprintf("%s (%s)\n\n", m.today, state))

	if !m.hasRecord || len(m.record.Blocks) == 0 {
		b.WriteString(mutedStyle.Render("Nothing committed for today."))
		return b.String()
	}

	for i, block := range m.record.Blocks {
		mark := mutedStyle.Render("·")
		if block.Completed != nil {
			if *block.Completed {
				mark = doneStyle.Render("✓")
			} else {
				mark = missedStyle.Render("✗")
			}
		}

		label := block.Identity
		if block.Optional {
			label += " (optional)"
		}
		line := fmt.Sprintf("%s %s-%s  %s  %dm", mark, block.Start, block.End, label, utils.BlockDuration(block))
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewConflicts() string {
	if len(m.conflicts) == 0 {
		return mutedStyle.Render("No conflicts today.")
	}

	var b strings.Builder
	for _, found := range m.conflicts {
		tag := fmt.Sprintf("[%s]", found.Severity)
		switch found.Severity {
		case constants.SeverityCritical:
			tag = criticalStyle.Render(tag)
		case constants.SeverityWarning:
			tag = warningStyle.Render(tag)
		default:
			tag = mutedStyle.Render(tag)
		}
		if found.Minutes > 0 {
			b.WriteString(fmt.Sprintf("%s %s (%dm)\n", tag, found.Type, found.Minutes))
		} else {
			b.WriteString(fmt.Sprintf("%s %s\n", tag, found.Type))
		}
		for _, block := range found.Blocks {
			b.WriteString(fmt.Sprintf("    block  %s-%s  %s\n", block.Start, block.End, block.Identity))
		}
		for _, event := range found.Events {
			b.WriteString(fmt.Sprintf("    event  %s-%s  %s\n", event.Start, event.End, event.Title))
		}
	}
	return b.String()
}

func (m Model) viewRoutines() string {
	if len(m.routines) == 0 {
		return mutedStyle.Render("No routine history yet.")
	}

	var b strings.Builder
	for _, a := range m.routines {
		b.WriteString(fmt.Sprintf("%-12s %s  %d time(s), %.1f/week, %.0f%% completed\n",
			a.Status, a.Identity, a.Occurrences, a.Frequency, a.CompletionRate*100))
		if a.Nudge != "" {
			b.WriteString(mutedStyle.Render("             → " + a.Nudge))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) viewStats() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Current streak: %d day(s)\n", m.streaks.Current))
	b.WriteString(fmt.Sprintf("Longest streak: %d day(s)\n\n", m.streaks.Longest))

	if len(m.adherence) == 0 {
		b.WriteString(mutedStyle.Render("No finalized days yet."))
		return b.String()
	}
	for _, row := range m.adherence {
		b.WriteString(fmt.Sprintf("%-20s %d/%d (%.0f%%)\n", row.Identity, row.Done, row.Due, row.Rate*100))
	}
	return b.String()
}
