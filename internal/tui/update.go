package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/blockday/blockday/internal/commit"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		// An open form owns the keyboard except for quit.
		if m.form == nil && key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Tab):
		m.section = (m.section + 1) % sectionCount
		m.cursor = 0
	case key.Matches(keyMsg, m.keys.ShiftTab):
		m.section = (m.section + sectionCount - 1) % sectionCount
		m.cursor = 0
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(keyMsg, m.keys.Refresh):
		m.reload()
	case key.Matches(keyMsg, m.keys.Up):
		if m.section == sectionDay && m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.section == sectionDay && m.cursor < len(m.record.Blocks)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Answer):
		if m.section == sectionDay {
			return m.openAnswerForm()
		}
	}

	return m, nil
}

func (m Model) openAnswerForm() (tea.Model, tea.Cmd) {
	if !m.hasRecord || m.cursor >= len(m.record.Blocks) {
		return m, nil
	}
	block := m.record.Blocks[m.cursor]
	if block.Completed != nil {
		m.errMsg = "block already answered"
		return m, nil
	}
	if !commit.BlockElapsed(block, m.now()) {
		m.errMsg = "block has not ended yet"
		return m, nil
	}

	m.answering = block.ID
	m.answer = false
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Did you complete %q (%s-%s)?", block.Identity, block.Start, block.End)).
			Affirmative("Yes").
			Negative("No").
			Value(&m.answer),
	))
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if _, err := m.commits.SetCompletion(m.today, m.answering, m.answer); err != nil {
			m.errMsg = err.Error()
		}
		m.form = nil
		m.answering = ""
		m.reload()
	case huh.StateAborted:
		m.form = nil
		m.answering = ""
	}

	return m, cmd
}
