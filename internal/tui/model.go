package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/blockday/blockday/internal/analytics"
	"github.com/blockday/blockday/internal/commit"
	"github.com/blockday/blockday/internal/conflict"
	"github.com/blockday/blockday/internal/constants"
	"github.com/blockday/blockday/internal/models"
	"github.com/blockday/blockday/internal/routine"
	"github.com/blockday/blockday/internal/storage"
	"github.com/blockday/blockday/internal/utils"
)

type section int

const (
	sectionDay section = iota
	sectionConflicts
	sectionRoutines
	sectionStats
	sectionCount
)

var sectionTitles = [sectionCount]string{"Day", "Conflicts", "Routines", "Stats"}

type KeyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Up       key.Binding
	Down     key.Binding
	Answer   key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next section")),
		ShiftTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev section")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Answer:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "answer block")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type Model struct {
	store   storage.Provider
	commits *commit.Store

	section   section
	keys      KeyMap
	help      help.Model
	cursor    int
	form      *huh.Form
	answering string // block ID the open form is about
	answer    bool
	timezone  string

	today     string
	record    models.DayCommit
	hasRecord bool
	conflicts []conflict.Conflict
	routines  []routine.Analysis
	streaks   analytics.Streaks
	adherence []analytics.IdentityAdherence

	quitting bool
	width    int
	height   int
	errMsg   string
}

func NewModel(store storage.Provider, commits *commit.Store) Model {
	m := Model{
		store:   store,
		commits: commits,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
	m.reload()
	return m
}

// now returns the current time in the configured timezone, so day boundaries
// agree with the commit store's finalization clock.
func (m *Model) now() time.Time {
	t, err := utils.NowInTimezone(m.timezone)
	if err != nil {
		return time.Now()
	}
	return t
}

// reload re-reads everything the view renders. Cheap enough to run after
// every mutation.
func (m *Model) reload() {
	m.errMsg = ""

	settings, err := m.store.GetSettings()
	if err != nil {
		m.errMsg = err.Error()
	}
	m.timezone = settings.Timezone

	now := m.now()
	m.today = now.Format(constants.DateFormat)

	record, err := m.commits.Get(m.today)
	m.hasRecord = err == nil
	if m.hasRecord {
		m.record = record
	} else {
		m.record = models.DayCommit{Date: m.today}
	}

	events, err := m.store.GetEventsForDay(m.today)
	if err != nil {
		m.errMsg = err.Error()
		events = nil
	}
	m.conflicts = conflict.Detect(m.record.Blocks, events)

	commits, err := m.store.GetAllCommits()
	if err != nil {
		m.errMsg = err.Error()
		commits = nil
	}
	m.routines = routine.Analyze(commits, routine.Options{
		LookbackWeeks:  settings.LookbackWeeks,
		CanonicalNames: settings.RoutineNames,
		Now:            now,
	})
	m.streaks = analytics.ComputeStreaks(commits, now)
	m.adherence = analytics.ComputeAdherence(commits, settings.RoutineNames, now)

	if m.cursor >= len(m.record.Blocks) {
		m.cursor = 0
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.section == sectionDay {
		keys = append(keys, m.keys.Answer)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help},
		{m.keys.Up, m.keys.Down, m.keys.Answer, m.keys.Refresh},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}
