// Package tui is the interactive dashboard: today's habits, overall stats
// and the achievement list, driven by a tracker.Tracker.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitburn/internal/tracker"
	"github.com/julianstephens/habitburn/internal/tui/components/habitlist"
)

type SessionState int

const (
	StateHabits SessionState = iota
	StateStats
	StateAchievements
	StateAddHabit
	StateConfirmDelete
)

// tabCount is the number of states reachable with tab.
const tabCount = 3

var tabTitles = []string{"Habits", "Stats", "Achievements"}

type Model struct {
	tracker         *tracker.Tracker
	state           SessionState
	keys            KeyMap
	help            help.Model
	habitList       habitlist.Model
	form            *huh.Form
	habitForm       *HabitFormModel
	habitToDeleteID string
	status          string
	quitting        bool
	width           int
	height          int
}

func NewModel(t *tracker.Tracker) Model {
	return Model{
		tracker:   t,
		state:     StateHabits,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		habitList: habitlist.New(t.Habits(), t.Now(), 0, 0),
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := m.keys.ShortHelp()
	if m.state == StateHabits {
		hk := habitlist.DefaultKeyMap()
		keys = append(keys, hk.Add, hk.Toggle, hk.Delete)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	groups := m.keys.FullHelp()
	if m.state == StateHabits {
		hk := habitlist.DefaultKeyMap()
		groups = append(groups, []key.Binding{hk.Add, hk.Toggle, hk.Delete})
	}
	return groups
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) refresh() {
	m.habitList.SetHabits(m.tracker.Habits(), m.tracker.Now())
}
