package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitburn/internal/constants"
	"github.com/julianstephens/habitburn/internal/models"
	"github.com/julianstephens/habitburn/internal/tui/components/habitlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.habitList.SetSize(msg.Width-h, msg.Height-v-4)
		return m, nil
	}

	switch m.state {
	case StateAddHabit:
		return m.updateAddHabit(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case habitlist.AddHabitMsg:
		if !m.tracker.CanAddHabit() {
			m.status = fmt.Sprintf("Habit limit reached: at most %d habits", constants.MaxHabits)
			return m, nil
		}
		m.habitForm = newHabitFormModel(m.tracker.NewHabit(""))
		m.form = newHabitForm(m.habitForm)
		m.state = StateAddHabit
		return m, m.form.Init()

	case habitlist.ToggleHabitMsg:
		m.toggle(msg.ID)
		return m, nil

	case habitlist.DeleteHabitMsg:
		m.habitToDeleteID = msg.ID
		m.state = StateConfirmDelete
		return m, nil

	case tea.KeyMsg:
		if m.state == StateHabits && m.habitList.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	if m.state == StateHabits {
		var cmd tea.Cmd
		m.habitList, cmd = m.habitList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateHabits
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.submitHabit()
		m.state = StateHabits
	case huh.StateAborted:
		m.state = StateHabits
	}
	return m, cmd
}

func (m *Model) submitHabit() {
	h := m.habitForm.habit(m.tracker.NewHabit(""))
	if err := h.Validate(); err != nil {
		m.status = err.Error()
		return
	}
	res := m.tracker.AddHabit(h)
	if !res.Added {
		m.status = fmt.Sprintf("Habit limit reached: at most %d habits", constants.MaxHabits)
		return
	}
	m.status = "Added " + h.Title + unlockedSuffix(res.Unlocked)
	m.refresh()
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		if h, found := m.tracker.Habit(m.habitToDeleteID); found && m.tracker.DeleteHabit(h.ID) {
			m.status = "Deleted " + h.Title
			m.refresh()
		}
		m.habitToDeleteID = ""
		m.state = StateHabits
	case key.Matches(keyMsg, m.keys.Cancel):
		m.habitToDeleteID = ""
		m.state = StateHabits
	}
	return m, nil
}

func (m *Model) toggle(id string) {
	h, _ := m.tracker.Habit(id)
	res := m.tracker.ToggleCompletion(id)
	if !res.Found {
		return
	}
	if !res.Completed {
		m.status = "Unmarked " + h.Title
		m.refresh()
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Completed %s (+%d XP)", h.Title, res.ExperienceGained)
	if res.GoalsCompleted > 0 {
		fmt.Fprintf(&b, ", %d goal(s) reached", res.GoalsCompleted)
	}
	b.WriteString(unlockedSuffix(res.Unlocked))
	m.status = b.String()
	m.refresh()
}

func unlockedSuffix(unlocked []models.Achievement) string {
	var b strings.Builder
	for _, a := range unlocked {
		fmt.Fprintf(&b, " · unlocked %s", a.Title)
	}
	return b.String()
}
