package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitburn/internal/models"
	"github.com/julianstephens/habitburn/internal/stats"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateHabits:
		content = docStyle.Render(m.habitList.View())
	case StateStats:
		content = docStyle.Render(m.viewStats())
	case StateAchievements:
		content = docStyle.Render(m.viewAchievements())
	case StateAddHabit:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	parts := []string{m.viewTabs(), content}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	active := m.state
	if active >= tabCount {
		active = StateHabits
	}
	var tabs []string
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStats() string {
	habits := m.tracker.Habits()
	now := m.tracker.Now()
	overall := m.tracker.OverallStats()

	var b strings.Builder
	b.WriteString(headingStyle.Render("Overview") + "\n")
	fmt.Fprintf(&b, "Habits           %d\n", overall.TotalHabits)
	fmt.Fprintf(&b, "Completed today  %d/%d\n", overall.CompletedToday, overall.TotalHabits)
	fmt.Fprintf(&b, "Weekly average   %.0f%%\n", overall.WeeklyAverage*100)
	fmt.Fprintf(&b, "Best streak      %d\n", stats.LongestCurrentStreak(habits, now))
	fmt.Fprintf(&b, "Completions      %d\n", stats.TotalCompletions(habits))
	fmt.Fprintf(&b, "Experience       %d XP (max level %d)\n", stats.TotalExperience(habits), stats.MaxLevel(habits))

	b.WriteString("\n" + headingStyle.Render("By category") + "\n")
	for _, c := range models.Categories {
		if n := stats.CategoryCompletions(habits, c); n > 0 {
			fmt.Fprintf(&b, "%-14s %d\n", c, n)
		}
	}
	return b.String()
}

func (m Model) viewAchievements() string {
	unlocked, total := m.tracker.AchievementProgress()

	var b strings.Builder
	b.WriteString(headingStyle.Render(fmt.Sprintf("Achievements %d/%d", unlocked, total)) + "\n\n")
	for _, a := range m.tracker.Achievements() {
		line := fmt.Sprintf("%-24s %-10s %s", a.Title, a.Rarity, a.Description)
		if a.IsUnlocked {
			b.WriteString(unlockStyle.Render("★ "+line) + "\n")
		} else {
			b.WriteString(mutedStyle.Render("☆ "+line) + "\n")
		}
	}
	return b.String()
}

func (m Model) viewConfirmDelete() string {
	title := ""
	if h, ok := m.tracker.Habit(m.habitToDeleteID); ok {
		title = h.Title
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %q and its history?", title)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
