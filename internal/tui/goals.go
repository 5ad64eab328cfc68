package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/chronos-tracker/chronos/internal/store"
	"github.com/chronos-tracker/chronos/internal/tracker"
)

const progressBarWidth = 30

type goalsModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	cursor int

	formActive  bool
	form        *huh.Form
	formMinutes *string
	editingID   string
}

func newGoalsModel(tr *tracker.Tracker) goalsModel {
	return goalsModel{tracker: tr}
}

func (g *goalsModel) setSize(w, h int) {
	g.width = w
	g.height = h
}

func (g goalsModel) update(msg tea.Msg) (goalsModel, tea.Cmd) {
	if g.formActive && g.form != nil {
		return g.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}

	acts := g.tracker.EnabledActivities()
	switch {
	case key.Matches(km, keys.Up):
		if g.cursor > 0 {
			g.cursor--
		}
	case key.Matches(km, keys.Down):
		if g.cursor < len(acts)-1 {
			g.cursor++
		}
	case key.Matches(km, keys.Enter), key.Matches(km, keys.Edit):
		if g.cursor < len(acts) {
			return g.openForm(acts[g.cursor])
		}
	}
	return g, nil
}

func (g goalsModel) openForm(a store.Activity) (goalsModel, tea.Cmd) {
	minutes := strconv.Itoa(g.tracker.Goal(a.ID))
	g.formMinutes = &minutes
	g.editingID = a.ID
	g.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Daily goal for %s (min)", a.Name)).
				Value(g.formMinutes),
		),
	).WithShowHelp(true).WithShowErrors(true)
	g.formActive = true
	return g, g.form.Init()
}

func (g goalsModel) updateForm(msg tea.Msg) (goalsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			g.formActive = false
			g.form = nil
			return g, nil
		}
	}

	form, cmd := g.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		g.form = f
	}

	if g.form.State == huh.StateCompleted {
		g.formActive = false
		g.form = nil
		return g.applyGoal(*g.formMinutes)
	}
	return g, cmd
}

// applyGoal stores the target for the activity being edited.
// Non-numeric input sets the goal to zero, which disables it.
func (g goalsModel) applyGoal(value string) (goalsModel, tea.Cmd) {
	id := g.editingID
	g.editingID = ""
	minutes := tracker.ParseMinutes(value)
	if err := g.tracker.SetGoal(id, minutes); err != nil {
		return g, errorCmd(err)
	}
	return g, statusCmd(fmt.Sprintf("Goal for %s set to %dm", g.tracker.ActivityName(id), minutes))
}

func (g goalsModel) view() string {
	w := g.width - 4

	if g.formActive && g.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Set Goal"), "", g.form.View())
		return activePanelStyle.Width(w).Render(content)
	}

	acts := g.tracker.EnabledActivities()
	today := g.tracker.Today()

	rows := []string{titleStyle.Render("Daily Goals"), ""}
	for i, a := range acts {
		target := g.tracker.Goal(a.ID)
		actual := g.tracker.ActualSeconds(a.ID, today)

		var detail string
		if target > 0 {
			pct := g.tracker.Progress(a.ID, today)
			detail = fmt.Sprintf("%s %3.0f%%  %s / %dm",
				progressBar(pct, a.Color), pct, formatDuration(actual), target)
		} else {
			detail = mutedStyle.Render("no goal")
		}

		line := fmt.Sprintf("%s %-24s %s", a.Icon, truncate(a.Name, 24), detail)
		if i == g.cursor {
			rows = append(rows, selectedItemStyle.Render("> "+line))
		} else {
			rows = append(rows, normalItemStyle.Render("  "+line))
		}
	}
	if len(acts) == 0 {
		rows = append(rows, mutedStyle.Render("No enabled activities."))
	}
	rows = append(rows, "", mutedStyle.Render("  enter/e: set goal (0 clears)"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// progressBar renders pct (0-100) as a fixed-width bar.
func progressBar(pct float64, color string) string {
	filled := int(pct / 100 * progressBarWidth)
	filled = min(max(filled, 0), progressBarWidth)
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", filled))
	return bar + mutedStyle.Render(strings.Repeat("░", progressBarWidth-filled))
}
