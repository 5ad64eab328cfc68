package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/chronos-tracker/chronos/internal/store"
	"github.com/chronos-tracker/chronos/internal/tracker"
)

const errDeleteRunning = "Cannot delete an activity while it's being tracked!"

type activitiesModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	cursor int

	formActive    bool
	form          *huh.Form
	confirmDelete bool
	formName      *string
	formIcon      *string
	formConfirm   *bool
	deletingID    string
}

func newActivitiesModel(tr *tracker.Tracker) activitiesModel {
	return activitiesModel{tracker: tr}
}

func (m *activitiesModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m activitiesModel) update(msg tea.Msg) (activitiesModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	acts := m.tracker.Activities()
	switch {
	case key.Matches(km, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, keys.Down):
		if m.cursor < len(acts)-1 {
			m.cursor++
		}
	case key.Matches(km, keys.Enter), key.Matches(km, keys.Toggle):
		if m.cursor < len(acts) {
			if err := m.tracker.ToggleActivity(acts[m.cursor].ID); err != nil {
				return m, errorCmd(err)
			}
		}
	case key.Matches(km, keys.New):
		return m.openNewForm()
	case key.Matches(km, keys.Delete):
		if m.cursor < len(acts) {
			return m.requestDelete(acts[m.cursor])
		}
	}
	return m, nil
}

func (m activitiesModel) openNewForm() (activitiesModel, tea.Cmd) {
	name, icon := "", ""
	m.formName = &name
	m.formIcon = &icon
	m.confirmDelete = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Activity Name").Value(m.formName),
			huh.NewInput().Title("Icon (emoji)").Placeholder("✨").CharLimit(4).Value(m.formIcon),
		),
	).WithShowHelp(true).WithShowErrors(true)
	m.formActive = true
	return m, m.form.Init()
}

// requestDelete refuses to delete a running activity and otherwise asks
// for confirmation.
func (m activitiesModel) requestDelete(a store.Activity) (activitiesModel, tea.Cmd) {
	if m.tracker.Running(a.ID) {
		return m, func() tea.Msg { return statusMsg{text: errDeleteRunning, isError: true} }
	}
	confirm := false
	m.formConfirm = &confirm
	m.deletingID = a.ID
	m.confirmDelete = true
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s %s?", a.Icon, a.Name)).
				Description("Past logs are kept.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(m.formConfirm),
		),
	).WithShowHelp(true)
	m.formActive = true
	return m, m.form.Init()
}

func (m activitiesModel) updateForm(msg tea.Msg) (activitiesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		m.form = nil
		if m.confirmDelete {
			m.confirmDelete = false
			if !*m.formConfirm {
				return m, nil
			}
			return m.deleteActivity(m.deletingID)
		}
		return m.addActivity(*m.formName, *m.formIcon)
	}
	return m, cmd
}

func (m activitiesModel) addActivity(name, icon string) (activitiesModel, tea.Cmd) {
	a, err := m.tracker.AddActivity(name, icon)
	if errors.Is(err, tracker.ErrEmptyName) {
		return m, nil
	}
	if err != nil {
		return m, errorCmd(err)
	}
	return m, statusCmd("Added " + a.Name)
}

func (m activitiesModel) deleteActivity(id string) (activitiesModel, tea.Cmd) {
	name := m.tracker.ActivityName(id)
	m.deletingID = ""
	err := m.tracker.DeleteActivity(id)
	if errors.Is(err, tracker.ErrActivityRunning) {
		return m, func() tea.Msg { return statusMsg{text: errDeleteRunning, isError: true} }
	}
	if err != nil {
		return m, errorCmd(err)
	}
	if n := len(m.tracker.Activities()); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
	return m, statusCmd("Deleted " + name)
}

func (m activitiesModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := "New Activity"
		if m.confirmDelete {
			title = "Delete Activity"
		}
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", m.form.View())
		return activePanelStyle.Width(w).Render(content)
	}

	acts := m.tracker.Activities()
	rows := []string{titleStyle.Render(fmt.Sprintf("Activities (%d)", len(acts))), ""}
	for i, a := range acts {
		state := successStyle.Render("on ")
		if !a.Enabled {
			state = mutedStyle.Render("off")
		}
		running := ""
		if m.tracker.Running(a.ID) {
			running = accentStyle.Render(" ● tracking")
		}
		line := fmt.Sprintf("[%s] %s %s %s%s", state, colorDot(a.Color), a.Icon, a.Name, running)
		if i == m.cursor {
			rows = append(rows, selectedItemStyle.Render("> "+line))
		} else {
			rows = append(rows, normalItemStyle.Render("  "+line))
		}
	}
	rows = append(rows, "", mutedStyle.Render("  space: enable/disable  n: new  d: delete"))
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
