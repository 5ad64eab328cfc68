package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chronos-tracker/chronos/internal/store"
	"github.com/chronos-tracker/chronos/internal/tracker"
	"github.com/dustin/go-humanize"
)

const gridCellWidth = 24

// dashboardModel is the tracking grid: running sessions, the Pomodoro
// panel and one cell per enabled activity.
type dashboardModel struct {
	store   *store.Store
	tracker *tracker.Tracker
	width   int
	height  int

	cursor int
}

func newDashboardModel(s *store.Store, tr *tracker.Tracker) dashboardModel {
	return dashboardModel{store: s, tracker: tr}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) columns() int {
	return max(1, (d.width-8)/gridCellWidth)
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	grid := d.tracker.EnabledActivities()
	cols := d.columns()

	switch {
	case key.Matches(km, keys.Left):
		if d.cursor > 0 {
			d.cursor--
		}
	case key.Matches(km, keys.Right):
		if d.cursor < len(grid)-1 {
			d.cursor++
		}
	case key.Matches(km, keys.Up):
		if d.cursor-cols >= 0 {
			d.cursor -= cols
		}
	case key.Matches(km, keys.Down):
		if d.cursor+cols < len(grid) {
			d.cursor += cols
		}
	case key.Matches(km, keys.Enter), key.Matches(km, keys.Toggle):
		if len(grid) == 0 {
			return d, statusCmd("No enabled activities. Press 5 to manage activities.")
		}
		d.cursor = min(d.cursor, len(grid)-1)
		return d.toggle(grid[d.cursor])
	case key.Matches(km, keys.StopAll):
		n, err := d.tracker.StopAll()
		if err != nil {
			return d, errorCmd(err)
		}
		return d, statusCmd(fmt.Sprintf("Stopped %d session(s)", n))
	case key.Matches(km, keys.Pomodoro):
		return d.togglePomodoro()
	case key.Matches(km, keys.Cancel):
		if d.tracker.Pomodoro().Phase != tracker.PhaseIdle {
			d.tracker.CancelPomodoro()
			return d, statusCmd("Pomodoro cancelled")
		}
	}
	return d, nil
}

func (d dashboardModel) toggle(a store.Activity) (dashboardModel, tea.Cmd) {
	started, err := d.tracker.Toggle(a.ID)
	if err != nil {
		return d, errorCmd(err)
	}
	if started {
		return d, statusCmd("Started " + a.Name)
	}
	return d, statusCmd("Stopped " + a.Name)
}

func (d dashboardModel) togglePomodoro() (dashboardModel, tea.Cmd) {
	enabled := !d.tracker.Pomodoro().Enabled
	if enabled {
		d.tracker.EnablePomodoro()
	} else {
		d.tracker.DisablePomodoro()
	}
	if err := d.store.SetBool(settingPomodoroEnabled, enabled); err != nil {
		return d, errorCmd(err)
	}
	if enabled {
		return d, statusCmd("Pomodoro enabled")
	}
	return d, statusCmd("Pomodoro disabled")
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	w := d.width - 4
	var panels []string
	if running := d.renderRunningPanel(w); running != "" {
		panels = append(panels, running)
	}
	panels = append(panels, d.renderPomodoroPanel(w), d.renderGrid(w))
	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}

func (d dashboardModel) renderRunningPanel(w int) string {
	open := d.tracker.OpenLogs()
	if len(open) == 0 {
		return ""
	}
	now := d.tracker.Now()

	rows := []string{highlightStyle.Render("RUNNING SESSIONS")}
	for _, l := range open {
		name := l.ActivityID
		icon := "•"
		if a, ok := d.tracker.Activity(l.ActivityID); ok {
			name, icon = a.Name, a.Icon
		}
		rows = append(rows, fmt.Sprintf("  %s %-22s %s  %s",
			icon,
			name,
			timerStyle.Render(formatClock(tracker.Elapsed(l, now))),
			mutedStyle.Render("started "+humanize.RelTime(l.StartTime, now, "ago", "from now")),
		))
	}
	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderPomodoroPanel(w int) string {
	p := d.tracker.Pomodoro()
	title := titleStyle.Render("🍅 Pomodoro")

	if !p.Enabled {
		hint := mutedStyle.Render("p: enable (starting an activity begins a 25m work block)")
		return panelStyle.Width(w).Render(lipgloss.JoinHorizontal(lipgloss.Center, title, "   ", hint))
	}

	var phase string
	switch p.Phase {
	case tracker.PhaseWork:
		phase = accentStyle.Bold(true).Render("WORK")
	case tracker.PhaseBreak:
		phase = successStyle.Bold(true).Render("BREAK")
	default:
		phase = mutedStyle.Render("ready")
	}
	clock := timerStyle.Render(p.Clock())
	hint := mutedStyle.Render("p: disable  c: cancel")
	return activePanelStyle.Width(w).Render(
		lipgloss.JoinHorizontal(lipgloss.Center, title, "   ", clock, "  ", phase, "   ", hint),
	)
}

func (d dashboardModel) renderGrid(w int) string {
	grid := d.tracker.EnabledActivities()
	title := titleStyle.Render("Start Tracking")
	if len(grid) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", mutedStyle.Render("All activities are disabled."),
		))
	}

	cols := d.columns()
	var lines []string
	var row []string
	for i, a := range grid {
		style := cellStyle
		if d.tracker.Running(a.ID) {
			style = runningCellStyle
		}
		label := fmt.Sprintf("%s %s", a.Icon, a.Name)
		if i == d.cursor {
			style = style.BorderForeground(lipgloss.Color(a.Color)).Bold(true)
			label = "> " + label
		}
		row = append(row, style.Width(gridCellWidth-2).Render(label))
		if len(row) == cols {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	hint := mutedStyle.Render("  arrows: move  space: start/stop  x: stop all")
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		append(append([]string{title, ""}, lines...), "", hint)...,
	))
}
