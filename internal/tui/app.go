package tui

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chronos-tracker/chronos/internal/export"
	"github.com/chronos-tracker/chronos/internal/store"
	"github.com/chronos-tracker/chronos/internal/tracker"
)

const settingPomodoroEnabled = "pomodoro_enabled"

// App is the root Bubble Tea model. It owns the tracker state container
// and hands it to every view.
type App struct {
	store   *store.Store
	tracker *tracker.Tracker
	width   int
	height  int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	// The refresh tick runs only while the tracker needs it. Bumping
	// tickGen invalidates a tick that is already in flight.
	ticking bool
	tickGen int

	dashboard  dashboardModel
	history    historyModel
	goals      goalsModel
	insights   insightsModel
	activities activitiesModel

	help   help.Model
	status string
}

func NewApp(s *store.Store, tr *tracker.Tracker) App {
	h := help.New()
	h.ShowAll = false

	if s.GetBool(settingPomodoroEnabled, false) {
		tr.EnablePomodoro()
	}

	a := App{
		store:      s,
		tracker:    tr,
		activeView: viewTracker,
		dashboard:  newDashboardModel(s, tr),
		history:    newHistoryModel(s, tr),
		goals:      newGoalsModel(tr),
		insights:   newInsightsModel(tr),
		activities: newActivitiesModel(tr),
		help:       h,
	}
	if tr.NeedsTick() {
		a.ticking = true
		a.tickGen = 1
	}
	return a
}

func (a App) Init() tea.Cmd {
	if a.ticking {
		return tickCmd(a.tickGen)
	}
	return nil
}

func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

// scheduleTick starts the tick chain when the tracker needs one and
// cancels it when it no longer does.
func (a *App) scheduleTick() tea.Cmd {
	need := a.tracker.NeedsTick()
	switch {
	case need && !a.ticking:
		a.ticking = true
		a.tickGen++
		return tickCmd(a.tickGen)
	case !need && a.ticking:
		a.ticking = false
		a.tickGen++
	}
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.history.setSize(a.width, contentHeight)
		a.goals.setSize(a.width, contentHeight)
		a.insights.setSize(a.width, contentHeight)
		a.activities.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// A child view capturing input (huh form) gets every key.
		if a.isFormActive() {
			return a.routeToView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewTracker
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewHistory
			a.history.refresh()
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewGoals
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewInsights
			return a, nil
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewActivities
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			if a.activeView == viewHistory {
				a.history.refresh()
			}
			return a, nil
		}

	case tickMsg:
		return a.handleTick(msg)

	case statusMsg:
		a.status = msg.text
		if msg.isError {
			log.Printf("status error: %s", msg.text)
		}
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.routeToView(msg)
}

// routeToView delivers msg to the active view and then re-evaluates the
// tick, since any view may have started or stopped a session.
func (a App) routeToView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTracker:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewHistory:
		a.history, cmd = a.history.update(msg)
	case viewGoals:
		a.goals, cmd = a.goals.update(msg)
	case viewInsights:
		a.insights, cmd = a.insights.update(msg)
	case viewActivities:
		a.activities, cmd = a.activities.update(msg)
	}
	return a, tea.Batch(cmd, a.scheduleTick())
}

func (a App) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if !a.ticking || msg.gen != a.tickGen {
		return a, nil
	}
	a.ticking = false

	ev, err := a.tracker.Tick()
	switch ev {
	case tracker.EventWorkDone:
		a.status = "Pomodoro work session over! Take a 5m break. \a"
	case tracker.EventBreakDone:
		a.status = "Break is over! Ready to focus again? \a"
	}
	if err != nil {
		a.status = fmt.Sprintf("Error: %v", err)
		log.Printf("tick: %v", err)
	}
	if ev == tracker.EventWorkDone {
		a.history.refresh()
	}
	return a, a.scheduleTick()
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewHistory:
		return a.history.formActive
	case viewGoals:
		return a.goals.formActive
	case viewActivities:
		return a.activities.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTracker:
		content = a.dashboard.view()
	case viewHistory:
		content = a.history.view()
	case viewGoals:
		content = a.goals.view()
	case viewInsights:
		content = a.insights.view()
	case viewActivities:
		content = a.activities.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("CHRONOS")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Running sessions and the pomodoro clock show on every view.
	timerInfo := ""
	if open := a.tracker.OpenLogs(); len(open) > 0 {
		timerInfo = successStyle.Render(fmt.Sprintf(" ● %d running", len(open)))
	}
	if p := a.tracker.Pomodoro(); p.Phase != tracker.PhaseIdle {
		timerInfo += warningStyle.Render(fmt.Sprintf(" 🍅 %s %s", p.Phase, p.Clock()))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range export.Formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f.String()))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(export.Formats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(export.Formats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(f export.Format) tea.Cmd {
	logs, activities := a.tracker.Snapshot()
	now := a.tracker.Now()
	return func() tea.Msg {
		home, err := os.UserHomeDir()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		path, err := export.ToDir(f, home, now, logs, activities)
		if errors.Is(err, export.ErrNoLogs) {
			return statusMsg{text: "Nothing to export yet"}
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("%s error: %v", f, err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
