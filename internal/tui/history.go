package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/chronos-tracker/chronos/internal/store"
	"github.com/chronos-tracker/chronos/internal/tracker"
)

const (
	settingHistoryExpanded = "history_expanded"
	collapsedLogRows       = 5
)

type historyModel struct {
	store   *store.Store
	tracker *tracker.Tracker
	width   int
	height  int

	day      time.Time
	logs     []store.TimeLog
	cursor   int
	expanded bool
	chart    barchart.Model
	slices   []tracker.Slice

	formActive  bool
	form        *huh.Form
	formMinutes *string
	editingID   string
}

func newHistoryModel(s *store.Store, tr *tracker.Tracker) historyModel {
	h := historyModel{
		store:    s,
		tracker:  tr,
		day:      dayStart(tr.Now()),
		expanded: s.GetBool(settingHistoryExpanded, false),
		chart:    barchart.New(60, 10),
	}
	h.refresh()
	return h
}

func (h *historyModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
	h.buildChart()
}

func (h historyModel) dayKey() string {
	return h.day.Format(store.DateLayout)
}

// refresh reloads the selected day's logs and rebuilds the chart.
func (h *historyModel) refresh() {
	h.logs = h.tracker.ClosedLogsOn(h.dayKey())
	h.slices = h.tracker.DailyBreakdown(h.dayKey())
	if h.cursor >= len(h.visibleLogs()) {
		h.cursor = max(0, len(h.visibleLogs())-1)
	}
	h.buildChart()
}

func (h historyModel) visibleLogs() []store.TimeLog {
	if h.expanded || len(h.logs) <= collapsedLogRows {
		return h.logs
	}
	return h.logs[:collapsedLogRows]
}

func (h *historyModel) buildChart() {
	chartWidth := max(20, h.width-8)
	chartHeight := 10
	if h.height > 30 {
		chartHeight = 14
	}
	h.chart = barchart.New(chartWidth, chartHeight)

	bars := make([]barchart.BarData, 0, len(h.slices))
	for _, s := range h.slices {
		bars = append(bars, barchart.BarData{
			Label: truncate(s.Name, 10),
			Values: []barchart.BarValue{{
				Name:  s.Name,
				Value: float64(s.Minutes),
				Style: lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)),
			}},
		})
	}
	if len(bars) == 0 {
		return
	}
	h.chart.PushAll(bars)
	h.chart.Draw()
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	if h.formActive && h.form != nil {
		return h.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	switch {
	case key.Matches(km, keys.Left):
		h.day = h.day.AddDate(0, 0, -1)
		h.cursor = 0
		h.refresh()
	case key.Matches(km, keys.Right):
		if next := h.day.AddDate(0, 0, 1); !next.After(h.tracker.Now()) {
			h.day = next
			h.cursor = 0
			h.refresh()
		}
	case key.Matches(km, keys.Up):
		if h.cursor > 0 {
			h.cursor--
		}
	case key.Matches(km, keys.Down):
		if h.cursor < len(h.visibleLogs())-1 {
			h.cursor++
		}
	case key.Matches(km, keys.Expand):
		h.expanded = !h.expanded
		h.refresh()
		if err := h.store.SetBool(settingHistoryExpanded, h.expanded); err != nil {
			return h, errorCmd(err)
		}
	case key.Matches(km, keys.Edit):
		if l, ok := h.selected(); ok {
			return h.openEditForm(l)
		}
	case key.Matches(km, keys.Delete):
		if l, ok := h.selected(); ok {
			if err := h.tracker.DeleteLog(l.ID); err != nil {
				return h, errorCmd(err)
			}
			h.refresh()
			return h, statusCmd("Log deleted")
		}
	}
	return h, nil
}

func (h historyModel) selected() (store.TimeLog, bool) {
	vis := h.visibleLogs()
	if h.cursor < 0 || h.cursor >= len(vis) {
		return store.TimeLog{}, false
	}
	return vis[h.cursor], true
}

func (h historyModel) openEditForm(l store.TimeLog) (historyModel, tea.Cmd) {
	minutes := fmt.Sprintf("%d", l.Duration/60)
	h.formMinutes = &minutes
	h.editingID = l.ID
	h.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Duration (min) for " + h.tracker.ActivityName(l.ActivityID)).
				Value(h.formMinutes),
		),
	).WithShowHelp(true).WithShowErrors(true)
	h.formActive = true
	return h, h.form.Init()
}

func (h historyModel) updateForm(msg tea.Msg) (historyModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			h.formActive = false
			h.form = nil
			return h, nil
		}
	}

	form, cmd := h.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		h.form = f
	}

	if h.form.State == huh.StateCompleted {
		h.formActive = false
		h.form = nil
		return h.applyEdit(*h.formMinutes)
	}
	return h, cmd
}

// applyEdit overwrites the edited log's duration. Non-numeric input
// counts as zero minutes.
func (h historyModel) applyEdit(value string) (historyModel, tea.Cmd) {
	id := h.editingID
	h.editingID = ""
	if err := h.tracker.EditDuration(id, tracker.ParseMinutes(value)); err != nil {
		return h, errorCmd(err)
	}
	h.refresh()
	return h, statusCmd("Duration updated")
}

func (h historyModel) view() string {
	w := h.width - 4

	if h.formActive && h.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Edit Duration"), "", h.form.View())
		return activePanelStyle.Width(w).Render(content)
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("History"), "  ",
		accentStyle.Render(h.day.Format("Mon, Jan 02 2006")), "  ",
		h.renderDayStrip(),
	)

	var chart string
	if len(h.slices) == 0 {
		chart = mutedStyle.Render("No completed sessions on this day.")
	} else {
		chart = h.chart.View()
	}

	hint := mutedStyle.Render("←/→: day  e: edit  d: delete  a: show all")
	return lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, header, "", chart)),
		panelStyle.Width(w).Render(h.renderLogList()),
		hint,
	)
}

// renderDayStrip shows the week ending on the selected day, marking days
// that have recorded logs.
func (h historyModel) renderDayStrip() string {
	recorded := h.tracker.RecordedDates()
	var days []string
	for i := 6; i >= 0; i-- {
		d := h.day.AddDate(0, 0, -i)
		label := d.Format("02")
		if recorded[d.Format(store.DateLayout)] {
			label += "•"
		} else {
			label += " "
		}
		if i == 0 {
			days = append(days, highlightStyle.Render(label))
		} else {
			days = append(days, mutedStyle.Render(label))
		}
	}
	return strings.Join(days, " ")
}

func (h historyModel) renderLogList() string {
	title := titleStyle.Render(fmt.Sprintf("Sessions (%d)", len(h.logs)))
	if len(h.logs) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, "", mutedStyle.Render("Nothing recorded."))
	}

	rows := []string{title, ""}
	for i, l := range h.visibleLogs() {
		icon := "•"
		color := fallbackDotColor
		if a, ok := h.tracker.Activity(l.ActivityID); ok {
			icon, color = a.Icon, a.Color
		}
		line := fmt.Sprintf("%s %s %-24s %10s  %s",
			colorDot(color),
			icon,
			truncate(h.tracker.ActivityName(l.ActivityID), 24),
			formatDuration(l.Duration),
			mutedStyle.Render(l.StartTime.Local().Format("15:04")),
		)
		if i == h.cursor {
			rows = append(rows, selectedItemStyle.Render("> "+line))
		} else {
			rows = append(rows, normalItemStyle.Render("  "+line))
		}
	}
	if hidden := len(h.logs) - len(h.visibleLogs()); hidden > 0 {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  … %d more (a)", hidden)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
