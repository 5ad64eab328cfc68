package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chronos-tracker/chronos/internal/store"
	"github.com/chronos-tracker/chronos/internal/tracker"
	"github.com/lucasb-eyer/go-colorful"
)

// efficiencyCards is how many enabled activities get an efficiency card.
const efficiencyCards = 4

var (
	heatCold, _ = colorful.Hex(string(colorSubtle))
	heatHot, _  = colorful.Hex(string(colorPrimary))
)

type insightsModel struct {
	tracker *tracker.Tracker
	width   int
	height  int
}

func newInsightsModel(tr *tracker.Tracker) insightsModel {
	return insightsModel{tracker: tr}
}

func (m *insightsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m insightsModel) update(tea.Msg) (insightsModel, tea.Cmd) {
	return m, nil
}

func (m insightsModel) view() string {
	w := m.width - 4
	return lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Width(w).Render(m.renderHeatmap()),
		panelStyle.Width(w).Render(m.renderEfficiency()),
	)
}

func (m insightsModel) renderHeatmap() string {
	cells := m.tracker.WeeklyHeatmap(m.tracker.Now())

	var cols []string
	for _, c := range cells {
		day, _ := time.ParseInLocation(store.DateLayout, c.Date, time.Local)
		block := lipgloss.NewStyle().
			Background(lipgloss.Color(heatColor(c.Intensity))).
			Width(6).
			Height(2).
			Render("")
		cols = append(cols, lipgloss.JoinVertical(lipgloss.Center,
			block,
			mutedStyle.Render(day.Format("Mon")),
			normalItemStyle.Render(formatHours(c.Seconds)),
		), " ")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Weekly Heatmap"),
		mutedStyle.Render("Tracked time per day, full colour at 8h"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, cols...),
	)
}

// heatColor blends from the background to the accent colour.
func heatColor(intensity float64) string {
	return heatCold.BlendLab(heatHot, intensity).Clamped().Hex()
}

func (m insightsModel) renderEfficiency() string {
	acts := m.tracker.EnabledActivities()
	if len(acts) > efficiencyCards {
		acts = acts[:efficiencyCards]
	}
	today := m.tracker.Today()

	rows := []string{titleStyle.Render("Efficiency vs. Average"), ""}
	for _, a := range acts {
		delta := m.tracker.Efficiency(a.ID, today)
		var trend string
		switch {
		case delta > 0:
			trend = successStyle.Render(fmt.Sprintf("▲ %+.0f%%", delta))
		case delta < 0:
			trend = errorStyle.Render(fmt.Sprintf("▼ %+.0f%%", delta))
		default:
			trend = mutedStyle.Render("  0%")
		}
		rows = append(rows, fmt.Sprintf("  %s %s %-24s %s",
			colorDot(a.Color), a.Icon, truncate(a.Name, 24), trend))
	}
	if len(acts) == 0 {
		rows = append(rows, mutedStyle.Render("No enabled activities."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
