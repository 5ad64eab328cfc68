package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTracker viewState = iota
	viewHistory
	viewGoals
	viewInsights
	viewActivities
)

var viewNames = []string{"Tracker", "History", "Goals", "Insights", "Activities"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

// tickMsg carries the generation of the tick chain that produced it, so a
// cancelled chain can be recognised and dropped.
type tickMsg struct {
	gen int
	at  time.Time
}

type exportDoneMsg struct {
	path string
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
	}
}

// --- Helpers ---

// formatClock renders a running timer as HH:MM:SS.
func formatClock(secs int64) string {
	if secs < 0 {
		secs = 0
	}
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// formatDuration renders a duration the short way: "1h 5m 3s", "5m 3s".
func formatDuration(secs int64) string {
	sign := ""
	if secs < 0 {
		sign = "-"
		secs = -secs
	}
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	if h > 0 {
		return fmt.Sprintf("%s%dh %dm %ds", sign, h, m, s)
	}
	return fmt.Sprintf("%s%dm %ds", sign, m, s)
}

func formatHours(secs int64) string {
	h := float64(secs) / 3600
	return fmt.Sprintf("%.1fh", h)
}

// fallbackDotColor is used for logs whose activity no longer exists.
const fallbackDotColor = "#8884d8"

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// dayStart truncates t to local midnight.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
