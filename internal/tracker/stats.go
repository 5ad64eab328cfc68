package tracker

import (
	"math"
	"sort"
	"time"

	"github.com/chronos-tracker/chronos/internal/store"
)

// HeatmapDays is the length of the weekly heatmap.
const HeatmapDays = 7

// heatmapCeiling is the daily total rendered at full intensity.
const heatmapCeiling = 8 * time.Hour

const fallbackColor = "#8884d8"

// Slice is one activity's share of a day.
type Slice struct {
	ActivityID string
	Name       string
	Color      string
	Minutes    int
}

// DailyBreakdown groups the finished sessions of day by activity. Groups
// that round to zero minutes are dropped.
func (t *Tracker) DailyBreakdown(day string) []Slice {
	totals := make(map[string]int64)
	var order []string
	for _, l := range t.logs {
		if l.Date != day || l.Open() {
			continue
		}
		if _, ok := totals[l.ActivityID]; !ok {
			order = append(order, l.ActivityID)
		}
		totals[l.ActivityID] += l.Duration
	}

	var out []Slice
	for _, id := range order {
		mins := roundMinutes(totals[id])
		if mins <= 0 {
			continue
		}
		s := Slice{ActivityID: id, Name: id, Color: fallbackColor, Minutes: mins}
		if a, ok := t.Activity(id); ok {
			s.Name = a.Name
			s.Color = a.Color
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Minutes != out[j].Minutes {
			return out[i].Minutes > out[j].Minutes
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// HeatCell is one day of the weekly heatmap.
type HeatCell struct {
	Date      string
	Seconds   int64
	Intensity float64 // 0..1
}

// WeeklyHeatmap covers the seven days ending on today, oldest first. Only
// stored durations count, so running sessions add nothing.
func (t *Tracker) WeeklyHeatmap(today time.Time) [HeatmapDays]HeatCell {
	var cells [HeatmapDays]HeatCell
	for i := range cells {
		day := today.AddDate(0, 0, i-(HeatmapDays-1)).Format(store.DateLayout)
		cells[i].Date = day
		for _, l := range t.logs {
			if l.Date == day {
				cells[i].Seconds += l.Duration
			}
		}
		cells[i].Intensity = math.Max(0, math.Min(float64(cells[i].Seconds)/heatmapCeiling.Seconds(), 1))
	}
	return cells
}

// Efficiency compares today's tracked seconds for activityID with its
// historical average per active day, as a percentage delta. With no
// history the delta is 0.
func (t *Tracker) Efficiency(activityID, today string) float64 {
	var todaySec, total int64
	days := make(map[string]bool)
	for _, l := range t.logs {
		if l.ActivityID != activityID {
			continue
		}
		if l.Date == today {
			todaySec += l.Duration
		}
		if !l.Open() {
			total += l.Duration
			days[l.Date] = true
		}
	}
	if len(days) == 0 {
		return 0
	}
	avg := float64(total) / float64(len(days))
	if avg <= 0 {
		return 0
	}
	return (float64(todaySec) - avg) / avg * 100
}

func roundMinutes(secs int64) int {
	return int(math.Floor(float64(secs)/60 + 0.5))
}
