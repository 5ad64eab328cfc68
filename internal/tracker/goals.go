package tracker

import (
	"fmt"

	"github.com/chronos-tracker/chronos/internal/store"
)

// SetGoal stores a daily target in minutes. Zero or negative targets are
// kept and read back as "no goal".
func (t *Tracker) SetGoal(activityID string, minutes int) error {
	t.goals[activityID] = minutes
	if err := t.repo.SaveGoals(t.goals); err != nil {
		return fmt.Errorf("save goals: %w", err)
	}
	return nil
}

func (t *Tracker) Goal(activityID string) int {
	return t.goals[activityID]
}

func (t *Tracker) Goals() store.Goals {
	out := make(store.Goals, len(t.goals))
	for k, v := range t.goals {
		out[k] = v
	}
	return out
}

// ActualSeconds sums the live length of every session of activityID dated
// day, open sessions included.
func (t *Tracker) ActualSeconds(activityID, day string) int64 {
	now := t.now()
	var total int64
	for _, l := range t.logs {
		if l.ActivityID == activityID && l.Date == day {
			total += Elapsed(l, now)
		}
	}
	return total
}

// Progress is the percentage of the daily goal reached on day, clamped to
// 100. It is 0 when no positive goal is set.
func (t *Tracker) Progress(activityID, day string) float64 {
	target := t.goals[activityID]
	if target <= 0 {
		return 0
	}
	actualMin := floorDiv(t.ActualSeconds(activityID, day), 60)
	pct := float64(actualMin) / float64(target) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
