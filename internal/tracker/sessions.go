package tracker

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/chronos-tracker/chronos/internal/store"
)

// Start opens a session for activityID. It is a no-op, returning false,
// when the activity already has an open session.
func (t *Tracker) Start(activityID string) (bool, error) {
	if t.Running(activityID) {
		return false, nil
	}
	now := t.now()
	t.logs = append(t.logs, store.TimeLog{
		ID:         t.id(),
		ActivityID: activityID,
		StartTime:  now,
		Date:       now.Format(store.DateLayout),
	})
	return true, t.saveLogs()
}

// Stop closes the open session for activityID, if any.
func (t *Tracker) Stop(activityID string) error {
	if t.closeOpen(func(l store.TimeLog) bool { return l.ActivityID == activityID }) == 0 {
		return nil
	}
	return t.saveLogs()
}

// StopAll closes every open session and reports how many were closed.
func (t *Tracker) StopAll() (int, error) {
	n := t.closeOpen(func(store.TimeLog) bool { return true })
	if n == 0 {
		return 0, nil
	}
	return n, t.saveLogs()
}

// Toggle stops activityID if it is running and starts it otherwise. A
// start while Pomodoro is enabled and idle also begins a work phase.
func (t *Tracker) Toggle(activityID string) (started bool, err error) {
	if t.Running(activityID) {
		return false, t.Stop(activityID)
	}
	if t.pomodoro.Enabled && t.pomodoro.Phase == PhaseIdle {
		t.pomodoro.Start()
	}
	return t.Start(activityID)
}

func (t *Tracker) closeOpen(match func(store.TimeLog) bool) int {
	now := t.now()
	n := 0
	for i := range t.logs {
		l := &t.logs[i]
		if !l.Open() || !match(*l) {
			continue
		}
		end := now
		l.EndTime = &end
		l.Duration = int64(end.Sub(l.StartTime) / time.Second)
		n++
	}
	return n
}

// EditDuration overwrites the stored duration of logID with minutes*60.
// The value is not validated and EndTime is left as is.
func (t *Tracker) EditDuration(logID string, minutes int) error {
	for i := range t.logs {
		if t.logs[i].ID == logID {
			t.logs[i].Duration = int64(minutes) * 60
			return t.saveLogs()
		}
	}
	return ErrLogNotFound
}

// DeleteLog removes logID. Unknown ids are ignored.
func (t *Tracker) DeleteLog(logID string) error {
	for i := range t.logs {
		if t.logs[i].ID == logID {
			t.logs = append(t.logs[:i], t.logs[i+1:]...)
			return t.saveLogs()
		}
	}
	return nil
}

// Running reports whether activityID has an open session.
func (t *Tracker) Running(activityID string) bool {
	for _, l := range t.logs {
		if l.Open() && l.ActivityID == activityID {
			return true
		}
	}
	return false
}

func (t *Tracker) Logs() []store.TimeLog {
	out := make([]store.TimeLog, len(t.logs))
	copy(out, t.logs)
	return out
}

func (t *Tracker) OpenLogs() []store.TimeLog {
	var out []store.TimeLog
	for _, l := range t.logs {
		if l.Open() {
			out = append(out, l)
		}
	}
	return out
}

// ClosedLogsOn returns the finished sessions dated day, newest first.
func (t *Tracker) ClosedLogsOn(day string) []store.TimeLog {
	var out []store.TimeLog
	for _, l := range t.logs {
		if l.Date == day && !l.Open() {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime)
	})
	return out
}

// RecordedDates is the set of days that have at least one log.
func (t *Tracker) RecordedDates() map[string]bool {
	dates := make(map[string]bool)
	for _, l := range t.logs {
		dates[l.Date] = true
	}
	return dates
}

// Elapsed is the live length of a session in whole seconds: time since
// start for an open session, the stored duration otherwise.
func Elapsed(l store.TimeLog, now time.Time) int64 {
	if l.Open() {
		return int64(now.Sub(l.StartTime) / time.Second)
	}
	return l.Duration
}

// ParseMinutes reads a manually typed duration. Anything that is not an
// integer counts as zero.
func ParseMinutes(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func (t *Tracker) saveLogs() error {
	if err := t.repo.SaveLogs(t.logs); err != nil {
		return fmt.Errorf("save logs: %w", err)
	}
	return nil
}
