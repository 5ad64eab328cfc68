// Package tracker owns the in-memory tracking state and every operation
// that mutates it. Each mutation writes the affected slice back through the
// Repository before returning.
package tracker

import (
	"errors"
	"time"

	"github.com/chronos-tracker/chronos/internal/store"
	"github.com/google/uuid"
)

var (
	ErrActivityRunning  = errors.New("activity is being tracked")
	ErrActivityNotFound = errors.New("activity not found")
	ErrLogNotFound      = errors.New("log not found")
	ErrEmptyName        = errors.New("activity name is empty")
)

// Repository loads and saves the three independent state slices.
// *store.Store satisfies it.
type Repository interface {
	LoadActivities() []store.Activity
	LoadLogs() []store.TimeLog
	LoadGoals() store.Goals
	SaveActivities([]store.Activity) error
	SaveLogs([]store.TimeLog) error
	SaveGoals(store.Goals) error
}

type Tracker struct {
	repo Repository
	now  func() time.Time
	id   func() string

	activities []store.Activity
	logs       []store.TimeLog
	goals      store.Goals
	pomodoro   Pomodoro
}

type Option func(*Tracker)

// WithClock replaces time.Now, mainly so tests can simulate elapsed time.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithIDs replaces the UUID generator used for new logs and activities.
func WithIDs(next func() string) Option {
	return func(t *Tracker) { t.id = next }
}

// New loads the current state from repo.
func New(repo Repository, opts ...Option) *Tracker {
	t := &Tracker{
		repo:     repo,
		now:      time.Now,
		id:       uuid.NewString,
		pomodoro: NewPomodoro(),
	}
	for _, o := range opts {
		o(t)
	}
	t.activities = repo.LoadActivities()
	t.logs = repo.LoadLogs()
	t.goals = repo.LoadGoals()
	if t.goals == nil {
		t.goals = store.Goals{}
	}
	return t
}

func (t *Tracker) Now() time.Time { return t.now() }

// Today is the calendar date of Now in the clock's location.
func (t *Tracker) Today() string { return t.now().Format(store.DateLayout) }

// NeedsTick reports whether the one-second refresh should be running.
func (t *Tracker) NeedsTick() bool {
	return t.pomodoro.Phase != PhaseIdle || len(t.OpenLogs()) > 0
}

// Snapshot returns copies of the logs and activities for export.
func (t *Tracker) Snapshot() ([]store.TimeLog, []store.Activity) {
	return t.Logs(), t.Activities()
}
