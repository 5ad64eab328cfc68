package tracker

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/chronos-tracker/chronos/internal/store"
	"github.com/lucasb-eyer/go-colorful"
)

func (t *Tracker) Activities() []store.Activity {
	out := make([]store.Activity, len(t.activities))
	copy(out, t.activities)
	return out
}

// EnabledActivities is the tracking grid: the registry minus disabled
// entries, in registry order.
func (t *Tracker) EnabledActivities() []store.Activity {
	var out []store.Activity
	for _, a := range t.activities {
		if a.Enabled {
			out = append(out, a)
		}
	}
	return out
}

func (t *Tracker) Activity(id string) (store.Activity, bool) {
	for _, a := range t.activities {
		if a.ID == id {
			return a, true
		}
	}
	return store.Activity{}, false
}

// ActivityName resolves id to a display name, falling back to the raw id
// for orphaned references.
func (t *Tracker) ActivityName(id string) string {
	if a, ok := t.Activity(id); ok {
		return a.Name
	}
	return id
}

// AddActivity appends a custom activity with a random bright colour.
func (t *Tracker) AddActivity(name, icon string) (store.Activity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return store.Activity{}, ErrEmptyName
	}
	if icon == "" {
		icon = "✨"
	}
	a := store.Activity{
		ID:      t.id(),
		Name:    name,
		Icon:    icon,
		Color:   randomColor(),
		Enabled: true,
	}
	t.activities = append(t.activities, a)
	return a, t.saveActivities()
}

// ToggleActivity flips the enabled flag. Logs are untouched.
func (t *Tracker) ToggleActivity(id string) error {
	for i := range t.activities {
		if t.activities[i].ID == id {
			t.activities[i].Enabled = !t.activities[i].Enabled
			return t.saveActivities()
		}
	}
	return ErrActivityNotFound
}

// DeleteActivity removes id from the registry. It is refused while a
// session for the activity is open; existing logs keep their activity id.
func (t *Tracker) DeleteActivity(id string) error {
	if t.Running(id) {
		return ErrActivityRunning
	}
	for i := range t.activities {
		if t.activities[i].ID == id {
			t.activities = append(t.activities[:i], t.activities[i+1:]...)
			return t.saveActivities()
		}
	}
	return ErrActivityNotFound
}

func (t *Tracker) saveActivities() error {
	if err := t.repo.SaveActivities(t.activities); err != nil {
		return fmt.Errorf("save activities: %w", err)
	}
	return nil
}

func randomColor() string {
	return colorful.Hsl(rand.Float64()*360, 0.7, 0.6).Hex()
}
