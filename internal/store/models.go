package store

import "time"

// Activity is a trackable category shown in the tracking grid.
type Activity struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Icon    string `json:"emoji"`
	Color   string `json:"color"`
	Enabled bool   `json:"enabled"`
}

// TimeLog is one tracked interval. A nil EndTime means the session is
// still running. Duration is in seconds and is authoritative once EndTime
// is set; manual edits may overwrite it.
type TimeLog struct {
	ID         string     `json:"id"`
	ActivityID string     `json:"activityId"`
	StartTime  time.Time  `json:"startTime"`
	EndTime    *time.Time `json:"endTime,omitempty"`
	Duration   int64      `json:"duration"`
	Date       string     `json:"date"` // YYYY-MM-DD
}

func (l TimeLog) Open() bool {
	return l.EndTime == nil
}

// Goals maps an activity id to a daily target in minutes.
type Goals map[string]int

type Setting struct {
	Key   string
	Value string
}

// DateLayout is the calendar-day format used by TimeLog.Date.
const DateLayout = "2006-01-02"

// PresetActivities returns the registry seeded on first run.
func PresetActivities() []Activity {
	return []Activity{
		{ID: "sleep", Name: "Sleeping", Icon: "🛌", Color: "#818cf8", Enabled: true},
		{ID: "eat", Name: "Eating", Icon: "🍴", Color: "#fbbf24", Enabled: true},
		{ID: "work_other", Name: "Working (other)", Icon: "💻", Color: "#60a5fa", Enabled: true},
		{ID: "rest", Name: "Breaks / Rest", Icon: "☕", Color: "#34d399", Enabled: true},
		{ID: "deep_work", Name: "Deep Work / Coding", Icon: "🚀", Color: "#00e5ff", Enabled: true},
		{ID: "meetings", Name: "Meetings & Syncs", Icon: "🤝", Color: "#a78bfa", Enabled: true},
		{ID: "learning", Name: "Learning / Research", Icon: "📚", Color: "#f472b6", Enabled: true},
		{ID: "exercise", Name: "Exercise & Health", Icon: "🏃", Color: "#fb7185", Enabled: true},
		{ID: "admin", Name: "Admin / Email", Icon: "📧", Color: "#94a3b8", Enabled: true},
	}
}
