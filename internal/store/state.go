package store

import (
	"encoding/json"
	"fmt"
)

// The Load* functions never fail on bad data: a missing key, an unreadable
// row or a blob that does not decode all fall back to the default value.
// Records missing their identifiers are dropped.

func (s *Store) LoadActivities() []Activity {
	var acts []Activity
	if !s.decode(KeyActivities, &acts) || acts == nil {
		return PresetActivities()
	}

	seen := make(map[string]bool, len(acts))
	valid := acts[:0]
	for _, a := range acts {
		if a.ID == "" || seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		valid = append(valid, a)
	}
	return valid
}

func (s *Store) LoadLogs() []TimeLog {
	var logs []TimeLog
	if !s.decode(KeyLogs, &logs) {
		return nil
	}

	valid := logs[:0]
	for _, l := range logs {
		if l.ID == "" || l.ActivityID == "" || l.StartTime.IsZero() {
			continue
		}
		if l.Date == "" {
			l.Date = l.StartTime.Local().Format(DateLayout)
		}
		valid = append(valid, l)
	}
	if len(valid) == 0 {
		return nil
	}
	return valid
}

func (s *Store) LoadGoals() Goals {
	var goals Goals
	if !s.decode(KeyGoals, &goals) || goals == nil {
		return Goals{}
	}
	return goals
}

func (s *Store) SaveActivities(acts []Activity) error {
	return s.encode(KeyActivities, acts)
}

func (s *Store) SaveLogs(logs []TimeLog) error {
	if logs == nil {
		logs = []TimeLog{}
	}
	return s.encode(KeyLogs, logs)
}

func (s *Store) SaveGoals(goals Goals) error {
	if goals == nil {
		goals = Goals{}
	}
	return s.encode(KeyGoals, goals)
}

func (s *Store) decode(key string, v any) bool {
	raw, ok, err := s.GetBlob(key)
	if err != nil || !ok {
		return false
	}
	return json.Unmarshal([]byte(raw), v) == nil
}

func (s *Store) encode(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.PutBlob(key, string(data))
}
