package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chronos-tracker/chronos/internal/store"
)

type snapshot struct {
	Logs       []store.TimeLog  `json:"logs"`
	Activities []store.Activity `json:"activities"`
}

// WriteJSON writes the full {logs, activities} snapshot, pretty-printed.
func WriteJSON(w io.Writer, logs []store.TimeLog, activities []store.Activity) error {
	if logs == nil {
		logs = []store.TimeLog{}
	}
	if activities == nil {
		activities = []store.Activity{}
	}

	data, err := json.MarshalIndent(snapshot{Logs: logs, Activities: activities}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func ToJSON(logs []store.TimeLog, activities []store.Activity, path string) error {
	return toFile(path, func(w io.Writer) error { return WriteJSON(w, logs, activities) })
}
