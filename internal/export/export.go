// Package export writes one-way snapshots of the tracking data. Nothing
// written here is read back by chronos.
package export

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/chronos-tracker/chronos/internal/store"
)

type Format int

const (
	FormatCSV Format = iota
	FormatHistoryCSV
	FormatJSON
)

// Formats lists every format in picker order.
var Formats = []Format{FormatCSV, FormatHistoryCSV, FormatJSON}

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "CSV"
	case FormatHistoryCSV:
		return "History CSV"
	case FormatJSON:
		return "JSON"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat accepts the command-line names csv, history and json.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "csv":
		return FormatCSV, nil
	case "history":
		return FormatHistoryCSV, nil
	case "json":
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("unknown export format %q (want csv, history or json)", s)
}

// FileName is the default file name for an export taken on day.
func FileName(f Format, day time.Time) string {
	date := day.Format(store.DateLayout)
	switch f {
	case FormatHistoryCSV:
		return fmt.Sprintf("chronos_logs_%s.csv", date)
	case FormatJSON:
		return fmt.Sprintf("chronos_data_%s.json", date)
	default:
		return fmt.Sprintf("chronos_export_%s.csv", date)
	}
}

// ToDir writes an export in format f into dir and returns the file path.
func ToDir(f Format, dir string, day time.Time, logs []store.TimeLog, activities []store.Activity) (string, error) {
	path := filepath.Join(dir, FileName(f, day))
	var err error
	switch f {
	case FormatCSV:
		err = ToCSV(logs, activities, path)
	case FormatHistoryCSV:
		err = ToHistoryCSV(logs, activities, path)
	case FormatJSON:
		err = ToJSON(logs, activities, path)
	default:
		err = fmt.Errorf("unknown export format %d", int(f))
	}
	if err != nil {
		return "", err
	}
	return path, nil
}
