package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/chronos-tracker/chronos/internal/store"
)

// ErrNoLogs is returned by the analyst CSV export when there is nothing to
// write.
var ErrNoLogs = errors.New("no logs to export")

// WriteCSV writes one row per log with ISO timestamps, suitable for
// spreadsheets and scripts.
func WriteCSV(w io.Writer, logs []store.TimeLog, activities []store.Activity) error {
	if len(logs) == 0 {
		return ErrNoLogs
	}
	names := nameLookup(activities)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ActivityName", "StartTime", "EndTime", "DurationSeconds", "Date"}); err != nil {
		return err
	}
	for _, l := range logs {
		endStr := ""
		if l.EndTime != nil {
			endStr = isoTime(*l.EndTime)
		}
		row := []string{
			names.resolve(l.ActivityID),
			isoTime(l.StartTime),
			endStr,
			strconv.FormatInt(l.Duration, 10),
			l.Date,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteHistoryCSV writes the compact history sheet: minutes rounded and the
// start shown as a local wall-clock time.
func WriteHistoryCSV(w io.Writer, logs []store.TimeLog, activities []store.Activity) error {
	names := nameLookup(activities)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Activity", "Duration (min)", "Start Time"}); err != nil {
		return err
	}
	for _, l := range logs {
		row := []string{
			l.Date,
			names.resolve(l.ActivityID),
			strconv.Itoa(int(math.Floor(float64(l.Duration)/60 + 0.5))),
			l.StartTime.Local().Format("15:04:05"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ToCSV(logs []store.TimeLog, activities []store.Activity, path string) error {
	return toFile(path, func(w io.Writer) error { return WriteCSV(w, logs, activities) })
}

func ToHistoryCSV(logs []store.TimeLog, activities []store.Activity, path string) error {
	return toFile(path, func(w io.Writer) error { return WriteHistoryCSV(w, logs, activities) })
}

func toFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func isoTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

type nameLookup []store.Activity

func (n nameLookup) resolve(id string) string {
	for _, a := range n {
		if a.ID == id {
			return a.Name
		}
	}
	return id
}
