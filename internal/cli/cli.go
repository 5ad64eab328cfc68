// Package cli wires the command line: the root command runs the TUI and
// the export subcommand writes a file without opening it.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chronos-tracker/chronos/internal/export"
	"github.com/chronos-tracker/chronos/internal/store"
	"github.com/chronos-tracker/chronos/internal/tracker"
	"github.com/chronos-tracker/chronos/internal/tui"
	"github.com/spf13/cobra"
)

// debugEnv names the variable that turns on the debug log file.
const debugEnv = "CHRONOS_DEBUG"

type options struct {
	dbPath string
	outDir string
}

func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "chronos",
		Short:         "A terminal time tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "database file (default is the user config dir)")

	exportCmd := &cobra.Command{
		Use:       "export [csv|history|json]",
		Short:     "Export tracked time to a file",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"csv", "history", "json"},
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(args[0])
			if err != nil {
				return err
			}
			path, err := runExport(opts, f, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		},
	}
	exportCmd.Flags().StringVar(&opts.outDir, "out", "", "output directory (default is the home dir)")

	rootCmd.AddCommand(exportCmd)
	return rootCmd
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

func openStore(opts *options) (*store.Store, error) {
	dbPath := opts.dbPath
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	s, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return s, nil
}

func runTUI(opts *options) error {
	if os.Getenv(debugEnv) != "" {
		f, err := tea.LogToFile("chronos-debug.log", "chronos")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	s, err := openStore(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	tr := tracker.New(s)
	log.Printf("loaded %d activities, %d logs", len(tr.Activities()), len(tr.Logs()))

	p := tea.NewProgram(tui.NewApp(s, tr), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func runExport(opts *options, f export.Format, now time.Time) (string, error) {
	s, err := openStore(opts)
	if err != nil {
		return "", err
	}
	defer s.Close()

	dir := opts.outDir
	if dir == "" {
		if dir, err = os.UserHomeDir(); err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	logs, activities := tracker.New(s).Snapshot()
	path, err := export.ToDir(f, dir, now, logs, activities)
	if errors.Is(err, export.ErrNoLogs) {
		return "", errors.New("nothing to export yet")
	}
	if err != nil {
		return "", err
	}
	return filepath.Clean(path), nil
}
