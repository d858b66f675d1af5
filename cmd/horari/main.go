/*
main.go - Application entry point

PURPOSE:
  Command-line front end for the work-hours ledger. Loads settings, opens
  the SQLite store and either serves the HTTP API or runs a one-shot data
  command against the same store.

COMMANDS:
  serve             Start the HTTP API; merges calendar.holidays_file first
  export [file]     Write the JSON export document (stdout when no file)
  import <file>     Replace all data with a JSON export document
  report <file>     Write the weekly xlsx report
  reset             Erase the config and every day record

CONFIGURATION:
  --config selects a YAML file; otherwise ./horari.yaml or
  ./config/horari.yaml is used when present. Every key can be overridden
  with HORARI_* environment variables (see config/config.go).

EXAMPLES:
  horari serve
  HORARI_DB_PATH=":memory:" horari serve
  horari export backup.json
  horari import backup.json

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Settings
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/warp/work-ledger/config"
	"github.com/warp/work-ledger/exchange"
	"github.com/warp/work-ledger/store/sqlite"
	"github.com/warp/work-ledger/timesheet"
)

// app is what every subcommand runs against.
type app struct {
	cfg     *config.Config
	log     *logrus.Logger
	store   *sqlite.Store
	service *timesheet.Service
}

func main() {
	if err := execute(&app{}, os.Args[1:], os.Stdout); err != nil {
		os.Exit(1)
	}
}

// execute runs one command line and closes the store whatever the outcome;
// cobra skips post-run hooks when a command fails.
func execute(a *app, args []string, out io.Writer) error {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(out)
	err := root.Execute()
	if cerr := a.close(); cerr != nil {
		fmt.Fprintln(os.Stderr, "close database:", cerr)
	}
	return err
}

func newRootCmd(a *app) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "horari",
		Short:         "Work-hours ledger with vacation, personal leave and flex pools",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML settings file")

	root.AddCommand(
		newServeCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newReportCmd(a),
		newResetCmd(a),
	)
	return root
}

func (a *app) open(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = cfg.NewLogger()

	store, err := sqlite.New(cfg.Database.Path, a.log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	a.store = store
	a.service = timesheet.NewService(store, a.log, cfg.Calendar.Year)
	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

// mergeHolidays adds the dates of a YAML holiday calendar to the stored
// config. Dates already present are kept; nothing is removed.
func (a *app) mergeHolidays(ctx context.Context, path string) error {
	hf, err := exchange.LoadHolidayFile(path)
	if err != nil {
		return fmt.Errorf("holidays file %s: %w", path, err)
	}
	current, err := a.service.Config(ctx)
	if err != nil {
		return err
	}
	merged := exchange.MergeHolidays(current, hf)
	if merged.Equal(current) {
		return nil
	}
	if _, err := a.service.UpdateConfig(ctx, merged); err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{
		"file":     path,
		"holidays": len(merged.Holidays),
	}).Info("holiday calendar merged")
	return nil
}
