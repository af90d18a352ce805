// Package main is the entry point for the bikeshare explorer.
// It runs the interactive TUI, or prints the reports for one query when
// a city is given on the command line.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"github.com/j-veylop/bikeshare-explorer/internal/app"
	"github.com/j-veylop/bikeshare-explorer/internal/config"
	"github.com/j-veylop/bikeshare-explorer/internal/logger"
	"github.com/j-veylop/bikeshare-explorer/internal/models"
	"github.com/j-veylop/bikeshare-explorer/internal/services"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/report"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/screens/info"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/screens/picker"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/screens/rawdata"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/screens/results"
	"github.com/j-veylop/bikeshare-explorer/internal/version"
)

// options holds the parsed command-line flags.
type options struct {
	city    string
	month   string
	day     string
	raw     int
	dataDir string
	noWatch bool
}

func main() {
	var (
		opts        options
		showVersion bool
		showHelp    bool
	)

	fs := flag.NewFlagSet("bikeshare", flag.ContinueOnError)
	fs.StringVarP(&opts.city, "city", "c", "", "city to explore; prints the reports instead of starting the TUI")
	fs.StringVarP(&opts.month, "month", "m", models.All, "month filter (january..december or all)")
	fs.StringVarP(&opts.day, "day", "d", models.All, "day filter (monday..sunday or all)")
	fs.IntVar(&opts.raw, "raw", 0, "number of raw rows to print after the reports")
	fs.StringVar(&opts.dataDir, "data-dir", "", "directory holding the city datasets")
	fs.BoolVar(&opts.noWatch, "no-watch", false, "do not watch the datasets for changes")
	fs.BoolVarP(&showVersion, "version", "v", false, "show version information")
	fs.BoolVarP(&showHelp, "help", "h", false, "show this help message")
	fs.Usage = func() { printUsage(fs) }

	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printUsage(fs)
		os.Exit(2)
	}

	if showVersion {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if showHelp {
		printUsage(fs)
		os.Exit(0)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run(opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.dataDir != "" {
		cfg.SetDataDir(opts.dataDir)
	}
	if opts.noWatch {
		cfg.Watch = false
	}

	if opts.city != "" {
		logger.Setup(os.Stderr, cfg.LogLevel)
		q := models.Query{City: opts.city, Month: opts.month, Day: opts.day}
		return runPlain(os.Stdout, cfg, q, opts.raw)
	}

	return runTUI(cfg)
}

// runPlain prints the reports for q, followed by up to raw rows.
func runPlain(w io.Writer, cfg *config.Config, q models.Query, raw int) error {
	cfg.Watch = false
	svcManager := services.NewManager(cfg)
	defer svcManager.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := svcManager.Run(ctx, q)
	if err != nil {
		return err
	}

	if err := report.WriteText(w, result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if raw > 0 {
		if err := report.WriteRaw(w, result.Table, raw, svcManager.PageSize()); err != nil {
			return fmt.Errorf("failed to write raw data: %w", err)
		}
	}
	return nil
}

func runTUI(cfg *config.Config) error {
	// The terminal belongs to the TUI, so logs go to a file or nowhere
	closeLog, err := logger.SetupFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	svcManager := services.NewManager(cfg)
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(svcManager)

	state := model.GetState()
	model.SetScreen(app.ScreenCity, picker.NewCity(svcManager.Cities()))
	model.SetScreen(app.ScreenMonth, picker.NewMonth())
	model.SetScreen(app.ScreenDay, picker.NewDay())
	model.SetScreen(app.ScreenResults, results.New(state))
	model.SetScreen(app.ScreenRaw, rawdata.New(state, svcManager.PageSize()))
	model.SetScreen(app.ScreenInfo, info.New(cfg, svcManager.Watching()))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	p := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	logger.Info("starting", "version", version.GetVersion(), "data_dir", cfg.DataDir, "watch", svcManager.Watching())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage(fs *flag.FlagSet) {
	fmt.Printf(`Bikeshare Explorer - descriptive statistics for bikeshare trip data

Usage:
  bikeshare [flags]
  bikeshare --city chicago --month june --day friday [--raw 10]

Flags:
%s
Keyboard Shortcuts:
  j/k, Up/Down    Move through lists
  Enter           Choose
  Esc             Previous step
  r               Raw data, then the next rows
  R               Reload the current query
  n               New query
  i               Configuration and version
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  BIKESHARE_DATA_DIR        Directory holding the datasets (default: .)
  BIKESHARE_CHICAGO_FILE    Chicago dataset file (default: chicago.csv)
  BIKESHARE_NEW_YORK_CITY_FILE
                            New York City dataset file (default: new_york_city.csv)
  BIKESHARE_WASHINGTON_FILE Washington dataset file (default: washington.csv)
  BIKESHARE_PAGE_SIZE       Raw rows per page (default: 5)
  BIKESHARE_WATCH           Watch datasets for changes (default: true)
  BIKESHARE_LOG_LEVEL       debug, info, warn or error (default: info)
  BIKESHARE_LOG_FILE        Log file for the TUI (default: none)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/bikeshare/.env
  - ~/.bikeshare/.env
  - Parent directory
`, fs.FlagUsages())
}
