package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"MondayRange/internal/config"
	"MondayRange/internal/logger"
	"MondayRange/internal/recorder"
	"MondayRange/internal/runner"
	"MondayRange/internal/scheduler"
)

const usage = `usage: mondayrange <command> [flags]

commands:
  normalize   convert a vendor export into the filtered candle file
  analyze     compute Monday range break statistics
  watch       run normalize and analyze on the configured cron schedule

The config file is read from configs/config.yaml or $CONFIG_PATH.
`

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return flag.ErrHelp
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	log := logger.NewWithWriter(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty}, stderr)

	switch args[0] {
	case "normalize":
		return normalize(cfg, args[1:], stdout, stderr, log)
	case "analyze":
		return analyze(cfg, args[1:], stdout, stderr, log)
	case "watch":
		return watch(cfg, stdout, log)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func normalize(cfg *config.Config, args []string, stdout, stderr io.Writer, log zerolog.Logger) error {
	fs := flag.NewFlagSet("normalize", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", cfg.Input.RawPath, "vendor export to read")
	out := fs.String("out", cfg.Data.FilteredPath, "filtered candle file to write")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("normalize: no input file, set -in or input.raw_path")
	}

	r := runner.NewRunner(cfg, recorder.NewNoopRecorder(), stdout, log)
	stats, err := r.Normalize(*in, *out)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Original rows: %d\nFiltered rows (only weeks with Mondays): %d\n", stats.Original, stats.Filtered)
	return nil
}

func analyze(cfg *config.Config, args []string, stdout, stderr io.Writer, log zerolog.Logger) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", cfg.Data.FilteredPath, "filtered candle file to analyze")
	xlsx := fs.String("xlsx", cfg.Report.XLSXPath, "summary workbook path")
	partial := fs.String("partial", cfg.Report.PartialXLSXPath, "partial breaks workbook path")
	jsonPath := fs.String("json", cfg.Report.JSONPath, "JSON summary path")
	chart := fs.String("chart", cfg.Report.ChartPath, "HTML chart path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rec := openRecorder(cfg, log)
	defer rec.Close()

	r := runner.NewRunner(cfg, rec, stdout, log)
	_, err := r.Analyze(*in, runner.Outputs{
		XLSXPath:        *xlsx,
		PartialXLSXPath: *partial,
		JSONPath:        *jsonPath,
		ChartPath:       *chart,
	})
	return err
}

func watch(cfg *config.Config, stdout io.Writer, log zerolog.Logger) error {
	rec := openRecorder(cfg, log)
	defer rec.Close()

	r := runner.NewRunner(cfg, rec, stdout, log)
	sched := scheduler.NewScheduler(r.RunOnce, log)
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, running analysis now")
		go sched.RunNow()
	}

	log.Info().Msg("mondayrange is watching, press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping")
	return nil
}

// openRecorder returns the SQLite recorder when configured and falls back
// to a no-op recorder otherwise.
func openRecorder(cfg *config.Config, log zerolog.Logger) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
	if err != nil {
		log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		return recorder.NewNoopRecorder()
	}
	return sr
}
