package runner

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"MondayRange/internal/analysis"
	"MondayRange/internal/collector"
	"MondayRange/internal/config"
	"MondayRange/internal/recorder"
	"MondayRange/internal/report"
)

// Outputs lists the optional report files of an analysis run. Empty paths
// are skipped.
type Outputs struct {
	XLSXPath        string
	PartialXLSXPath string
	JSONPath        string
	ChartPath       string
}

// OutputsFromConfig returns the report paths configured in cfg.
func OutputsFromConfig(cfg *config.Config) Outputs {
	return Outputs{
		XLSXPath:        cfg.Report.XLSXPath,
		PartialXLSXPath: cfg.Report.PartialXLSXPath,
		JSONPath:        cfg.Report.JSONPath,
		ChartPath:       cfg.Report.ChartPath,
	}
}

// Runner executes the normalize and analyze steps.
type Runner struct {
	Cfg       *config.Config
	Collector *collector.Collector
	Recorder  recorder.Recorder
	Out       io.Writer
	Log       zerolog.Logger
}

// NewRunner creates a Runner that prints console reports to out.
func NewRunner(cfg *config.Config, rec recorder.Recorder, out io.Writer, log zerolog.Logger) *Runner {
	return &Runner{
		Cfg:       cfg,
		Collector: collector.NewCollector(log),
		Recorder:  rec,
		Out:       out,
		Log:       log,
	}
}

// Normalize converts the vendor export at in into the canonical file at out.
func (r *Runner) Normalize(in, out string) (collector.NormalizeStats, error) {
	src := collector.NewVendorSource(in, r.Log)
	src.Delimiter = r.Cfg.DelimiterRune()
	src.Encoding = r.Cfg.Input.Encoding
	return r.Collector.Normalize(src, out)
}

// Analyze runs the Monday-range analysis over the canonical file at in.
// Reports are written only after the analysis has succeeded.
func (r *Runner) Analyze(in string, outputs Outputs) (*analysis.Result, error) {
	src := collector.NewCanonicalSource(in)
	candles, err := r.Collector.Collect(src)
	if err != nil {
		return nil, err
	}

	res, err := analysis.Run(candles, r.Log)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", src.Name(), err)
	}
	res.Source = src.Name()

	if _, err := io.WriteString(r.Out, report.FormatConsole(res)); err != nil {
		return nil, fmt.Errorf("print report: %w", err)
	}
	if err := r.writeReports(res, outputs); err != nil {
		return nil, err
	}

	if err := r.Recorder.RecordRun(recorder.NewRunSnapshot(res.Source, res)); err != nil {
		r.Log.Error().Err(err).Msg("record run")
	}
	return res, nil
}

// RunOnce normalizes the configured vendor export, if any, and analyzes the
// filtered dataset with the configured reports.
func (r *Runner) RunOnce() error {
	if r.Cfg.Input.RawPath != "" {
		if _, err := r.Normalize(r.Cfg.Input.RawPath, r.Cfg.Data.FilteredPath); err != nil {
			return fmt.Errorf("normalize: %w", err)
		}
	}
	if _, err := r.Analyze(r.Cfg.Data.FilteredPath, OutputsFromConfig(r.Cfg)); err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	return nil
}

func (r *Runner) writeReports(res *analysis.Result, o Outputs) error {
	writers := []struct {
		name  string
		path  string
		write func(string, *analysis.Result) error
	}{
		{"summary workbook", o.XLSXPath, report.WriteSummaryWorkbook},
		{"partial breaks workbook", o.PartialXLSXPath, report.WritePartialBreaksWorkbook},
		{"json summary", o.JSONPath, report.SaveJSON},
		{"chart", o.ChartPath, report.SaveChart},
	}
	for _, w := range writers {
		if w.path == "" {
			continue
		}
		if err := w.write(w.path, res); err != nil {
			return fmt.Errorf("write %s: %w", w.name, err)
		}
		r.Log.Info().Str("path", w.path).Msgf("%s saved", w.name)
	}
	return nil
}
