package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"MondayRange/internal/analysis"
	"MondayRange/internal/model"
)

// RenderBreakDayChart renders an HTML bar chart of the first break day
// shares, one series for Monday highs and one for Monday lows.
func RenderBreakDayChart(w io.Writer, res *analysis.Result) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Monday Range Breaks",
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "First break day of the Monday range",
			Subtitle: fmt.Sprintf("%d Mondays analyzed", res.Aggregate.TotalMondays),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "% of breaks"}),
	)

	days := make([]string, 0, len(model.BreakDays))
	for _, d := range model.BreakDays {
		days = append(days, d.Name())
	}
	bar.SetXAxis(days).
		AddSeries("High", shareBars(res.Probabilities.DayHigh)).
		AddSeries("Low", shareBars(res.Probabilities.DayLow))

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// SaveChart writes the break day chart to an HTML file at path.
func SaveChart(path string, res *analysis.Result) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()
	return RenderBreakDayChart(f, res)
}

func shareBars(shares map[model.Weekday]float64) []opts.BarData {
	items := make([]opts.BarData, 0, len(model.BreakDays))
	for _, d := range model.BreakDays {
		items = append(items, opts.BarData{Name: d.Name(), Value: shares[d] * 100})
	}
	return items
}
