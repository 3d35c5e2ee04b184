package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"MondayRange/internal/analysis"
	"MondayRange/internal/model"
)

// WeekRow is one analyzed week as it appears in the reports.
type WeekRow struct {
	Date         string  `json:"date"`
	Week         int     `json:"week"`
	Year         int     `json:"year"`
	MondayHigh   float64 `json:"monday_high"`
	MondayLow    float64 `json:"monday_low"`
	HighBreakDay string  `json:"high_break_day"`
	LowBreakDay  string  `json:"low_break_day"`
	Category     string  `json:"category"`
}

// NewWeekRow flattens an outcome for the report writers.
func NewWeekRow(o model.WeekOutcome) WeekRow {
	return WeekRow{
		Date:         o.MondayDate.Format(model.DateLayout),
		Week:         o.Key.Week,
		Year:         o.Key.Year,
		MondayHigh:   o.MondayHigh,
		MondayLow:    o.MondayLow,
		HighBreakDay: o.FirstHighBreakDay.Name(),
		LowBreakDay:  o.FirstLowBreakDay.Name(),
		Category:     o.Category().String(),
	}
}

// Summary is the machine-readable form of an analysis result.
type Summary struct {
	Source       string    `json:"source"`
	GeneratedAt  time.Time `json:"generated_at"`
	CandleCount  int       `json:"candle_count"`
	TotalMondays int       `json:"total_mondays"`

	HighBrokenCount    int `json:"high_broken_count"`
	LowBrokenCount     int `json:"low_broken_count"`
	BothBrokenCount    int `json:"both_broken_count"`
	NeitherBrokenCount int `json:"neither_broken_count"`

	HighBreakProbability   float64            `json:"high_break_probability"`
	LowBreakProbability    float64            `json:"low_break_probability"`
	EitherBreakProbability float64            `json:"either_break_probability"`
	HighBreakByDay         map[string]float64 `json:"high_break_by_day"`
	LowBreakByDay          map[string]float64 `json:"low_break_by_day"`
	AvgHighBreakDay        float64            `json:"avg_high_break_day"`
	AvgLowBreakDay         float64            `json:"avg_low_break_day"`

	SkippedWeeks         []string  `json:"skipped_weeks"`
	DuplicateMondayWeeks []string  `json:"duplicate_monday_weeks"`
	Weeks                []WeekRow `json:"weeks"`
}

// NewSummary builds the JSON summary of res.
func NewSummary(res *analysis.Result) Summary {
	agg := res.Aggregate
	p := res.Probabilities
	s := Summary{
		Source:                 res.Source,
		GeneratedAt:            res.GeneratedAt,
		CandleCount:            res.CandleCount,
		TotalMondays:           agg.TotalMondays,
		HighBrokenCount:        agg.HighBrokenCount,
		LowBrokenCount:         agg.LowBrokenCount,
		BothBrokenCount:        agg.BothBrokenCount,
		NeitherBrokenCount:     agg.NeitherBrokenCount,
		HighBreakProbability:   p.HighBreak,
		LowBreakProbability:    p.LowBreak,
		EitherBreakProbability: p.EitherBreak,
		HighBreakByDay:         dayNames(p.DayHigh),
		LowBreakByDay:          dayNames(p.DayLow),
		AvgHighBreakDay:        p.AvgHighBreakDay,
		AvgLowBreakDay:         p.AvgLowBreakDay,
		SkippedWeeks:           weekKeys(res.SkippedWeeks),
		DuplicateMondayWeeks:   weekKeys(res.DuplicateMondayWeeks),
		Weeks:                  make([]WeekRow, 0, len(res.Outcomes)),
	}
	for _, o := range res.Outcomes {
		s.Weeks = append(s.Weeks, NewWeekRow(o))
	}
	return s
}

// SaveJSON writes the summary of res to path.
func SaveJSON(path string, res *analysis.Result) error {
	data, err := json.MarshalIndent(NewSummary(res), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}

func dayNames(shares map[model.Weekday]float64) map[string]float64 {
	out := make(map[string]float64, len(shares))
	for d, s := range shares {
		out[d.Name()] = s
	}
	return out
}

func weekKeys(keys []model.WeekKey) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k.String())
	}
	return out
}
