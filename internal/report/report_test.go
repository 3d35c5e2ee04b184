package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"MondayRange/internal/analysis"
	"MondayRange/internal/model"
)

func candle(date string, high, low float64) model.Candle {
	t, err := time.Parse(model.DateLayout, date)
	if err != nil {
		panic(err)
	}
	return model.Candle{Date: t, Open: low, High: high, Low: low, Close: high}
}

// result has one both-broken week, one neither week, one week without a
// Monday and one week where only the high is taken on Thursday.
func result(t *testing.T) *analysis.Result {
	t.Helper()
	res, err := analysis.Run([]model.Candle{
		candle("2024-01-01", 10, 5),
		candle("2024-01-02", 12, 6),
		candle("2024-01-03", 9, 3),

		candle("2024-01-08", 10, 5),
		candle("2024-01-09", 10, 5),
		candle("2024-01-12", 9, 6),

		candle("2024-01-17", 11, 4),

		candle("2024-01-22", 10, 5),
		candle("2024-01-23", 10, 6),
		candle("2024-01-25", 11, 6),
	}, zerolog.Nop())
	require.NoError(t, err)
	res.Source = "test"
	return res
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "45.67%", Percent(0.4567))
	assert.Equal(t, "0.00%", Percent(0))
	assert.Equal(t, "100.00%", Percent(1))
}

func TestFormatConsole(t *testing.T) {
	out := FormatConsole(result(t))

	assert.Contains(t, out, "=== Monday Range Analysis ===")
	assert.Contains(t, out, "Total number of Mondays analyzed: 3")
	assert.Contains(t, out, "Number of times Monday's high was broken: 2")
	assert.Contains(t, out, "Probability of Monday's high being broken: 66.67%")
	assert.Contains(t, out, "Probability of Monday's low being broken: 33.33%")
	assert.Contains(t, out, "Tuesday: 50.00%")
	assert.Contains(t, out, "Thursday: 50.00%")
	assert.Contains(t, out, "Wednesday: 100.00%")
	assert.Contains(t, out, "Average days to break Monday's high: 2.00")
	assert.Contains(t, out, "Weeks with neither broken: 1")
	assert.NotContains(t, out, "Warning")

	// Tuesday is listed before Thursday.
	assert.Less(t, strings.Index(out, "Tuesday: 50.00%"), strings.Index(out, "Thursday: 50.00%"))
}

func TestFormatConsole_NoBreaks(t *testing.T) {
	res, err := analysis.Run(nil, zerolog.Nop())
	require.NoError(t, err)

	out := FormatConsole(res)
	assert.Contains(t, out, "Total number of Mondays analyzed: 0")
	assert.Equal(t, 2, strings.Count(out, "No breaks recorded"))
	assert.Contains(t, out, "Probability of either Monday's high or low being broken: 0.00%")
}

func TestFormatConsole_DuplicateMondayWarning(t *testing.T) {
	res := result(t)
	res.DuplicateMondayWeeks = []model.WeekKey{{Year: 2024, Week: 4}}
	assert.Contains(t, FormatConsole(res), "Warning: 1 week(s) had more than one Monday session")
}

func TestWriteSummaryWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "summary.xlsx")
	require.NoError(t, WriteSummaryWorkbook(path, result(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet}, f.GetSheetList())
	cell := func(ref string) string {
		v, err := f.GetCellValue(SummarySheet, ref)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "=== Monday Range Analysis ===", cell("A1"))
	assert.Equal(t, "Total number of Mondays analyzed: 3", cell("A3"))
	assert.Equal(t, "High Break Analysis:", cell("A5"))
	assert.Equal(t, "Probability of Monday's high being broken: 66.67%", cell("A7"))
	assert.Equal(t, "Tuesday: 50.00%", cell("A10"))
	assert.Equal(t, "Thursday: 50.00%", cell("A11"))

	rows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	header := -1
	for i, r := range rows {
		if len(r) > 1 && r[0] == "Date" {
			header = i
		}
	}
	require.NotEqual(t, -1, header, "unbroken weeks table missing")
	assert.Equal(t, []string{"Date", "Week", "Year", "Monday High", "Monday Low"}, rows[header])
	require.Greater(t, len(rows), header+1)
	assert.Equal(t, []string{"2024-01-08", "2", "2024", "10", "5"}, rows[header+1])

	width, err := f.GetColWidth(SummarySheet, "A")
	require.NoError(t, err)
	assert.Equal(t, 50.0, width)
}

func TestWritePartialBreaksWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.xlsx")
	require.NoError(t, WritePartialBreaksWorkbook(path, result(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue(PartialSheet, ref)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "=== Monday Range Break Analysis ===", cell("A1"))
	assert.Equal(t, "Number of weeks with only high broken: 1", cell("A4"))
	assert.Equal(t, "Number of weeks with only low broken: 0", cell("A5"))
	assert.Equal(t, "Percentage of weeks with incomplete breaks: 66.67%", cell("A8"))
	assert.Equal(t, "Percentage of weeks with both broken: 33.33%", cell("A9"))

	assert.Equal(t, "Weeks with Only High Broken:", cell("A11"))
	assert.Equal(t, "High Break Day", cell("F12"))
	assert.Equal(t, "2024-01-22", cell("A13"))
	assert.Equal(t, "Thursday", cell("F13"))
	assert.Equal(t, "Not Broken", cell("G13"))

	assert.Equal(t, "Weeks with Only Low Broken:", cell("A17"))
	assert.Equal(t, "No instances found", cell("A18"))
	assert.Equal(t, "Weeks with Neither Level Broken:", cell("A21"))
}

func TestWritePartialBreaksWorkbook_NoMondays(t *testing.T) {
	res, err := analysis.Run(nil, zerolog.Nop())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "partial.xlsx")
	require.NoError(t, WritePartialBreaksWorkbook(path, res))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue(PartialSheet, "A8")
	require.NoError(t, err)
	assert.Equal(t, "Percentage of weeks with incomplete breaks: 0.00%", v)
}

func TestSaveJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")
	require.NoError(t, SaveJSON(path, result(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var s Summary
	require.NoError(t, json.Unmarshal(data, &s))

	assert.Equal(t, "test", s.Source)
	assert.Equal(t, 3, s.TotalMondays)
	assert.Equal(t, 1, s.BothBrokenCount)
	assert.InDelta(t, 2.0/3.0, s.HighBreakProbability, 1e-12)
	assert.Equal(t, map[string]float64{"Tuesday": 0.5, "Thursday": 0.5}, s.HighBreakByDay)
	assert.Equal(t, []string{"2024-W03"}, s.SkippedWeeks)
	assert.Empty(t, s.DuplicateMondayWeeks)
	require.Len(t, s.Weeks, 3)
	assert.Equal(t, WeekRow{
		Date: "2024-01-22", Week: 4, Year: 2024,
		MondayHigh: 10, MondayLow: 5,
		HighBreakDay: "Thursday", LowBreakDay: "Not Broken",
		Category: "only_high",
	}, s.Weeks[2])
}

func TestRenderBreakDayChart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderBreakDayChart(&buf, result(t)))

	html := buf.String()
	assert.Contains(t, html, "Monday Range Breaks")
	assert.Contains(t, html, "Tuesday")
	assert.Contains(t, html, "Friday")
}

func TestSaveChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts", "breaks.html")
	require.NoError(t, SaveChart(path, result(t)))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
