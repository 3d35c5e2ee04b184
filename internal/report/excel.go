package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"MondayRange/internal/analysis"
	"MondayRange/internal/model"
)

// Sheet names of the generated workbooks.
const (
	SummarySheet = "Analysis Results"
	PartialSheet = "Partial Break Analysis"
)

var weekHeaders = []string{"Date", "Week", "Year", "Monday High", "Monday Low", "High Break Day", "Low Break Day"}

type styles struct {
	title     int // bold 14 on DDDDDD
	header    int // bold 12 on CCCCCC
	subheader int // bold 12 on EEEEEE
	bold12    int
	bold      int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	defs := []struct {
		dst   *int
		size  float64
		color string
	}{
		{&s.title, 14, "DDDDDD"},
		{&s.header, 12, "CCCCCC"},
		{&s.subheader, 12, "EEEEEE"},
		{&s.bold12, 12, ""},
		{&s.bold, 0, ""},
	}
	for _, d := range defs {
		style := &excelize.Style{Font: &excelize.Font{Bold: true, Size: d.size}}
		if d.color != "" {
			style.Fill = excelize.Fill{Type: "pattern", Color: []string{d.color}, Pattern: 1}
		}
		id, err := f.NewStyle(style)
		if err != nil {
			return styles{}, fmt.Errorf("create style: %w", err)
		}
		*d.dst = id
	}
	return s, nil
}

// sheetWriter keeps the first error so cell writes can be chained.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) set(col, row int, value interface{}, style int) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetCellValue(w.sheet, cell, value); err != nil {
		w.err = err
		return
	}
	if style != 0 {
		w.err = w.f.SetCellStyle(w.sheet, cell, cell, style)
	}
}

func (w *sheetWriter) width(from, to string, width float64) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetColWidth(w.sheet, from, to, width)
}

func newWorkbook(sheet string) (*excelize.File, *sheetWriter, styles, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		f.Close()
		return nil, nil, styles{}, fmt.Errorf("rename sheet: %w", err)
	}
	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, nil, styles{}, err
	}
	return f, &sheetWriter{f: f, sheet: sheet}, st, nil
}

func save(f *excelize.File, w *sheetWriter, path string) error {
	defer f.Close()
	if w.err != nil {
		return fmt.Errorf("write cells: %w", w.err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// WriteSummaryWorkbook writes the break statistics and the list of weeks
// where neither side of the Monday range was taken.
func WriteSummaryWorkbook(path string, res *analysis.Result) error {
	f, w, st, err := newWorkbook(SummarySheet)
	if err != nil {
		return err
	}
	agg := res.Aggregate
	p := res.Probabilities

	w.set(1, 1, "=== Monday Range Analysis ===", st.title)
	w.set(1, 3, fmt.Sprintf("Total number of Mondays analyzed: %d", agg.TotalMondays), st.bold12)

	w.set(1, 5, "High Break Analysis:", st.header)
	w.set(1, 6, fmt.Sprintf("Number of times Monday's high was broken: %d", agg.HighBrokenCount), 0)
	w.set(1, 7, fmt.Sprintf("Probability of Monday's high being broken: %s", Percent(p.HighBreak)), 0)
	w.set(1, 9, "Day-specific probabilities for high breaks:", st.header)
	row := 10
	for _, line := range dayShareLines(p.DayHigh) {
		w.set(1, row, line, 0)
		row++
	}

	row += 2
	w.set(1, row, "Low Break Analysis:", st.header)
	row++
	w.set(1, row, fmt.Sprintf("Number of times Monday's low was broken: %d", agg.LowBrokenCount), 0)
	row++
	w.set(1, row, fmt.Sprintf("Probability of Monday's low being broken: %s", Percent(p.LowBreak)), 0)
	row += 2
	w.set(1, row, "Day-specific probabilities for low breaks:", st.header)
	row++
	for _, line := range dayShareLines(p.DayLow) {
		w.set(1, row, line, 0)
		row++
	}

	row += 2
	w.set(1, row, "Summary Statistics:", st.subheader)
	row++
	w.set(1, row, fmt.Sprintf("Average days to break Monday's high: %.2f (1=Tuesday, 2=Wednesday, etc.)", p.AvgHighBreakDay), 0)
	row++
	w.set(1, row, fmt.Sprintf("Average days to break Monday's low: %.2f (1=Tuesday, 2=Wednesday, etc.)", p.AvgLowBreakDay), 0)
	row++
	w.set(1, row, fmt.Sprintf("Probability of either Monday's high or low being broken: %s", Percent(p.EitherBreak)), 0)

	row += 2
	w.set(1, row, "Weeks Where Neither High Nor Low Was Broken:", st.header)
	row++
	w.set(1, row, fmt.Sprintf("Total number of unbroken weeks: %d", len(agg.Neither)), st.bold)

	row += 2
	for col, h := range weekHeaders[:5] {
		w.set(col+1, row, h, st.header)
	}
	for _, o := range agg.Neither {
		row++
		r := NewWeekRow(o)
		w.set(1, row, r.Date, 0)
		w.set(2, row, r.Week, 0)
		w.set(3, row, r.Year, 0)
		w.set(4, row, r.MondayHigh, 0)
		w.set(5, row, r.MondayLow, 0)
	}

	w.width("A", "A", 50)
	w.width("B", "E", 15)
	return save(f, w, path)
}

// WritePartialBreaksWorkbook writes every analyzed week, grouped by which
// side of the Monday range was broken.
func WritePartialBreaksWorkbook(path string, res *analysis.Result) error {
	f, w, st, err := newWorkbook(PartialSheet)
	if err != nil {
		return err
	}
	agg := res.Aggregate

	incomplete, both := 0.0, 0.0
	if agg.TotalMondays > 0 {
		total := float64(agg.TotalMondays)
		incomplete = float64(len(agg.OnlyHigh)+len(agg.OnlyLow)+len(agg.Neither)) / total
		both = float64(len(agg.Both)) / total
	}

	w.set(1, 1, "=== Monday Range Break Analysis ===", st.title)
	w.set(1, 3, fmt.Sprintf("Total number of Mondays analyzed: %d", agg.TotalMondays), 0)
	w.set(1, 4, fmt.Sprintf("Number of weeks with only high broken: %d", len(agg.OnlyHigh)), 0)
	w.set(1, 5, fmt.Sprintf("Number of weeks with only low broken: %d", len(agg.OnlyLow)), 0)
	w.set(1, 6, fmt.Sprintf("Number of weeks with neither broken: %d", len(agg.Neither)), 0)
	w.set(1, 7, fmt.Sprintf("Number of weeks with both broken: %d", len(agg.Both)), 0)
	w.set(1, 8, fmt.Sprintf("Percentage of weeks with incomplete breaks: %s", Percent(incomplete)), 0)
	w.set(1, 9, fmt.Sprintf("Percentage of weeks with both broken: %s", Percent(both)), 0)

	row := 11
	row = writeSection(w, st, "Weeks with Only High Broken:", agg.OnlyHigh, row)
	row = writeSection(w, st, "Weeks with Only Low Broken:", agg.OnlyLow, row+2)
	row = writeSection(w, st, "Weeks with Neither Level Broken:", agg.Neither, row+2)
	writeSection(w, st, "Weeks with Both Levels Broken:", agg.Both, row+2)

	w.width("A", "G", 15)
	return save(f, w, path)
}

// writeSection writes one category table and returns the next free row.
func writeSection(w *sheetWriter, st styles, title string, weeks []model.WeekOutcome, start int) int {
	w.set(1, start, title, st.header)
	if len(weeks) == 0 {
		w.set(1, start+1, "No instances found", 0)
		return start + 2
	}

	for col, h := range weekHeaders {
		w.set(col+1, start+1, h, st.subheader)
	}
	row := start + 2
	for _, o := range weeks {
		r := NewWeekRow(o)
		w.set(1, row, r.Date, 0)
		w.set(2, row, r.Week, 0)
		w.set(3, row, r.Year, 0)
		w.set(4, row, r.MondayHigh, 0)
		w.set(5, row, r.MondayLow, 0)
		w.set(6, row, r.HighBreakDay, 0)
		w.set(7, row, r.LowBreakDay, 0)
		row++
	}
	return row + 1
}
