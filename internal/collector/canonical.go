package collector

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"MondayRange/internal/model"
)

// CanonicalHeader is the column order written to filtered candle files.
var CanonicalHeader = []string{"Date", "Open", "High", "Low", "Close"}

var canonicalDateLayouts = []string{model.DateLayout, "2006-01-02 15:04:05"}

// CanonicalSource reads a filtered candle file: ';'-separated, a header
// naming the Date/Open/High/Low/Close columns in any order, ISO dates.
type CanonicalSource struct {
	Path string
}

// NewCanonicalSource creates a source for a filtered candle file.
func NewCanonicalSource(path string) *CanonicalSource {
	return &CanonicalSource{Path: path}
}

func (c *CanonicalSource) Name() string { return "canonical:" + c.Path }

func (c *CanonicalSource) Load() ([]model.Candle, error) {
	f, err := os.Open(c.Path)
	if err != nil {
		return nil, fmt.Errorf("open candle file: %w", err)
	}
	defer f.Close()
	return ReadCanonical(f)
}

// ReadCanonical parses a filtered candle file and returns the candles
// sorted by date.
func ReadCanonical(r io.Reader) ([]model.Candle, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var candles []model.Candle
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		date, err := parseCanonicalDate(rec[idx["date"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %v", line, ErrMalformedRow, err)
		}
		c := model.Candle{Date: date}
		for _, f := range []struct {
			col string
			dst *float64
		}{
			{"open", &c.Open}, {"high", &c.High}, {"low", &c.Low}, {"close", &c.Close},
		} {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[idx[f.col]]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: %s %q", line, ErrMalformedRow, f.col, rec[idx[f.col]])
			}
			*f.dst = v
		}
		candles = append(candles, c)
	}

	sort.SliceStable(candles, func(i, j int) bool { return candles[i].Date.Before(candles[j].Date) })
	return candles, nil
}

// WriteCanonical writes candles in the filtered file format.
func WriteCanonical(w io.Writer, candles []model.Candle) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'

	if err := writer.Write(CanonicalHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, c := range candles {
		rec := []string{
			c.Date.Format(model.DateLayout),
			formatPrice(c.Open),
			formatPrice(c.High),
			formatPrice(c.Low),
			formatPrice(c.Close),
		}
		if err := writer.Write(rec); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteCanonicalFile writes candles to path, creating parent directories.
func WriteCanonicalFile(path string, candles []model.Candle) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create candle file: %w", err)
	}
	if err := WriteCanonical(f, candles); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(CanonicalHeader))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}
	for _, col := range CanonicalHeader {
		if _, ok := idx[strings.ToLower(col)]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return idx, nil
}

func parseCanonicalDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range canonicalDateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
