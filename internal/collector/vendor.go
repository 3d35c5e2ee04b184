package collector

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"

	"MondayRange/internal/model"
)

var (
	// ErrMalformedRow marks a data row whose prices cannot be read.
	ErrMalformedRow = errors.New("malformed row")
	// ErrMissingColumn marks a header that lacks a required column.
	ErrMissingColumn = errors.New("missing column")
)

// Supported vendor file encodings.
const (
	EncodingLatin1 = "latin1"
	EncodingUTF8   = "utf8"
)

// vendorColumns is the fixed column order of the vendor export. The header
// row of the file is ignored.
var vendorColumns = []string{"Date", "Close", "Open", "High", "Low"}

// VendorSource reads the raw vendor export: Latin-1 text, ';'-separated,
// German long-form dates, columns Date;Close;Open;High;Low.
type VendorSource struct {
	Path      string
	Delimiter rune
	Encoding  string
	Log       zerolog.Logger
}

// NewVendorSource creates a VendorSource with the vendor defaults.
func NewVendorSource(path string, log zerolog.Logger) *VendorSource {
	return &VendorSource{Path: path, Delimiter: ';', Encoding: EncodingLatin1, Log: log}
}

func (v *VendorSource) Name() string { return "vendor:" + v.Path }

// Load reads all rows, sorted by date. Rows with an unreadable date are
// dropped with a warning; rows with unreadable prices fail the load.
func (v *VendorSource) Load() ([]model.Candle, error) {
	f, err := os.Open(v.Path)
	if err != nil {
		return nil, fmt.Errorf("open vendor file: %w", err)
	}
	defer f.Close()
	return v.Read(f)
}

// Read parses vendor rows from r.
func (v *VendorSource) Read(r io.Reader) ([]model.Candle, error) {
	text, err := v.decode(r)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(text)
	reader.Comma = v.delimiter()
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read vendor csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	candles := make([]model.Candle, 0, len(records)-1)
	dropped := 0
	for i, rec := range records[1:] {
		line := i + 2
		if isBlank(rec) {
			continue
		}
		if len(rec) < len(vendorColumns) {
			return nil, fmt.Errorf("line %d: %w: %d fields, want %d", line, ErrMalformedRow, len(rec), len(vendorColumns))
		}

		date, err := ParseGermanDate(rec[0])
		if err != nil {
			v.Log.Warn().Int("line", line).Err(err).Msg("failed to parse date, row dropped")
			dropped++
			continue
		}

		var prices [4]float64 // close, open, high, low
		for j := range prices {
			p, err := ParseNumber(rec[j+1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: %s %q", line, ErrMalformedRow, vendorColumns[j+1], rec[j+1])
			}
			prices[j] = p
		}
		candles = append(candles, model.Candle{
			Date:  date,
			Close: prices[0],
			Open:  prices[1],
			High:  prices[2],
			Low:   prices[3],
		})
	}

	sort.SliceStable(candles, func(i, j int) bool { return candles[i].Date.Before(candles[j].Date) })
	v.Log.Debug().Int("rows", len(candles)).Int("dropped", dropped).Msg("vendor file read")
	return candles, nil
}

func (v *VendorSource) delimiter() rune {
	if v.Delimiter == 0 {
		return ';'
	}
	return v.Delimiter
}

// decode turns the raw bytes into UTF-8 text for the csv reader.
func (v *VendorSource) decode(r io.Reader) (io.Reader, error) {
	switch v.Encoding {
	case "", EncodingLatin1:
		return charmap.ISO8859_1.NewDecoder().Reader(r), nil
	case EncodingUTF8:
		br := bufio.NewReader(r)
		if bom, err := br.Peek(3); err == nil && bytes.Equal(bom, []byte{0xEF, 0xBB, 0xBF}) {
			br.Discard(3)
		}
		return br, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", v.Encoding)
	}
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
