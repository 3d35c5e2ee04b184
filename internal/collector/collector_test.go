package collector

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MondayRange/internal/model"
)

func candleOn(date string, price float64) model.Candle {
	t, err := time.Parse(model.DateLayout, date)
	if err != nil {
		panic(err)
	}
	return model.Candle{Date: t, Open: price, High: price + 1, Low: price - 1, Close: price + 0.5}
}

func TestFilterMondayWeeks(t *testing.T) {
	candles := []model.Candle{
		candleOn("2024-01-01", 10), // W01 monday
		candleOn("2024-01-02", 11),
		candleOn("2024-01-09", 12), // W02, no monday
		candleOn("2024-01-10", 13),
		candleOn("2024-12-30", 14), // 2025-W01 monday
		candleOn("2025-01-02", 15),
	}
	got := FilterMondayWeeks(candles)
	require.Len(t, got, 4)
	for _, c := range got {
		assert.NotEqual(t, model.WeekKey{Year: 2024, Week: 2}, c.WeekKey())
	}
	assert.Equal(t, "2025-01-02", got[3].Date.Format(model.DateLayout))
	assert.Empty(t, FilterMondayWeeks(nil))
}

func TestCanonical_RoundTrip(t *testing.T) {
	in := []model.Candle{candleOn("2024-01-01", 1.0851), candleOn("2024-01-02", 1.0923)}

	var buf bytes.Buffer
	require.NoError(t, WriteCanonical(&buf, in))
	assert.True(t, strings.HasPrefix(buf.String(), "Date;Open;High;Low;Close\n"))

	out, err := ReadCanonical(&buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestReadCanonical_ColumnOrderAndDates(t *testing.T) {
	data := "Date;Close;Open;High;Low\n" +
		"2024-01-02 00:00:00;2;1;3;0.5\n" +
		"2024-01-01;5;4;6;3.5\n"
	out, err := ReadCanonical(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "2024-01-01", out[0].Date.Format(model.DateLayout))
	assert.Equal(t, 4.0, out[0].Open)
	assert.Equal(t, 6.0, out[0].High)
	assert.Equal(t, 3.0, out[1].High)
	assert.Equal(t, 2.0, out[1].Close)
}

func TestReadCanonical_Errors(t *testing.T) {
	_, err := ReadCanonical(strings.NewReader("Date;Open;High;Close\n2024-01-01;1;2;1\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, err = ReadCanonical(strings.NewReader("Date;Open;High;Low;Close\n01.01.2024;1;2;0;1\n"))
	assert.ErrorIs(t, err, ErrMalformedRow)

	_, err = ReadCanonical(strings.NewReader("Date;Open;High;Low;Close\n2024-01-01;1;x;0;1\n"))
	assert.ErrorIs(t, err, ErrMalformedRow)

	out, err := ReadCanonical(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Empty(t, out)
}

func TestCollector_CollectRejectsInvalid(t *testing.T) {
	bad := candleOn("2024-01-01", 1)
	bad.Low = math.NaN()
	col := NewCollector(zerolog.Nop())
	_, err := col.Collect(&StaticSource{Candles: []model.Candle{bad}})
	assert.ErrorIs(t, err, model.ErrInvalidCandle)
}

func TestCollector_Normalize(t *testing.T) {
	dir := t.TempDir()
	raw := filepath.Join(dir, "raw.csv")
	require.NoError(t, os.WriteFile(raw, []byte(latin1Export), 0644))
	dst := filepath.Join(dir, "out", "filtered_candles.csv")

	col := NewCollector(zerolog.Nop())
	stats, err := col.Normalize(NewVendorSource(raw, zerolog.Nop()), dst)
	require.NoError(t, err)
	// The 12 March row sits in a week without a Monday.
	assert.Equal(t, NormalizeStats{Original: 4, Filtered: 3}, stats)

	out, err := NewCanonicalSource(dst).Load()
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, model.Monday, out[0].Weekday())
	assert.Equal(t, model.Friday, out[2].Weekday())
}
