package model

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DateLayout is the canonical date format used in filtered candle files and reports.
const DateLayout = "2006-01-02"

// ErrInvalidCandle marks a candle that cannot take part in an analysis run.
var ErrInvalidCandle = errors.New("invalid candle")

// Candle represents a single daily OHLC bar.
type Candle struct {
	Date  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// Weekday is derived from Date so the two can never disagree.
func (c Candle) Weekday() Weekday { return WeekdayOf(c.Date) }

// WeekKey returns the ISO year/week the candle belongs to.
func (c Candle) WeekKey() WeekKey { return WeekKeyOf(c.Date) }

// Validate reports input shape problems: a missing date, non-finite prices
// or a high below the low.
func (c Candle) Validate() error {
	if c.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidCandle)
	}
	prices := []struct {
		name  string
		value float64
	}{
		{"open", c.Open}, {"high", c.High}, {"low", c.Low}, {"close", c.Close},
	}
	for _, p := range prices {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) {
			return fmt.Errorf("%w: %s %s is not finite", ErrInvalidCandle, c.Date.Format(DateLayout), p.name)
		}
	}
	if c.High < c.Low {
		return fmt.Errorf("%w: %s high %.5f below low %.5f", ErrInvalidCandle, c.Date.Format(DateLayout), c.High, c.Low)
	}
	return nil
}

// WeekKey identifies an ISO week. Year is the ISO year, which can differ
// from the calendar year of candles at the turn of the year.
type WeekKey struct {
	Year int
	Week int
}

// WeekKeyOf returns the ISO week key of t.
func WeekKeyOf(t time.Time) WeekKey {
	y, w := t.ISOWeek()
	return WeekKey{Year: y, Week: w}
}

// Less orders keys by (Year, Week).
func (k WeekKey) Less(o WeekKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	return k.Week < o.Week
}

func (k WeekKey) String() string { return fmt.Sprintf("%d-W%02d", k.Year, k.Week) }

// WeekGroup holds the candles of one ISO week in ascending date order.
type WeekGroup struct {
	Key     WeekKey
	Candles []Candle
}
