package collector

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"MondayRange/internal/model"
)

var germanWeekdays = map[string]model.Weekday{
	"montag":     model.Monday,
	"dienstag":   model.Tuesday,
	"mittwoch":   model.Wednesday,
	"donnerstag": model.Thursday,
	"freitag":    model.Friday,
	"samstag":    model.Saturday,
	"sonnabend":  model.Saturday,
	"sonntag":    model.Sunday,
}

var germanMonths = map[string]time.Month{
	"januar":    time.January,
	"jänner":    time.January,
	"februar":   time.February,
	"märz":      time.March,
	"maerz":     time.March,
	"marz":      time.March,
	"april":     time.April,
	"mai":       time.May,
	"juni":      time.June,
	"juli":      time.July,
	"august":    time.August,
	"september": time.September,
	"oktober":   time.October,
	"november":  time.November,
	"dezember":  time.December,
}

// ParseGermanDate parses the long German date form used by the vendor
// export, e.g. "Montag, 1. Januar 2024". The weekday name must match the
// date it precedes.
func ParseGermanDate(s string) (time.Time, error) {
	name, rest, found := strings.Cut(strings.TrimSpace(s), ",")
	if !found {
		return time.Time{}, fmt.Errorf("date %q: missing weekday", s)
	}
	wd, ok := germanWeekdays[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return time.Time{}, fmt.Errorf("date %q: unknown weekday %q", s, name)
	}

	parts := strings.Fields(rest)
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("date %q: expected \"<day>. <month> <year>\"", s)
	}
	d, err := strconv.Atoi(strings.TrimSuffix(parts[0], "."))
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: day: %w", s, err)
	}
	m, ok := germanMonths[strings.ToLower(parts[1])]
	if !ok {
		return time.Time{}, fmt.Errorf("date %q: unknown month %q", s, parts[1])
	}
	y, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: year: %w", s, err)
	}

	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range days (31. Februar) instead of failing.
	if t.Day() != d || t.Month() != m {
		return time.Time{}, fmt.Errorf("date %q: no such day", s)
	}
	if model.WeekdayOf(t) != wd {
		return time.Time{}, fmt.Errorf("date %q: %s falls on a %s", s, t.Format(model.DateLayout), model.WeekdayOf(t))
	}
	return t, nil
}

// ParseNumber accepts both German ("1.234,56") and plain ("1234.56") decimals.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	return strconv.ParseFloat(s, 64)
}
