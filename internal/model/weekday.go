package model

import (
	"fmt"
	"time"
)

// Weekday enumerates trading days using ISO numbering (Monday=1..Sunday=7).
// NoDay is the "not broken / not applicable" value of break-day fields.
type Weekday int

const (
	NoDay Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// BreakDays are the days checked against the Monday range, in order.
var BreakDays = []Weekday{Tuesday, Wednesday, Thursday, Friday}

var weekdayNames = [...]string{
	NoDay:     "Not Broken",
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

// WeekdayOf maps a date onto the ISO weekday enumeration.
func WeekdayOf(t time.Time) Weekday {
	if t.Weekday() == time.Sunday {
		return Sunday
	}
	return Weekday(t.Weekday())
}

// Name returns the English day name, or "Not Broken" for NoDay.
func (d Weekday) Name() string {
	if d < NoDay || d > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

func (d Weekday) String() string { return d.Name() }

// Ordinal numbers the break days Tuesday=1..Friday=4; every other day is 0.
func (d Weekday) Ordinal() int {
	if d < Tuesday || d > Friday {
		return 0
	}
	return int(d - Monday)
}
