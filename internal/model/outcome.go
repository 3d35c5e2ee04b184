package model

import "time"

// Category buckets a week by which side of the Monday range was taken.
type Category int

const (
	Neither Category = iota
	OnlyHigh
	OnlyLow
	Both
)

func (c Category) String() string {
	switch c {
	case OnlyHigh:
		return "only_high"
	case OnlyLow:
		return "only_low"
	case Both:
		return "both"
	default:
		return "neither"
	}
}

// WeekOutcome is the classification of one week that has a Monday session.
type WeekOutcome struct {
	Key               WeekKey
	MondayDate        time.Time
	MondayHigh        float64
	MondayLow         float64
	HighBroken        bool
	LowBroken         bool
	FirstHighBreakDay Weekday // NoDay unless HighBroken
	FirstLowBreakDay  Weekday // NoDay unless LowBroken
}

// Category returns the single bucket the outcome belongs to.
func (o WeekOutcome) Category() Category {
	switch {
	case o.HighBroken && o.LowBroken:
		return Both
	case o.HighBroken:
		return OnlyHigh
	case o.LowBroken:
		return OnlyLow
	default:
		return Neither
	}
}

// AggregateResult is the fold of all week outcomes of one run.
type AggregateResult struct {
	TotalMondays       int
	HighBrokenCount    int
	LowBrokenCount     int
	BothBrokenCount    int
	NeitherBrokenCount int

	FirstHighBreakByDay map[Weekday]int
	FirstLowBreakByDay  map[Weekday]int

	// Categorized weeks, each in chronological input order.
	OnlyHigh []WeekOutcome
	OnlyLow  []WeekOutcome
	Neither  []WeekOutcome
	Both     []WeekOutcome
}

// Probabilities are the rates derived from an AggregateResult.
type Probabilities struct {
	HighBreak   float64
	LowBreak    float64
	EitherBreak float64

	// Share of high (low) break weeks whose first break fell on each day.
	// Only days with a non-zero tally are present.
	DayHigh map[Weekday]float64
	DayLow  map[Weekday]float64

	// Weighted mean break day, Tuesday=1..Friday=4. Zero without breaks.
	AvgHighBreakDay float64
	AvgLowBreakDay  float64
}
