package calculator

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"MondayRange/internal/model"
)

// ErrInconsistentAggregate is returned when the counts of an AggregateResult
// contradict each other, so no probability derived from them can be trusted.
var ErrInconsistentAggregate = errors.New("inconsistent aggregate")

const tolerance = 1e-9

// CalculateProbabilities derives break rates from an aggregate. Every rate
// whose denominator is zero is reported as 0.
func CalculateProbabilities(agg model.AggregateResult) (model.Probabilities, error) {
	p := model.Probabilities{
		DayHigh: dayShares(agg.FirstHighBreakByDay, agg.HighBrokenCount),
		DayLow:  dayShares(agg.FirstLowBreakByDay, agg.LowBrokenCount),
	}
	if agg.TotalMondays == 0 {
		return p, nil
	}

	total := float64(agg.TotalMondays)
	p.HighBreak = float64(agg.HighBrokenCount) / total
	p.LowBreak = float64(agg.LowBrokenCount) / total
	// P(high or low) = P(high) + P(low) - P(high and low)
	p.EitherBreak = float64(agg.HighBrokenCount+agg.LowBrokenCount-agg.BothBrokenCount) / total

	complement := 1 - float64(agg.NeitherBrokenCount)/total
	if math.Abs(p.EitherBreak-complement) > tolerance {
		return model.Probabilities{}, fmt.Errorf("%w: either-break %.6f != 1 - neither %.6f",
			ErrInconsistentAggregate, p.EitherBreak, complement)
	}
	if err := checkShares(p.DayHigh, "high"); err != nil {
		return model.Probabilities{}, err
	}
	if err := checkShares(p.DayLow, "low"); err != nil {
		return model.Probabilities{}, err
	}

	p.AvgHighBreakDay = AverageBreakDay(agg.FirstHighBreakByDay)
	p.AvgLowBreakDay = AverageBreakDay(agg.FirstLowBreakByDay)
	return p, nil
}

// AverageBreakDay is the tally-weighted mean of break-day ordinals
// (Tuesday=1..Friday=4). It returns 0 when nothing was broken.
func AverageBreakDay(byDay map[model.Weekday]int) float64 {
	var days, weights []float64
	for _, d := range model.BreakDays {
		if n := byDay[d]; n > 0 {
			days = append(days, float64(d.Ordinal()))
			weights = append(weights, float64(n))
		}
	}
	if len(days) == 0 {
		return 0
	}
	return stat.Mean(days, weights)
}

func dayShares(byDay map[model.Weekday]int, broken int) map[model.Weekday]float64 {
	shares := make(map[model.Weekday]float64)
	if broken == 0 {
		return shares
	}
	for d, n := range byDay {
		if n > 0 {
			shares[d] = float64(n) / float64(broken)
		}
	}
	return shares
}

func checkShares(shares map[model.Weekday]float64, side string) error {
	if len(shares) == 0 {
		return nil
	}
	sum := 0.0
	for _, s := range shares {
		sum += s
	}
	if math.Abs(sum-1) > tolerance {
		return fmt.Errorf("%w: %s break day shares sum to %.6f", ErrInconsistentAggregate, side, sum)
	}
	return nil
}
