package analysis

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"MondayRange/internal/calculator"
	"MondayRange/internal/model"
)

// Result is everything one analysis run produces for the report writers.
type Result struct {
	Source        string
	GeneratedAt   time.Time
	CandleCount   int
	Outcomes      []model.WeekOutcome
	Aggregate     model.AggregateResult
	Probabilities model.Probabilities

	// Weeks left out because they had no Monday session.
	SkippedWeeks []model.WeekKey
	// Weeks that carried more than one Monday; the earliest was used.
	DuplicateMondayWeeks []model.WeekKey
}

// Run executes the full Monday-range analysis over candles. Any invalid
// candle fails the whole run; no partial result is returned.
func Run(candles []model.Candle, log zerolog.Logger) (*Result, error) {
	// Step a: input shape
	for i, c := range candles {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("candle %d: %w", i, err)
		}
	}

	res := &Result{
		GeneratedAt: time.Now(),
		CandleCount: len(candles),
	}

	// Step b: group and classify
	groups := calculator.GroupByWeek(candles)
	res.Outcomes = make([]model.WeekOutcome, 0, len(groups))
	for _, g := range groups {
		out, ok := calculator.ClassifyWeek(g)
		if !ok {
			res.SkippedWeeks = append(res.SkippedWeeks, g.Key)
			log.Debug().Str("week", g.Key.String()).Msg("no monday session, week skipped")
			continue
		}
		if n := calculator.MondayCount(g); n > 1 {
			res.DuplicateMondayWeeks = append(res.DuplicateMondayWeeks, g.Key)
			log.Warn().
				Str("week", g.Key.String()).
				Int("mondays", n).
				Str("reference", out.MondayDate.Format(model.DateLayout)).
				Msg("duplicate monday sessions, using the earliest")
		}
		res.Outcomes = append(res.Outcomes, out)
	}

	// Step c: aggregate and derive rates
	res.Aggregate = calculator.Aggregate(res.Outcomes)
	probs, err := calculator.CalculateProbabilities(res.Aggregate)
	if err != nil {
		return nil, fmt.Errorf("probabilities: %w", err)
	}
	res.Probabilities = probs

	log.Info().
		Int("candles", res.CandleCount).
		Int("weeks", len(groups)).
		Int("mondays", res.Aggregate.TotalMondays).
		Int("skipped", len(res.SkippedWeeks)).
		Msg("analysis complete")
	return res, nil
}
