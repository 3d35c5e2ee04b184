package calculator

import "MondayRange/internal/model"

// ClassifyWeek checks the Tuesday..Friday sessions of a week against the
// Monday high and low. ok is false when the week has no Monday session; such
// weeks must be left out of every count.
//
// When a week carries more than one Monday the earliest one is the
// reference. A break is strict: a high equal to the Monday high is not a
// break.
func ClassifyWeek(g model.WeekGroup) (out model.WeekOutcome, ok bool) {
	monday, ok := referenceMonday(g.Candles)
	if !ok {
		return model.WeekOutcome{}, false
	}

	out = model.WeekOutcome{
		Key:        g.Key,
		MondayDate: monday.Date,
		MondayHigh: monday.High,
		MondayLow:  monday.Low,
	}
	for _, c := range breakCandidates(g.Candles) {
		if !out.HighBroken && c.High > out.MondayHigh {
			out.HighBroken = true
			out.FirstHighBreakDay = c.Weekday()
		}
		if !out.LowBroken && c.Low < out.MondayLow {
			out.LowBroken = true
			out.FirstLowBreakDay = c.Weekday()
		}
		if out.HighBroken && out.LowBroken {
			break
		}
	}
	return out, true
}

// MondayCount returns how many Monday sessions a week holds. Anything above
// one points at duplicated rows in the source data.
func MondayCount(g model.WeekGroup) int {
	n := 0
	for _, c := range g.Candles {
		if c.Weekday() == model.Monday {
			n++
		}
	}
	return n
}

func referenceMonday(cs []model.Candle) (model.Candle, bool) {
	var ref model.Candle
	found := false
	for _, c := range cs {
		if c.Weekday() != model.Monday {
			continue
		}
		if !found || c.Date.Before(ref.Date) {
			ref = c
			found = true
		}
	}
	return ref, found
}

// breakCandidates returns the Tuesday..Friday candles in ascending date order.
func breakCandidates(cs []model.Candle) []model.Candle {
	out := make([]model.Candle, 0, len(cs))
	for _, c := range cs {
		if wd := c.Weekday(); wd >= model.Tuesday && wd <= model.Friday {
			out = append(out, c)
		}
	}
	sortByDate(out)
	return out
}
