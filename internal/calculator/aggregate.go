package calculator

import "MondayRange/internal/model"

// Aggregate folds week outcomes into one AggregateResult. Every outcome
// counts once toward TotalMondays and lands in exactly one category list;
// list order follows the input order.
func Aggregate(outcomes []model.WeekOutcome) model.AggregateResult {
	agg := model.AggregateResult{
		FirstHighBreakByDay: make(map[model.Weekday]int),
		FirstLowBreakByDay:  make(map[model.Weekday]int),
	}

	for _, o := range outcomes {
		agg.TotalMondays++

		if o.HighBroken {
			agg.HighBrokenCount++
			agg.FirstHighBreakByDay[o.FirstHighBreakDay]++
		}
		if o.LowBroken {
			agg.LowBrokenCount++
			agg.FirstLowBreakByDay[o.FirstLowBreakDay]++
		}

		switch o.Category() {
		case model.OnlyHigh:
			agg.OnlyHigh = append(agg.OnlyHigh, o)
		case model.OnlyLow:
			agg.OnlyLow = append(agg.OnlyLow, o)
		case model.Both:
			agg.BothBrokenCount++
			agg.Both = append(agg.Both, o)
		default:
			agg.NeitherBrokenCount++
			agg.Neither = append(agg.Neither, o)
		}
	}
	return agg
}
