package calculator

import (
	"sort"

	"MondayRange/internal/model"
)

// GroupByWeek partitions candles by ISO week. Groups come back ordered by
// (year, week) and the candles inside each group by date, whatever the
// input order was.
func GroupByWeek(candles []model.Candle) []model.WeekGroup {
	if len(candles) == 0 {
		return nil
	}

	byKey := make(map[model.WeekKey][]model.Candle)
	for _, c := range candles {
		k := c.WeekKey()
		byKey[k] = append(byKey[k], c)
	}

	groups := make([]model.WeekGroup, 0, len(byKey))
	for k, cs := range byKey {
		sortByDate(cs)
		groups = append(groups, model.WeekGroup{Key: k, Candles: cs})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key.Less(groups[j].Key) })
	return groups
}

func sortByDate(cs []model.Candle) {
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].Date.Before(cs[j].Date) })
}
