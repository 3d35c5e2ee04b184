package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MondayRange/internal/model"
)

func TestGroupByWeek_Empty(t *testing.T) {
	assert.Empty(t, GroupByWeek(nil))
	assert.Empty(t, GroupByWeek([]model.Candle{}))
}

func TestGroupByWeek_OrdersWeeksAndDays(t *testing.T) {
	candles := []model.Candle{
		bar("2025-01-02", 3, 1), // ISO 2025-W01
		bar("2024-01-03", 3, 1), // ISO 2024-W01
		bar("2024-12-30", 3, 1), // ISO 2025-W01
		bar("2024-01-01", 3, 1),
		bar("2024-06-12", 3, 1), // ISO 2024-W24
	}

	groups := GroupByWeek(candles)
	require.Len(t, groups, 3)

	assert.Equal(t, model.WeekKey{Year: 2024, Week: 1}, groups[0].Key)
	assert.Equal(t, model.WeekKey{Year: 2024, Week: 24}, groups[1].Key)
	assert.Equal(t, model.WeekKey{Year: 2025, Week: 1}, groups[2].Key)

	require.Len(t, groups[0].Candles, 2)
	assert.Equal(t, model.Monday, groups[0].Candles[0].Weekday())
	assert.Equal(t, model.Wednesday, groups[0].Candles[1].Weekday())

	// The week spanning new year keeps both calendar years together.
	require.Len(t, groups[2].Candles, 2)
	assert.Equal(t, 2024, groups[2].Candles[0].Date.Year())
	assert.Equal(t, 2025, groups[2].Candles[1].Date.Year())
}

func TestGroupByWeek_DoesNotReorderInput(t *testing.T) {
	candles := []model.Candle{bar("2024-01-03", 3, 1), bar("2024-01-01", 3, 1)}
	GroupByWeek(candles)
	assert.Equal(t, model.Wednesday, candles[0].Weekday())
}
