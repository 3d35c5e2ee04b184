package collector

import (
	"fmt"

	"github.com/rs/zerolog"

	"MondayRange/internal/model"
)

// StaticSource returns fixed candles for development and testing.
type StaticSource struct {
	Candles []model.Candle
}

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) Load() ([]model.Candle, error) {
	out := make([]model.Candle, len(s.Candles))
	copy(out, s.Candles)
	return out, nil
}

// NormalizeStats reports how many rows survived the Monday-week filter.
type NormalizeStats struct {
	Original int
	Filtered int
}

// Collector loads candles from a Source and prepares them for analysis.
type Collector struct {
	Log zerolog.Logger
}

// NewCollector creates a new Collector.
func NewCollector(log zerolog.Logger) *Collector {
	return &Collector{Log: log}
}

// Collect loads candles from src and rejects the load if any candle is
// malformed.
func (c *Collector) Collect(src Source) ([]model.Candle, error) {
	candles, err := src.Load()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src.Name(), err)
	}
	for _, cd := range candles {
		if err := cd.Validate(); err != nil {
			return nil, fmt.Errorf("load %s: %w", src.Name(), err)
		}
	}
	c.Log.Info().Str("source", src.Name()).Int("rows", len(candles)).Msg("candles loaded")
	return candles, nil
}

// Normalize loads raw candles from src, keeps the weeks that contain a
// Monday session and writes them to dstPath in the canonical format.
func (c *Collector) Normalize(src Source, dstPath string) (NormalizeStats, error) {
	candles, err := c.Collect(src)
	if err != nil {
		return NormalizeStats{}, err
	}

	filtered := FilterMondayWeeks(candles)
	c.Log.Info().Str("path", dstPath).Msg("saving filtered data")
	if err := WriteCanonicalFile(dstPath, filtered); err != nil {
		return NormalizeStats{}, fmt.Errorf("save filtered data: %w", err)
	}

	stats := NormalizeStats{Original: len(candles), Filtered: len(filtered)}
	c.Log.Info().
		Int("original_rows", stats.Original).
		Int("filtered_rows", stats.Filtered).
		Msg("processing complete")
	return stats, nil
}

// FilterMondayWeeks keeps only candles whose ISO week contains at least one
// Monday candle. Input order is preserved.
func FilterMondayWeeks(candles []model.Candle) []model.Candle {
	withMonday := make(map[model.WeekKey]bool)
	for _, cd := range candles {
		if cd.Weekday() == model.Monday {
			withMonday[cd.WeekKey()] = true
		}
	}

	out := make([]model.Candle, 0, len(candles))
	for _, cd := range candles {
		if withMonday[cd.WeekKey()] {
			out = append(out, cd)
		}
	}
	return out
}
