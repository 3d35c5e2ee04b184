package collector

import "MondayRange/internal/model"

// Source defines the interface for loading daily candles.
type Source interface {
	Load() ([]model.Candle, error)
	Name() string
}
