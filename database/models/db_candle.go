package database

import (
	"gorm.io/gorm"
)

// Candle is a cached bar. Timeframe holds the kline interval ("1h", "4h", ...).
type Candle struct {
	gorm.Model
	Symbol    string  `json:"symbol" gorm:"uniqueIndex:idx_symbol_timeframe_open;size:50"`
	Timeframe string  `json:"timeframe" gorm:"uniqueIndex:idx_symbol_timeframe_open;size:10"`
	OpenTime  int64   `json:"openTime" gorm:"uniqueIndex:idx_symbol_timeframe_open"`
	CloseTime int64   `json:"closeTime" gorm:"index"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}
