package database

import "gorm.io/gorm"

// BacktestRun is a persisted engine run with its trades.
type BacktestRun struct {
	gorm.Model
	Symbol              string `gorm:"index;size:50"`
	Timeframe           string `gorm:"size:10"`
	Variant             string `gorm:"size:20"`
	Config              string `gorm:"type:text"`
	TotalTrades         int
	TotalReturnPct      float64
	AvgReturnPct        float64
	WinRate             float64
	MaxDrawdownPct      float64
	AnnualizedReturnPct float64
	ProfitFactor        float64
	FinalEquity         float64
	StartTime           int64
	EndTime             int64
	Trades              []TradeRecord `gorm:"foreignKey:BacktestRunID"`
}

type TradeRecord struct {
	gorm.Model
	BacktestRunID uint
	EntryTime     int64
	ExitTime      int64
	EntryPrice    float64
	ExitPrice     float64
	GrossPct      float64
	PnlPct        float64
	ExitReason    string `gorm:"size:10"`
	BarsHeld      int
}
