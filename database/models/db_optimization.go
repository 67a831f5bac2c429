package database

import "gorm.io/gorm"

type OptimizationRun struct {
	gorm.Model
	Symbol              string `gorm:"index;size:50"`
	Timeframe           string `gorm:"size:10"`
	Combinations        int
	InvalidCombinations int
	Discarded           int
	Entries             []OptimizationEntry `gorm:"foreignKey:OptimizationRunID"`
}

// OptimizationEntry is one ranked combination.
type OptimizationEntry struct {
	gorm.Model
	OptimizationRunID uint
	Rank              int
	Variant           string `gorm:"size:20"`
	Config            string `gorm:"type:text"`
	TrainScore        float64
	TestScore         float64
	JointScore        float64
	TrainTrades       int
	TrainReturnPct    float64
	TestTrades        int
	TestReturnPct     float64

	// Walk-forward columns are zero when the entry was not validated.
	WalkForwardMeanTestReturnPct  float64
	WalkForwardWorstTestReturnPct float64
}
