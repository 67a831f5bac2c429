package database

import "gorm.io/gorm"

type WalkForwardRun struct {
	gorm.Model
	Symbol                 string `gorm:"index;size:50"`
	Timeframe              string `gorm:"size:10"`
	Variant                string `gorm:"size:20"`
	Config                 string `gorm:"type:text"`
	CompletedWindows       int
	SkippedWindows         int
	MeanTestReturnPct      float64
	WorstTestReturnPct     float64
	WorstTestDrawdownPct   float64
	MeanTrainReturnPct     float64
	TotalTestTrades        int
	PositiveWindowRatio    float64
	TestReturnStdDev       float64
	AllTestWindowsPositive bool
	Windows                []WalkForwardWindow `gorm:"foreignKey:WalkForwardRunID"`
}

type WalkForwardWindow struct {
	gorm.Model
	WalkForwardRunID   uint
	WindowIndex        int
	TrainStart         int64
	TrainEnd           int64
	TestStart          int64
	TestEnd            int64
	TrainTrades        int
	TrainReturnPct     float64
	TestTrades         int
	TestReturnPct      float64
	TestMaxDrawdownPct float64
}
