package models

// Trade is the immutable record of a closed position.
type Trade struct {
	EntryTime  int64       `json:"entryTime"`
	ExitTime   int64       `json:"exitTime"`
	EntryPrice float64     `json:"entryPrice"`
	ExitPrice  float64     `json:"exitPrice"`
	GrossPct   float64     `json:"grossPct"`
	PnlPct     float64     `json:"pnlPct"`
	ExitReason ExitTrigger `json:"exitReason"`
	BarsHeld   int         `json:"barsHeld"`
}

// GrossPct is the raw percentage move from entry to exit.
func GrossPct(entryPrice float64, exitPrice float64) float64 {
	return (exitPrice/entryPrice - 1) * 100
}

// NetPct charges the round-trip fee unconditionally.
func NetPct(grossPct float64, feeRate float64) float64 {
	return grossPct - feeRate*2*100
}
