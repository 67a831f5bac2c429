package models

// Position is the engine-local state of the single long position a run may
// hold. The zero value is flat.
type Position struct {
	open       bool
	entryPrice float64
	entryTime  int64
	entryIndex int
}

// Enter opens the position at the given bar.
func (p *Position) Enter(price float64, time int64, index int) error {
	if p.open {
		return ErrPositionAlreadyOpen
	}
	p.open = true
	p.entryPrice = price
	p.entryTime = time
	p.entryIndex = index
	return nil
}

// Exit closes the position and returns the fee-adjusted trade record.
func (p *Position) Exit(price float64, time int64, index int, reason ExitTrigger, feeRate float64) (Trade, error) {
	if !p.open {
		return Trade{}, ErrNoOpenPosition
	}
	gross := GrossPct(p.entryPrice, price)
	trade := Trade{
		EntryTime:  p.entryTime,
		ExitTime:   time,
		EntryPrice: p.entryPrice,
		ExitPrice:  price,
		GrossPct:   gross,
		PnlPct:     NetPct(gross, feeRate),
		ExitReason: reason,
		BarsHeld:   index - p.entryIndex,
	}
	*p = Position{}
	return trade, nil
}

func (p *Position) IsOpen() bool {
	return p.open
}

func (p *Position) EntryPrice() float64 {
	return p.entryPrice
}

func (p *Position) EntryTime() int64 {
	return p.entryTime
}

// StopPrice returns the stop-loss level for the open position.
func (p *Position) StopPrice(stopLossPct float64) float64 {
	return p.entryPrice * (1 - stopLossPct)
}

// TargetPrice returns the take-profit level for the open position.
func (p *Position) TargetPrice(takeProfitPct float64) float64 {
	return p.entryPrice * (1 + takeProfitPct)
}
