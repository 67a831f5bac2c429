package interfaces

import (
	"context"
	"gitlab.com/aoterocom/AOBacktester/models"
	"time"
)

// CandleProvider returns candles ordered by ascending closeTime whose
// closeTime falls in [from, to). Zero bounds are open.
type CandleProvider interface {
	GetCandles(ctx context.Context, symbol string, interval string, from time.Time, to time.Time) ([]models.Candle, error)
}
