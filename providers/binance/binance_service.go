package binance

import (
	"context"
	"fmt"
	"github.com/adshao/go-binance/v2"
	"gitlab.com/aoterocom/AOBacktester/helpers"
	"gitlab.com/aoterocom/AOBacktester/models"
	"strconv"
	"time"
)

const klinesPageLimit = 1000

// BinanceService downloads historical klines. It only uses public market
// data endpoints.
type BinanceService struct {
	binanceClient *binance.Client
}

func NewBinanceService(apiKey string, apiSecret string) *BinanceService {
	return &BinanceService{binanceClient: binance.NewClient(apiKey, apiSecret)}
}

// NewBinanceServiceWithClient wraps an already configured client.
func NewBinanceServiceWithClient(client *binance.Client) *BinanceService {
	return &BinanceService{binanceClient: client}
}

// GetCandles pages through klines from from until to, keeping those whose
// closeTime falls in [from, to). A zero to means up to the latest kline.
func (bs *BinanceService) GetCandles(ctx context.Context, symbol string, interval string, from time.Time, to time.Time) ([]models.Candle, error) {
	startTime := from.UnixMilli()
	var endTime int64
	if !to.IsZero() {
		endTime = to.UnixMilli()
	}

	var candles []models.Candle
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		service := bs.binanceClient.NewKlinesService().Symbol(symbol).
			Interval(interval).Limit(klinesPageLimit).StartTime(startTime)
		if endTime > 0 {
			service = service.EndTime(endTime - 1)
		}
		klines, err := service.Do(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetching %s %s klines from %d: %w", symbol, interval, startTime, err)
		}

		for _, k := range klines {
			candle, err := klineToCandle(k)
			if err != nil {
				return nil, err
			}
			if candle.CloseTime < from.UnixMilli() || (endTime > 0 && candle.CloseTime >= endTime) {
				continue
			}
			candles = append(candles, candle)
		}

		if len(klines) < klinesPageLimit {
			break
		}
		startTime = klines[len(klines)-1].CloseTime + 1
		if endTime > 0 && startTime >= endTime {
			break
		}
		helpers.Logger.Debugln(fmt.Sprintf("fetched %d %s %s candles", len(candles), symbol, interval))
	}
	return candles, nil
}

func klineToCandle(k *binance.Kline) (models.Candle, error) {
	candle := models.Candle{OpenTime: k.OpenTime, CloseTime: k.CloseTime}
	fields := []struct {
		name  string
		value string
		dest  *float64
	}{
		{"open", k.Open, &candle.Open},
		{"high", k.High, &candle.High},
		{"low", k.Low, &candle.Low},
		{"close", k.Close, &candle.Close},
		{"volume", k.Volume, &candle.Volume},
	}
	for _, f := range fields {
		parsed, err := strconv.ParseFloat(f.value, 64)
		if err != nil {
			return models.Candle{}, fmt.Errorf("kline %d %s: %w", k.OpenTime, f.name, err)
		}
		*f.dest = parsed
	}
	return candle, nil
}
