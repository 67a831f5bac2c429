package binance

import (
	"context"
	"encoding/json"
	"github.com/adshao/go-binance/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

const (
	hourMs int64 = 3600000
	origin int64 = 1672531200000
)

// klineServer serves total hourly klines from origin honouring the
// startTime, endTime and limit query parameters.
func klineServer(t *testing.T, total int, requests *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/klines", r.URL.Path)
		*requests++

		query := r.URL.Query()
		start, _ := strconv.ParseInt(query.Get("startTime"), 10, 64)
		limit, _ := strconv.Atoi(query.Get("limit"))
		end := int64(1<<62)
		if value := query.Get("endTime"); value != "" {
			end, _ = strconv.ParseInt(value, 10, 64)
		}

		rows := [][]interface{}{}
		for i := 0; i < total && len(rows) < limit; i++ {
			openTime := origin + int64(i)*hourMs
			if openTime < start || openTime > end {
				continue
			}
			price := strconv.Itoa(100 + i%10)
			rows = append(rows, []interface{}{
				openTime, price, price, price, price, "1.5",
				openTime + hourMs - 1, "150", 10, "0.7", "70", "0",
			})
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(rows))
	}))
}

func newTestService(server *httptest.Server) *BinanceService {
	client := binance.NewClient("", "")
	client.BaseURL = server.URL
	client.HTTPClient = server.Client()
	return NewBinanceServiceWithClient(client)
}

func TestGetCandlesPagesUntilTo(t *testing.T) {
	requests := 0
	server := klineServer(t, 1500, &requests)
	defer server.Close()

	from := time.UnixMilli(origin)
	to := time.UnixMilli(origin + 1200*hourMs)
	candles, err := newTestService(server).GetCandles(context.Background(), "BTCUSDT", "1h", from, to)
	require.NoError(t, err)

	require.Len(t, candles, 1200)
	assert.Equal(t, 2, requests)
	assert.Equal(t, origin, candles[0].OpenTime)
	assert.Equal(t, origin+1200*hourMs-1, candles[1199].CloseTime)
	assert.Equal(t, 109.0, candles[9].Close)
	assert.Equal(t, 1.5, candles[9].Volume)
	for i := 1; i < len(candles); i++ {
		assert.Greater(t, candles[i].CloseTime, candles[i-1].CloseTime)
	}
}

func TestGetCandlesWithoutUpperBound(t *testing.T) {
	requests := 0
	server := klineServer(t, 30, &requests)
	defer server.Close()

	candles, err := newTestService(server).GetCandles(context.Background(), "BTCUSDT", "1h",
		time.UnixMilli(origin+5*hourMs), time.Time{})
	require.NoError(t, err)
	assert.Len(t, candles, 25)
	assert.Equal(t, 1, requests)
}

func TestGetCandlesHonoursCancellation(t *testing.T) {
	requests := 0
	server := klineServer(t, 30, &requests)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestService(server).GetCandles(ctx, "BTCUSDT", "1h", time.UnixMilli(origin), time.Time{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, requests)
}

func TestKlineToCandleRejectsMalformedPrices(t *testing.T) {
	_, err := klineToCandle(&binance.Kline{OpenTime: 1, CloseTime: 2, Open: "x", High: "1", Low: "1", Close: "1", Volume: "1"})
	assert.Error(t, err)
}
