package models_test

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/aoterocom/AOBacktester/models"
	"testing"
)

func TestPositionLifecycle(t *testing.T) {
	var position models.Position
	assert.False(t, position.IsOpen())

	require.NoError(t, position.Enter(100, 1000, 3))
	assert.True(t, position.IsOpen())
	assert.ErrorIs(t, position.Enter(101, 2000, 4), models.ErrPositionAlreadyOpen)
	assert.InDelta(t, 98.0, position.StopPrice(0.02), 1e-9)
	assert.InDelta(t, 104.0, position.TargetPrice(0.04), 1e-9)

	trade, err := position.Exit(98, 5000, 7, models.ExitTriggerStopLoss, 0.001)
	require.NoError(t, err)
	assert.False(t, position.IsOpen())
	assert.InDelta(t, -2.0, trade.GrossPct, 1e-9)
	assert.InDelta(t, -2.2, trade.PnlPct, 1e-9)
	assert.Equal(t, int64(1000), trade.EntryTime)
	assert.Equal(t, int64(5000), trade.ExitTime)
	assert.Equal(t, 4, trade.BarsHeld)
	assert.Equal(t, models.ExitTriggerStopLoss, trade.ExitReason)

	_, err = position.Exit(98, 6000, 8, models.ExitTriggerSignal, 0.001)
	assert.ErrorIs(t, err, models.ErrNoOpenPosition)
}

func TestNetPctChargesRoundTripFee(t *testing.T) {
	assert.InDelta(t, 4.0, models.GrossPct(100, 104), 1e-9)
	assert.InDelta(t, 3.8, models.NetPct(4, 0.001), 1e-9)
	assert.InDelta(t, -0.2, models.NetPct(0, 0.001), 1e-9)
}
