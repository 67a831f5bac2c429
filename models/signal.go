package models

import (
	"fmt"
	"strings"
)

type SignalType string

const (
	SignalLong      SignalType = "LONG"
	SignalCloseLong SignalType = "CLOSE_LONG"
	SignalHold      SignalType = "HOLD"
)

// SignalVariant selects the entry detector a backtest runs with.
type SignalVariant string

const (
	VariantBreakout     SignalVariant = "breakout"
	VariantPullback     SignalVariant = "pullback"
	VariantLooseConfirm SignalVariant = "loose-confirm"
	VariantMeanRevert   SignalVariant = "mean-revert"
)

var SignalVariants = []SignalVariant{VariantBreakout, VariantPullback, VariantLooseConfirm, VariantMeanRevert}

func ParseSignalVariant(s string) (SignalVariant, error) {
	variant := SignalVariant(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range SignalVariants {
		if variant == known {
			return variant, nil
		}
	}
	return "", fmt.Errorf("%s is not a known signal variant", s)
}
