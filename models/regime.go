package models

import (
	"fmt"
	"strings"
)

// Regime is a coarse trend classification of a bar.
type Regime string

const (
	RegimeBull  Regime = "BULL"
	RegimeBear  Regime = "BEAR"
	RegimeRange Regime = "RANGE"
)

func ParseRegime(s string) (Regime, error) {
	switch Regime(strings.ToUpper(strings.TrimSpace(s))) {
	case RegimeBull:
		return RegimeBull, nil
	case RegimeBear:
		return RegimeBear, nil
	case RegimeRange:
		return RegimeRange, nil
	default:
		return "", fmt.Errorf("%q is not a known regime", s)
	}
}

// RegimePoint is the regime of one higher-timeframe bar, stamped with that
// bar's closeTime.
type RegimePoint struct {
	Time   int64   `json:"time"`
	Regime Regime  `json:"regime"`
	Slope  float64 `json:"slope"`
}

// RegimeSet is an immutable allow-list of regimes.
type RegimeSet uint8

func NewRegimeSet(regimes ...Regime) RegimeSet {
	var set RegimeSet
	for _, r := range regimes {
		set |= regimeBit(r)
	}
	return set
}

func regimeBit(r Regime) RegimeSet {
	switch r {
	case RegimeBull:
		return 1
	case RegimeBear:
		return 2
	case RegimeRange:
		return 4
	}
	return 0
}

func (s RegimeSet) Contains(r Regime) bool {
	bit := regimeBit(r)
	return bit != 0 && s&bit != 0
}

func (s RegimeSet) IsEmpty() bool {
	return s == 0
}

func (s RegimeSet) Regimes() []Regime {
	var regimes []Regime
	for _, r := range []Regime{RegimeBull, RegimeBear, RegimeRange} {
		if s.Contains(r) {
			regimes = append(regimes, r)
		}
	}
	return regimes
}

func (s RegimeSet) String() string {
	var names []string
	for _, r := range s.Regimes() {
		names = append(names, string(r))
	}
	return strings.Join(names, ",")
}

func (s RegimeSet) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *RegimeSet) UnmarshalText(text []byte) error {
	var set RegimeSet
	for _, name := range strings.Split(string(text), ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		r, err := ParseRegime(name)
		if err != nil {
			return err
		}
		set |= regimeBit(r)
	}
	*s = set
	return nil
}
