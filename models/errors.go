package models

import (
	"errors"
	"fmt"
)

// ErrInsufficientData is returned when a series is shorter than the warm-up
// a configuration needs. Callers iterating over small windows treat it as an
// expected outcome.
var ErrInsufficientData = errors.New("insufficient data")

var ErrInvalidConfig = errors.New("invalid strategy config")

type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

var (
	ErrPositionAlreadyOpen = errors.New("position already open")
	ErrNoOpenPosition      = errors.New("no open position")
)
