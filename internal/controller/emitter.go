package controller

import (
	"context"

	"github.com/ProjectZuki/arduino-led-trigger/internal/color"
	"github.com/ProjectZuki/arduino-led-trigger/internal/ir"
)

// StatusEmitter publishes device state changes.
type StatusEmitter interface {
	EmitStatus(ctx context.Context, id string, statusKey string, data interface{}) error
}

// Remote yields decoded remote control codes without blocking.
type Remote interface {
	Poll() (ir.Code, bool)
}

// Radio yields the bytes received since the last call without blocking.
type Radio interface {
	Poll() []byte
}

// Sensor returns one vibration sample per call.
type Sensor interface {
	Read() (int, error)
}

// Indicator drives the 3-channel status light.
type Indicator interface {
	Set(c color.Triple)
}

// IndicatorFunc adapts a function to Indicator.
type IndicatorFunc func(c color.Triple)

func (f IndicatorFunc) Set(c color.Triple) { f(c) }
