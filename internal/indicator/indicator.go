// Package indicator drives the three-channel status light.
package indicator

import (
	"fmt"

	"github.com/ProjectZuki/arduino-led-trigger/internal/color"
	"github.com/ProjectZuki/arduino-led-trigger/internal/logging"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
)

// PWMFrequency is the carrier used to dim each channel.
const PWMFrequency = physic.KiloHertz

// RGB drives a common-cathode RGB LED from three GPIO pins. Channels are
// dimmed with PWM where the pin supports it and switched fully on or off
// where it does not.
type RGB struct {
	pins   [3]gpio.PinOut
	last   color.Triple
	primed bool
	noPWM  [3]bool
}

func NewRGB(r, g, b gpio.PinOut) *RGB {
	return &RGB{pins: [3]gpio.PinOut{r, g, b}}
}

// Open looks up the red, green and blue pins by name.
func Open(names [3]string) (*RGB, error) {
	var pins [3]gpio.PinOut
	for i, n := range names {
		p := gpioreg.ByName(n)
		if p == nil {
			return nil, fmt.Errorf("indicator: no gpio pin %q", n)
		}
		pins[i] = p
	}
	return NewRGB(pins[0], pins[1], pins[2]), nil
}

// Set shows c. Repeated calls with the same color do not touch the pins.
func (l *RGB) Set(c color.Triple) {
	if l.primed && c == l.last {
		return
	}
	l.last, l.primed = c, true
	for i, v := range [3]uint8{c.R, c.G, c.B} {
		if err := l.drive(i, v); err != nil {
			logging.Warn("Indicator pin %s: %s", l.pins[i], err)
		}
	}
}

func (l *RGB) drive(i int, v uint8) error {
	p := l.pins[i]
	if !l.noPWM[i] {
		if err := p.PWM(duty(v), PWMFrequency); err == nil {
			return nil
		}
		logging.Debug("Pin %s has no PWM, falling back to on/off", p)
		l.noPWM[i] = true
	}
	return p.Out(gpio.Level(v > 0))
}

func duty(v uint8) gpio.Duty {
	if v >= color.MaxIntensity {
		return gpio.DutyMax
	}
	return gpio.Duty(int64(gpio.DutyMax) * int64(v) / color.MaxIntensity)
}

// Log stands in for the light on hosts without one, logging each change.
type Log struct {
	last color.Triple
}

func (l *Log) Set(c color.Triple) {
	if c == l.last {
		return
	}
	l.last = c
	logging.Debug("Indicator %s", c)
}
