package color

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// MaxIntensity is the per-channel ceiling applied to every color the strip
// shows. It keeps peak current within what the supply can deliver.
const MaxIntensity = 32

// Triple is one RGB pixel value.
type Triple struct {
	R, G, B uint8
}

var Black = Triple{}

type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	}
	return "unknown"
}

func (t Triple) String() string {
	return fmt.Sprintf("(%d,%d,%d)", t.R, t.G, t.B)
}

func (t Triple) IsBlack() bool {
	return t == Black
}

// Get returns the value of one channel.
func (t Triple) Get(c Channel) uint8 {
	switch c {
	case Red:
		return t.R
	case Green:
		return t.G
	default:
		return t.B
	}
}

// With returns a copy of t with channel c set to v.
func (t Triple) With(c Channel, v uint8) Triple {
	switch c {
	case Red:
		t.R = v
	case Green:
		t.G = v
	default:
		t.B = v
	}
	return t
}

// Adjust adds delta to channel c, clamped to [0, MaxIntensity].
func (t Triple) Adjust(c Channel, delta int) Triple {
	v := int(t.Get(c)) + delta
	if v < 0 {
		v = 0
	}
	if v > MaxIntensity {
		v = MaxIntensity
	}
	return t.With(c, uint8(v))
}

// Scale reduces each channel proportionally so that a full 255 maps just
// under limit. Hue ratios are preserved.
func (t Triple) Scale(limit uint8) Triple {
	return Triple{scale8(t.R, limit), scale8(t.G, limit), scale8(t.B, limit)}
}

// Limit scales a full range color under MaxIntensity.
func (t Triple) Limit() Triple {
	return t.Scale(MaxIntensity)
}

// Clamp caps each channel at MaxIntensity without touching the others.
func (t Triple) Clamp() Triple {
	if t.R > MaxIntensity {
		t.R = MaxIntensity
	}
	if t.G > MaxIntensity {
		t.G = MaxIntensity
	}
	if t.B > MaxIntensity {
		t.B = MaxIntensity
	}
	return t
}

func scale8(v, s uint8) uint8 {
	return uint8((uint16(v) * uint16(s)) >> 8)
}

// Wheel returns the fully saturated color at position hue on a 256 step
// color wheel.
func Wheel(hue uint8) Triple {
	r, g, b := colorful.Hsv(float64(hue)*360/256, 1, 1).RGB255()
	return Triple{r, g, b}
}

// ParseHex parses "#rrggbb" into a Triple.
func ParseHex(s string) (Triple, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Black, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Triple{r, g, b}, nil
}
