package display

import (
	"time"

	"github.com/ProjectZuki/arduino-led-trigger/internal/color"
)

// DefaultLength is the pixel count of the stock strip.
const DefaultLength = 144

// Frame is one color per pixel of the strip.
type Frame []color.Triple

func NewFrame(n int) Frame {
	return make(Frame, n)
}

func (f Frame) Fill(c color.Triple) {
	for i := range f {
		f[i] = c
	}
}

func (f Frame) Clear() {
	f.Fill(color.Black)
}

// Set paints pixel i, ignoring positions outside the strip.
func (f Frame) Set(i int, c color.Triple) {
	if i >= 0 && i < len(f) {
		f[i] = c
	}
}

func (f Frame) IsBlack() bool {
	for _, c := range f {
		if !c.IsBlack() {
			return false
		}
	}
	return true
}

func (f Frame) Clone() Frame {
	return append(Frame(nil), f...)
}

// Display renders frames on the physical strip.
type Display interface {
	Present(f Frame, brightness uint8) error
}

// Cue is a frame held on the strip for a fixed time, used for
// acknowledgement flashes and queue previews.
type Cue struct {
	Frame Frame
	Hold  time.Duration
}
