package display

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/ProjectZuki/arduino-led-trigger/internal/color"
)

// Terminal draws the strip as a row of truecolor blocks, redrawing in place.
// Channel values are stretched from [0, MaxIntensity] to full range so the
// dimmed output stays visible.
type Terminal struct {
	mu    sync.Mutex
	w     *bufio.Writer
	last  Frame
	lastB uint8
}

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: bufio.NewWriter(w)}
}

func (t *Terminal) Present(f Frame, brightness uint8) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if brightness == t.lastB && equal(f, t.last) {
		return nil
	}
	t.last = f.Clone()
	t.lastB = brightness

	t.w.WriteString("\r")
	for _, c := range f {
		r, g, b := stretch(c.R, brightness), stretch(c.G, brightness), stretch(c.B, brightness)
		fmt.Fprintf(t.w, "\x1b[48;2;%d;%d;%dm ", r, g, b)
	}
	t.w.WriteString("\x1b[0m")
	return t.w.Flush()
}

func stretch(v uint8, brightness uint8) uint8 {
	s := int(v) * 255 / color.MaxIntensity
	if s > 255 {
		s = 255
	}
	return uint8(s * int(brightness) / 255)
}

func equal(a, b Frame) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Null discards every frame.
type Null struct{}

func (Null) Present(Frame, uint8) error { return nil }
