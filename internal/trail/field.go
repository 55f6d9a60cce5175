package trail

import (
	"github.com/ProjectZuki/arduino-led-trigger/internal/color"
	"github.com/ProjectZuki/arduino-led-trigger/internal/display"
)

const (
	// Length is the number of lit pixels in one trail.
	Length = 25
	// Max is the number of trails that can be in flight at once.
	Max = 10
)

type Trail struct {
	Position int
	Active   bool
	Color    color.Triple
}

// Field animates up to Max trails travelling along one strip.
type Field struct {
	trails [Max]Trail
	frame  display.Frame
	gap    bool
}

// NewField returns a field for a strip of n pixels. With gap set, the pixel
// just behind each trail is blanked so that trails following each other
// closely stay visually separate.
func NewField(n int, gap bool) *Field {
	return &Field{frame: display.NewFrame(n), gap: gap}
}

// Step advances the simulation by one frame. When trigger is set a new trail
// is started in the first free slot with the color returned by seed; if every
// slot is busy the trigger is dropped. The returned frame is owned by the
// field and is overwritten by the next Step.
func (f *Field) Step(trigger bool, seed func() color.Triple) display.Frame {
	if trigger {
		f.spawn(seed)
	}

	f.frame.Clear()
	n := len(f.frame)
	for i := range f.trails {
		t := &f.trails[i]
		if !t.Active {
			continue
		}
		for j := 0; j < Length; j++ {
			f.frame.Set(t.Position-j, t.Color)
		}
		if f.gap {
			f.frame.Set(t.Position-Length, color.Black)
		}

		t.Position++
		if t.Position >= n+Length+1 {
			t.Active = false
			t.Position = -1
		}
	}
	return f.frame
}

func (f *Field) spawn(seed func() color.Triple) {
	for i := range f.trails {
		if f.trails[i].Active {
			continue
		}
		f.trails[i] = Trail{Position: 0, Active: true, Color: seed()}
		trailsStarted.Inc()
		return
	}
	triggersDropped.Inc()
}

// Active returns the number of trails in flight.
func (f *Field) Active() int {
	n := 0
	for _, t := range f.trails {
		if t.Active {
			n++
		}
	}
	return n
}

// Reset stops every trail.
func (f *Field) Reset() {
	for i := range f.trails {
		f.trails[i] = Trail{Position: -1}
	}
	f.frame.Clear()
}
