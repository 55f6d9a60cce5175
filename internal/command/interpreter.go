package command

import (
	"errors"
	"fmt"
	"time"

	"github.com/ProjectZuki/arduino-led-trigger/internal/color"
	"github.com/ProjectZuki/arduino-led-trigger/internal/device"
	"github.com/ProjectZuki/arduino-led-trigger/internal/display"
	"github.com/ProjectZuki/arduino-led-trigger/internal/logging"
	"github.com/ProjectZuki/arduino-led-trigger/internal/queue"
	"github.com/ProjectZuki/arduino-led-trigger/internal/storage"
)

var (
	ErrUnknownCode    = errors.New("command: unknown code")
	ErrRemoteDisabled = errors.New("command: remote disabled")
)

const (
	channelStep  = color.MaxIntensity / 5
	flashHold    = 200 * time.Millisecond
	previewHold  = 2 * time.Second
	faultHold    = 50 * time.Millisecond
	faultBlinks  = 2
	pushFlashes  = 3
	saveFlashes  = 3
)

// Queues are the two preset slot queues.
type Queues struct {
	Preset     *queue.ColorQueue
	Multicolor *queue.ColorQueue
}

func NewQueues() *Queues {
	return &Queues{Preset: queue.New(), Multicolor: queue.New()}
}

// call carries one Apply through its handler.
type call struct {
	in   *Interpreter
	s    *device.State
	q    *Queues
	cues []display.Cue

	// early skips the common cleanup entirely.
	early bool
	// keepMode and keepAnimation exempt those fields from the cleanup.
	keepMode      bool
	keepAnimation bool
}

type entry struct {
	group string
	run   func(c *call)
}

// Interpreter maps remote codes to state transitions.
type Interpreter struct {
	store    storage.Store
	stripLen int
	table    map[int]entry
}

// NewInterpreter returns an interpreter for a strip of stripLen pixels. store
// may be nil, in which case Save only flashes.
func NewInterpreter(stripLen int, store storage.Store) *Interpreter {
	if stripLen <= 0 {
		stripLen = display.DefaultLength
	}
	in := &Interpreter{store: store, stripLen: stripLen}
	in.table = buildTable()
	return in
}

// Apply runs code against s and q. It returns the visual cues to play before
// the next regular frame.
//
// Every recognised code, except entering Rainbow and latching the modifier,
// finishes by returning the mode to Solid, clearing the modifier and asking
// for one blank frame.
func (in *Interpreter) Apply(code int, s *device.State, q *Queues) ([]display.Cue, error) {
	if s.RemoteDisabled {
		return nil, ErrRemoteDisabled
	}

	e, ok := in.table[code]
	if !ok {
		codesApplied.WithLabelValues("unknown").Inc()
		return in.fault(faultBlinks), fmt.Errorf("code %#02x: %w", code, ErrUnknownCode)
	}

	c := &call{in: in, s: s, q: q}
	e.run(c)
	codesApplied.WithLabelValues(e.group).Inc()
	logging.Debug("Applied remote code %#02x (%s)", code, e.group)

	if c.early {
		return c.cues, nil
	}
	if !c.keepMode {
		s.Mode = device.Solid
	}
	if !c.keepAnimation {
		s.Animation = device.Static
	}
	s.Modifier = false
	s.BlankPending = true
	return c.cues, nil
}

func buildTable() map[int]entry {
	t := map[int]entry{
		BrightnessUp:   {"brightness", func(c *call) { c.s.AdjustBrightness(device.BrightnessStep) }},
		BrightnessDown: {"brightness", func(c *call) { c.s.AdjustBrightness(-device.BrightnessStep) }},
		ToggleRun:      {"run", toggleRun},
		Secondary:      {"secondary", secondary},

		RedUp:     {"channel", adjust(color.Red, channelStep)},
		GreenUp:   {"channel", adjust(color.Green, channelStep)},
		BlueUp:    {"channel", adjust(color.Blue, channelStep)},
		RedDown:   {"channel", adjust(color.Red, -channelStep)},
		GreenDown: {"channel", adjust(color.Green, -channelStep)},
		BlueDown:  {"channel", adjust(color.Blue, -channelStep)},

		Quick: {"sensitivity", quick},
		Slow:  {"sensitivity", slow},

		Ripple:           {"animation", startAnimation(device.Ripple)},
		Wheel:            {"animation", startAnimation(device.Wheel)},
		PushMulticolor:   {"queue", push(func(q *Queues) *queue.ColorQueue { return q.Multicolor })},
		PushPreset:       {"queue", push(func(q *Queues) *queue.ColorQueue { return q.Preset })},
		PreviewPreset:    {"queue", previewPreset},
		Save:             {"save", save},
		ToggleMulticolor: {"mode", toggleMulticolor},
		Rainbow:          {"mode", enterRainbow},

		Flash: {"unassigned", func(*call) {}},
		Jump7: {"unassigned", func(*call) {}},
		Fade3: {"unassigned", func(*call) {}},
		Fade7: {"unassigned", func(*call) {}},
	}

	for code, named := range map[int]color.Triple{
		PaletteRed:            color.NamedRed,
		PaletteGreen:          color.NamedGreen,
		PaletteBlue:           color.NamedBlue,
		PaletteWhite:          color.NamedWhite,
		PaletteOrange:         color.NamedOrange,
		PaletteLawnGreen:      color.NamedLawnGreen,
		PaletteAqua:           color.NamedAqua,
		PaletteDeepPink:       color.NamedDeepPink,
		PaletteGold:           color.NamedGold,
		PaletteCyan:           color.NamedCyan,
		PaletteDarkViolet:     color.NamedDarkViolet,
		PaletteCoral:          color.NamedCoral,
		PaletteDarkGoldenrod:  color.NamedDarkGoldenrod,
		PaletteDarkCyan:       color.NamedDarkCyan,
		PaletteMagenta:        color.NamedMagenta,
		PalettePowderBlue:     color.NamedPowderBlue,
		PaletteYellow:         color.NamedYellow,
		PaletteDarkTurquoise:  color.NamedDarkTurquoise,
		PaletteDeepPink2:      color.NamedDeepPink,
		PaletteLightSteelBlue: color.NamedLightSteelBlue,
	} {
		scaled := named.Limit()
		t[code] = entry{"palette", func(c *call) { c.s.Color = scaled }}
	}
	return t
}

func toggleRun(c *call) {
	c.s.Running = !c.s.Running
	logging.Info("Strip %s", onOrOff(c.s.Running))
}

// secondary latches the modifier on first press. A second press while
// latched disables the remote for good.
func secondary(c *call) {
	if !c.s.Modifier {
		c.s.Modifier = true
		c.early = true
		f := c.in.frame()
		f[0] = color.Triple{B: color.MaxIntensity}
		c.cues = append(c.cues, display.Cue{Frame: f, Hold: flashHold})
		logging.Info("Modifier on")
		return
	}
	c.s.RemoteDisabled = true
	logging.Warn("Remote disabled")
}

func adjust(ch color.Channel, delta int) func(*call) {
	return func(c *call) {
		c.s.Color = c.s.Color.Adjust(ch, delta)
	}
}

func quick(c *call) {
	if c.s.Modifier {
		c.s.AdjustFlashGap(-device.FlashGapStep)
		logging.Info("Flash gap %dms", c.s.FlashGap)
		return
	}
	c.s.LowerSensitivity()
	logging.Info("Sensitivity threshold %d", c.s.Sensitivity)
}

func slow(c *call) {
	if c.s.Modifier {
		c.s.AdjustFlashGap(device.FlashGapStep)
		logging.Info("Flash gap %dms", c.s.FlashGap)
		return
	}
	c.s.RaiseSensitivity()
	logging.Info("Sensitivity threshold %d", c.s.Sensitivity)
}

func startAnimation(a device.Animation) func(*call) {
	return func(c *call) {
		c.s.Animation = a
		c.s.Running = true
		c.keepAnimation = true
		logging.Info("Starting %s animation", a)
	}
}

func push(pick func(*Queues) *queue.ColorQueue) func(*call) {
	return func(c *call) {
		q := pick(c.q)
		q.Push(c.s.Color)
		for i := 0; i < pushFlashes; i++ {
			c.cues = append(c.cues,
				display.Cue{Frame: c.in.queueFrame(q), Hold: flashHold},
				display.Cue{Frame: c.in.frame(), Hold: flashHold},
			)
		}
	}
}

func previewPreset(c *call) {
	c.cues = append(c.cues, c.in.preview(c.q.Preset)...)
}

func save(c *call) {
	if c.in.store != nil {
		err := storage.Save(c.in.store, storage.Settings{Color: c.s.Color, Rainbow: c.s.Mode == device.Rainbow})
		if err != nil {
			logging.Error("Failed to save settings: %s", err)
		}
	} else {
		logging.Warn("No storage configured, settings not saved")
	}
	for i := 0; i < saveFlashes; i++ {
		f := c.in.frame()
		f[0] = c.s.Color
		c.cues = append(c.cues,
			display.Cue{Frame: f, Hold: flashHold},
			display.Cue{Frame: c.in.frame(), Hold: flashHold},
		)
	}
}

// toggleMulticolor switches between MulticolorCycle and Solid, previewing
// the multicolor queue when switching on.
func toggleMulticolor(c *call) {
	c.keepMode = true
	c.keepAnimation = true
	if c.s.Mode == device.MulticolorCycle {
		c.s.Mode = device.Solid
		return
	}
	c.s.Mode = device.MulticolorCycle
	c.s.CycleIndex = 0
	c.cues = append(c.cues, c.in.preview(c.q.Multicolor)...)
}

// enterRainbow leaves the current color untouched and skips the cleanup,
// so the strip is not blanked.
func enterRainbow(c *call) {
	c.s.Mode = device.Rainbow
	c.early = true
}

func (in *Interpreter) frame() display.Frame {
	return display.NewFrame(in.stripLen)
}

// queueFrame shows the queue contents on the leading pixels.
func (in *Interpreter) queueFrame(q *queue.ColorQueue) display.Frame {
	f := in.frame()
	for i, c := range q.Colors() {
		f.Set(i, c)
	}
	return f
}

func (in *Interpreter) preview(q *queue.ColorQueue) []display.Cue {
	return []display.Cue{
		{Frame: in.queueFrame(q), Hold: previewHold},
		{Frame: in.frame(), Hold: 0},
	}
}

// fault blinks the first pixel red n times.
func (in *Interpreter) fault(n int) []display.Cue {
	var cues []display.Cue
	for i := 0; i < n; i++ {
		f := in.frame()
		f[0] = color.Triple{R: color.MaxIntensity}
		cues = append(cues,
			display.Cue{Frame: f, Hold: faultHold},
			display.Cue{Frame: in.frame(), Hold: faultHold},
		)
	}
	return cues
}

func onOrOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
