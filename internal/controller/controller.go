package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ProjectZuki/arduino-led-trigger/internal/color"
	"github.com/ProjectZuki/arduino-led-trigger/internal/command"
	"github.com/ProjectZuki/arduino-led-trigger/internal/device"
	"github.com/ProjectZuki/arduino-led-trigger/internal/display"
	"github.com/ProjectZuki/arduino-led-trigger/internal/logging"
	"github.com/ProjectZuki/arduino-led-trigger/internal/rf"
	"github.com/ProjectZuki/arduino-led-trigger/internal/storage"
	"github.com/ProjectZuki/arduino-led-trigger/internal/trail"
)

const (
	// StatusID names this strip in published status.
	StatusID = "strip"

	wheelDelay  = 25 * time.Millisecond
	wheelFrames = 255
	idleDelay   = 10 * time.Millisecond
)

// Options wires the collaborators. Nil sources are skipped.
type Options struct {
	StripLength int
	TrailGap    bool

	Remotes   []Remote
	Radios    []Radio
	Sensor    Sensor
	Display   display.Display
	Indicator Indicator
	Store     storage.Store
	Emitter   StatusEmitter
}

type radio struct {
	src Radio
	dec *rf.Decoder
}

// Controller owns the device state and runs the single control loop. All
// state changes happen on the goroutine calling Run or Tick; Snapshot may be
// called from anywhere.
type Controller struct {
	mu     sync.Mutex
	state  *device.State
	queues *command.Queues
	interp *command.Interpreter
	field  *trail.Field
	frame  display.Frame

	remotes   []Remote
	radios    []radio
	sensor    Sensor
	display   display.Display
	indicator Indicator
	emitter   StatusEmitter

	cues       []display.Cue
	cueShown   bool
	wheelStep  int
	wasRunning bool
	lastStatus device.Snapshot
	published  bool

	sleep func(ctx context.Context, d time.Duration)
}

func New(opts Options) *Controller {
	n := opts.StripLength
	if n <= 0 {
		n = display.DefaultLength
	}
	c := &Controller{
		state:     device.New(),
		queues:    command.NewQueues(),
		interp:    command.NewInterpreter(n, opts.Store),
		field:     trail.NewField(n, opts.TrailGap),
		frame:     display.NewFrame(n),
		remotes:   opts.Remotes,
		sensor:    opts.Sensor,
		display:   opts.Display,
		indicator: opts.Indicator,
		emitter:   opts.Emitter,
		sleep:     sleepCtx,
	}
	for _, r := range opts.Radios {
		if r != nil {
			c.radios = append(c.radios, radio{src: r, dec: rf.NewDecoder()})
		}
	}
	if c.display == nil {
		c.display = display.Null{}
	}
	if c.indicator == nil {
		c.indicator = IndicatorFunc(func(color.Triple) {})
	}
	if opts.Store != nil {
		c.restore(opts.Store)
	}
	return c
}

func (c *Controller) restore(s storage.Store) {
	st, err := storage.Load(s)
	if err != nil {
		logging.Warn("Failed to load saved settings: %s", err)
		return
	}
	c.state.Color = st.Color.Clamp()
	if st.Rainbow {
		c.state.Mode = device.Rainbow
	}
	logging.Info("Loaded color %s rainbow=%t", c.state.Color, st.Rainbow)
}

// Snapshot returns a copy of the current device state.
func (c *Controller) Snapshot() device.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Snapshot()
}

// Run ticks until ctx is done, then blanks the strip.
func (c *Controller) Run(ctx context.Context) error {
	logging.Info("Control loop started")
	for ctx.Err() == nil {
		c.Tick(ctx)
	}
	c.blank()
	c.indicator.Set(color.Black)
	logging.Info("Control loop stopped")
	return ctx.Err()
}

// Tick runs one loop iteration: poll every input once, render one frame and
// wait out the frame delay.
func (c *Controller) Tick(ctx context.Context) {
	c.mu.Lock()
	c.pollRemotes()
	c.pollRadios()
	sample := c.readSensor()
	delay := c.render(sample)
	snap := c.state.Snapshot()
	c.mu.Unlock()

	c.publish(ctx, snap)
	ticks.Inc()
	c.sleep(ctx, delay)
}

func (c *Controller) pollRemotes() {
	for _, r := range c.remotes {
		code, ok := r.Poll()
		if !ok {
			continue
		}
		if !code.Valid {
			logging.Debug("Ignoring undecodable remote signal %s", code)
			continue
		}
		cues, err := c.interp.Apply(code.Command, c.state, c.queues)
		c.cues = append(c.cues, cues...)
		switch {
		case errors.Is(err, command.ErrUnknownCode):
			logging.Warn("Unknown remote code: %s", err)
		case errors.Is(err, command.ErrRemoteDisabled):
			logging.Debug("Remote disabled, ignoring %s", code)
		case err != nil:
			logging.Error("Remote code %s failed: %s", code, err)
		}
	}
}

// pollRadios adopts the newest wireless record. It runs after the remotes so
// a record wins over a remote code received in the same tick.
func (c *Controller) pollRadios() {
	for _, r := range c.radios {
		rec, ok := r.dec.Drain(r.src.Poll())
		if !ok {
			continue
		}
		logging.Debug("Received wireless record %s", rec)
		c.adopt(rec)
	}
}

func (c *Controller) adopt(rec rf.Record) {
	s := c.state
	s.Color = rec.Color()
	s.Running = rec.PowerOn
	switch {
	case rec.RainbowOn:
		s.Mode = device.Rainbow
		if s.Animation != device.Wheel {
			s.Animation = device.Wheel
			c.wheelStep = 0
		}
	case s.Animation == device.Wheel:
		s.Animation = device.Static
		s.Mode = device.Solid
		s.BlankPending = true
	case s.Mode == device.Rainbow:
		s.Mode = device.Solid
		s.BlankPending = true
	}
}

func (c *Controller) readSensor() int {
	if c.sensor == nil || !c.state.Running {
		return 0
	}
	v, err := c.sensor.Read()
	if err != nil {
		logging.Debug("Vibration sensor read failed: %s", err)
	}
	return v
}

// render presents one frame and returns how long to hold it.
func (c *Controller) render(sample int) time.Duration {
	s := c.state
	if len(c.cues) > 0 {
		cue := c.cues[0]
		c.cues = c.cues[1:]
		c.present(cue.Frame)
		c.cueShown = true
		return cue.Hold
	}

	if !s.Running {
		if c.wasRunning {
			logging.Info("Strip stopped")
			c.field.Reset()
			c.indicator.Set(color.Black)
			c.wasRunning = false
			c.blank()
		} else if c.cueShown {
			c.blank()
		}
		c.cueShown = false
		s.BlankPending = false
		return idleDelay
	}
	if !c.wasRunning {
		logging.Info("Strip running")
		c.wasRunning = true
	}

	c.indicator.Set(s.Color)
	if s.BlankPending {
		s.BlankPending = false
		c.field.Reset()
		c.blank()
		return 0
	}

	switch s.Animation {
	case device.Ripple:
		f := c.field.Step(s.Triggered(sample), c.seed)
		c.present(f)
		return c.flashGap()
	case device.Wheel:
		for i := range c.frame {
			c.frame[i] = color.Wheel(uint8(i - 2*c.wheelStep)).Limit()
		}
		c.wheelStep = (c.wheelStep + 1) % wheelFrames
		c.present(c.frame)
		return wheelDelay
	default:
		c.frame.Fill(c.seed())
		c.present(c.frame)
		return c.flashGap()
	}
}

// seed picks the color for the next fill or trail according to the mode.
func (c *Controller) seed() color.Triple {
	s := c.state
	switch s.Mode {
	case device.Rainbow:
		return s.NextRainbow().Limit()
	case device.MulticolorCycle:
		q := c.queues.Multicolor
		if q.Len() == 0 {
			return s.Color
		}
		col, _ := q.PeekAt(s.CycleIndex % q.Len())
		s.CycleIndex = (s.CycleIndex + 1) % q.Len()
		return col
	}
	return s.Color
}

func (c *Controller) flashGap() time.Duration {
	if c.state.FlashGap <= 0 {
		return 0
	}
	return time.Duration(c.state.FlashGap) * time.Millisecond
}

func (c *Controller) present(f display.Frame) {
	if err := c.display.Present(f, uint8(c.state.Brightness)); err != nil {
		logging.Warn("Display error: %s", err)
	}
}

func (c *Controller) blank() {
	c.frame.Clear()
	c.present(c.frame)
}

func (c *Controller) publish(ctx context.Context, snap device.Snapshot) {
	if c.emitter == nil || (c.published && snap == c.lastStatus) {
		return
	}
	if err := c.emitter.EmitStatus(ctx, StatusID, "state", snap); err != nil {
		logging.Warn("Failed to publish status: %s", err)
		return
	}
	c.lastStatus = snap
	c.published = true
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
