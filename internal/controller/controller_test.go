package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ProjectZuki/arduino-led-trigger/internal/color"
	"github.com/ProjectZuki/arduino-led-trigger/internal/command"
	"github.com/ProjectZuki/arduino-led-trigger/internal/device"
	"github.com/ProjectZuki/arduino-led-trigger/internal/display"
	"github.com/ProjectZuki/arduino-led-trigger/internal/ir"
	"github.com/ProjectZuki/arduino-led-trigger/internal/rf"
	"github.com/ProjectZuki/arduino-led-trigger/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strip = 8

type recorder struct {
	frames []display.Frame
}

func (r *recorder) Present(f display.Frame, _ uint8) error {
	r.frames = append(r.frames, f.Clone())
	return nil
}

func (r *recorder) last() display.Frame {
	return r.frames[len(r.frames)-1]
}

type byteRadio struct {
	pending []byte
}

func (b *byteRadio) Poll() []byte {
	out := b.pending
	b.pending = nil
	return out
}

type fakeSensor struct {
	samples []int
}

func (f *fakeSensor) Read() (int, error) {
	if len(f.samples) == 0 {
		return 0, nil
	}
	v := f.samples[0]
	f.samples = f.samples[1:]
	return v, nil
}

type fakeEmitter struct {
	calls []interface{}
}

func (f *fakeEmitter) EmitStatus(_ context.Context, _ string, _ string, data interface{}) error {
	f.calls = append(f.calls, data)
	return nil
}

type harness struct {
	c         *Controller
	remote    *ir.Channel
	radio     *byteRadio
	sensor    *fakeSensor
	display   *recorder
	indicator []color.Triple
	emitter   *fakeEmitter
	store     *storage.Memory
	sleeps    []time.Duration
}

func newHarness(t *testing.T, store *storage.Memory) *harness {
	t.Helper()
	h := &harness{
		remote:  ir.NewChannel(8),
		radio:   &byteRadio{},
		sensor:  &fakeSensor{},
		display: &recorder{},
		emitter: &fakeEmitter{},
		store:   store,
	}
	opts := Options{
		StripLength: strip,
		TrailGap:    true,
		Remotes:     []Remote{h.remote},
		Radios:      []Radio{h.radio},
		Sensor:      h.sensor,
		Display:     h.display,
		Indicator:   IndicatorFunc(func(c color.Triple) { h.indicator = append(h.indicator, c) }),
		Emitter:     h.emitter,
	}
	if store != nil {
		opts.Store = store
	}
	h.c = New(opts)
	h.c.sleep = func(_ context.Context, d time.Duration) { h.sleeps = append(h.sleeps, d) }
	return h
}

func (h *harness) press(code int) {
	h.remote.Send(ir.Code{Command: code, Protocol: "nec", Valid: true})
}

func (h *harness) tick(n int) {
	for i := 0; i < n; i++ {
		h.c.Tick(context.Background())
	}
}

func filled(c color.Triple) display.Frame {
	f := display.NewFrame(strip)
	f.Fill(c)
	return f
}

func TestWirelessRecordTurnsOn(t *testing.T) {
	h := newHarness(t, nil)
	h.radio.pending = []byte{0x7E, 10, 20, 30, 1, 0, 61, 0x7F}
	h.tick(1)

	snap := h.c.Snapshot()
	assert.Equal(t, [3]uint8{10, 20, 30}, [3]uint8{snap.Red, snap.Green, snap.Blue})
	assert.True(t, snap.Running)
	assert.Equal(t, filled(color.Triple{R: 10, G: 20, B: 30}), h.display.last())
	assert.Equal(t, color.Triple{R: 10, G: 20, B: 30}, h.indicator[len(h.indicator)-1])
}

func TestCorruptWirelessRecordIgnored(t *testing.T) {
	h := newHarness(t, nil)
	h.radio.pending = []byte{0x7E, 10, 20, 30, 1, 0, 62, 0x7F}
	h.tick(1)
	assert.False(t, h.c.Snapshot().Running)
}

func TestPaletteCodeBlanksOnceThenRenders(t *testing.T) {
	h := newHarness(t, nil)
	h.press(command.ToggleRun)
	h.tick(2)
	require.True(t, h.c.Snapshot().Running)

	h.press(command.PaletteRed)
	h.tick(1)

	snap := h.c.Snapshot()
	red := color.NamedRed.Limit()
	assert.Equal(t, red, color.Triple{R: snap.Red, G: snap.Green, B: snap.Blue})
	assert.Equal(t, "solid", snap.Mode)
	assert.False(t, snap.Modifier)
	assert.True(t, h.display.last().IsBlack(), "one blank frame first")

	h.tick(1)
	assert.Equal(t, filled(red), h.display.last())
}

func TestWirelessOverridesRemoteInSameTick(t *testing.T) {
	h := newHarness(t, nil)
	h.press(command.PaletteBlue)
	h.radio.pending = []byte{0x7E, 10, 20, 30, 1, 0, 61, 0x7F}
	h.tick(1)

	snap := h.c.Snapshot()
	assert.Equal(t, uint8(30), snap.Blue)
	assert.Equal(t, uint8(10), snap.Red)
}

func TestUnknownCodeBlinksTwice(t *testing.T) {
	h := newHarness(t, nil)
	before := h.c.Snapshot()
	h.press(0x99)
	h.tick(4)

	assert.Equal(t, before, h.c.Snapshot())
	require.Len(t, h.display.frames, 4)
	fault := color.Triple{R: color.MaxIntensity}
	assert.Equal(t, fault, h.display.frames[0][0])
	assert.True(t, h.display.frames[1].IsBlack())
	assert.Equal(t, fault, h.display.frames[2][0])
	assert.True(t, h.display.frames[3].IsBlack())
}

func TestInvalidProtocolIgnored(t *testing.T) {
	h := newHarness(t, nil)
	h.remote.Send(ir.Code{Command: 0x99, Protocol: "unknown"})
	h.tick(1)
	assert.Empty(t, h.display.frames, "no fault flash for undecodable signals")
}

func TestRippleTriggeredBySensor(t *testing.T) {
	h := newHarness(t, nil)
	h.press(command.PaletteGreen)
	h.tick(1)
	h.press(command.Ripple)
	h.tick(1) // blank
	require.Equal(t, "ripple", h.c.Snapshot().Animation)

	h.sensor.samples = []int{device.DefaultSensitivity + 1}
	h.tick(1)
	green := color.NamedGreen.Limit()
	assert.Equal(t, green, h.display.last()[0])
	assert.True(t, h.display.last()[1:].IsBlack())

	h.tick(1)
	assert.Equal(t, green, h.display.last()[1])

	h.sensor.samples = []int{device.DefaultSensitivity}
	h.tick(1)
	assert.Equal(t, 1, h.c.field.Active(), "reading at threshold does not trigger")
	assert.Equal(t, time.Duration(device.DefaultFlashGap)*time.Millisecond, h.sleeps[len(h.sleeps)-1])
}

func TestRainbowModeSeedsTrails(t *testing.T) {
	h := newHarness(t, nil)
	h.press(command.Ripple)
	h.tick(1)
	h.press(command.Rainbow)
	h.sensor.samples = []int{1000}
	h.tick(1)

	assert.Equal(t, "rainbow", h.c.Snapshot().Mode)
	assert.Equal(t, color.Rainbow[0].Limit(), h.display.last()[0])
}

func TestWheelExitsOnRainbowOffRecord(t *testing.T) {
	h := newHarness(t, nil)
	on, err := rf.Encode(rf.Record{Red: 1, PowerOn: true, RainbowOn: true})
	require.NoError(t, err)
	h.radio.pending = on
	h.tick(3)

	snap := h.c.Snapshot()
	require.Equal(t, "wheel", snap.Animation)
	assert.Equal(t, wheelDelay, h.sleeps[len(h.sleeps)-1])
	assert.False(t, h.display.last().IsBlack())

	off, err := rf.Encode(rf.Record{Red: 1, PowerOn: true})
	require.NoError(t, err)
	h.radio.pending = off
	h.tick(1)

	snap = h.c.Snapshot()
	assert.Equal(t, "static", snap.Animation)
	assert.Equal(t, "solid", snap.Mode)
	assert.True(t, h.display.last().IsBlack())
}

func TestToggleOffBlanksStripAndIndicator(t *testing.T) {
	h := newHarness(t, nil)
	h.press(command.PaletteWhite)
	h.press(command.ToggleRun)
	h.tick(1)
	h.tick(1)
	h.tick(1)
	require.True(t, h.c.Snapshot().Running)
	require.False(t, h.display.last().IsBlack())

	h.press(command.ToggleRun)
	h.tick(1)
	assert.False(t, h.c.Snapshot().Running)
	assert.True(t, h.display.last().IsBlack())
	assert.Equal(t, color.Black, h.indicator[len(h.indicator)-1])
}

func TestPowerOffRecordStops(t *testing.T) {
	h := newHarness(t, nil)
	h.radio.pending = []byte{0x7E, 10, 20, 30, 1, 0, 61, 0x7F}
	h.tick(1)
	h.radio.pending = []byte{0x7E, 10, 20, 30, 0, 0, 60, 0x7F}
	h.tick(1)
	assert.False(t, h.c.Snapshot().Running)
	assert.True(t, h.display.last().IsBlack())
}

func TestMulticolorCycleRotatesQueue(t *testing.T) {
	h := newHarness(t, nil)
	h.press(command.PaletteRed)
	h.tick(1)
	h.press(command.PushMulticolor)
	h.tick(7) // one tick to apply, six flash cues
	h.press(command.PaletteBlue)
	h.tick(1)
	h.press(command.PushMulticolor)
	h.tick(7)

	h.press(command.ToggleRun)
	h.tick(2) // apply + blank
	h.press(command.ToggleMulticolor)
	h.tick(3) // two preview cues, then the blank
	require.Equal(t, "multicolor", h.c.Snapshot().Mode)

	h.tick(1)
	first := h.display.last()[0]
	h.tick(1)
	second := h.display.last()[0]
	assert.Equal(t, color.NamedRed.Limit(), first)
	assert.Equal(t, color.NamedBlue.Limit(), second)
}

func TestRestoreFromStore(t *testing.T) {
	store := &storage.Memory{}
	require.NoError(t, storage.Save(store, storage.Settings{Color: color.Triple{R: 7, G: 8, B: 9}, Rainbow: true}))

	h := newHarness(t, store)
	snap := h.c.Snapshot()
	assert.Equal(t, uint8(8), snap.Green)
	assert.Equal(t, "rainbow", snap.Mode)
}

func TestStatusPublishedOnChange(t *testing.T) {
	h := newHarness(t, nil)
	h.tick(3)
	assert.Len(t, h.emitter.calls, 1)

	h.press(command.BrightnessDown)
	h.tick(1)
	require.Len(t, h.emitter.calls, 2)
	assert.Equal(t, device.DefaultBrightness-device.BrightnessStep, h.emitter.calls[1].(device.Snapshot).Brightness)
}

func TestRunStopsOnCancel(t *testing.T) {
	h := newHarness(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := h.c.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.True(t, h.display.last().IsBlack())
}

func TestModifierAckStaysVisible(t *testing.T) {
	h := newHarness(t, nil)
	h.press(command.ToggleRun)
	h.tick(2)
	frames, sleeps := len(h.display.frames), len(h.sleeps)

	h.press(command.Secondary)
	h.tick(1)
	require.Len(t, h.display.frames, frames+1)
	ack := h.display.last()
	assert.Equal(t, color.Triple{B: color.MaxIntensity}, ack[0])
	assert.Greater(t, h.sleeps[sleeps], time.Duration(0), "ack frame is held")
	assert.True(t, h.c.Snapshot().Modifier)
}

func TestCueWhileStoppedIsCleared(t *testing.T) {
	h := newHarness(t, nil)
	h.press(command.Secondary)
	h.tick(1)
	require.False(t, h.c.Snapshot().Running)
	assert.Equal(t, color.Triple{B: color.MaxIntensity}, h.display.last()[0])

	h.tick(1)
	assert.True(t, h.display.last().IsBlack(), "stopped strip does not keep the ack pixel")

	n := len(h.display.frames)
	h.tick(3)
	assert.Len(t, h.display.frames, n, "blanked once")
}

func TestRainbowOffRecordKeepsRipple(t *testing.T) {
	h := newHarness(t, nil)
	h.press(command.Ripple)
	h.tick(1)
	h.press(command.Rainbow)
	h.tick(1)
	require.Equal(t, "ripple", h.c.Snapshot().Animation)
	require.Equal(t, "rainbow", h.c.Snapshot().Mode)

	off, err := rf.Encode(rf.Record{Red: 1, PowerOn: true})
	require.NoError(t, err)
	h.radio.pending = off
	h.tick(1)

	snap := h.c.Snapshot()
	assert.Equal(t, "ripple", snap.Animation)
	assert.Equal(t, "solid", snap.Mode)
}
