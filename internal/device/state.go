package device

import (
	"fmt"

	"github.com/ProjectZuki/arduino-led-trigger/internal/color"
)

type Mode int

const (
	Solid Mode = iota
	Rainbow
	MulticolorCycle
)

func (m Mode) String() string {
	switch m {
	case Solid:
		return "solid"
	case Rainbow:
		return "rainbow"
	case MulticolorCycle:
		return "multicolor"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Animation is the sub-state of the control loop while running.
type Animation int

const (
	// Static fills the strip with the current color every frame.
	Static Animation = iota
	// Ripple starts a trail whenever the vibration sensor crosses the threshold.
	Ripple
	// Wheel scrolls a hue wheel along the strip.
	Wheel
)

func (a Animation) String() string {
	switch a {
	case Static:
		return "static"
	case Ripple:
		return "ripple"
	case Wheel:
		return "wheel"
	}
	return fmt.Sprintf("animation(%d)", int(a))
}

const (
	DefaultBrightness  = 255
	BrightnessStep     = 20
	MinBrightness      = 1
	MaxBrightness      = 255
	DefaultSensitivity = 300
	SensitivityStep    = 50
	MaxSensitivity     = 1023
	// SafeSensitivity is used when lowering the threshold would leave the
	// sensor range.
	SafeSensitivity = 10
	// DefaultFlashGap is the delay between animation frames in milliseconds.
	DefaultFlashGap = 100
	FlashGapStep    = 50
)

// State is the mutable device record shared by the command interpreter and
// the control loop.
type State struct {
	Color      color.Triple
	Brightness int
	Mode       Mode
	Animation  Animation

	// Modifier is latched by the secondary function code and consumed by the
	// next command.
	Modifier bool

	// Sensitivity is the vibration reading above which a trail is started.
	Sensitivity int
	// FlashGap is the inter-frame delay in milliseconds. It is not bounded.
	FlashGap int

	Running bool
	// RemoteDisabled is set once and stops all remote input processing.
	RemoteDisabled bool
	// BlankPending asks the loop to clear the strip before the next render.
	BlankPending bool

	// RainbowIndex is the position in color.Rainbow for fills and seeds.
	RainbowIndex int
	// CycleIndex is the position in the multicolor queue.
	CycleIndex int
}

func New() *State {
	return &State{
		Brightness:  DefaultBrightness,
		Sensitivity: DefaultSensitivity,
		FlashGap:    DefaultFlashGap,
	}
}

func (s *State) AdjustBrightness(delta int) {
	s.Brightness = clamp(s.Brightness+delta, MinBrightness, MaxBrightness)
}

// LowerSensitivity drops the trigger threshold by one step. Dropping below
// zero snaps to SafeSensitivity rather than wrapping.
func (s *State) LowerSensitivity() {
	v := s.Sensitivity - SensitivityStep
	if v <= 0 || v >= MaxSensitivity {
		v = SafeSensitivity
	}
	s.Sensitivity = v
}

// RaiseSensitivity raises the trigger threshold by one step, capped at
// MaxSensitivity.
func (s *State) RaiseSensitivity() {
	s.Sensitivity = clamp(s.Sensitivity+SensitivityStep, 0, MaxSensitivity)
}

// Triggered reports whether a vibration sample crosses the threshold.
func (s *State) Triggered(sample int) bool {
	return sample > s.Sensitivity
}

func (s *State) AdjustFlashGap(delta int) {
	s.FlashGap += delta
}

// NextRainbow returns the current rainbow color and advances the index.
func (s *State) NextRainbow() color.Triple {
	c := color.Rainbow[s.RainbowIndex%len(color.Rainbow)]
	s.RainbowIndex = (s.RainbowIndex + 1) % len(color.Rainbow)
	return c
}

// Snapshot is the externally visible part of State.
type Snapshot struct {
	Red         uint8  `json:"red"`
	Green       uint8  `json:"green"`
	Blue        uint8  `json:"blue"`
	Brightness  int    `json:"brightness"`
	Mode        string `json:"mode"`
	Animation   string `json:"animation"`
	Running     bool   `json:"running"`
	Modifier    bool   `json:"modifier"`
	Sensitivity int    `json:"sensitivity"`
	FlashGap    int    `json:"flashGap"`
	Remote      bool   `json:"remoteEnabled"`
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Red:         s.Color.R,
		Green:       s.Color.G,
		Blue:        s.Color.B,
		Brightness:  s.Brightness,
		Mode:        s.Mode.String(),
		Animation:   s.Animation.String(),
		Running:     s.Running,
		Modifier:    s.Modifier,
		Sensitivity: s.Sensitivity,
		FlashGap:    s.FlashGap,
		Remote:      !s.RemoteDisabled,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
