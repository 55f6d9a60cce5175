// Package sensor samples the piezo vibration sensor.
package sensor

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
)

// MaxReading is the top of the 10-bit ADC range.
const MaxReading = 1023

// ADC reads a raw sample from a sysfs IIO channel file such as
// /sys/bus/iio/devices/iio:device0/in_voltage0_raw.
type ADC struct {
	path string
}

func NewADC(path string) *ADC {
	return &ADC{path: path}
}

func (a *ADC) Read() (int, error) {
	b, err := os.ReadFile(a.path)
	if err != nil {
		return 0, fmt.Errorf("sensor: read %s: %w", a.path, err)
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0, fmt.Errorf("sensor: parse %s: %w", a.path, err)
	}
	return v, nil
}

// Pulse reports a single injected reading once, then zero. It lets remote
// sources simulate a knock.
type Pulse struct {
	level atomic.Int64
}

// Hit arms the next Read to return level.
func (p *Pulse) Hit(level int) {
	if level <= 0 || level > MaxReading {
		level = MaxReading
	}
	p.level.Store(int64(level))
}

func (p *Pulse) Read() (int, error) {
	return int(p.level.Swap(0)), nil
}

// Reader is anything that yields samples.
type Reader interface {
	Read() (int, error)
}

// Max combines readers, returning the largest sample. Errors from one reader
// do not hide samples from the others.
type Max []Reader

func (m Max) Read() (int, error) {
	var (
		best     int
		firstErr error
	)
	for _, r := range m {
		v, err := r.Read()
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if v > best {
			best = v
		}
	}
	return best, firstErr
}
