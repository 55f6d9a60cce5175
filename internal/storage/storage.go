// Package storage keeps a small block of bytes that survives restarts, in the
// manner of a microcontroller EEPROM.
package storage

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/ProjectZuki/arduino-led-trigger/internal/color"
	"github.com/ProjectZuki/arduino-led-trigger/internal/logging"
)

// Addresses of the persisted settings.
const (
	RedAddr = iota
	GreenAddr
	BlueAddr
	RainbowAddr

	Size = 64
)

var ErrOutOfRange = errors.New("storage: address out of range")

// Store is indexed byte storage.
type Store interface {
	Byte(addr int) (byte, error)
	SetByte(addr int, b byte) error
}

// File is a Store backed by a fixed size file. Unwritten cells read as zero.
type File struct {
	mu   sync.Mutex
	path string
	data [Size]byte
}

// OpenFile loads path if it exists. A missing file is created on first write.
func OpenFile(path string) (*File, error) {
	f := &File{path: path}
	b, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("storage: read %s: %w", path, err)
	}
	copy(f.data[:], b)
	return f, nil
}

func (f *File) Byte(addr int) (byte, error) {
	if addr < 0 || addr >= Size {
		return 0, fmt.Errorf("read %d: %w", addr, ErrOutOfRange)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[addr], nil
}

func (f *File) SetByte(addr int, b byte) error {
	if addr < 0 || addr >= Size {
		return fmt.Errorf("write %d: %w", addr, ErrOutOfRange)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[addr] = b
	if err := os.WriteFile(f.path, f.data[:], 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", f.path, err)
	}
	return nil
}

// Settings is what survives a power cycle.
type Settings struct {
	Color   color.Triple
	Rainbow bool
}

// Load reads the persisted settings.
func Load(s Store) (Settings, error) {
	var raw [4]byte
	for i := range raw {
		b, err := s.Byte(i)
		if err != nil {
			return Settings{}, err
		}
		raw[i] = b
	}
	return Settings{
		Color:   color.Triple{R: raw[RedAddr], G: raw[GreenAddr], B: raw[BlueAddr]},
		Rainbow: raw[RainbowAddr] != 0,
	}, nil
}

// Save writes the settings.
func Save(s Store, st Settings) error {
	rainbow := byte(0)
	if st.Rainbow {
		rainbow = 1
	}
	for addr, b := range map[int]byte{
		RedAddr:     st.Color.R,
		GreenAddr:   st.Color.G,
		BlueAddr:    st.Color.B,
		RainbowAddr: rainbow,
	} {
		if err := s.SetByte(addr, b); err != nil {
			return err
		}
	}
	logging.Debug("Saved settings color=%s rainbow=%t", st.Color, st.Rainbow)
	return nil
}

// Memory is an in-process Store.
type Memory struct {
	data [Size]byte
}

func (m *Memory) Byte(addr int) (byte, error) {
	if addr < 0 || addr >= Size {
		return 0, fmt.Errorf("read %d: %w", addr, ErrOutOfRange)
	}
	return m.data[addr], nil
}

func (m *Memory) SetByte(addr int, b byte) error {
	if addr < 0 || addr >= Size {
		return fmt.Errorf("write %d: %w", addr, ErrOutOfRange)
	}
	m.data[addr] = b
	return nil
}
