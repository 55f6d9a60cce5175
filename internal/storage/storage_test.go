package storage

import (
	"path/filepath"
	"testing"

	"github.com/ProjectZuki/arduino-led-trigger/internal/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eeprom.bin")

	f, err := OpenFile(path)
	require.NoError(t, err)
	want := Settings{Color: color.Triple{R: 10, G: 20, B: 30}, Rainbow: true}
	require.NoError(t, Save(f, want))

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	got, err := Load(reopened)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMissingFileReadsZero(t *testing.T) {
	f, err := OpenFile(filepath.Join(t.TempDir(), "absent.bin"))
	require.NoError(t, err)
	got, err := Load(f)
	require.NoError(t, err)
	assert.Equal(t, Settings{}, got)
}

func TestOutOfRange(t *testing.T) {
	m := &Memory{}
	_, err := m.Byte(Size)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.ErrorIs(t, m.SetByte(-1, 1), ErrOutOfRange)
}
