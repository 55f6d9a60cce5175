package sensor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func TestADC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in_voltage0_raw")
	require.NoError(t, os.WriteFile(path, []byte("512\n"), 0o644))

	v, err := NewADC(path).Read()
	require.NoError(t, err)
	assert.Equal(t, 512, v)

	_, err = NewADC(filepath.Join(t.TempDir(), "missing")).Read()
	assert.Error(t, err)
}

func TestPulseFiresOnce(t *testing.T) {
	var p Pulse
	p.Hit(700)
	v, _ := p.Read()
	assert.Equal(t, 700, v)
	v, _ = p.Read()
	assert.Zero(t, v)

	p.Hit(0)
	v, _ = p.Read()
	assert.Equal(t, MaxReading, v)
}

func TestMax(t *testing.T) {
	var p Pulse
	p.Hit(400)
	bad := NewADC(filepath.Join(t.TempDir(), "missing"))

	v, err := Max{bad, &p}.Read()
	assert.Error(t, err)
	assert.Equal(t, 400, v)
}

func TestDigitalLatchesEdges(t *testing.T) {
	pin := &gpiotest.Pin{N: "GPIO4", EdgesChan: make(chan gpio.Level, 1)}
	d, err := WatchDigital(pin)
	require.NoError(t, err)
	defer d.Close()

	v, _ := d.Read()
	assert.Zero(t, v)

	pin.EdgesChan <- gpio.High
	assert.Eventually(t, func() bool {
		v, _ := d.Read()
		return v == MaxReading
	}, time.Second, 5*time.Millisecond)

	v, _ = d.Read()
	assert.Zero(t, v, "one knock reads once")
}

func TestDigitalNeedsEdgeSupport(t *testing.T) {
	_, err := WatchDigital(&gpiotest.Pin{N: "GPIO4"})
	assert.Error(t, err)
}
