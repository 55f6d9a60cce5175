package sensor

import (
	"fmt"
	"sync"
	"time"

	"github.com/ProjectZuki/arduino-led-trigger/internal/logging"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

const edgePoll = 100 * time.Millisecond

// Digital watches a vibration module with a digital output (SW-420 style).
// Every rising edge latches a full scale reading until the next Read, so a
// knock shorter than a frame is not lost.
type Digital struct {
	pin   gpio.PinIn
	pulse Pulse
	done  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup
}

// OpenDigital looks up the named pin and starts watching it.
func OpenDigital(name string) (*Digital, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("sensor: no gpio pin %q", name)
	}
	return WatchDigital(p)
}

func WatchDigital(pin gpio.PinIn) (*Digital, error) {
	if err := pin.In(gpio.PullDown, gpio.RisingEdge); err != nil {
		return nil, fmt.Errorf("sensor: configure %s: %w", pin, err)
	}
	d := &Digital{pin: pin, done: make(chan struct{})}
	d.wg.Add(1)
	go d.watch()
	logging.Info("Watching vibration pin %s", pin)
	return d, nil
}

func (d *Digital) watch() {
	defer d.wg.Done()
	for {
		select {
		case <-d.done:
			return
		default:
		}
		if d.pin.WaitForEdge(edgePoll) {
			d.pulse.Hit(MaxReading)
		}
	}
}

func (d *Digital) Read() (int, error) {
	return d.pulse.Read()
}

// Close stops watching and releases the pin.
func (d *Digital) Close() error {
	var err error
	d.once.Do(func() {
		close(d.done)
		d.wg.Wait()
		err = d.pin.Halt()
	})
	return err
}
