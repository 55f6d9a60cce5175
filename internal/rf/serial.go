package rf

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ProjectZuki/arduino-led-trigger/internal/logging"
	"go.bug.st/serial"
)

const DefaultBaudRate = 9600

// SerialSource reads the radio module's UART in the background and hands out
// whatever bytes have arrived since the last Poll without blocking.
type SerialSource struct {
	path  string
	port  serial.Port
	bytes chan byte
	done  chan struct{}
	once  sync.Once
}

// OpenSerial opens the radio port at the given baud rate (8N1).
func OpenSerial(path string, baud int) (*SerialSource, error) {
	if baud <= 0 {
		baud = DefaultBaudRate
	}
	port, err := serial.Open(path, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("rf: failed to open %s: %w", path, err)
	}
	if err := port.SetReadTimeout(100 * time.Millisecond); err != nil {
		port.Close()
		return nil, fmt.Errorf("rf: failed to set timeout: %w", err)
	}
	logging.Info("Opened radio on %s at %d baud", path, baud)
	return newSerialSource(path, port), nil
}

func newSerialSource(path string, port serial.Port) *SerialSource {
	s := &SerialSource{
		path:  path,
		port:  port,
		bytes: make(chan byte, 256),
		done:  make(chan struct{}),
	}
	go s.readLoop()
	return s
}

func (s *SerialSource) readLoop() {
	buf := make([]byte, 64)
	for {
		n, err := s.port.Read(buf)
		for _, b := range buf[:n] {
			select {
			case s.bytes <- b:
			case <-s.done:
				return
			}
		}
		bytesRead.Add(float64(n))
		if err != nil {
			var portErr *serial.PortError
			if errors.Is(err, io.EOF) || (errors.As(err, &portErr) && portErr.Code() == serial.PortClosed) {
				logging.Info("Radio port %s closed", s.path)
				return
			}
			logging.Warn("Radio read error on %s: %s", s.path, err)
			select {
			case <-s.done:
				return
			case <-time.After(time.Second):
			}
		}
		select {
		case <-s.done:
			return
		default:
		}
	}
}

// Poll returns the bytes received so far. It never blocks.
func (s *SerialSource) Poll() []byte {
	var out []byte
	for {
		select {
		case b := <-s.bytes:
			out = append(out, b)
		default:
			return out
		}
	}
}

func (s *SerialSource) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.port.Close()
	})
	return err
}
