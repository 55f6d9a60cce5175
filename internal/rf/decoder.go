package rf

import (
	"fmt"

	"github.com/ProjectZuki/arduino-led-trigger/internal/logging"
)

// Decoder reassembles Records from a byte stream one byte at a time.
//
// A Start byte always resynchronises, discarding any partial frame. Bytes
// outside a frame are ignored as line noise.
type Decoder struct {
	receiving bool
	buf       [RecordSize]byte
	index     int
}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed consumes one byte. It returns true with the record when b completes a
// valid frame. A non-nil error reports a discarded frame; decoding continues
// normally with the next byte.
func (d *Decoder) Feed(b byte) (Record, bool, error) {
	switch {
	case b == Start:
		d.receiving = true
		d.index = 0
	case b == End:
		if !d.receiving {
			return Record{}, false, nil
		}
		d.receiving = false
		if d.index != RecordSize {
			return Record{}, false, nil
		}
		rec := decodeRecord(d.buf[:])
		if sum := Checksum(d.buf[:RecordSize-1]); sum != rec.Checksum {
			framesDecoded.WithLabelValues("checksum_mismatch").Inc()
			return Record{}, false, fmt.Errorf("got %#02x want %#02x: %w", rec.Checksum, sum, ErrChecksumMismatch)
		}
		framesDecoded.WithLabelValues("ok").Inc()
		return rec, true, nil
	case d.receiving:
		if d.index < RecordSize {
			d.buf[d.index] = b
			d.index++
			return Record{}, false, nil
		}
		d.receiving = false
		d.index = 0
		framesDecoded.WithLabelValues("overflow").Inc()
		return Record{}, false, ErrFrameOverflow
	}
	return Record{}, false, nil
}

// Drain feeds every byte in p and returns the last valid record completed.
// Discarded frames are logged.
func (d *Decoder) Drain(p []byte) (Record, bool) {
	var (
		last Record
		ok   bool
	)
	for _, b := range p {
		rec, done, err := d.Feed(b)
		if err != nil {
			logging.Warn("Discarding wireless frame: %s", err)
			continue
		}
		if done {
			last, ok = rec, true
		}
	}
	return last, ok
}
