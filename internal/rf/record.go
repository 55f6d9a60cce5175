package rf

import (
	"errors"
	"fmt"

	"github.com/ProjectZuki/arduino-led-trigger/internal/color"
)

const (
	// Start and End delimit one frame on the wire.
	Start byte = 0x7E
	End   byte = 0x7F

	// RecordSize is the payload length between the sentinels, checksum included.
	RecordSize = 6
)

var (
	ErrChecksumMismatch  = errors.New("rf: checksum mismatch")
	ErrFrameOverflow     = errors.New("rf: frame overflow")
	ErrSentinelInPayload = errors.New("rf: sentinel byte in payload")
)

// Record is the state update carried by one frame.
//
// Wire layout: red, green, blue, power_on, rainbow_on, checksum.
type Record struct {
	Red       uint8
	Green     uint8
	Blue      uint8
	PowerOn   bool
	RainbowOn bool
	Checksum  uint8
}

func (r Record) Color() color.Triple {
	return color.Triple{R: r.Red, G: r.Green, B: r.Blue}
}

func (r Record) String() string {
	return fmt.Sprintf("color:(%d,%d,%d) on:%t rainbow:%t", r.Red, r.Green, r.Blue, r.PowerOn, r.RainbowOn)
}

// Checksum is the 8-bit truncated sum of the bytes preceding the checksum field.
func Checksum(payload []byte) uint8 {
	var sum uint8
	for _, b := range payload {
		sum += b
	}
	return sum
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func (r Record) body() []byte {
	return []byte{r.Red, r.Green, r.Blue, boolByte(r.PowerOn), boolByte(r.RainbowOn)}
}

// Encode builds the full frame for r with a freshly computed checksum. The
// protocol has no escaping, so payloads containing a sentinel are refused.
func Encode(r Record) ([]byte, error) {
	body := r.body()
	sum := Checksum(body)
	for _, b := range append(body, sum) {
		if b == Start || b == End {
			return nil, fmt.Errorf("encode %s: %w", r, ErrSentinelInPayload)
		}
	}
	frame := make([]byte, 0, RecordSize+2)
	frame = append(frame, Start)
	frame = append(frame, body...)
	frame = append(frame, sum, End)
	return frame, nil
}

func decodeRecord(buf []byte) Record {
	return Record{
		Red:       buf[0],
		Green:     buf[1],
		Blue:      buf[2],
		PowerOn:   buf[3] != 0,
		RainbowOn: buf[4] != 0,
		Checksum:  buf[5],
	}
}
