package display

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// APA102Speed is the SPI clock used for the strip.
const APA102Speed = 4 * physic.MegaHertz

const maxGlobalBrightness = 0x1f

// APA102 drives an APA102 (DotStar) strip over SPI. Each frame is sent as
// four zero start bytes, one 0xE0|brightness,B,G,R word per pixel, then
// enough 0xFF end bytes to clock the data through the whole strip.
type APA102 struct {
	conn spi.Conn
	n    int
	buf  []byte
}

// NewAPA102 connects to port for a strip of n pixels.
func NewAPA102(port spi.Port, n int) (*APA102, error) {
	c, err := port.Connect(APA102Speed, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("display: connect %s: %w", port, err)
	}
	a := &APA102{conn: c, n: n, buf: make([]byte, 4+4*n+endBytes(n))}
	end := a.buf[4+4*n:]
	for i := range end {
		end[i] = 0xff
	}
	return a, nil
}

func endBytes(n int) int {
	return n/16 + 1
}

// Present writes f. Pixels beyond the strip are ignored and missing ones
// are sent dark. The 8-bit brightness maps onto the 5-bit global field, so
// any nonzero brightness stays lit.
func (a *APA102) Present(f Frame, brightness uint8) error {
	gb := byte((int(brightness)*maxGlobalBrightness + 254) / 255)
	for i := 0; i < a.n; i++ {
		p := a.buf[4+4*i:]
		if i >= len(f) {
			p[0], p[1], p[2], p[3] = 0xe0, 0, 0, 0
			continue
		}
		px := f[i]
		p[0] = 0xe0 | gb
		p[1] = px.B
		p[2] = px.G
		p[3] = px.R
	}
	if err := a.conn.Tx(a.buf, nil); err != nil {
		return fmt.Errorf("display: spi write: %w", err)
	}
	return nil
}
