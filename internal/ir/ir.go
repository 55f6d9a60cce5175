// Package ir carries decoded remote control codes into the control loop.
// Demodulation happens elsewhere; this package only sees command numbers.
package ir

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/ProjectZuki/arduino-led-trigger/internal/logging"
)

// Code is one decoded button press.
type Code struct {
	Command  int
	Protocol string
	// Valid is false when the decoder could not match a known protocol.
	// Such codes are diagnostic only.
	Valid bool
}

func (c Code) String() string {
	return fmt.Sprintf("%s:%#02x valid=%t", c.Protocol, c.Command, c.Valid)
}

// Channel is a bounded mailbox of codes. Producers never block; when the
// mailbox is full the new code is dropped.
type Channel struct {
	codes chan Code
}

func NewChannel(size int) *Channel {
	return &Channel{codes: make(chan Code, size)}
}

// Send queues c and reports whether it was accepted.
func (ch *Channel) Send(c Code) bool {
	select {
	case ch.codes <- c:
		return true
	default:
		logging.Warn("Dropping remote code %s, mailbox full", c)
		return false
	}
}

// Poll returns the next pending code without blocking.
func (ch *Channel) Poll() (Code, bool) {
	select {
	case c := <-ch.codes:
		return c, true
	default:
		return Code{}, false
	}
}

// Output of `ir-keytable -t`, e.g.
//
//	1234.567890: lirc protocol(nec): scancode = 0x58
var scancodeLine = regexp.MustCompile(`protocol\(([a-z0-9_]+)\): scancode = 0x([0-9a-fA-F]+)`)

// ParseLine extracts a Code from one line of decoder output. The command is
// the low byte of the scancode; NEC scancodes carry the address above it.
func ParseLine(line string) (Code, bool) {
	m := scancodeLine.FindStringSubmatch(line)
	if m == nil {
		return Code{}, false
	}
	v, err := strconv.ParseUint(m[2], 16, 32)
	if err != nil {
		return Code{}, false
	}
	return Code{
		Command:  int(v & 0xff),
		Protocol: m[1],
		Valid:    m[1] != "unknown",
	}, true
}

// Scan reads decoder output from r until EOF and queues every code on ch.
func Scan(r io.Reader, ch *Channel) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		code, ok := ParseLine(sc.Text())
		if !ok {
			continue
		}
		ch.Send(code)
	}
	return sc.Err()
}
