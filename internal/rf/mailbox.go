package rf

import "github.com/ProjectZuki/arduino-led-trigger/internal/logging"

// Mailbox is an in-process radio: producers post whole frames, the control
// loop drains them with Poll like any other byte source.
type Mailbox struct {
	frames chan []byte
}

func NewMailbox(size int) *Mailbox {
	return &Mailbox{frames: make(chan []byte, size)}
}

// Post encodes r and queues the frame. It does not block; a full mailbox
// drops the frame.
func (m *Mailbox) Post(r Record) error {
	frame, err := Encode(r)
	if err != nil {
		return err
	}
	select {
	case m.frames <- frame:
	default:
		logging.Warn("Dropping wireless frame %s, mailbox full", r)
	}
	return nil
}

// Poll returns every byte posted since the last call.
func (m *Mailbox) Poll() []byte {
	var out []byte
	for {
		select {
		case f := <-m.frames:
			out = append(out, f...)
		default:
			return out
		}
	}
}
