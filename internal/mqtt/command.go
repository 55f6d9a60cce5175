package mqtt

import (
	"errors"
	"fmt"

	"github.com/ProjectZuki/arduino-led-trigger/internal/color"
	"github.com/ProjectZuki/arduino-led-trigger/internal/ir"
	"github.com/ProjectZuki/arduino-led-trigger/internal/rf"
	"github.com/ProjectZuki/arduino-led-trigger/internal/sensor"
)

// Command is the JSON payload accepted under the set topic. Which fields
// matter depends on the topic suffix.
type Command struct {
	// remote
	Code *int `json:"code"`

	// state
	Color   string `json:"color"`
	Red     uint8  `json:"red"`
	Green   uint8  `json:"green"`
	Blue    uint8  `json:"blue"`
	On      bool   `json:"on"`
	Rainbow bool   `json:"rainbow"`

	// trigger
	Level int `json:"level"`
}

func (c *Command) String() string {
	code := "none"
	if c.Code != nil {
		code = fmt.Sprintf("%#02x", *c.Code)
	}
	return fmt.Sprintf("code:%s color:%s rgb:(%d,%d,%d) on:%t rainbow:%t level:%d",
		code, c.Color, c.Red, c.Green, c.Blue, c.On, c.Rainbow, c.Level)
}

type CommandHandler interface {
	HandleCommand(id string, command *Command) error
}

var (
	ErrUnknownTopic = errors.New("mqtt: unknown command topic")
	ErrMissingCode  = errors.New("mqtt: remote command without code")
)

// Router turns network commands into the same inputs the physical sources
// produce, so the control loop cannot tell them apart.
type Router struct {
	Remote *ir.Channel
	Radio  *rf.Mailbox
	Pulse  *sensor.Pulse
}

// HandleCommand routes by topic suffix:
//
//	remote   {"code": 88}
//	state    {"color": "#0a141e", "on": true, "rainbow": false}
//	trigger  {"level": 900}
func (r *Router) HandleCommand(id string, command *Command) error {
	if command == nil {
		return nil
	}
	switch id {
	case "remote":
		if command.Code == nil {
			return ErrMissingCode
		}
		r.Remote.Send(ir.Code{Command: *command.Code, Protocol: "mqtt", Valid: true})
		return nil
	case "state":
		rec := rf.Record{Red: command.Red, Green: command.Green, Blue: command.Blue, PowerOn: command.On, RainbowOn: command.Rainbow}
		if command.Color != "" {
			c, err := color.ParseHex(command.Color)
			if err != nil {
				return err
			}
			c = c.Limit()
			rec.Red, rec.Green, rec.Blue = c.R, c.G, c.B
		}
		return r.Radio.Post(rec)
	case "trigger":
		r.Pulse.Hit(command.Level)
		return nil
	}
	return fmt.Errorf("%q: %w", id, ErrUnknownTopic)
}
