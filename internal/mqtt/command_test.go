package mqtt

import (
	"errors"
	"testing"

	"github.com/ProjectZuki/arduino-led-trigger/internal/ir"
	"github.com/ProjectZuki/arduino-led-trigger/internal/rf"
	"github.com/ProjectZuki/arduino-led-trigger/internal/sensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() *Router {
	return &Router{
		Remote: ir.NewChannel(4),
		Radio:  rf.NewMailbox(4),
		Pulse:  &sensor.Pulse{},
	}
}

func TestParsePayload(t *testing.T) {
	b := []byte(`{"code": 88}`)
	cmd, err := parsePayload(&b)
	require.NoError(t, err)
	require.NotNil(t, cmd.Code)
	assert.Equal(t, 88, *cmd.Code)

	b = []byte(`"{\"color\":\"#ff0000\",\"on\":true}"`)
	cmd, err = parsePayload(&b)
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", cmd.Color)
	assert.True(t, cmd.On)

	b = []byte(`not json`)
	_, err = parsePayload(&b)
	assert.Error(t, err)
}

func TestRouteRemote(t *testing.T) {
	r := newRouter()
	code := 0x58
	require.NoError(t, r.HandleCommand("remote", &Command{Code: &code}))

	c, ok := r.Remote.Poll()
	require.True(t, ok)
	assert.Equal(t, ir.Code{Command: 0x58, Protocol: "mqtt", Valid: true}, c)

	assert.ErrorIs(t, r.HandleCommand("remote", &Command{}), ErrMissingCode)
}

func TestRouteState(t *testing.T) {
	r := newRouter()
	require.NoError(t, r.HandleCommand("state", &Command{Red: 10, Green: 20, Blue: 30, On: true}))

	rec, ok := rf.NewDecoder().Drain(r.Radio.Poll())
	require.True(t, ok)
	assert.Equal(t, rf.Record{Red: 10, Green: 20, Blue: 30, PowerOn: true, Checksum: 61}, rec)
}

func TestRouteStateHexIsLimited(t *testing.T) {
	r := newRouter()
	require.NoError(t, r.HandleCommand("state", &Command{Color: "#ff0000", On: true}))

	rec, ok := rf.NewDecoder().Drain(r.Radio.Poll())
	require.True(t, ok)
	assert.Equal(t, uint8(31), rec.Red)
	assert.Zero(t, rec.Green)

	assert.Error(t, r.HandleCommand("state", &Command{Color: "nope"}))
}

func TestRouteTrigger(t *testing.T) {
	r := newRouter()
	require.NoError(t, r.HandleCommand("trigger", &Command{Level: 900}))
	v, err := r.Pulse.Read()
	require.NoError(t, err)
	assert.Equal(t, 900, v)
}

func TestRouteUnknownTopic(t *testing.T) {
	err := newRouter().HandleCommand("bogus", &Command{})
	assert.True(t, errors.Is(err, ErrUnknownTopic))
}

func TestStatusTopic(t *testing.T) {
	mc := &MQTTClient{baseTopic: "leds"}
	assert.Equal(t, "leds/status/strip/state", mc.statusTopic("strip", "state"))
}
