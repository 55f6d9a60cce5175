// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/ProjectZuki/arduino-led-trigger/internal/display"
	"github.com/ProjectZuki/arduino-led-trigger/internal/logging"
)

const (
	DefaultBaud        = 9600
	DefaultStripLength = display.DefaultLength
	DefaultStoragePath = "eeprom.bin"
)

// LED_OUTPUT values.
const (
	OutputTerminal = "terminal"
	OutputAPA102   = "apa102"
	OutputNone     = "none"
)

type Config struct {
	SerialPort string
	SerialBaud int

	MQTTURI     *url.URL
	TopicPrefix string

	HTTPPort int

	StripLength   int
	TrailGap      bool
	StoragePath   string
	VibrationPath string
	VibrationPin  string
	IRInput       string

	// SPIPort names the strip's SPI port for the apa102 output; empty picks
	// the first one.
	SPIPort string
	// IndicatorPins are the red, green and blue GPIO names; unset logs
	// instead.
	IndicatorPins []string

	LogLevel logging.Level
	Output   string
}

// SubscribeTopic is the wildcard topic carrying inbound commands.
func (c *Config) SubscribeTopic() string {
	return c.TopicPrefix + "/set/#"
}

// Load builds a Config from the environment. Unset values take defaults;
// malformed values are errors.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	c := &Config{
		SerialPort:    getenv("SERIAL_PORT"),
		TopicPrefix:   getenv("MQTT_TOPIC_PREFIX"),
		StoragePath:   getenv("STORAGE_PATH"),
		VibrationPath: getenv("VIBRATION_PATH"),
		VibrationPin:  getenv("VIBRATION_PIN"),
		SPIPort:       getenv("SPI_PORT"),
		IRInput:       getenv("IR_INPUT"),
		LogLevel:      logging.ParseLevel(getenv("LOG_LEVEL")),
		Output:        getenv("LED_OUTPUT"),
	}
	if c.TopicPrefix == "" {
		c.TopicPrefix = "led-trigger"
	}
	if c.StoragePath == "" {
		c.StoragePath = DefaultStoragePath
	}
	if c.Output == "" {
		c.Output = OutputTerminal
	}
	switch c.Output {
	case OutputTerminal, OutputAPA102, OutputNone:
	default:
		return nil, fmt.Errorf("config: LED_OUTPUT must be %s, %s or %s, got %q", OutputTerminal, OutputAPA102, OutputNone, c.Output)
	}
	if v := getenv("INDICATOR_PINS"); v != "" {
		c.IndicatorPins = strings.Split(v, ",")
		for i := range c.IndicatorPins {
			c.IndicatorPins[i] = strings.TrimSpace(c.IndicatorPins[i])
		}
		if len(c.IndicatorPins) != 3 {
			return nil, fmt.Errorf("config: INDICATOR_PINS needs red,green,blue, got %q", v)
		}
	}

	var err error
	if c.SerialBaud, err = intVar(getenv, "SERIAL_BAUD", DefaultBaud); err != nil {
		return nil, err
	}
	if c.HTTPPort, err = intVar(getenv, "PORT", 0); err != nil {
		return nil, err
	}
	if c.StripLength, err = intVar(getenv, "STRIP_LENGTH", DefaultStripLength); err != nil {
		return nil, err
	}
	if c.StripLength <= 0 {
		return nil, fmt.Errorf("config: STRIP_LENGTH must be positive, got %d", c.StripLength)
	}
	if c.TrailGap, err = boolVar(getenv, "TRAIL_GAP", true); err != nil {
		return nil, err
	}

	if raw := getenv("MQTT_URI"); raw != "" {
		if c.MQTTURI, err = url.Parse(raw); err != nil {
			return nil, fmt.Errorf("config: MQTT_URI: %w", err)
		}
	}
	return c, nil
}

func intVar(getenv func(string) string, key string, def int) (int, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func boolVar(getenv func(string) string, key string, def bool) (bool, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}
