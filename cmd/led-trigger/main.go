package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ProjectZuki/arduino-led-trigger/internal/config"
	"github.com/ProjectZuki/arduino-led-trigger/internal/controller"
	"github.com/ProjectZuki/arduino-led-trigger/internal/device"
	"github.com/ProjectZuki/arduino-led-trigger/internal/display"
	"github.com/ProjectZuki/arduino-led-trigger/internal/indicator"
	"github.com/ProjectZuki/arduino-led-trigger/internal/ir"
	"github.com/ProjectZuki/arduino-led-trigger/internal/logging"
	"github.com/ProjectZuki/arduino-led-trigger/internal/mqtt"
	"github.com/ProjectZuki/arduino-led-trigger/internal/rf"
	"github.com/ProjectZuki/arduino-led-trigger/internal/sensor"
	"github.com/ProjectZuki/arduino-led-trigger/internal/storage"
	"github.com/ProjectZuki/arduino-led-trigger/internal/web"
	"github.com/joho/godotenv"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func init() {
	logging.Init(nil, logging.DefaultFlags)
	logging.Info("Loading .env file")
	err := godotenv.Load(".env")

	if err != nil {
		logging.Warn("Unable to load .env")
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logging.SetLevel(cfg.LogLevel)

	remote := ir.NewChannel(16)
	mailbox := rf.NewMailbox(16)
	pulse := &sensor.Pulse{}

	opts := controller.Options{
		StripLength: cfg.StripLength,
		TrailGap:    cfg.TrailGap,
		Remotes:     []controller.Remote{remote},
		Radios:      []controller.Radio{mailbox},
		Store:       openStore(cfg.StoragePath),
	}

	if cfg.SerialPort != "" {
		src, err := rf.OpenSerial(cfg.SerialPort, cfg.SerialBaud)
		if err != nil {
			logging.Error("Wireless receiver unavailable: %s", err)
		} else {
			defer src.Close()
			opts.Radios = append(opts.Radios, src)
		}
	}

	if usesGPIO(cfg) {
		if _, err := host.Init(); err != nil {
			log.Fatalf("Failed to initialise GPIO/SPI host drivers: %s", err)
		}
	}

	readers := sensor.Max{pulse}
	if cfg.VibrationPath != "" {
		readers = append(readers, sensor.NewADC(cfg.VibrationPath))
	}
	if cfg.VibrationPin != "" {
		d, err := sensor.OpenDigital(cfg.VibrationPin)
		if err != nil {
			logging.Error("Vibration pin unavailable: %s", err)
		} else {
			defer d.Close()
			readers = append(readers, d)
		}
	}
	opts.Sensor = readers

	opts.Indicator = &indicator.Log{}
	if len(cfg.IndicatorPins) == 3 {
		rgb, err := indicator.Open([3]string{cfg.IndicatorPins[0], cfg.IndicatorPins[1], cfg.IndicatorPins[2]})
		if err != nil {
			logging.Error("Indicator unavailable: %s", err)
		} else {
			opts.Indicator = rgb
		}
	}

	switch cfg.Output {
	case config.OutputAPA102:
		port, err := spireg.Open(cfg.SPIPort)
		if err != nil {
			log.Fatalf("Failed to open SPI port %q: %s", cfg.SPIPort, err)
		}
		defer port.Close()
		strip, err := display.NewAPA102(port, cfg.StripLength)
		if err != nil {
			log.Fatal(err)
		}
		opts.Display = strip
	case config.OutputTerminal:
		opts.Display = display.NewTerminal(os.Stdout)
	default:
		opts.Display = display.Null{}
	}

	if cfg.IRInput != "" {
		go scanRemote(cfg.IRInput, remote)
	}

	if cfg.MQTTURI != nil {
		mc := mqtt.NewMQTTClient(cfg.MQTTURI, cfg.TopicPrefix, cfg.SubscribeTopic())
		router := &mqtt.Router{Remote: remote, Radio: mailbox, Pulse: pulse}
		if err := mc.Connect(router); err != nil {
			logging.Error("MQTT unavailable: %s", err)
		} else {
			defer mc.Disconnect()
			opts.Emitter = mc
		}
	}

	ctl := controller.New(opts)

	if cfg.HTTPPort > 0 {
		go startServer(cfg.HTTPPort, ctl.Snapshot)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		ctl.Run(ctx)
	}()

	logging.Info("Ready")

	waitForExit()
	cancel()
	<-done

	logging.Info("Terminating")
}

func usesGPIO(cfg *config.Config) bool {
	return cfg.Output == config.OutputAPA102 || len(cfg.IndicatorPins) > 0 || cfg.VibrationPin != ""
}

func openStore(path string) storage.Store {
	f, err := storage.OpenFile(path)
	if err != nil {
		logging.Warn("Settings file %s unavailable, saves will not persist: %s", path, err)
		return &storage.Memory{}
	}
	return f
}

// scanRemote feeds decoder output into ch until the stream ends. "-" reads
// stdin.
func scanRemote(path string, ch *ir.Channel) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			logging.Error("Remote input unavailable: %s", err)
			return
		}
		defer f.Close()
		r = f
	}
	logging.Info("Reading remote codes from %s", path)
	if err := ir.Scan(r, ch); err != nil {
		logging.Error("Remote input failed: %s", err)
		return
	}
	logging.Warn("Remote input %s closed", path)
}

func waitForExit() {
	// Set up a channel to receive OS signals so we can gracefully exit
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	<-signalChan
	logging.Info("Exit signal received")
}

func startServer(port int, snapshot func() device.Snapshot) {
	logging.Info("Creating HTTP server")
	handler := web.CreateHandler(snapshot)
	server := http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler,
	}
	logging.Info("Starting HTTP server on port %d", port)
	if err := server.ListenAndServe(); err != nil {
		if !errors.Is(err, http.ErrServerClosed) {
			fmt.Printf("error running http server: %s\n", err)
		}
		log.Fatal(err)
	}
}
