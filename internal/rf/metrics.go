package rf

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	framesDecoded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledtrigger_rf_frames_total",
		Help: "Wireless frames seen by the decoder, by outcome",
	}, []string{"outcome"})

	bytesRead = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledtrigger_rf_bytes_read_total",
		Help: "Bytes read from the radio serial port",
	})
)
