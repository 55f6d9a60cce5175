package controller

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ticks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledtrigger_loop_ticks_total",
		Help: "Control loop iterations",
	})
)
