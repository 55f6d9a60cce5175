package trail

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	trailsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledtrigger_trails_started_total",
		Help: "Trails started by vibration triggers",
	})
	triggersDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledtrigger_trail_triggers_dropped_total",
		Help: "Triggers dropped because every trail slot was busy",
	})
)
