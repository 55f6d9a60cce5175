package command

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	codesApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledtrigger_remote_codes_total",
		Help: "Remote codes applied, by function group",
	}, []string{"group"})
)
