package web

import (
	"encoding/json"
	"net/http"

	"github.com/ProjectZuki/arduino-led-trigger/internal/device"
	"github.com/ProjectZuki/arduino-led-trigger/internal/logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CreateHandler serves Prometheus metrics on /metrics and the current
// device state as JSON on /state.
func CreateHandler(snapshot func() device.Snapshot) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snapshot()); err != nil {
			logging.Warn("Failed to write state: %s", err)
		}
	})
	return mux
}
