package handler

import "net/http"

// HealthReporter exposes the latest result of the dependency probes.
type HealthReporter interface {
	Report() (bool, map[string]string)
}

type healthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

type Health struct {
	reporter HealthReporter
}

func NewHealth(reporter HealthReporter) *Health {
	return &Health{reporter: reporter}
}

func (h *Health) Check(w http.ResponseWriter, _ *http.Request) {
	healthy, components := h.reporter.Report()

	if !healthy {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Components: components})
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Components: components})
}
