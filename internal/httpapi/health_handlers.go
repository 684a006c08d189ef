package httpapi

import (
	"net/http"
	"time"

	"jobmonitor/internal/events"
)

type HealthHandler struct {
	Hub       *events.Hub
	RemoteURL string
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"ok":     true,
		"time":   time.Now().Format(time.RFC3339),
		"remote": h.RemoteURL,
		"events": h.Hub.Stats(),
	})
}
