package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"jobmonitor/internal/events"
)

type EventsHandler struct {
	Hub       *events.Hub
	Heartbeat time.Duration
}

func (h EventsHandler) ServeSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, r, http.StatusInternalServerError, codeStreamUnsupp, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := h.Hub.Subscribe()
	defer h.Hub.Unsubscribe(ch)

	reqID := RequestIDFrom(r.Context())
	ping := events.MakeEvent(reqID, events.TypePing, 1, nil)
	fmt.Fprintf(w, "event: message\ndata: %s\n\n", ping)
	flusher.Flush()

	heartbeat := h.Heartbeat
	if heartbeat <= 0 {
		heartbeat = 25 * time.Second
	}
	t := time.NewTicker(heartbeat)
	defer t.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-t.C:
			// comment line keeps proxies from closing an idle stream
			fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: message\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
