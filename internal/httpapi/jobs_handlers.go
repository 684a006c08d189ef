package httpapi

import "net/http"

type JobsHandler struct {
	Dashboard Dashboard
}

// State returns the full view model the page is rendered from.
func (h JobsHandler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Dashboard.View())
}

// Refresh runs one job refresh now, outside the timer. A failed fetch is not
// an HTTP error; it shows up in the returned view like any other refresh.
func (h JobsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.Dashboard.RefreshJobs()
	writeJSON(w, h.Dashboard.View())
}
