package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Page
	ph := PageHandler{Dashboard: d.Dashboard, Logger: d.Logger}
	mux.HandleFunc("/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.Index,
	}))
	mux.HandleFunc("/partials/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.JobsPartial,
	}))
	mux.HandleFunc("/partials/skills", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.SkillsPartial,
	}))

	// Jobs
	jh := JobsHandler{Dashboard: d.Dashboard}
	mux.HandleFunc("/api/state", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.State,
	}))
	mux.HandleFunc("/api/jobs/refresh", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: jh.Refresh,
	}))

	// Skills
	sk := SkillsHandler{Dashboard: d.Dashboard}
	mux.HandleFunc("/api/skills", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:    sk.List,
		http.MethodPost:   sk.Add,
		http.MethodDelete: sk.Remove, // expects ?name=
	}))
	mux.HandleFunc("/api/skills/", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: sk.Remove, // expects /api/skills/{name}
	}))

	// Config
	ch := ConfigHandler{Cfg: d.Cfg, Path: d.CfgPath, Warnings: d.CfgWarnings}
	mux.HandleFunc("/api/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
	}))

	// Secrets
	sh := SecretsHandler{
		Account:     d.TokenAccount,
		SetToken:    d.SetToken,
		DeleteToken: d.DeleteToken,
		Logger:      d.Logger,
	}
	mux.HandleFunc("/api/secrets/token", methodMux(map[string]http.HandlerFunc{
		http.MethodPost:   sh.SetAPIToken,
		http.MethodDelete: sh.DeleteAPIToken,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Health
	hh := HealthHandler{Hub: d.Hub, RemoteURL: d.Cfg.Remote.BaseURL}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
