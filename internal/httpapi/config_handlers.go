package httpapi

import (
	"net/http"
	"path/filepath"

	"jobmonitor/internal/config"
)

// ConfigHandler exposes the effective configuration. It is read-only; edit
// config.yml and restart to change it.
type ConfigHandler struct {
	Cfg      config.Config
	Path     string
	Warnings []string
}

func (h ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	abs, _ := filepath.Abs(h.Path)
	warnings := h.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	writeJSON(w, map[string]any{
		"config":   h.Cfg,
		"path":     abs,
		"warnings": warnings,
	})
}
