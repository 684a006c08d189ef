// config/overlay.go
package config

import (
	"os"
	"strconv"
	"strings"
)

// OverlayEnv applies environment overrides on top of the file config.
// Unparseable numbers are ignored rather than failing startup.
func OverlayEnv(cfg *Config) {
	if v := firstEnv("JOBMONITOR_API_URL", "API_URL"); v != "" {
		cfg.Remote.BaseURL = v
	}
	if v := firstEnv("JOBMONITOR_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = n
		}
	}
	if v := firstEnv("JOBMONITOR_BIND"); v != "" {
		cfg.App.Bind = v
	}
	if v := firstEnv("JOBMONITOR_ENV"); v != "" {
		cfg.App.Env = v
	}
	if v := firstEnv("JOBMONITOR_ALLOWED_ORIGINS"); v != "" {
		cfg.App.AllowedOrigins = strings.Split(v, ",")
	}
	if v := firstEnv("JOBMONITOR_POLL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Polling.JobsSeconds = n
		}
	}
	if v := firstEnv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.Telemetry.CollectorURL = v
	}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}
