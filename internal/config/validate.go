package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

func (v Validation) Err() error {
	if v.OK() {
		return nil
	}
	return errors.New("config validation failed:\n- " + strings.Join(v.Errors, "\n- "))
}

// NormalizeAndValidate returns a normalized copy plus everything wrong with it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.App.Bind = strings.TrimSpace(out.App.Bind)
	out.App.Env = strings.ToLower(strings.TrimSpace(out.App.Env))
	out.Remote.BaseURL = strings.TrimRight(strings.TrimSpace(out.Remote.BaseURL), "/")
	out.Telemetry.CollectorURL = strings.TrimSpace(out.Telemetry.CollectorURL)

	origins := make([]string, 0, len(out.App.AllowedOrigins))
	for _, o := range out.App.AllowedOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" {
			continue
		}
		if o == "*" {
			res.addWarn("app.allowed_origins: wildcard is not supported and was ignored")
			continue
		}
		origins = append(origins, o)
	}
	out.App.AllowedOrigins = origins

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	switch out.App.Env {
	case "development", "production":
	case "":
		out.App.Env = "development"
	default:
		res.addErr("app.env must be development or production, got %q", out.App.Env)
	}

	// remote sanity
	u, err := url.Parse(out.Remote.BaseURL)
	if out.Remote.BaseURL == "" || err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		res.addErr("remote.base_url must be an absolute http(s) URL, got %q", out.Remote.BaseURL)
	}
	if out.Remote.RequestTimeoutSeconds <= 0 {
		res.addErr("remote.request_timeout_seconds must be > 0")
	}
	if out.Remote.RatePerSecond <= 0 {
		res.addErr("remote.rate_per_second must be > 0")
	}
	if out.Remote.Burst < 1 {
		res.addErr("remote.burst must be >= 1")
	}
	if out.Remote.RatePerSecond > 0 && out.Polling.JobsSeconds > 0 &&
		out.Remote.RatePerSecond*float64(out.Polling.JobsSeconds) < 1 {
		res.addWarn("remote.rate_per_second (%g) allows less than one request per polling period.", out.Remote.RatePerSecond)
	}

	// polling sanity
	if out.Polling.JobsSeconds <= 0 {
		res.addErr("polling.jobs_seconds must be > 0")
	} else if out.Polling.JobsSeconds < 5 {
		res.addWarn("polling.jobs_seconds is very low (%d) and may hammer the monitor.", out.Polling.JobsSeconds)
	}
	if out.Remote.RequestTimeoutSeconds > 0 && out.Polling.JobsSeconds > 0 &&
		out.Remote.RequestTimeoutSeconds > out.Polling.JobsSeconds {
		res.addWarn("remote.request_timeout_seconds (%d) exceeds polling.jobs_seconds (%d); refreshes may overlap.",
			out.Remote.RequestTimeoutSeconds, out.Polling.JobsSeconds)
	}

	if out.Settings.CheckIntervalSeconds <= 0 {
		res.addErr("settings.check_interval_seconds must be > 0")
	}

	return out, res
}
