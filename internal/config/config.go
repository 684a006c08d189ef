// internal/config/config.go
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Bind string `yaml:"bind" json:"bind"`
		Port int    `yaml:"port" json:"port"`
		Env  string `yaml:"env" json:"env"`
		// Origins allowed to call the API from another page. Empty means same-origin only.
		AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`
	} `yaml:"app" json:"app"`

	Remote struct {
		BaseURL               string  `yaml:"base_url" json:"base_url"`
		RequestTimeoutSeconds int     `yaml:"request_timeout_seconds" json:"request_timeout_seconds"`
		RatePerSecond         float64 `yaml:"rate_per_second" json:"rate_per_second"`
		Burst                 int     `yaml:"burst" json:"burst"`
	} `yaml:"remote" json:"remote"`

	Polling struct {
		JobsSeconds int `yaml:"jobs_seconds" json:"jobs_seconds"`
	} `yaml:"polling" json:"polling"`

	Settings struct {
		CheckIntervalSeconds int `yaml:"check_interval_seconds" json:"check_interval_seconds"`
	} `yaml:"settings" json:"settings"`

	Telemetry struct {
		CollectorURL string `yaml:"collector_url" json:"collector_url"`
	} `yaml:"telemetry" json:"telemetry"`
}

// Default mirrors what the monitor frontend has always assumed: the API on
// localhost:8000, jobs every 30s, server-side checks every 300s.
func Default() Config {
	var cfg Config
	cfg.App.Bind = "127.0.0.1"
	cfg.App.Port = 38472
	cfg.App.Env = "development"
	cfg.Remote.BaseURL = "http://localhost:8000"
	cfg.Remote.RequestTimeoutSeconds = 15
	cfg.Remote.RatePerSecond = 2
	cfg.Remote.Burst = 4
	cfg.Polling.JobsSeconds = 30
	cfg.Settings.CheckIntervalSeconds = 300
	return cfg
}

// Load reads path over the defaults. Fields missing from the file keep their
// default value.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

func (c Config) JobsInterval() time.Duration {
	return time.Duration(c.Polling.JobsSeconds) * time.Second
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Remote.RequestTimeoutSeconds) * time.Second
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}
