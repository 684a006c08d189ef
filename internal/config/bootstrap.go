package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// EnsureUserConfig returns the path of config.yml in dataDir, writing the
// defaults there first if it does not exist. A lock file keeps two dashboards
// started at once from racing on the first write.
func EnsureUserConfig(dataDir string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", err
	}

	lock := flock.New(userPath + ".lock")
	if err := lock.Lock(); err != nil {
		return "", err
	}
	defer func() { _ = lock.Unlock() }()

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	if err := SaveAtomic(userPath, Default()); err != nil {
		return "", err
	}
	return userPath, nil
}

// LoadUser is the startup path: bootstrap, load, overlay env, normalize.
func LoadUser(dataDir string) (Config, string, Validation, error) {
	path, err := EnsureUserConfig(dataDir)
	if err != nil {
		return Config{}, "", Validation{}, err
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, path, Validation{}, err
	}
	OverlayEnv(&cfg)
	cfg, vr := NormalizeAndValidate(cfg)
	return cfg, path, vr, nil
}
