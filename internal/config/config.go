// Package config handles loading and saving the application's configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ErrConfigNotFound is returned by Load when no config file is found.
// Callers treat this as "use the defaults", not as a failure.
var ErrConfigNotFound = errors.New("configuration file not found")

const (
	defaultConfigDir  = "git-reap"
	defaultConfigFile = "config.toml"
)

// DefaultReservedBranches are the names protected from deletion when the
// config file does not override them.
var DefaultReservedBranches = []string{"master", "develop"}

// Config holds the application configuration settings.
// Tags correspond to the keys in the TOML configuration file.
type Config struct {
	ReservedBranches []string `toml:"reserved_branches"`
	AgeDays          int      `toml:"age_days"` // 0 means ask at run time

	// DistinctDryRun switches the dry-run report line from "is deleted"
	// to "would be deleted". Off by default: the historical wording does
	// not distinguish dry runs.
	DistinctDryRun bool `toml:"distinct_dry_run"`

	LastVersionCheck   int64  `toml:"last_version_check"` // Unix timestamp of last check
	LatestKnownVersion string `toml:"latest_known_version"`
}

// Default returns a Config struct with default values.
func Default() Config {
	return Config{
		ReservedBranches: append([]string(nil), DefaultReservedBranches...),
		AgeDays:          0,
		DistinctDryRun:   false,
	}
}

// Load reads configuration from the specified path or the default location
// (~/.config/git-reap/config.toml). If neither exists it returns the default
// settings together with ErrConfigNotFound.
func Load(customPath string) (Config, error) {
	cfg := Default()

	configPath := customPath
	if configPath == "" {
		userConfigDir, err := os.UserConfigDir()
		if err != nil {
			// The default path cannot even be determined.
			return cfg, ErrConfigNotFound
		}
		configPath = filepath.Join(userConfigDir, defaultConfigDir, defaultConfigFile)
	}

	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) {
			return cfg, ErrConfigNotFound
		}
		return cfg, fmt.Errorf("error checking config path %q: %w", configPath, err)
	}

	if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
		return cfg, fmt.Errorf("error decoding config file %q: %w", configPath, err)
	}

	// A file that never mentions reserved_branches keeps the default set.
	// An explicit empty list in the file is honored as-is.
	if cfg.ReservedBranches == nil {
		cfg.ReservedBranches = append([]string(nil), DefaultReservedBranches...)
	}
	if cfg.AgeDays < 0 {
		cfg.AgeDays = 0
	}

	return cfg, nil
}

// Save writes the configuration to the specified path or the default
// location, creating directories as needed. It returns the path written.
func Save(cfg Config, customPath string) (string, error) {
	savePath := customPath
	if savePath == "" {
		userConfigDir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not determine user config directory: %w", err)
		}
		savePath = filepath.Join(userConfigDir, defaultConfigDir, defaultConfigFile)
	}

	dir := filepath.Dir(savePath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return savePath, fmt.Errorf("could not create config directory %q: %w", dir, err)
	}

	file, err := os.Create(savePath)
	if err != nil {
		return savePath, fmt.Errorf("could not create config file %q: %w", savePath, err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close config file %q: %w", savePath, closeErr)
		}
	}()

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return savePath, fmt.Errorf("could not encode config to TOML file %q: %w", savePath, err)
	}

	return savePath, nil
}
