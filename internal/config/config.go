package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/petgallery/internal/petstore"
)

// Config holds petgallery's runtime settings.
type Config struct {
	APIURL               string
	LogFile              string
	LogLevel             string
	NotificationDuration time.Duration
	RequestTimeout       time.Duration
	ReconcileOnFailure   bool
	MaxImageWorkers      int
	ShowImages           bool
}

const (
	defaultConfigPath          = "~/.config/petgallery/config.toml"
	defaultLogFile             = "~/.local/share/petgallery/petgallery.log"
	defaultLogLevel            = "info"
	defaultNotificationSeconds = 5
	defaultMaxImageWorkers     = 4
)

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		APIURL:               petstore.DefaultBaseURL,
		LogFile:              mustExpand(defaultLogFile),
		LogLevel:             defaultLogLevel,
		NotificationDuration: defaultNotificationSeconds * time.Second,
		MaxImageWorkers:      defaultMaxImageWorkers,
		ShowImages:           true,
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

// Load reads the config at path (the default location when empty), falling
// back to defaults for a missing file or empty values.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL                string `toml:"api_url"`
		LogFile               string `toml:"log_file"`
		LogLevel              string `toml:"log_level"`
		NotificationSeconds   int    `toml:"notification_seconds"`
		RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
		ReconcileOnFailure    bool   `toml:"reconcile_on_failure"`
		MaxImageWorkers       int    `toml:"max_image_workers"`
		ShowImages            *bool  `toml:"show_images"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if raw.NotificationSeconds > 0 {
		cfg.NotificationDuration = time.Duration(raw.NotificationSeconds) * time.Second
	}
	if raw.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSeconds) * time.Second
	}
	if raw.MaxImageWorkers > 0 {
		cfg.MaxImageWorkers = raw.MaxImageWorkers
	}
	if raw.ShowImages != nil {
		cfg.ShowImages = *raw.ShowImages
	}
	cfg.ReconcileOnFailure = raw.ReconcileOnFailure

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
