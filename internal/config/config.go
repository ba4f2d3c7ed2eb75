// Package config resolves runtime configuration from defaults, an optional
// YAML file and POMOD_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	appDirName    = "pomod"
	dbFileName    = "pomod.db"
	logFileName   = "pomod.log"
	cfgFileName   = "config.yaml"
	fallbackDir   = ".pomod"
	defaultBuffer = 8
)

type Config struct {
	DBPath               string `yaml:"db_path"`
	LogLevel             string `yaml:"log_level"`
	LogFile              string `yaml:"log_file"`
	DesktopNotifications bool   `yaml:"desktop_notifications"`
	TerminalBell         bool   `yaml:"terminal_bell"`
	StatusClearSeconds   int    `yaml:"status_clear_seconds"`
	SchedulerBuffer      int    `yaml:"scheduler_buffer"`
}

func Default() Config {
	dir := DataDir()
	return Config{
		DBPath:               filepath.Join(dir, dbFileName),
		LogLevel:             "info",
		LogFile:              filepath.Join(dir, logFileName),
		DesktopNotifications: false,
		TerminalBell:         true,
		StatusClearSeconds:   3,
		SchedulerBuffer:      defaultBuffer,
	}
}

// DataDir is the per-user directory holding the database, log and config.
func DataDir() string {
	if base, err := os.UserConfigDir(); err == nil && base != "" {
		return filepath.Join(base, appDirName)
	}
	return fallbackDir
}

// DefaultFilePath is where Load looks when no --config flag is given.
func DefaultFilePath() string {
	return filepath.Join(DataDir(), cfgFileName)
}

// LoadFile overlays the YAML file at path onto base. A missing file is not
// an error.
func LoadFile(base Config, path string) (Config, error) {
	cfg := base
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return base, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.sanitize(base), nil
}

// FromEnv applies POMOD_* overrides to base. Unset or malformed values are
// ignored.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("POMOD_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("POMOD_LOG_LEVEL"); ok {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := getEnvString("POMOD_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvBool("POMOD_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvBool("POMOD_TERMINAL_BELL"); ok {
		cfg.TerminalBell = v
	}
	if v, ok := getEnvInt("POMOD_STATUS_CLEAR_SECONDS"); ok && v > 0 {
		cfg.StatusClearSeconds = v
	}
	if v, ok := getEnvInt("POMOD_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	return cfg
}

// Load resolves defaults, then the file at path, then the environment.
func Load(path string) (Config, error) {
	cfg, err := LoadFile(Default(), path)
	if err != nil {
		return Config{}, err
	}
	return FromEnv(cfg), nil
}

func (c Config) sanitize(fallback Config) Config {
	if strings.TrimSpace(c.DBPath) == "" {
		c.DBPath = fallback.DBPath
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = fallback.LogLevel
	}
	if c.StatusClearSeconds <= 0 {
		c.StatusClearSeconds = fallback.StatusClearSeconds
	}
	if c.SchedulerBuffer <= 0 {
		c.SchedulerBuffer = fallback.SchedulerBuffer
	}
	return c
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
