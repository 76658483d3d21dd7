// Package config loads runtime settings from defaults, an optional TOML
// file and WONKY_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Mode string

const (
	ModeGUI  Mode = "gui"
	ModeCLI  Mode = "cli"
	ModeTest Mode = "test"
)

// ParseMode maps a mode literal to a Mode. Unknown literals yield ModeGUI
// and ok=false.
func ParseMode(raw string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModeGUI:
		return ModeGUI, true
	case ModeCLI:
		return ModeCLI, true
	case ModeTest:
		return ModeTest, true
	default:
		return ModeGUI, false
	}
}

// GUILogFile is where the chat window logs when no file is configured, since
// it owns the terminal.
const GUILogFile = "wonky.log"

type StorageConfig struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

type Config struct {
	Mode        Mode          `toml:"mode"`
	ExitDelayMS int           `toml:"exit_delay_ms"`
	Storage     StorageConfig `toml:"storage"`
	Log         LogConfig     `toml:"log"`
}

// ExitDelay is the grace period between the farewell and process exit.
func (c Config) ExitDelay() time.Duration {
	if c.ExitDelayMS < 0 {
		return 0
	}
	return time.Duration(c.ExitDelayMS) * time.Millisecond
}

// Persistent reports whether the mode reads and writes storage.
func (c Config) Persistent() bool {
	return c.Mode != ModeTest
}

// Logging returns the log settings for the configured mode. An empty file
// means stderr, except in the chat window which falls back to GUILogFile.
func (c Config) Logging() LogConfig {
	out := c.Log
	if c.Mode == ModeGUI && strings.TrimSpace(out.File) == "" {
		out.File = GUILogFile
	}
	return out
}

func Default() Config {
	return Config{
		Mode:        ModeGUI,
		ExitDelayMS: 1000,
		Storage: StorageConfig{
			Driver: "sqlite",
			Path:   filepath.Join("data", "wonky.db"),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load applies the file at path (when non-empty and present) and then
// the environment on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		if err := loadFile(&cfg, trimmed); err != nil {
			return Config{}, fmt.Errorf("loading config file %s: %w", trimmed, err)
		}
	}
	cfg = FromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown keys: %v", undecoded)
	}
	return nil
}

func FromEnv(base Config) Config {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("WONKY_MODE")); v != "" {
		if mode, ok := ParseMode(v); ok {
			cfg.Mode = mode
		}
	}
	if v, ok := getEnvInt("WONKY_EXIT_DELAY_MS"); ok && v >= 0 {
		cfg.ExitDelayMS = v
	}
	if v := strings.TrimSpace(os.Getenv("WONKY_STORAGE_DRIVER")); v != "" {
		cfg.Storage.Driver = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("WONKY_STORAGE_PATH")); v != "" {
		cfg.Storage.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("WONKY_LOG_LEVEL")); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("WONKY_LOG_FORMAT")); v != "" {
		cfg.Log.Format = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv("WONKY_LOG_FILE"); ok {
		cfg.Log.File = strings.TrimSpace(v)
	}
	return cfg
}

func (c Config) Validate() error {
	if _, ok := ParseMode(string(c.Mode)); !ok {
		return fmt.Errorf("config: unknown mode %q", c.Mode)
	}
	switch c.Storage.Driver {
	case "sqlite", "yaml":
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	if c.Persistent() && strings.TrimSpace(c.Storage.Path) == "" {
		return errors.New("config: storage path is required")
	}
	return nil
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
