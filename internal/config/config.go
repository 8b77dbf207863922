package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Storage backend names
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// ProjectFileName is the per-directory config file
const ProjectFileName = ".taskmaster.toml"

// Config represents the full Task Master configuration
type Config struct {
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
}

// StorageConfig selects and configures the durable backend
type StorageConfig struct {
	Backend   string `toml:"backend"`
	Path      string `toml:"path"`
	RedisURL  string `toml:"redis_url"`
	Key       string `toml:"key"`
	TimeoutMs int    `toml:"timeout_ms"`
}

// UIConfig contains terminal UI settings
type UIConfig struct {
	Theme         string `toml:"theme"`
	ToastSeconds  int    `toml:"toast_seconds"`
	ConfirmDelete bool   `toml:"confirm_delete"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// BaseDir returns ~/.taskmaster, falling back to the working directory when
// the home directory cannot be resolved
func BaseDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".taskmaster"
	}
	return filepath.Join(homeDir, ".taskmaster")
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	base := BaseDir()

	return &Config{
		Storage: StorageConfig{
			Backend:   BackendFile,
			Path:      filepath.Join(base, "myTodos.json"),
			Key:       "myTodos",
			TimeoutMs: 2000,
		},
		UI: UIConfig{
			Theme:         "dark",
			ToastSeconds:  3,
			ConfirmDelete: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   filepath.Join(base, "taskmaster.log"),
		},
	}
}

// LoadConfig loads configuration with priority:
// 1. TASKMASTER_* environment variables
// 2. .taskmaster.toml in projectPath
// 3. ~/.taskmaster/config.toml
// 4. Defaults
func LoadConfig(projectPath string) (*Config, error) {
	cfg := DefaultConfig()

	userPath := filepath.Join(BaseDir(), "config.toml")
	if err := decodeIfExists(cfg, userPath); err != nil {
		return nil, err
	}

	if projectPath != "" {
		if err := decodeIfExists(cfg, filepath.Join(projectPath, ProjectFileName)); err != nil {
			return nil, err
		}
	}

	loadFromEnv(cfg)

	cfg = MergeWithDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeIfExists overlays the TOML file at path onto cfg. Keys missing from
// the file keep their current value.
func decodeIfExists(cfg *Config, path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// SaveUISettings records the theme and confirm-delete choice in the TOML
// file at path. Every other key already in the file is kept as is, and
// nothing else from the running config is written, so flag and environment
// overrides stay one-off.
func SaveUISettings(path string, ui UIConfig) error {
	doc := map[string]any{}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &doc); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	section, _ := doc["ui"].(map[string]any)
	if section == nil {
		section = map[string]any{}
	}
	section["theme"] = ui.Theme
	section["confirm_delete"] = ui.ConfirmDelete
	doc["ui"] = section

	return writeTOML(path, doc)
}

func writeTOML(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = defaults.Storage.Backend
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = defaults.Storage.Path
	}
	if cfg.Storage.Key == "" {
		cfg.Storage.Key = defaults.Storage.Key
	}
	if cfg.Storage.TimeoutMs == 0 {
		cfg.Storage.TimeoutMs = defaults.Storage.TimeoutMs
	}

	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
	if cfg.UI.ToastSeconds == 0 {
		cfg.UI.ToastSeconds = defaults.UI.ToastSeconds
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaults.Log.Format
	}

	cfg.Storage.Path = expandHome(cfg.Storage.Path)
	cfg.Log.File = expandHome(cfg.Log.File)

	return cfg
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("invalid storage backend %q (want file, redis or memory)", c.Storage.Backend)
	}
	if c.Storage.Backend == BackendRedis && c.Storage.RedisURL == "" {
		return fmt.Errorf("storage backend redis requires redis_url")
	}
	switch c.UI.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("invalid ui theme %q (want dark or light)", c.UI.Theme)
	}
	if c.Storage.TimeoutMs < 0 || c.UI.ToastSeconds < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	return nil
}

// loadFromEnv overrides config from environment variables
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TASKMASTER_STORAGE"); v != "" {
		cfg.Storage.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("TASKMASTER_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("TASKMASTER_REDIS_URL"); v != "" {
		cfg.Storage.RedisURL = v
	}
	if v := os.Getenv("TASKMASTER_STORAGE_KEY"); v != "" {
		cfg.Storage.Key = v
	}
	if v := os.Getenv("TASKMASTER_THEME"); v != "" {
		cfg.UI.Theme = strings.ToLower(v)
	}
	if v := os.Getenv("TASKMASTER_TOAST_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.UI.ToastSeconds = n
		}
	}
	if v := os.Getenv("TASKMASTER_CONFIRM_DELETE"); v != "" {
		cfg.UI.ConfirmDelete = boolFromString(v)
	}
	if v := os.Getenv("TASKMASTER_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TASKMASTER_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("TASKMASTER_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// Load is a convenience function that loads config from current directory
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadConfig(cwd)
}
