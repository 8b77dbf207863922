package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at an empty directory so a real user config cannot leak in
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		"TASKMASTER_STORAGE", "TASKMASTER_STORAGE_PATH", "TASKMASTER_REDIS_URL",
		"TASKMASTER_STORAGE_KEY", "TASKMASTER_THEME", "TASKMASTER_TOAST_SECONDS",
		"TASKMASTER_CONFIRM_DELETE", "TASKMASTER_LOG_LEVEL", "TASKMASTER_LOG_FORMAT",
		"TASKMASTER_LOG_FILE",
	} {
		t.Setenv(key, "")
	}
	return home
}

func TestDefaultConfig(t *testing.T) {
	home := isolate(t)
	cfg := DefaultConfig()

	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(home, ".taskmaster", "myTodos.json"), cfg.Storage.Path)
	assert.Equal(t, "myTodos", cfg.Storage.Key)
	assert.Equal(t, 2000, cfg.Storage.TimeoutMs)

	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, 3, cfg.UI.ToastSeconds)
	assert.True(t, cfg.UI.ConfirmDelete)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.NotEmpty(t, cfg.Log.File)
}

func TestLoadConfigNoFiles(t *testing.T) {
	isolate(t)
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFromProjectFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	content := `
[storage]
backend = "memory"

[ui]
theme = "light"
confirm_delete = false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectFileName), []byte(content), 0644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.False(t, cfg.UI.ConfirmDelete)
	// untouched keys keep defaults
	assert.Equal(t, 3, cfg.UI.ToastSeconds)
	assert.Equal(t, "myTodos", cfg.Storage.Key)
}

func TestLoadConfigPriority(t *testing.T) {
	home := isolate(t)
	dir := t.TempDir()

	userDir := filepath.Join(home, ".taskmaster")
	require.NoError(t, os.MkdirAll(userDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "config.toml"),
		[]byte("[ui]\ntheme = \"light\"\ntoast_seconds = 10\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectFileName),
		[]byte("[ui]\ntoast_seconds = 5\n"), 0644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "light", cfg.UI.Theme, "user file applies")
	assert.Equal(t, 5, cfg.UI.ToastSeconds, "project file overrides user file")

	t.Setenv("TASKMASTER_TOAST_SECONDS", "7")
	t.Setenv("TASKMASTER_THEME", "DARK")
	cfg, err = LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.UI.ToastSeconds, "env overrides files")
	assert.Equal(t, "dark", cfg.UI.Theme)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("TASKMASTER_STORAGE", "redis")
	t.Setenv("TASKMASTER_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("TASKMASTER_STORAGE_KEY", "work")
	t.Setenv("TASKMASTER_CONFIRM_DELETE", "off")
	t.Setenv("TASKMASTER_LOG_LEVEL", "debug")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Storage.RedisURL)
	assert.Equal(t, "work", cfg.Storage.Key)
	assert.False(t, cfg.UI.ConfirmDelete)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectFileName), []byte("[storage\nbackend ="), 0644))

	cfg, err := LoadConfig(dir)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown backend", "[storage]\nbackend = \"sqlite\"\n", "invalid storage backend"},
		{"redis without url", "[storage]\nbackend = \"redis\"\n", "requires redis_url"},
		{"unknown theme", "[ui]\ntheme = \"neon\"\n", "invalid ui theme"},
		{"negative timeout", "[storage]\ntimeout_ms = -1\n", "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectFileName), []byte(tt.content), 0644))

			_, err := LoadConfig(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveUISettings(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", ProjectFileName)

	require.NoError(t, SaveUISettings(path, UIConfig{Theme: "light", ConfirmDelete: false, ToastSeconds: 9}))

	loaded, err := LoadConfig(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, "light", loaded.UI.Theme)
	assert.False(t, loaded.UI.ConfirmDelete)
	assert.Equal(t, 3, loaded.UI.ToastSeconds, "only theme and confirm_delete are written")
	assert.Equal(t, DefaultConfig().Storage, loaded.Storage)
}

func TestSaveUISettingsKeepsOtherKeys(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ProjectFileName)

	content := `
[storage]
backend = "redis"
redis_url = "redis://localhost:6379/0"

[ui]
theme = "dark"
toast_seconds = 7

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	require.NoError(t, SaveUISettings(path, UIConfig{Theme: "light", ConfirmDelete: true}))

	loaded, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "light", loaded.UI.Theme)
	assert.True(t, loaded.UI.ConfirmDelete)
	assert.Equal(t, 7, loaded.UI.ToastSeconds)
	assert.Equal(t, BackendRedis, loaded.Storage.Backend)
	assert.Equal(t, "redis://localhost:6379/0", loaded.Storage.RedisURL)
	assert.Equal(t, "debug", loaded.Log.Level)
}

func TestSaveUISettingsRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui\ntheme ="), 0644))

	err := SaveUISettings(path, UIConfig{Theme: "light"})
	require.Error(t, err)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "[ui\ntheme =", string(data), "unparseable file is left alone")
}

func TestMergeWithDefaults(t *testing.T) {
	isolate(t)
	cfg := &Config{
		Storage: StorageConfig{Backend: BackendRedis, RedisURL: "redis://x"},
		UI:      UIConfig{Theme: "light"},
	}

	merged := MergeWithDefaults(cfg)

	assert.Equal(t, BackendRedis, merged.Storage.Backend)
	assert.Equal(t, "light", merged.UI.Theme)
	assert.Equal(t, "myTodos", merged.Storage.Key)
	assert.Equal(t, 2000, merged.Storage.TimeoutMs)
	assert.Equal(t, 3, merged.UI.ToastSeconds)
	assert.Equal(t, "info", merged.Log.Level)
	assert.Equal(t, "text", merged.Log.Format)
}

func TestMergeWithDefaultsExpandsHome(t *testing.T) {
	home := isolate(t)
	cfg := MergeWithDefaults(&Config{Storage: StorageConfig{Path: "~/todos.json"}})
	assert.Equal(t, filepath.Join(home, "todos.json"), cfg.Storage.Path)
}

func TestBoolFromString(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1", true},
		{"true", true},
		{" YES ", true},
		{"on", true},
		{"0", false},
		{"off", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, boolFromString(tt.in), tt.in)
	}
}
