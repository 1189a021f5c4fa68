package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func testDefaults() map[string]any {
	return map[string]any{
		"app_dir":       "/tmp/apps",
		"project_dir":   "/tmp/projects",
		"database.type": "sqlite",
		"database.dsn":  "./biominer.db",
		"language":      "en",
	}
}

// isolateConfigDirs keeps the test away from any real config files in the
// user's home or the current directory.
func isolateConfigDirs(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestLoadConfig_NoFileReturnsDefaultsAndNotFound(t *testing.T) {
	isolateConfigDirs(t)

	cmd := &cobra.Command{Use: "test"}
	c, err := LoadConfig[Config](cmd, testDefaults(), nil)
	if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
		t.Fatalf("expected ConfigFileNotFoundError, got %v", err)
	}
	// The config is still fully usable from defaults.
	if c.AppDir != "/tmp/apps" {
		t.Errorf("AppDir = %q, want /tmp/apps", c.AppDir)
	}
	if c.Database.Type != "sqlite" {
		t.Errorf("Database.Type = %q, want sqlite", c.Database.Type)
	}
	if c.Language != "en" {
		t.Errorf("Language = %q, want en", c.Language)
	}
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	isolateConfigDirs(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := strings.Join([]string{
		"app_dir: /data/apps",
		"language: zh",
		"database:",
		"  type: postgres",
		"  dsn: host=localhost dbname=biominer",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cmd := &cobra.Command{Use: "test"}
	c, err := LoadConfig[Config](cmd, testDefaults(), &path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if c.AppDir != "/data/apps" {
		t.Errorf("AppDir = %q, want /data/apps", c.AppDir)
	}
	if c.Language != "zh" {
		t.Errorf("Language = %q, want zh", c.Language)
	}
	if c.Database.Type != "postgres" {
		t.Errorf("Database.Type = %q, want postgres", c.Database.Type)
	}
	// Values absent from the file fall back to defaults.
	if c.ProjectDir != "/tmp/projects" {
		t.Errorf("ProjectDir = %q, want default", c.ProjectDir)
	}
}

func TestLoadConfig_FileInCwd(t *testing.T) {
	isolateConfigDirs(t)

	if err := os.WriteFile("biominer.yaml", []byte("language: zh\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cmd := &cobra.Command{Use: "test"}
	c, err := LoadConfig[Config](cmd, testDefaults(), nil)
	if err != nil {
		t.Fatalf("a present config file must not yield an error: %v", err)
	}
	if c.Language != "zh" {
		t.Errorf("Language = %q, want zh", c.Language)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	isolateConfigDirs(t)
	t.Setenv("BIOMINER_LANGUAGE", "zh")

	cmd := &cobra.Command{Use: "test"}
	c, err := LoadConfig[Config](cmd, testDefaults(), nil)
	if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
		t.Fatalf("expected ConfigFileNotFoundError, got %v", err)
	}
	if c.Language != "zh" {
		t.Errorf("Language = %q, want zh from env", c.Language)
	}
}

func TestWriteConfigFile_RoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := Config{AppDir: "/data/apps", Language: "zh"}
	if err := WriteConfigFile(&c, false); err != nil {
		t.Fatalf("WriteConfigFile failed: %v", err)
	}

	path, err := getConfigPath(false)
	if err != nil {
		t.Fatalf("getConfigPath failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected config file at %s: %v", path, err)
	}
	if !strings.Contains(string(data), "app_dir: /data/apps") {
		t.Errorf("unexpected config content: %s", data)
	}
}

func TestDefaultDirs(t *testing.T) {
	if !strings.HasSuffix(DefaultAppDir(), filepath.Join(".biominer", "apps")) {
		t.Errorf("unexpected DefaultAppDir: %q", DefaultAppDir())
	}
	if !strings.HasSuffix(DefaultProjectDir(), filepath.Join(".biominer", "projects")) {
		t.Errorf("unexpected DefaultProjectDir: %q", DefaultProjectDir())
	}
}
