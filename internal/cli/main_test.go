// Copyright (c) 2026 BioMiner Team
// biominer-app-util - WDL app management utility
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"testing"
)

func TestNewRootCmd_HasSubcommands(t *testing.T) {
	cmd := NewRootCmd()

	want := []string{"install", "uninstall", "apps", "render", "variables", "manual", "history", "version"}
	for _, name := range want {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}

func TestResolveBuildVersion_FromBuildInfo(t *testing.T) {
	info := &debug.BuildInfo{}
	info.Main.Version = "v1.2.3"
	info.Settings = []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef0123"},
		{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
	}

	v, c, d := resolveBuildVersion(info)
	if v != "v1.2.3" {
		t.Errorf("expected version v1.2.3, got %q", v)
	}
	if c != "0123456789ab" {
		t.Errorf("expected commit truncated to 12 chars, got %q", c)
	}
	if d != "2026-01-02T03:04:05Z" {
		t.Errorf("unexpected build date %q", d)
	}
}

func TestResolveBuildVersion_DevelFallsBackToLinkerValues(t *testing.T) {
	info := &debug.BuildInfo{}
	info.Main.Version = "(devel)"

	v, _, _ := resolveBuildVersion(info)
	if v != version {
		t.Errorf("expected linker version %q, got %q", version, v)
	}
}

func TestGetConfigPathFromCli(t *testing.T) {
	cmd := NewRootCmd()

	// Flag not set: no path, no error.
	path, err := getConfigPathFromCli(cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != nil {
		t.Fatalf("expected nil path when --config is unset, got %v", *path)
	}

	// Flag set to a missing file: error.
	if err := cmd.ParseFlags([]string{"--config", "/nonexistent/biominer.yaml"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	if _, err := getConfigPathFromCli(cmd); err == nil {
		t.Fatalf("expected error for missing config file")
	}

	// Flag set to an existing file: path returned.
	dir := t.TempDir()
	cfg := filepath.Join(dir, "biominer.yaml")
	if err := os.WriteFile(cfg, []byte("language: en\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	cmd2 := NewRootCmd()
	if err := cmd2.ParseFlags([]string{"--config", cfg}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	path, err = getConfigPathFromCli(cmd2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path == nil || *path != cfg {
		t.Fatalf("expected %q, got %v", cfg, path)
	}
}

func TestSetupDefaultServices_FirstRunWritesConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Chdir(t.TempDir())

	cmd := NewRootCmd()
	if err := setupDefaultServices(cmd, nil); err != nil {
		t.Fatalf("setupDefaultServices failed: %v", err)
	}

	cfgDir, err := os.UserConfigDir()
	if err != nil {
		t.Fatalf("UserConfigDir failed: %v", err)
	}
	cfgPath := filepath.Join(cfgDir, "biominer", "biominer.yaml")
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("expected default config written to %s: %v", cfgPath, err)
	}
	if len(data) == 0 {
		t.Fatalf("default config file is empty")
	}
	if appConfig.AppDir == "" {
		t.Fatalf("expected app dir resolved from defaults")
	}
}
