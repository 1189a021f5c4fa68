// Copyright (c) 2026 BioMiner Team
// biominer-app-util - WDL app management utility
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads and persists the biominer-app-util configuration.
// Configuration is resolved from (in increasing precedence) built-in
// defaults, a YAML config file, BIOMINER_* environment variables and
// command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// AppDir is the root directory where apps are installed.
	AppDir string `mapstructure:"app_dir" yaml:"app_dir"`
	// ProjectDir is the root directory for rendered pipeline projects.
	ProjectDir string `mapstructure:"project_dir" yaml:"project_dir"`
	Store      StoreConfig    `mapstructure:"store" yaml:"store"`
	Database   DatabaseConfig `mapstructure:"database" yaml:"database"`
	Language   string         `mapstructure:"language" yaml:"language"`
}

// StoreConfig describes the remote app store used for git-based installs.
type StoreConfig struct {
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	Username string `mapstructure:"username" yaml:"username"`
}

// DatabaseConfig describes the registry database backend.
type DatabaseConfig struct {
	Type string `mapstructure:"type" yaml:"type"`
	Dsn  string `mapstructure:"dsn" yaml:"dsn"`
}

// DefaultAppDir returns the default app root directory (~/.biominer/apps).
func DefaultAppDir() string {
	return filepath.Join(biominerHome(), "apps")
}

// DefaultProjectDir returns the default project root directory
// (~/.biominer/projects).
func DefaultProjectDir() string {
	return filepath.Join(biominerHome(), "projects")
}

// DefaultDatabaseDsn returns the default SQLite DSN (~/.biominer/biominer.db).
func DefaultDatabaseDsn() string {
	return filepath.Join(biominerHome(), "biominer.db")
}

func biominerHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to a relative directory; better than failing outright.
		return ".biominer"
	}
	return filepath.Join(home, ".biominer")
}

// getConfigPath returns the full path for the configuration file.
func getConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "BioMiner")
		default: // Linux, macOS, etc.
			configDir = "/etc/biominer"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "biominer")
	}

	return filepath.Join(configDir, "biominer.yaml"), nil
}

// LoadConfig resolves the configuration for a command invocation.
// An explicit config file path (from --config) takes precedence over the
// standard search locations. When no config file exists the returned
// config is still usable (defaults, env and flags apply) and the error is
// a viper.ConfigFileNotFoundError, so callers can detect the first run
// and persist a default file.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitPath *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("biominer")
	v.SetConfigType("yaml")

	if explicitPath != nil {
		v.SetConfigFile(*explicitPath)
	}

	if userConfigPath, err := getConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := getConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".") // biominer.yaml in current dir

	var notFoundErr error
	if err := v.ReadInConfig(); err != nil {
		// A missing config file still yields a working config below;
		// anything else is a real error.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
		notFoundErr = err
	}

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("biominer")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, notFoundErr
}

// WriteConfigFile persists the configuration as YAML to the user (or
// system) config path, creating the directory when needed.
func WriteConfigFile[T any](c *T, system bool) error {
	path, err := getConfigPath(system)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	// 0600: the file may contain store credentials.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return err
	}

	return nil
}
