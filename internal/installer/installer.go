// Copyright (c) 2026 BioMiner Team
// biominer-app-util - WDL app management utility
// This source code is licensed under the MIT license found in the LICENSE file.

// Package installer installs and uninstalls apps under the app root
// directory. Apps come either from a git-backed app store or from a local
// zip archive.
package installer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/yjcyxky/biominer-app-util/internal/appdir"
	"github.com/yjcyxky/biominer-app-util/internal/logging"
	"github.com/yjcyxky/biominer-app-util/internal/model"
)

var (
	// ErrAlreadyInstalled reports an install target that already exists.
	ErrAlreadyInstalled = errors.New("app already installed")
	// ErrNotInstalled reports an uninstall target that does not exist.
	ErrNotInstalled = errors.New("app not installed")
	// ErrCancelled reports a user-aborted uninstall.
	ErrCancelled = errors.New("cancelled")
)

// GitOptions carries the app store coordinates for a git-based install.
type GitOptions struct {
	Endpoint string // store base URL, e.g. http://choppy.3steps.cn
	Username string
	Password string
}

// InstallFromGit clones namespace/name at the requested version into
// <root>/<namespace>/<name>-<version> and validates the result. The clone
// is shallow and single-branch; "latest" maps to the master branch. The
// cloned directory is removed again when it is not a valid app.
func InstallFromGit(ctx context.Context, root string, name model.AppName, opts GitOptions) (string, error) {
	destDir := filepath.Join(root, name.Dir())
	if _, err := os.Stat(destDir); err == nil {
		return "", fmt.Errorf("%w: %s", ErrAlreadyInstalled, name)
	}
	if err := os.MkdirAll(filepath.Dir(destDir), 0755); err != nil {
		return "", fmt.Errorf("could not create namespace directory: %w", err)
	}

	branch := name.Version
	if branch == model.DefaultVersion {
		branch = "master"
	}

	repoURL, err := storeRepoURL(opts.Endpoint, opts.Username, name)
	if err != nil {
		return "", err
	}

	args := []string{"clone", "-b", branch, "--single-branch", "-q", "--depth", "1", repoURL, destDir}
	logging.Debugf("git %s", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, "git", args...)
	// git asks for the password on stdin when the URL carries a username.
	cmd.Stdin = strings.NewReader(opts.Password + "\n")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Never leak a partial clone.
		_ = os.RemoveAll(destDir)
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("git clone of %s failed: %s", name, msg)
	}

	if err := appdir.Validate(destDir); err != nil {
		_ = os.RemoveAll(destDir)
		return "", err
	}

	return destDir, nil
}

// storeRepoURL builds the authenticated clone URL for an app. The username
// is URL-escaped so names containing '@' survive.
func storeRepoURL(endpoint, username string, name model.AppName) (string, error) {
	if endpoint == "" {
		return "", fmt.Errorf("app store endpoint must not be empty")
	}
	host := strings.TrimPrefix(endpoint, "https://")
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimSuffix(host, "/")

	if username == "" {
		return fmt.Sprintf("http://%s/%s/%s.git", host, name.Namespace, name.Name), nil
	}
	return fmt.Sprintf("http://%s@%s/%s/%s.git", url.QueryEscape(username), host, name.Namespace, name.Name), nil
}

// Uninstall removes an installed app directory. When confirm is non-nil it
// is consulted first; declining returns ErrCancelled.
func Uninstall(root, name string, confirm func(name string) bool) error {
	app, err := appdir.Find(root, name)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotInstalled, name)
	}
	if confirm != nil && !confirm(name) {
		return ErrCancelled
	}
	if err := os.RemoveAll(app.Path); err != nil {
		return fmt.Errorf("could not remove %s: %w", app.Path, err)
	}
	return nil
}
