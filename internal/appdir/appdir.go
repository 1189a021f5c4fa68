// Copyright (c) 2026 BioMiner Team
// biominer-app-util - WDL app management utility
// This source code is licensed under the MIT license found in the LICENSE file.

// Package appdir implements operations on app directories: validation,
// discovery under the app root, and the per-app defaults file.
//
// A valid app directory contains an `inputs` template, a `workflow.wdl`
// template and a `tasks/` directory of dependency WDL files. It may also
// carry a `defaults` JSON file and a README.md manual.
package appdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/yjcyxky/biominer-app-util/internal/model"
)

// Well-known entries of an app directory.
const (
	InputsFile   = "inputs"
	WorkflowFile = "workflow.wdl"
	TasksDir     = "tasks"
	DefaultsFile = "defaults"
	ReadmeFile   = "README.md"
)

// ErrInvalidApp reports a directory that does not have the required app layout.
var ErrInvalidApp = errors.New("not a valid app")

// requiredEntries are the entries every app directory must contain.
var requiredEntries = []string{InputsFile, WorkflowFile, TasksDir}

// Validate checks that path is a valid app directory. The returned error
// names the first missing entry.
func Validate(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s does not exist", ErrInvalidApp, filepath.Base(path))
	}
	for _, entry := range requiredEntries {
		if _, err := os.Stat(filepath.Join(path, entry)); err != nil {
			return fmt.Errorf("%w: %s is missing %s", ErrInvalidApp, filepath.Base(path), entry)
		}
	}
	return nil
}

// IsValid reports whether path is a valid app directory.
func IsValid(path string) bool {
	return Validate(path) == nil
}

// List enumerates apps installed under root. Both the legacy flat layout
// (<root>/<app>) and the namespaced layout (<root>/<namespace>/<name-version>)
// are supported; anything that is not an app directory is skipped.
func List(root string) ([]model.App, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("could not read app root %s: %w", root, err)
	}

	var apps []model.App
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(root, e.Name())
		if IsValid(dir) {
			apps = append(apps, model.App{Name: e.Name(), Path: dir})
			continue
		}
		subEntries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, sub := range subEntries {
			if !sub.IsDir() {
				continue
			}
			subDir := filepath.Join(dir, sub.Name())
			if IsValid(subDir) {
				apps = append(apps, model.App{
					Name: e.Name() + "/" + sub.Name(),
					Path: subDir,
				})
			}
		}
	}

	sort.Slice(apps, func(i, j int) bool { return apps[i].Name < apps[j].Name })
	return apps, nil
}

// Find resolves an installed app by its directory name relative to root,
// or by its store name "namespace/name[:version]".
func Find(root, name string) (model.App, error) {
	dir := filepath.Join(root, filepath.FromSlash(name))
	if err := Validate(dir); err == nil {
		return model.App{Name: name, Path: dir}, nil
	}

	appName, err := model.ParseAppName(name)
	if err != nil {
		return model.App{}, fmt.Errorf("%w: %s", ErrInvalidApp, name)
	}
	dir = filepath.Join(root, appName.Dir())
	if err := Validate(dir); err != nil {
		return model.App{}, err
	}
	return model.App{Name: filepath.ToSlash(appName.Dir()), Path: dir}, nil
}
