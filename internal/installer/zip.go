// Copyright (c) 2026 BioMiner Team
// biominer-app-util - WDL app management utility
// This source code is licensed under the MIT license found in the LICENSE file.

package installer

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/yjcyxky/biominer-app-util/internal/appdir"
)

// InstallFromZip installs an app from a local zip archive. The archive must
// contain `<app>/inputs` and `<app>/workflow.wdl`, where <app> is the
// archive's base name; besides those only `<app>/tasks/*.wdl`, the defaults
// file and the README are extracted. An existing install of the same app is
// an error unless force is set, in which case it is replaced. The app name
// is returned.
func InstallFromZip(zipPath, root string, force bool) (string, error) {
	appName := strings.TrimSuffix(filepath.Base(zipPath), filepath.Ext(zipPath))

	destDir := filepath.Join(root, appName)
	if _, err := os.Stat(destDir); err == nil {
		if !force {
			return "", fmt.Errorf("%w: %s", ErrAlreadyInstalled, appName)
		}
		if err := os.RemoveAll(destDir); err != nil {
			return "", fmt.Errorf("could not remove previous install of %s: %w", appName, err)
		}
	}

	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", fmt.Errorf("could not open archive %s: %w", zipPath, err)
	}
	defer func() { _ = zr.Close() }()

	members := map[string]*zip.File{}
	for _, f := range zr.File {
		members[f.Name] = f
	}

	required := []string{
		path.Join(appName, appdir.InputsFile),
		path.Join(appName, appdir.WorkflowFile),
	}
	for _, name := range required {
		if _, ok := members[name]; !ok {
			return "", fmt.Errorf("%w: archive is missing %s", appdir.ErrInvalidApp, name)
		}
	}

	extract := append([]string{}, required...)
	optional := []string{
		path.Join(appName, appdir.DefaultsFile),
		path.Join(appName, appdir.ReadmeFile),
	}
	for _, name := range optional {
		if _, ok := members[name]; ok {
			extract = append(extract, name)
		}
	}
	tasksPrefix := path.Join(appName, appdir.TasksDir) + "/"
	for name := range members {
		if strings.HasPrefix(name, tasksPrefix) && strings.HasSuffix(name, ".wdl") {
			extract = append(extract, name)
		}
	}

	// The tasks dir must exist even when the archive carries no task files.
	if err := os.MkdirAll(filepath.Join(destDir, appdir.TasksDir), 0755); err != nil {
		return "", fmt.Errorf("could not create %s: %w", destDir, err)
	}

	for _, name := range extract {
		if err := extractMember(members[name], root); err != nil {
			_ = os.RemoveAll(destDir)
			return "", err
		}
	}

	if err := appdir.Validate(destDir); err != nil {
		_ = os.RemoveAll(destDir)
		return "", err
	}

	return appName, nil
}

// extractMember writes one archive member below root, refusing member names
// that would escape it.
func extractMember(f *zip.File, root string) error {
	if !filepath.IsLocal(filepath.FromSlash(f.Name)) {
		return fmt.Errorf("archive member %q has an unsafe path", f.Name)
	}
	target := filepath.Join(root, filepath.FromSlash(f.Name))

	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, 0755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("could not read archive member %s: %w", f.Name, err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(target)
	if err != nil {
		return err
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("could not extract %s: %w", f.Name, err)
	}
	return dst.Close()
}
