// Copyright (c) 2026 BioMiner Team
// biominer-app-util - WDL app management utility
// This source code is licensed under the MIT license found in the LICENSE file.

package appdir

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyFile copies a regular file, creating the destination's parent
// directory when needed. An existing destination file is replaced.
func CopyFile(from, to string) error {
	src, err := os.Open(from)
	if err != nil {
		return fmt.Errorf("could not open %s: %w", from, err)
	}
	defer func() { _ = src.Close() }()

	if err := os.MkdirAll(filepath.Dir(to), 0755); err != nil {
		return fmt.Errorf("could not create directory for %s: %w", to, err)
	}

	dst, err := os.Create(to)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", to, err)
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("could not copy %s to %s: %w", from, to, err)
	}
	return dst.Close()
}

// CopyDir recursively copies a directory tree. An existing destination
// tree is removed first.
func CopyDir(from, to string) error {
	if err := os.RemoveAll(to); err != nil {
		return fmt.Errorf("could not remove %s: %w", to, err)
	}
	return filepath.WalkDir(from, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(from, path)
		if err != nil {
			return err
		}
		target := filepath.Join(to, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return CopyFile(path, target)
	})
}
