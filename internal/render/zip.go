// Copyright (c) 2026 BioMiner Team
// biominer-app-util - WDL app management utility
// This source code is licensed under the MIT license found in the LICENSE file.

package render

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/klauspost/compress/flate"
)

// ZipTasks archives the app's tasks directory into destZip. Entries are
// stored under a top-level "tasks/" prefix, which is the layout Cromwell
// expects for a workflow dependencies bundle.
func ZipTasks(tasksDir, destZip string) error {
	out, err := os.Create(destZip)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", destZip, err)
	}
	defer func() { _ = out.Close() }()

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})

	err = filepath.WalkDir(tasksDir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(tasksDir, p)
		if err != nil {
			return err
		}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   path.Join("tasks", filepath.ToSlash(rel)),
			Method: zip.Deflate,
		})
		if err != nil {
			return err
		}

		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()

		_, err = io.Copy(w, f)
		return err
	})
	if err != nil {
		_ = zw.Close()
		return fmt.Errorf("could not archive %s: %w", tasksDir, err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("could not finalize %s: %w", destZip, err)
	}
	return out.Close()
}
