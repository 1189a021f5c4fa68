// Copyright (c) 2026 BioMiner Team
// biominer-app-util - WDL app management utility
// This source code is licensed under the MIT license found in the LICENSE file.

package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yjcyxky/biominer-app-util/internal/appdir"
	"github.com/yjcyxky/biominer-app-util/internal/logging"
	"github.com/yjcyxky/biominer-app-util/internal/model"
)

// ProjectRequest describes one render invocation: instantiate an app for a
// set of samples under <WorkDir>/<ProjectName>/<sample_id>/.
type ProjectRequest struct {
	App         model.App
	ProjectName string
	WorkDir     string
	Samples     []model.Sample
	// Force allows rendering into sample directories that already exist.
	Force bool
}

// RenderProject renders every sample of the request into its own pipeline
// directory: rendered inputs and workflow.wdl, the app defaults file, the
// tasks directory and a Cromwell-compatible tasks.zip.
func RenderProject(req ProjectRequest) error {
	if req.ProjectName == "" {
		return fmt.Errorf("project name must not be empty")
	}
	if len(req.Samples) == 0 {
		return fmt.Errorf("no samples to render")
	}

	defaults, err := appdir.LoadDefaults(req.App.Path)
	if err != nil {
		return err
	}
	defaultValues := defaults.StringValues()

	required, err := AppVariables(req.App.Path, false)
	if err != nil {
		return err
	}

	inputsTemplate, err := os.ReadFile(filepath.Join(req.App.Path, appdir.InputsFile))
	if err != nil {
		return fmt.Errorf("could not read inputs template: %w", err)
	}
	wdlTemplate, err := os.ReadFile(filepath.Join(req.App.Path, appdir.WorkflowFile))
	if err != nil {
		return fmt.Errorf("could not read workflow template: %w", err)
	}

	projectPath := filepath.Join(req.WorkDir, req.ProjectName)

	for i, sample := range req.Samples {
		if sample.ID() == "" {
			return fmt.Errorf("sample %d has no sample_id", i+1)
		}

		// Sample values win over app defaults; defaults only fill gaps.
		vars := make(map[string]string, len(sample)+len(defaultValues)+1)
		for k, v := range defaultValues {
			vars[k] = v
		}
		for k, v := range sample {
			vars[k] = v
		}
		vars["project_name"] = req.ProjectName

		if missing := missingVariables(required, vars); len(missing) > 0 {
			return fmt.Errorf("sample %s does not cover template variables: %s",
				sample.ID(), strings.Join(missing, ", "))
		}

		samplePath := filepath.Join(projectPath, sample.ID())
		if err := ensureDir(samplePath, req.Force); err != nil {
			return err
		}

		inputs, err := RenderString(string(inputsTemplate), vars)
		if err != nil {
			return fmt.Errorf("sample %s: %w", sample.ID(), err)
		}
		if err := CheckJSON([]byte(inputs)); err != nil {
			return fmt.Errorf("sample %s rendered invalid inputs: %w", sample.ID(), err)
		}
		if err := os.WriteFile(filepath.Join(samplePath, appdir.InputsFile), []byte(inputs), 0644); err != nil {
			return fmt.Errorf("could not write inputs: %w", err)
		}

		wdl, err := RenderString(string(wdlTemplate), vars)
		if err != nil {
			return fmt.Errorf("sample %s: %w", sample.ID(), err)
		}
		if err := os.WriteFile(filepath.Join(samplePath, appdir.WorkflowFile), []byte(wdl), 0644); err != nil {
			return fmt.Errorf("could not write workflow.wdl: %w", err)
		}

		srcDefaults := filepath.Join(req.App.Path, appdir.DefaultsFile)
		if _, err := os.Stat(srcDefaults); err == nil {
			if err := appdir.CopyFile(srcDefaults, filepath.Join(samplePath, appdir.DefaultsFile)); err != nil {
				return err
			}
		}

		srcTasks := filepath.Join(req.App.Path, appdir.TasksDir)
		if err := appdir.CopyDir(srcTasks, filepath.Join(samplePath, appdir.TasksDir)); err != nil {
			return err
		}

		if err := ZipTasks(srcTasks, filepath.Join(samplePath, "tasks.zip")); err != nil {
			return err
		}

		logging.Debugf("rendered sample %s into %s", sample.ID(), samplePath)
	}

	return nil
}

// missingVariables returns the required variables absent from vars, in the
// order they are required.
func missingVariables(required []string, vars map[string]string) []string {
	var missing []string
	for _, name := range required {
		if _, ok := vars[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// ensureDir creates path, failing when it already exists unless force is
// set.
func ensureDir(path string, force bool) error {
	if info, err := os.Stat(path); err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", path)
		}
		if !force {
			return fmt.Errorf("%s exists (use --force to overwrite)", path)
		}
		return nil
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	return nil
}
