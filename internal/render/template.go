// Copyright (c) 2026 BioMiner Team
// biominer-app-util - WDL app management utility
// This source code is licensed under the MIT license found in the LICENSE file.

// Package render turns an installed app into per-sample pipeline projects.
// App files are placeholder templates: every `{{ var }}` expression is
// replaced with the sample's value for that variable.
package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yjcyxky/biominer-app-util/internal/appdir"
)

// ErrMissingVariable reports a placeholder with no value in the sample.
var ErrMissingVariable = errors.New("missing template variable")

// ErrMalformedTemplate reports an unclosed or empty placeholder expression.
var ErrMalformedTemplate = errors.New("malformed template")

// RenderString replaces {{ var }} placeholders in input with values from
// vars. It returns an error for a missing variable or a malformed
// placeholder.
func RenderString(input string, vars map[string]string) (string, error) {
	if input == "" {
		return "", nil
	}

	var out strings.Builder
	rest := input
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			out.WriteString(rest)
			return out.String(), nil
		}

		out.WriteString(rest[:start])
		rest = rest[start+2:]

		end := strings.Index(rest, "}}")
		if end == -1 {
			return "", fmt.Errorf("%w: unclosed template expression", ErrMalformedTemplate)
		}

		key := strings.TrimSpace(rest[:end])
		if key == "" {
			return "", fmt.Errorf("%w: empty template expression", ErrMalformedTemplate)
		}

		value, ok := vars[key]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrMissingVariable, key)
		}

		out.WriteString(value)
		rest = rest[end+2:]
	}
}

// Variables returns the distinct placeholder names referenced by input,
// in order of first appearance.
func Variables(input string) ([]string, error) {
	var names []string
	seen := map[string]bool{}
	rest := input
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			return names, nil
		}
		rest = rest[start+2:]
		end := strings.Index(rest, "}}")
		if end == -1 {
			return nil, fmt.Errorf("%w: unclosed template expression", ErrMalformedTemplate)
		}
		key := strings.TrimSpace(rest[:end])
		if key == "" {
			return nil, fmt.Errorf("%w: empty template expression", ErrMalformedTemplate)
		}
		if !seen[key] {
			seen[key] = true
			names = append(names, key)
		}
		rest = rest[end+2:]
	}
}

// AppVariables returns the variables an app's templates require: the union
// of placeholders in `inputs` and `workflow.wdl` plus the implicit
// sample_id, minus project_name (always provided by the renderer). When
// noDefault is set, variables covered by the app's defaults file are
// excluded.
func AppVariables(appPath string, noDefault bool) ([]string, error) {
	seen := map[string]bool{}
	for _, file := range []string{appdir.InputsFile, appdir.WorkflowFile} {
		data, err := os.ReadFile(filepath.Join(appPath, file))
		if err != nil {
			return nil, fmt.Errorf("could not read template %s: %w", file, err)
		}
		names, err := Variables(string(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		for _, n := range names {
			seen[n] = true
		}
	}

	seen["sample_id"] = true
	delete(seen, "project_name")

	if noDefault {
		defaults, err := appdir.LoadDefaults(appPath)
		if err != nil {
			return nil, err
		}
		for _, k := range defaults.Keys() {
			delete(seen, k)
		}
	}

	vars := make([]string, 0, len(seen))
	for k := range seen {
		vars = append(vars, k)
	}
	sort.Strings(vars)
	return vars, nil
}
