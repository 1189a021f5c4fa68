// Copyright (c) 2026 BioMiner Team
// biominer-app-util - WDL app management utility
// This source code is licensed under the MIT license found in the LICENSE file.

// Package manual renders an app's README as its user manual, either as raw
// markdown or converted to HTML.
package manual

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/yjcyxky/biominer-app-util/internal/appdir"
	"github.com/yjcyxky/biominer-app-util/internal/i18n"
)

// Format selects the manual output format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// md converts GitHub-flavored markdown, matching what app authors write in
// their READMEs.
var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Render produces the manual for the app at appPath. With an output path
// the manual is written to disk and a confirmation message is returned;
// otherwise the manual text itself is returned. A missing README yields a
// "no manual entry" message.
func Render(appPath, appName string, format Format, output string) (string, error) {
	readmePath := filepath.Join(appPath, appdir.ReadmeFile)
	source, err := os.ReadFile(readmePath)
	if err != nil {
		if os.IsNotExist(err) {
			return i18n.T("manual.none", appName), nil
		}
		return "", fmt.Errorf("could not read %s: %w", readmePath, err)
	}

	var text string
	switch format {
	case FormatHTML:
		var buf bytes.Buffer
		if err := md.Convert(source, &buf); err != nil {
			return "", fmt.Errorf("could not convert markdown: %w", err)
		}
		text = buf.String()
	case FormatMarkdown, "":
		text = string(source)
	default:
		return "", fmt.Errorf("unknown manual format %q", format)
	}

	if output != "" {
		if err := os.WriteFile(output, []byte(text), 0644); err != nil {
			return "", fmt.Errorf("could not write manual: %w", err)
		}
		return i18n.T("manual.saved", output), nil
	}
	return text, nil
}
