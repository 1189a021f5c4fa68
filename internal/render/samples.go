// Copyright (c) 2026 BioMiner Team
// biominer-app-util - WDL app management utility
// This source code is licensed under the MIT license found in the LICENSE file.

package render

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yjcyxky/biominer-app-util/internal/appdir"
	"github.com/yjcyxky/biominer-app-util/internal/model"
)

// ParseSamples reads a samples file. JSON (a single object or an array of
// objects), YAML and CSV are supported; the format is chosen by file
// extension, falling back to sniffing for unknown extensions.
func ParseSamples(path string) ([]model.Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read samples file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return parseJSONSamples(data)
	case ".yaml", ".yml":
		return parseYAMLSamples(data)
	case ".csv":
		return parseCSVSamples(data)
	}

	// Unknown extension: try JSON, then YAML, then CSV.
	if samples, err := parseJSONSamples(data); err == nil {
		return samples, nil
	}
	if samples, err := parseYAMLSamples(data); err == nil {
		return samples, nil
	}
	return parseCSVSamples(data)
}

func parseJSONSamples(data []byte) ([]model.Sample, error) {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("invalid JSON samples: %w", err)
	}
	return samplesFromDecoded(decoded)
}

func parseYAMLSamples(data []byte) ([]model.Sample, error) {
	var decoded any
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("invalid YAML samples: %w", err)
	}
	return samplesFromDecoded(decoded)
}

// samplesFromDecoded converts a decoded document (an object or a list of
// objects) into samples with stringified values.
func samplesFromDecoded(decoded any) ([]model.Sample, error) {
	var rows []any
	switch t := decoded.(type) {
	case map[string]any:
		rows = []any{t}
	case []any:
		rows = t
	default:
		return nil, fmt.Errorf("samples must be an object or a list of objects, got %T", decoded)
	}

	samples := make([]model.Sample, 0, len(rows))
	for i, row := range rows {
		obj, ok := row.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("sample %d must be an object, got %T", i+1, row)
		}
		s := make(model.Sample, len(obj))
		for k, v := range obj {
			s[k] = appdir.FormatValue(v)
		}
		samples = append(samples, s)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("samples file contains no samples")
	}
	return samples, nil
}

func parseCSVSamples(data []byte) ([]model.Sample, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV samples: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV samples need a header row and at least one sample")
	}

	header := records[0]
	for i, col := range header {
		if strings.TrimSpace(col) == "" {
			return nil, fmt.Errorf("CSV header column %d is empty", i+1)
		}
	}

	samples := make([]model.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		s := make(model.Sample, len(header))
		for i, col := range header {
			s[col] = record[i]
		}
		samples = append(samples, s)
	}
	return samples, nil
}
