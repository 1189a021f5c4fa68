// Copyright (c) 2026 BioMiner Team
// biominer-app-util - WDL app management utility
// This source code is licensed under the MIT license found in the LICENSE file.

package appdir

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// Defaults is the per-app `defaults` file: a JSON object of default values
// for template variables. A missing file behaves as an empty set.
type Defaults struct {
	path string
	vars map[string]any
}

// LoadDefaults reads the defaults file of the app at appPath.
func LoadDefaults(appPath string) (*Defaults, error) {
	d := &Defaults{
		path: filepath.Join(appPath, DefaultsFile),
		vars: map[string]any{},
	}
	data, err := os.ReadFile(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return nil, fmt.Errorf("could not read defaults file: %w", err)
	}
	if err := json.Unmarshal(data, &d.vars); err != nil {
		return nil, fmt.Errorf("invalid defaults file %s: %w", d.path, err)
	}
	return d, nil
}

// Get returns the default value for key, or nil when unset.
func (d *Defaults) Get(key string) any {
	return d.vars[key]
}

// Has reports whether key has a default value.
func (d *Defaults) Has(key string) bool {
	_, ok := d.vars[key]
	return ok
}

// Set stores a default value for key.
func (d *Defaults) Set(key string, value any) {
	d.vars[key] = value
}

// Merge stores all values from vars.
func (d *Defaults) Merge(vars map[string]any) {
	for k, v := range vars {
		d.vars[k] = v
	}
}

// Keys returns the defaulted variable names, sorted.
func (d *Defaults) Keys() []string {
	keys := make([]string, 0, len(d.vars))
	for k := range d.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns the defaults for the requested keys only. Keys without a
// default value are left out.
func (d *Defaults) Values(keys []string) map[string]any {
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := d.vars[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Diff returns the names in required that have no default value, sorted.
func (d *Defaults) Diff(required []string) []string {
	var missing []string
	for _, k := range required {
		if !d.Has(k) {
			missing = append(missing, k)
		}
	}
	sort.Strings(missing)
	return missing
}

// StringValues returns all defaults rendered as strings, suitable for
// template substitution. Compound values are re-encoded as JSON.
func (d *Defaults) StringValues() map[string]string {
	out := make(map[string]string, len(d.vars))
	for k, v := range d.vars {
		out[k] = FormatValue(v)
	}
	return out
}

// Save writes the defaults file back, pretty-printed with sorted keys.
func (d *Defaults) Save() error {
	data, err := json.MarshalIndent(d.vars, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(d.path, append(data, '\n'), 0644)
}

// FormatValue renders a decoded JSON value as a template substitution string.
func FormatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(data)
	}
}
