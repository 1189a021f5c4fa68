// Copyright (c) 2026 BioMiner Team
// biominer-app-util - WDL app management utility
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model defines the core data types shared across the application:
// app names, installed apps, samples and registry records.
package model

import (
	"fmt"
	"path/filepath"
	"regexp"
	"time"
)

// DefaultVersion is the version assumed when an app name carries none.
const DefaultVersion = "latest"

// appNamePattern matches "namespace/name" with an optional ":version" suffix.
var appNamePattern = regexp.MustCompile(`^([-\w]+)/([-\w]+)(:[-.\w]+)?$`)

// AppName identifies an app in the store: namespace/name:version.
type AppName struct {
	Namespace string
	Name      string
	Version   string
}

// ParseAppName parses "namespace/name[:version]" into an AppName.
// The version defaults to "latest" when omitted.
func ParseAppName(s string) (AppName, error) {
	m := appNamePattern.FindStringSubmatch(s)
	if m == nil {
		return AppName{}, fmt.Errorf("invalid app name %q (expected namespace/name[:version])", s)
	}
	version := m[3]
	if version != "" {
		version = version[1:] // strip leading ':'
	} else {
		version = DefaultVersion
	}
	return AppName{Namespace: m[1], Name: m[2], Version: version}, nil
}

// String returns the canonical namespace/name:version form.
func (n AppName) String() string {
	return fmt.Sprintf("%s/%s:%s", n.Namespace, n.Name, n.Version)
}

// Dir returns the on-disk path of the app relative to the app root,
// e.g. "biominer/rnaseq-v1.2".
func (n AppName) Dir() string {
	return filepath.Join(n.Namespace, fmt.Sprintf("%s-%s", n.Name, n.Version))
}

// App is an app discovered under the app root directory.
type App struct {
	// Name is the relative directory name, e.g. "biominer/rnaseq-v1.2"
	// or a bare "rnaseq" for the legacy flat layout.
	Name string
	Path string
}

// InstalledApp is a registry record of an app install.
type InstalledApp struct {
	ID          int
	Namespace   string
	Name        string
	Version     string
	Path        string
	Source      string // "git" or "zip"
	InstalledAt time.Time
}

// String returns the namespace/name:version identifier used in listings.
func (a InstalledApp) String() string {
	return fmt.Sprintf("%s/%s:%s", a.Namespace, a.Name, a.Version)
}

// Sample is a single row of render input: template variables keyed by name.
// Every sample must carry a "sample_id" entry.
type Sample map[string]string

// ID returns the sample_id value, or the empty string when missing.
func (s Sample) ID() string {
	return s["sample_id"]
}

// RenderJob records one render invocation in the registry.
type RenderJob struct {
	ID          string // uuid
	ProjectName string
	AppName     string
	SampleCount int
	CreatedAt   time.Time
}

// AuditLogEntry is a single action recorded in the audit log.
type AuditLogEntry struct {
	ID        int
	Timestamp time.Time
	Action    string
	Details   string
}
