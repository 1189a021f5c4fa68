// Copyright (c) 2026 BioMiner Team
// biominer-app-util - WDL app management utility
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"github.com/yjcyxky/biominer-app-util/internal/model"
)

// Store defines the interface for all registry database operations.
// This allows for multiple database backends to be implemented.
type Store interface {
	// Installed app registry
	RecordInstall(name model.AppName, path, source string) error
	DeleteInstall(name model.AppName) error
	DeleteInstallByPath(path string) error
	GetInstalledApps() ([]model.InstalledApp, error)

	// Render jobs
	AddRenderJob(job model.RenderJob) error
	GetRenderJobs() ([]model.RenderJob, error)

	// Audit log
	LogAction(action, details string) error
	GetAllAuditLogEntries() ([]model.AuditLogEntry, error)
}
