// Copyright (c) 2026 BioMiner Team
// biominer-app-util - WDL app management utility
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/yjcyxky/biominer-app-util/internal/model"
)

// InstalledAppModel maps the `installed_apps` table for Bun queries.
type InstalledAppModel struct {
	bun.BaseModel `bun:"table:installed_apps"`
	ID            int       `bun:"id,pk,autoincrement"`
	Namespace     string    `bun:"namespace"`
	Name          string    `bun:"name"`
	Version       string    `bun:"version"`
	Path          string    `bun:"path"`
	Source        string    `bun:"source"`
	InstalledAt   time.Time `bun:"installed_at"`
}

// RenderJobModel maps the `render_jobs` table for Bun queries.
type RenderJobModel struct {
	bun.BaseModel `bun:"table:render_jobs"`
	ID            string    `bun:"id,pk"`
	ProjectName   string    `bun:"project_name"`
	AppName       string    `bun:"app_name"`
	SampleCount   int       `bun:"sample_count"`
	CreatedAt     time.Time `bun:"created_at"`
}

// AuditLogModel maps the `audit_log` table for Bun queries.
type AuditLogModel struct {
	bun.BaseModel `bun:"table:audit_log"`
	ID            int       `bun:"id,pk,autoincrement"`
	Timestamp     time.Time `bun:"timestamp"`
	Action        string    `bun:"action"`
	Details       string    `bun:"details"`
}

// BunStore implements Store on a *bun.DB. The same implementation serves
// all supported dialects; dialect differences live in the migrations.
type BunStore struct {
	bun *bun.DB
}

// NewBunStore wraps an existing *bun.DB in a Store.
func NewBunStore(bdb *bun.DB) *BunStore {
	return &BunStore{bun: bdb}
}

// RecordInstall registers an installed app, replacing any previous record
// of the same namespace/name/version.
func (s *BunStore) RecordInstall(name model.AppName, path, source string) error {
	ctx := context.Background()

	// Replace-then-insert keeps the unique constraint simple across dialects.
	if _, err := s.bun.NewDelete().Model((*InstalledAppModel)(nil)).
		Where("namespace = ? AND name = ? AND version = ?", name.Namespace, name.Name, name.Version).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear previous install record: %w", err)
	}

	_, err := s.bun.NewInsert().Model(&InstalledAppModel{
		Namespace:   name.Namespace,
		Name:        name.Name,
		Version:     name.Version,
		Path:        path,
		Source:      source,
		InstalledAt: time.Now(),
	}).Exec(ctx)
	if err != nil {
		if isDuplicateErr(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to record install: %w", err)
	}

	_ = s.LogAction("INSTALL_APP", fmt.Sprintf("app: %s source: %s", name, source))
	return nil
}

// DeleteInstall removes the registry record of an app.
func (s *BunStore) DeleteInstall(name model.AppName) error {
	ctx := context.Background()
	res, err := s.bun.NewDelete().Model((*InstalledAppModel)(nil)).
		Where("namespace = ? AND name = ? AND version = ?", name.Namespace, name.Name, name.Version).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete install record: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	_ = s.LogAction("UNINSTALL_APP", fmt.Sprintf("app: %s", name))
	return nil
}

// DeleteInstallByPath removes the registry record of the app installed at
// path. Zip installs and directory-form app names have no parseable
// namespace/name/version triple; the install path identifies them instead.
func (s *BunStore) DeleteInstallByPath(path string) error {
	ctx := context.Background()
	res, err := s.bun.NewDelete().Model((*InstalledAppModel)(nil)).
		Where("path = ?", path).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete install record: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	_ = s.LogAction("UNINSTALL_APP", fmt.Sprintf("path: %s", path))
	return nil
}

// GetInstalledApps returns all registry records, newest first.
func (s *BunStore) GetInstalledApps() ([]model.InstalledApp, error) {
	ctx := context.Background()
	var rows []InstalledAppModel
	if err := s.bun.NewSelect().Model(&rows).Order("installed_at DESC").Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	apps := make([]model.InstalledApp, 0, len(rows))
	for _, r := range rows {
		apps = append(apps, model.InstalledApp{
			ID:          r.ID,
			Namespace:   r.Namespace,
			Name:        r.Name,
			Version:     r.Version,
			Path:        r.Path,
			Source:      r.Source,
			InstalledAt: r.InstalledAt,
		})
	}
	return apps, nil
}

// AddRenderJob records one render invocation.
func (s *BunStore) AddRenderJob(job model.RenderJob) error {
	ctx := context.Background()
	createdAt := job.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := s.bun.NewInsert().Model(&RenderJobModel{
		ID:          job.ID,
		ProjectName: job.ProjectName,
		AppName:     job.AppName,
		SampleCount: job.SampleCount,
		CreatedAt:   createdAt,
	}).Exec(ctx)
	if err != nil {
		if isDuplicateErr(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to record render job: %w", err)
	}

	_ = s.LogAction("RENDER_PROJECT", fmt.Sprintf("project: %s app: %s samples: %d",
		job.ProjectName, job.AppName, job.SampleCount))
	return nil
}

// GetRenderJobs returns all render jobs, newest first.
func (s *BunStore) GetRenderJobs() ([]model.RenderJob, error) {
	ctx := context.Background()
	var rows []RenderJobModel
	if err := s.bun.NewSelect().Model(&rows).Order("created_at DESC").Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	jobs := make([]model.RenderJob, 0, len(rows))
	for _, r := range rows {
		jobs = append(jobs, model.RenderJob{
			ID:          r.ID,
			ProjectName: r.ProjectName,
			AppName:     r.AppName,
			SampleCount: r.SampleCount,
			CreatedAt:   r.CreatedAt,
		})
	}
	return jobs, nil
}

// LogAction appends an entry to the audit log.
func (s *BunStore) LogAction(action, details string) error {
	ctx := context.Background()
	_, err := s.bun.NewInsert().Model(&AuditLogModel{
		Timestamp: time.Now(),
		Action:    action,
		Details:   details,
	}).Exec(ctx)
	return err
}

// GetAllAuditLogEntries returns the audit log, newest first.
func (s *BunStore) GetAllAuditLogEntries() ([]model.AuditLogEntry, error) {
	ctx := context.Background()
	var rows []AuditLogModel
	if err := s.bun.NewSelect().Model(&rows).Order("timestamp DESC").Order("id DESC").Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	entries := make([]model.AuditLogEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, model.AuditLogEntry{
			ID:        r.ID,
			Timestamp: r.Timestamp,
			Action:    r.Action,
			Details:   r.Details,
		})
	}
	return entries, nil
}

// isDuplicateErr reports whether err is a unique-constraint violation in
// any of the supported engines.
func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
