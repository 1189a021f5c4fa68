package render

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yjcyxky/biominer-app-util/internal/model"
)

func newRenderApp(t *testing.T) model.App {
	t.Helper()
	dir := t.TempDir()
	writeTestApp(t, dir, map[string]string{
		"inputs":       `{"wf.sample": "{{ sample_id }}", "wf.genome": "{{ genome }}", "wf.project": "{{ project_name }}"}`,
		"workflow.wdl": "workflow {{ sample_id }}_wf {}\n",
	})
	if err := os.WriteFile(filepath.Join(dir, "defaults"), []byte(`{"genome": "hg38"}`), 0644); err != nil {
		t.Fatalf("write defaults: %v", err)
	}
	return model.App{Name: "biominer/rnaseq-latest", Path: dir}
}

func TestRenderProject(t *testing.T) {
	app := newRenderApp(t)
	workDir := t.TempDir()

	err := RenderProject(ProjectRequest{
		App:         app,
		ProjectName: "proj1",
		WorkDir:     workDir,
		Samples: []model.Sample{
			{"sample_id": "s1"},
			{"sample_id": "s2", "genome": "mm10"},
		},
	})
	if err != nil {
		t.Fatalf("RenderProject failed: %v", err)
	}

	// s1 uses the default genome; s2 overrides it.
	inputs1, err := os.ReadFile(filepath.Join(workDir, "proj1", "s1", "inputs"))
	if err != nil {
		t.Fatalf("read rendered inputs: %v", err)
	}
	if !strings.Contains(string(inputs1), `"wf.genome": "hg38"`) {
		t.Errorf("expected default genome in s1 inputs: %s", inputs1)
	}
	if !strings.Contains(string(inputs1), `"wf.project": "proj1"`) {
		t.Errorf("expected project name in s1 inputs: %s", inputs1)
	}

	inputs2, err := os.ReadFile(filepath.Join(workDir, "proj1", "s2", "inputs"))
	if err != nil {
		t.Fatalf("read rendered inputs: %v", err)
	}
	if !strings.Contains(string(inputs2), `"wf.genome": "mm10"`) {
		t.Errorf("expected sample override in s2 inputs: %s", inputs2)
	}

	wdl, err := os.ReadFile(filepath.Join(workDir, "proj1", "s1", "workflow.wdl"))
	if err != nil {
		t.Fatalf("read rendered wdl: %v", err)
	}
	if !strings.Contains(string(wdl), "workflow s1_wf") {
		t.Errorf("unexpected wdl content: %s", wdl)
	}

	// Defaults and tasks are copied alongside.
	if _, err := os.Stat(filepath.Join(workDir, "proj1", "s1", "defaults")); err != nil {
		t.Errorf("expected defaults file copied: %v", err)
	}
	if _, err := os.Stat(filepath.Join(workDir, "proj1", "s1", "tasks", "align.wdl")); err != nil {
		t.Errorf("expected tasks dir copied: %v", err)
	}

	// tasks.zip carries the tasks under a tasks/ prefix.
	zr, err := zip.OpenReader(filepath.Join(workDir, "proj1", "s1", "tasks.zip"))
	if err != nil {
		t.Fatalf("open tasks.zip: %v", err)
	}
	defer func() { _ = zr.Close() }()
	found := false
	for _, f := range zr.File {
		if f.Name == "tasks/align.wdl" {
			found = true
		}
	}
	if !found {
		t.Errorf("tasks/align.wdl missing from archive")
	}
}

func TestRenderProject_MissingSampleID(t *testing.T) {
	app := newRenderApp(t)
	err := RenderProject(ProjectRequest{
		App:         app,
		ProjectName: "proj1",
		WorkDir:     t.TempDir(),
		Samples:     []model.Sample{{"genome": "hg38"}},
	})
	if err == nil || !strings.Contains(err.Error(), "sample_id") {
		t.Fatalf("expected sample_id error, got %v", err)
	}
}

func TestRenderProject_UncoveredVariable(t *testing.T) {
	dir := t.TempDir()
	writeTestApp(t, dir, map[string]string{
		"inputs":       `{"wf.fastq": "{{ fastq }}"}`,
		"workflow.wdl": "workflow wf {}\n",
	})
	err := RenderProject(ProjectRequest{
		App:         model.App{Name: "a/b", Path: dir},
		ProjectName: "proj1",
		WorkDir:     t.TempDir(),
		Samples:     []model.Sample{{"sample_id": "s1"}},
	})
	if err == nil || !strings.Contains(err.Error(), "fastq") {
		t.Fatalf("expected uncovered variable error, got %v", err)
	}
}

func TestRenderProject_ExistingDirWithoutForce(t *testing.T) {
	app := newRenderApp(t)
	workDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(workDir, "proj1", "s1"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	req := ProjectRequest{
		App:         app,
		ProjectName: "proj1",
		WorkDir:     workDir,
		Samples:     []model.Sample{{"sample_id": "s1"}},
	}
	if err := RenderProject(req); err == nil {
		t.Fatalf("expected error for existing sample dir")
	}

	req.Force = true
	if err := RenderProject(req); err != nil {
		t.Fatalf("force render failed: %v", err)
	}
}

func TestRenderProject_InvalidRenderedJSON(t *testing.T) {
	dir := t.TempDir()
	writeTestApp(t, dir, map[string]string{
		"inputs":       `{"wf.threads": {{ threads }}}`,
		"workflow.wdl": "workflow wf {}\n",
	})
	err := RenderProject(ProjectRequest{
		App:         model.App{Name: "a/b", Path: dir},
		ProjectName: "proj1",
		WorkDir:     t.TempDir(),
		Samples:     []model.Sample{{"sample_id": "s1", "threads": "not json"}},
	})
	if err == nil || !strings.Contains(err.Error(), "invalid") {
		t.Fatalf("expected invalid JSON error, got %v", err)
	}
}
