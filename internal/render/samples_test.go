package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSamples(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write samples: %v", err)
	}
	return path
}

func TestParseSamples_JSONObject(t *testing.T) {
	path := writeSamples(t, "samples.json", `{"sample_id": "s1", "threads": 8, "paired": true}`)
	samples, err := ParseSamples(path)
	if err != nil {
		t.Fatalf("ParseSamples failed: %v", err)
	}
	if len(samples) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(samples))
	}
	s := samples[0]
	if s.ID() != "s1" || s["threads"] != "8" || s["paired"] != "true" {
		t.Fatalf("unexpected sample: %v", s)
	}
}

func TestParseSamples_JSONArray(t *testing.T) {
	path := writeSamples(t, "samples.json", `[{"sample_id": "s1"}, {"sample_id": "s2"}]`)
	samples, err := ParseSamples(path)
	if err != nil {
		t.Fatalf("ParseSamples failed: %v", err)
	}
	if len(samples) != 2 || samples[1].ID() != "s2" {
		t.Fatalf("unexpected samples: %v", samples)
	}
}

func TestParseSamples_YAML(t *testing.T) {
	path := writeSamples(t, "samples.yaml", "- sample_id: s1\n  genome: hg38\n- sample_id: s2\n  genome: mm10\n")
	samples, err := ParseSamples(path)
	if err != nil {
		t.Fatalf("ParseSamples failed: %v", err)
	}
	if len(samples) != 2 || samples[0]["genome"] != "hg38" {
		t.Fatalf("unexpected samples: %v", samples)
	}
}

func TestParseSamples_CSV(t *testing.T) {
	path := writeSamples(t, "samples.csv", "sample_id,genome\ns1,hg38\ns2,mm10\n")
	samples, err := ParseSamples(path)
	if err != nil {
		t.Fatalf("ParseSamples failed: %v", err)
	}
	if len(samples) != 2 || samples[1]["genome"] != "mm10" {
		t.Fatalf("unexpected samples: %v", samples)
	}
}

func TestParseSamples_CSVEmptyHeader(t *testing.T) {
	path := writeSamples(t, "samples.csv", "sample_id,,genome\ns1,x,hg38\n")
	if _, err := ParseSamples(path); err == nil || !strings.Contains(err.Error(), "header") {
		t.Fatalf("expected empty header error, got %v", err)
	}
}

func TestParseSamples_SniffWithoutExtension(t *testing.T) {
	path := writeSamples(t, "samples", `{"sample_id": "s1"}`)
	samples, err := ParseSamples(path)
	if err != nil {
		t.Fatalf("ParseSamples failed: %v", err)
	}
	if samples[0].ID() != "s1" {
		t.Fatalf("unexpected sample: %v", samples[0])
	}
}

func TestParseSamples_Empty(t *testing.T) {
	path := writeSamples(t, "samples.json", `[]`)
	if _, err := ParseSamples(path); err == nil {
		t.Fatalf("expected error for empty samples")
	}
}
