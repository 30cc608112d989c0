package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nomadgraph.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}

func TestLoadProjectConfig(t *testing.T) {
	t.Run("valid config loads with defaults", func(t *testing.T) {
		path := writeTempConfig(t, "project: agcluster\nversion: 1\nstore:\n  uri: bolt://localhost:7687\n")
		cfg, err := LoadProjectConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Project != "agcluster" {
			t.Fatalf("expected project name, got %q", cfg.Project)
		}
		if cfg.Store.Backend != BackendBolt {
			t.Fatalf("expected default backend bolt, got %q", cfg.Store.Backend)
		}
		if cfg.Nomad.PageSize != 100 || cfg.Nomad.MaxPages != 50 {
			t.Fatalf("pagination defaults not applied: %+v", cfg.Nomad)
		}
		if cfg.Extraction.BatchSize != 20 || cfg.Extraction.SampleThreshold != 1000 {
			t.Fatalf("extraction defaults not applied: %+v", cfg.Extraction)
		}
	})

	t.Run("missing project name", func(t *testing.T) {
		path := writeTempConfig(t, "version: 1\nstore:\n  uri: bolt://localhost:7687\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("unsupported version", func(t *testing.T) {
		path := writeTempConfig(t, "project: x\nversion: 2\nstore:\n  uri: bolt://localhost:7687\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("bolt backend requires uri", func(t *testing.T) {
		path := writeTempConfig(t, "project: x\nversion: 1\nstore:\n  backend: bolt\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("postgres backend requires dsn", func(t *testing.T) {
		path := writeTempConfig(t, "project: x\nversion: 1\nstore:\n  backend: postgres\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("postgres backend with dsn loads", func(t *testing.T) {
		path := writeTempConfig(t, "project: x\nversion: 1\nstore:\n  backend: postgres\n  dsn: postgres://localhost/nomadgraph\n")
		cfg, err := LoadProjectConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Store.Backend != BackendPostgres {
			t.Fatalf("backend = %q", cfg.Store.Backend)
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		path := writeTempConfig(t, "project: x\nversion: 1\nstore:\n  backend: dynamo\n  uri: x\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("sample limit above threshold", func(t *testing.T) {
		path := writeTempConfig(t, "project: x\nversion: 1\nstore:\n  uri: bolt://localhost:7687\nextraction:\n  sample_threshold: 100\n  sample_limit: 200\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("token falls back to environment", func(t *testing.T) {
		t.Setenv("NOMADGRAPH_TOKEN", "secret")
		path := writeTempConfig(t, "project: x\nversion: 1\nstore:\n  uri: bolt://localhost:7687\n")
		cfg, err := LoadProjectConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Nomad.Token != "secret" {
			t.Fatalf("token = %q, want env fallback", cfg.Nomad.Token)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadProjectConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Fatalf("expected error")
		}
	})
}
