package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "tsgen.yaml")
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad(t *testing.T) {
	p := writeConfig(t, `
spec: ./openapi.yaml
outDir: ./generated
routes: true
middlewarePolicy: ./policy.yaml
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TypesDir != "types" {
		t.Errorf("TypesDir = %q, expected default", cfg.TypesDir)
	}
	if !cfg.Routes {
		t.Error("Routes = false, expected true")
	}
	if !filepath.IsAbs(cfg.Spec) || !filepath.IsAbs(cfg.OutDir) || !filepath.IsAbs(cfg.MiddlewarePolicy) {
		t.Errorf("expected absolute paths, got spec=%q outDir=%q policy=%q",
			cfg.Spec, cfg.OutDir, cfg.MiddlewarePolicy)
	}
}

func TestLoadURLSpecKeptVerbatim(t *testing.T) {
	p := writeConfig(t, `
spec: https://example.com/openapi.yaml
outDir: ./generated
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Spec != "https://example.com/openapi.yaml" {
		t.Errorf("Spec = %q, expected URL untouched", cfg.Spec)
	}
}

func TestLoadMissingRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no spec", "outDir: ./generated\n"},
		{"no outDir", "spec: ./openapi.yaml\n"},
	}

	for _, test := range tests {
		if _, err := Load(writeConfig(t, test.data)); err == nil {
			t.Errorf("%s: expected error", test.name)
		}
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "spec: [unclosed\n")); err == nil {
		t.Fatal("expected parse error")
	}
}
