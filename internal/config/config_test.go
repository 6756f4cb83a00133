package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRead_OverridesDefaultsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"addr":":9090","search":{"W0":10,"P0":2,"Wd":5,"Pd":1,"PhaseAFraction":0.5}}`), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":9090")
	}
	if cfg.Search.W0 != 10 {
		t.Errorf("Search.W0 = %d, want 10", cfg.Search.W0)
	}
	if cfg.Dictionary.File != "testdata/words.txt" {
		t.Errorf("Dictionary.File = %q, want the default to survive an omitted field", cfg.Dictionary.File)
	}
}

func TestRead_MissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error reading a missing config file")
	}
}

func TestDefault_IsUsable(t *testing.T) {
	cfg := Default()
	if cfg.Addr == "" {
		t.Error("expected Default to set an address")
	}
	if cfg.Search.W0 == 0 {
		t.Error("expected Default to carry the search engine's tuned defaults")
	}
}
