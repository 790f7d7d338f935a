package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOverridesOnlyMentionedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "render.yaml")
	doc := "exposure: 2.5\ncascadeCount: 2\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Exposure != 2.5 {
		t.Fatalf("Exposure = %v, want 2.5", cfg.Exposure)
	}
	if cfg.CascadeCount != 2 {
		t.Fatalf("CascadeCount = %v, want 2", cfg.CascadeCount)
	}

	def := Default()
	if cfg.BloomThreshold != def.BloomThreshold {
		t.Fatalf("BloomThreshold = %v, want default %v (not mentioned in doc)", cfg.BloomThreshold, def.BloomThreshold)
	}
	if cfg.BloomStrength != def.BloomStrength {
		t.Fatalf("BloomStrength = %v, want default %v (not mentioned in doc)", cfg.BloomStrength, def.BloomStrength)
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("Load of missing file: want error, got nil")
	}
}
