package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPersistedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	out := DefaultConfig()
	out.ConfigPath = path
	out.TargetDir = "/docs/target"
	out.ArchiveDir = "/docs/archive"
	out.WatermarkText = "OBSOLETE"

	if err := SavePersisted(&out); err != nil {
		t.Fatalf("SavePersisted: %v", err)
	}

	in := DefaultConfig()
	in.ConfigPath = path
	if err := LoadPersisted(&in); err != nil {
		t.Fatalf("LoadPersisted: %v", err)
	}

	if in.TargetDir != "/docs/target" {
		t.Errorf("TargetDir = %q, want %q", in.TargetDir, "/docs/target")
	}
	if in.ArchiveDir != "/docs/archive" {
		t.Errorf("ArchiveDir = %q, want %q", in.ArchiveDir, "/docs/archive")
	}
	if in.WatermarkText != "OBSOLETE" {
		t.Errorf("WatermarkText = %q, want %q", in.WatermarkText, "OBSOLETE")
	}
}

func TestLoadPersisted_MissingFileIsNotAnError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConfigPath = filepath.Join(t.TempDir(), "nope.yaml")
	defaultTarget := cfg.TargetDir

	if err := LoadPersisted(&cfg); err != nil {
		t.Fatalf("LoadPersisted: %v", err)
	}
	if cfg.TargetDir != defaultTarget {
		t.Errorf("TargetDir changed on missing file: %q", cfg.TargetDir)
	}
}

func TestLoadPersisted_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.ConfigPath = path
	if err := LoadPersisted(&cfg); err == nil {
		t.Error("LoadPersisted should fail on malformed yaml")
	}
}

func TestLoadPersisted_EmptyFieldsKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("target: /only/target\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.ConfigPath = path
	defaultArchive := cfg.ArchiveDir

	if err := LoadPersisted(&cfg); err != nil {
		t.Fatalf("LoadPersisted: %v", err)
	}
	if cfg.TargetDir != "/only/target" {
		t.Errorf("TargetDir = %q, want %q", cfg.TargetDir, "/only/target")
	}
	if cfg.ArchiveDir != defaultArchive {
		t.Errorf("ArchiveDir = %q, want default %q", cfg.ArchiveDir, defaultArchive)
	}
}
