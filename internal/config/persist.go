package config

// Persisted configuration: target and archive directories survive across
// runs in a small YAML file. The candidate list is intentionally never
// persisted; it must be supplied fresh on each run.

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

// persisted is the on-disk shape of the durable settings.
type persisted struct {
	Target        string `yaml:"target"`
	Archive       string `yaml:"archive"`
	WatermarkText string `yaml:"watermark_text,omitempty"`
}

// FilePath returns the persisted config location: cfg.ConfigPath when set,
// otherwise <user config dir>/docswap/config.yaml.
func FilePath(cfg *Config) (string, error) {
	if cfg.ConfigPath != "" {
		return cfg.ConfigPath, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "docswap", configFileName), nil
}

// LoadPersisted overlays values from the persisted config file onto cfg.
// A missing file is not an error; the defaults simply stand.
func LoadPersisted(cfg *Config) error {
	path, err := FilePath(cfg)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var p persisted
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if p.Target != "" {
		cfg.TargetDir = p.Target
	}
	if p.Archive != "" {
		cfg.ArchiveDir = p.Archive
	}
	if p.WatermarkText != "" {
		cfg.WatermarkText = p.WatermarkText
	}
	return nil
}

// SavePersisted writes the durable settings back to the config file,
// creating the directory if needed.
func SavePersisted(cfg *Config) error {
	path, err := FilePath(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(persisted{
		Target:        cfg.TargetDir,
		Archive:       cfg.ArchiveDir,
		WatermarkText: cfg.WatermarkText,
	})
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
