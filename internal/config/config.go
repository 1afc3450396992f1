// Package config holds runtime configuration: defaults, persisted settings,
// CLI flag parsing, and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// --- Enum types for validated string fields ---

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by [LoadPersisted] and [ApplyEnv], and then mutated by
// [ParseFlags] before being passed (by pointer) to packages that need it.
type Config struct {
	// Paths.
	TargetDir  string   // Directory whose documents are replaced.
	ArchiveDir string   // Where displaced versions are moved.
	SourceDir  string   // Optional: discover candidates from this directory (--from).
	Candidates []string // Candidate files from positional args, in given order.

	// Watermark settings.
	WatermarkText     string        // Stamped onto outgoing documents. Default: "UNGÜLTIG".
	AutomationTool    string        // External office automation binary. Default: "soffice".
	AutomationTimeout time.Duration // Per-file budget for the automation tool. Default: 90s.
	NoWatermark       bool          // Skip the watermark step entirely.

	// Behavior flags.
	DryRun        bool
	VerifyCopies  bool // Default: true. Cleared by --no-verify.
	RemoveSources bool // Delete the source file after a successful step.
	MatchPrefix   int  // 0 = exact basename match for the outgoing version; n>0 matches first n characters.
	SaveConfig    bool // Persist target/archive dirs after the run.

	// Display and logging.
	Verbose    bool
	ColorMode  ColorMode // Default: "auto".
	LogFile    string    // Optional log file path.
	ReportFile string    // Optional JSON report output path.
	CheckOnly  bool      // Run --check diagnostics and exit.

	// ConfigPath overrides the persisted config file location (mainly for tests).
	ConfigPath string
}

// DefaultConfig returns a Config with all defaults. Target and archive
// default to the desktop layout of the original tool; a persisted config
// file overrides them when present.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		TargetDir:         filepath.Join(home, "Desktop"),
		ArchiveDir:        filepath.Join(home, "Desktop", "Archive"),
		WatermarkText:     "UNGÜLTIG",
		AutomationTool:    "soffice",
		AutomationTimeout: 90 * time.Second,
		VerifyCopies:      true,
		MatchPrefix:       0,
		ColorMode:         ColorAuto,
	}
}

// ApplyEnv overlays environment variables onto cfg. Called after
// [LoadPersisted] and before [ParseFlags] so flags keep the last word.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("DOCSWAP_TARGET"); v != "" {
		cfg.TargetDir = v
	}
	if v := os.Getenv("DOCSWAP_ARCHIVE"); v != "" {
		cfg.ArchiveDir = v
	}
	if v := os.Getenv("DOCSWAP_WATERMARK_TEXT"); v != "" {
		cfg.WatermarkText = v
	}
	if v := os.Getenv("DOCSWAP_AUTOMATION_TOOL"); v != "" {
		cfg.AutomationTool = v
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and basic value ranges. When not in CheckOnly
// mode it also requires target and archive directories and at least one
// candidate source (positional files or --from).
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.MatchPrefix < 0 {
		return fmt.Errorf("match prefix must be >= 0 (got %d)", c.MatchPrefix)
	}
	if !c.NoWatermark && strings.TrimSpace(c.WatermarkText) == "" {
		return errors.New("watermark text must not be empty (or pass --no-watermark)")
	}
	if c.AutomationTimeout <= 0 {
		return errors.New("automation timeout must be positive")
	}

	if c.CheckOnly {
		return nil
	}
	if c.TargetDir == "" || c.ArchiveDir == "" {
		return errors.New("need both a target and an archive directory")
	}
	if len(c.Candidates) == 0 && c.SourceDir == "" {
		return errors.New("no candidates: pass files as arguments or use --from <dir>")
	}
	return nil
}

// ValidatePaths ensures the resolved archive directory differs from the
// resolved target directory. The archive may live inside the target (the
// legacy default is Desktop/Archive), but the two must not be the same
// directory or every archive move would collide with the replacement it
// belongs to. Both arguments must be absolute, symlink-resolved paths.
func (c *Config) ValidatePaths(targetAbs, archiveAbs string) error {
	if targetAbs == archiveAbs {
		return errors.New("archive directory must differ from target directory")
	}
	return nil
}
