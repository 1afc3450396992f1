// Package check provides system diagnostics (--check mode) and pre-pipeline
// validation (CheckDeps) for the target and archive directories and the
// watermark automation tool.
package check

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/docswap/docswap/internal/config"
)

// Sentinel errors returned by CheckDeps when a required directory is unusable.
var (
	ErrTargetMissing      = errors.New("target directory does not exist")
	ErrTargetNotWritable  = errors.New("target directory is not writable")
	ErrArchiveNotWritable = errors.New("archive directory cannot be created or written")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive --check flow: prints availability of the
// automation tool, writability of the configured directories, and the
// persisted config location. This is informational only, it does not stop
// on failure.
func RunCheck(cfg *config.Config, log Logger) {
	log.Info("=== System Check ===")

	checkAutomationTool(cfg, log)
	checkDirectory(log, "Target", cfg.TargetDir, false)
	checkDirectory(log, "Archive", cfg.ArchiveDir, true)
	checkConfigFile(cfg, log)
}

// checkAutomationTool verifies the automation tool is on PATH and logs its
// version string. Tool absence is not fatal: the object-library and
// annotation strategies still apply watermarks.
func checkAutomationTool(cfg *config.Config, log Logger) {
	bin, err := exec.LookPath(cfg.AutomationTool)
	if err != nil {
		log.Warn("%s not found (watermarking falls back to object libraries)", cfg.AutomationTool)
		return
	}
	out, err := exec.Command(bin, "--version").Output()
	if err != nil {
		log.Warn("%s found but --version failed: %v", cfg.AutomationTool, err)
		return
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("%s: %s", cfg.AutomationTool, firstLine)
}

// checkDirectory probes a directory for existence and writability. With
// create set, a missing directory counts as fine if it can be created.
func checkDirectory(log Logger, label, dir string, create bool) {
	if dir == "" {
		log.Warn("%s directory not configured", label)
		return
	}
	if _, err := os.Stat(dir); err != nil {
		if create {
			log.Info("%s directory missing, will be created: %s", label, dir)
			return
		}
		log.Error("%s directory does not exist: %s", label, dir)
		return
	}
	if writable(dir) {
		log.Success("%s directory writable: %s", label, dir)
	} else {
		log.Error("%s directory not writable: %s", label, dir)
	}
}

func checkConfigFile(cfg *config.Config, log Logger) {
	path, err := config.FilePath(cfg)
	if err != nil {
		log.Warn("Cannot determine config path: %v", err)
		return
	}
	if _, err := os.Stat(path); err == nil {
		log.Success("Config file: %s", path)
	} else {
		log.Info("Config file not present (defaults in use): %s", path)
	}
}

// CheckDeps is the pre-pipeline validation: the target directory must exist
// and be writable, and the archive directory must be creatable and writable.
// Returns a sentinel error on failure.
func CheckDeps(cfg *config.Config) error {
	if _, err := os.Stat(cfg.TargetDir); err != nil {
		return ErrTargetMissing
	}
	if !writable(cfg.TargetDir) {
		return ErrTargetNotWritable
	}

	if err := os.MkdirAll(cfg.ArchiveDir, 0o755); err != nil {
		return ErrArchiveNotWritable
	}
	if !writable(cfg.ArchiveDir) {
		return ErrArchiveNotWritable
	}
	return nil
}

// AutomationAvailable reports whether the configured automation tool is on
// PATH. The pipeline runs without it; callers use this only to warn early.
func AutomationAvailable(cfg *config.Config) bool {
	_, err := exec.LookPath(cfg.AutomationTool)
	return err == nil
}

// writable probes dir by creating and removing a temp file.
func writable(dir string) bool {
	f, err := os.CreateTemp(dir, ".docswap-probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
