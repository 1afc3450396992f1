// Command docswap is the CLI entrypoint for the DocSwap document replacer.
//
// It parses flags, validates configuration and paths, and either runs
// system diagnostics (--check) or the replace/stamp/archive pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/docswap/docswap/internal/check"
	"github.com/docswap/docswap/internal/config"
	"github.com/docswap/docswap/internal/display"
	"github.com/docswap/docswap/internal/logging"
	"github.com/docswap/docswap/internal/pipeline"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log-file capture.
	_ = godotenv.Load()

	cfg := config.DefaultConfig()
	if err := config.LoadPersisted(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "docswap: config file: %v\n", err)
		return 1
	}
	config.ApplyEnv(&cfg)
	if err := config.ParseFlags(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "docswap: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "docswap: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "docswap: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available, all output goes through log from here on.
	display.PrintBanner()

	if cfg.CheckOnly {
		check.RunCheck(&cfg, log)
		return 0
	}

	// Resolve and validate paths: target must exist, archive is created if
	// needed, and archive must not equal target (every move would collide).
	targetAbs, err := absPath(cfg.TargetDir)
	if err != nil {
		log.Error("Target not found: %s", cfg.TargetDir)
		return 1
	}
	if err := os.MkdirAll(cfg.ArchiveDir, 0o755); err != nil {
		log.Error("Cannot create archive directory: %s", cfg.ArchiveDir)
		return 1
	}
	archiveAbs, err := absPath(cfg.ArchiveDir)
	if err != nil {
		log.Error("Cannot resolve archive path: %s", cfg.ArchiveDir)
		return 1
	}
	if err := cfg.ValidatePaths(targetAbs, archiveAbs); err != nil {
		log.Error("%v", err)
		return 1
	}
	cfg.TargetDir = targetAbs
	cfg.ArchiveDir = archiveAbs

	log.Info("Target:  %s", cfg.TargetDir)
	log.Info("Archive: %s", cfg.ArchiveDir)
	if cfg.DryRun {
		log.Warn("DRY RUN, no files will be written")
	}
	log.Info("")

	// Fail fast if the directories are unusable.
	if err := check.CheckDeps(&cfg); err != nil {
		log.Error("%v", err)
		return 1
	}
	if !cfg.NoWatermark && !check.AutomationAvailable(&cfg) {
		log.Warn("%s not on PATH, watermarking will use object libraries or annotation", cfg.AutomationTool)
	}

	// Collect candidates: positional files first, then --from discovery.
	candidates := append([]string(nil), cfg.Candidates...)
	if cfg.SourceDir != "" {
		discovered, err := pipeline.Discover(cfg.SourceDir)
		if err != nil {
			log.Error("Candidate discovery failed: %v", err)
			return 1
		}
		candidates = append(candidates, discovered...)
	}
	if len(candidates) == 0 {
		log.Warn("No candidate documents found")
		return 0
	}

	// Phase 3: signal handling. Cancel the context on SIGINT/SIGTERM so the
	// pipeline can stop between files without leaving partial output.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current file…")
		cancel()
	}()

	// Phase 4: Run pipeline (deduplicate → replace → stamp → archive).
	report := pipeline.Run(ctx, &cfg, log, candidates)

	if cfg.ReportFile != "" {
		if err := report.WriteFile(cfg.ReportFile); err != nil {
			log.Warn("Cannot write report: %v", err)
		} else {
			log.Info("Report written: %s", cfg.ReportFile)
		}
	}
	if cfg.SaveConfig {
		if err := config.SavePersisted(&cfg); err != nil {
			log.Warn("Cannot save config: %v", err)
		} else {
			log.Info("Configuration saved")
		}
	}

	if report.Failed() > 0 {
		return 1
	}
	return 0
}

// absPath returns the absolute, symlink-resolved path for safe comparison
// of target vs archive directory hierarchies.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
