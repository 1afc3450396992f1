// Package pipeline orchestrates candidate deduplication, per-file
// replacement, and batch summary reporting.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/docswap/docswap/internal/config"
	"github.com/docswap/docswap/internal/dedupe"
	"github.com/docswap/docswap/internal/display"
	"github.com/docswap/docswap/internal/logging"
	"github.com/docswap/docswap/internal/mutate"
	"github.com/docswap/docswap/internal/vault"
)

// Run is the top-level batch entry point. It deduplicates the candidates,
// processes each winner sequentially, and returns the aggregate report.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, candidates []string) *Report {
	step := NewStep(cfg, log, vault.NewOS(), mutate.NewChain(cfg))
	return runBatch(ctx, cfg, log, step, candidates)
}

func runBatch(ctx context.Context, cfg *config.Config, log *logging.Logger, step *Step, candidates []string) *Report {
	report := &Report{
		StartedAt:       time.Now(),
		TotalCandidates: len(candidates),
	}
	defer func() { report.FinishedAt = time.Now() }()

	outcomes := dedupe.Resolve(absCandidates(candidates))
	logBatchHeader(cfg, log, len(candidates), len(outcomes))

	for i, outcome := range outcomes {
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}

		log.Info("[%d/%d] %s", i+1, len(outcomes), outcome.GroupName())

		for _, skipped := range outcome.Skipped {
			log.Skip("  Skip duplicate (%s): %s", outcome.Reason, skipped.Base())
			report.SkippedDuplicates = append(report.SkippedDuplicates, Skip{
				Path:   skipped.Path,
				Winner: outcome.Winner.Path,
				Reason: outcome.Reason,
			})
		}

		res := step.Process(outcome.Winner.Path)
		report.Results = append(report.Results, res)
		report.UniqueProcessed++
		report.TotalBytes += res.Bytes
		fmt.Println()
	}

	logSummary(cfg, log, report)
	return report
}

// absCandidates resolves relative candidate paths against the working
// directory. The vault filesystem is rooted at /, so a relative path would
// otherwise resolve against the filesystem root instead of the directory
// the user ran from. Paths that cannot be resolved are kept as given.
func absCandidates(candidates []string) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		if abs, err := filepath.Abs(c); err == nil {
			out[i] = abs
		} else {
			out[i] = c
		}
	}
	return out
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, candidates, unique int) {
	log.Info("Found %d candidates (%d unique after deduplication)", candidates, unique)
	log.Info("Target: %s", cfg.TargetDir)
	log.Info("Archive: %s", cfg.ArchiveDir)

	if cfg.NoWatermark {
		log.Info("Watermark: disabled")
	} else {
		log.Info("Watermark: %q via %s, object libraries, annotation", cfg.WatermarkText, cfg.AutomationTool)
	}
	if cfg.MatchPrefix > 0 {
		log.Info("Matching: exact name or first %d characters", cfg.MatchPrefix)
	}
	if !cfg.VerifyCopies {
		log.Info("Verification: disabled")
	}
	if cfg.RemoveSources {
		log.Info("Sources: removed after successful replacement")
	}
	if cfg.DryRun {
		log.Info("Mode: dry run (no files will be touched)")
	}
	fmt.Println()
}

func logSummary(cfg *config.Config, log *logging.Logger, report *Report) {
	log.Info("==============================")
	log.Info("Done: %d replaced, %d failed, %d duplicates skipped",
		report.Succeeded(), report.Failed(), len(report.SkippedDuplicates))

	if cfg.DryRun {
		log.Info("  Total data: n/a (dry run, sizes are estimates)")
	} else if report.TotalBytes > 0 {
		log.Info("  Total data copied: %s", display.FormatBytes(report.TotalBytes))
		if delta, archived := report.NetDelta(); archived {
			log.Info("  Net size change vs outgoing: %s", display.FormatBytesWithSign(delta))
		}
	}

	for _, res := range report.Results {
		if res.Status == StatusFailure {
			log.Error("  Failed: %s (%s)", filepath.Base(res.Source), res.ErrorDetail)
		}
	}
}
