package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/docswap/docswap/internal/config"
	"github.com/docswap/docswap/internal/display"
	"github.com/docswap/docswap/internal/logging"
	"github.com/docswap/docswap/internal/mutate"
	"github.com/docswap/docswap/internal/vault"
)

// Step processes one winning candidate: locate the outgoing version in the
// target directory, stage it aside, copy the candidate in, stamp the staged
// file, and move it into the archive.
type Step struct {
	cfg        *config.Config
	log        *logging.Logger
	files      *vault.Files
	collisions *vault.CollisionResolver
	chain      *mutate.Chain
}

// NewStep builds a step with explicit filesystem and watermark chain.
func NewStep(cfg *config.Config, log *logging.Logger, files *vault.Files, chain *mutate.Chain) *Step {
	return &Step{
		cfg:        cfg,
		log:        log,
		files:      files,
		collisions: vault.NewCollisionResolver(files),
		chain:      chain,
	}
}

// Process runs the full replace → stamp → archive sequence for candidate.
// Failures never propagate beyond the returned result, so one bad file
// cannot stop the batch.
func (s *Step) Process(candidate string) Result {
	base := filepath.Base(candidate)

	if !s.files.Exists(candidate) {
		s.log.Error("Source not found: %s", candidate)
		return failure(candidate, "source not found")
	}

	dest := filepath.Join(s.cfg.TargetDir, base)
	outgoing, found := s.files.FindOutgoing(s.cfg.TargetDir, base, s.cfg.MatchPrefix)
	if found && outgoing != dest {
		s.log.Debug(s.cfg.Verbose, "Prefix match: %s -> %s", base, filepath.Base(outgoing))
	}

	if s.cfg.DryRun {
		return s.dryRun(candidate, dest, outgoing, found)
	}

	// --- Stage the outgoing version aside ---
	var staged string
	var outgoingBytes int64
	if found {
		if fi, err := s.files.Stat(outgoing); err == nil {
			outgoingBytes = fi.Size()
		}
		var err error
		staged, err = s.files.Stage(outgoing)
		if err != nil {
			s.log.Error("Cannot stage outgoing version: %v", err)
			return failure(candidate, fmt.Sprintf("stage: %v", err))
		}
	}
	restore := func() {
		if staged == "" {
			return
		}
		if err := s.files.Unstage(staged, outgoing); err != nil {
			s.log.Error("Cannot restore %s: %v", filepath.Base(outgoing), err)
		}
	}

	// --- Replace ---
	n, err := s.files.Copy(candidate, dest)
	if err != nil {
		s.log.Error("Copy failed: %v", err)
		restore()
		return failure(candidate, fmt.Sprintf("copy: %v", err))
	}

	if s.cfg.VerifyCopies {
		if err := s.files.Verify(candidate, dest); err != nil {
			s.log.Error("Copy verification failed: %v", err)
			if rmErr := s.files.Remove(dest); rmErr != nil {
				s.log.Error("Cannot remove bad copy: %v", rmErr)
			}
			restore()
			return failure(candidate, fmt.Sprintf("copy verification failed: %v", err))
		}
		s.log.Debug(s.cfg.Verbose, "SHA-256 verified (%s)", display.FormatBytes(n))
	}

	res := Result{Source: candidate, Status: StatusSuccess, ReplacedPath: dest, Bytes: n}

	// --- Stamp and archive the outgoing version ---
	if found {
		if !s.cfg.NoWatermark && mutate.Eligible(staged) {
			used, err := s.chain.Apply(staged)
			if err != nil {
				s.log.Warn("Watermark failed, archiving unstamped: %v", err)
				res.ErrorDetail = fmt.Sprintf("watermark: %v", err)
			} else {
				res.WatermarkUsed = used
				s.log.Stamp("Stamped %s (%s)", filepath.Base(outgoing), used)
			}
		}

		requested := filepath.Join(s.cfg.ArchiveDir, filepath.Base(outgoing))
		archivePath := s.collisions.Resolve(outgoing, requested)
		if err := s.files.Move(staged, archivePath); err != nil {
			s.log.Error("Archive failed: %v", err)
			res.Status = StatusFailure
			res.ErrorDetail = fmt.Sprintf("archive: %v", err)
			return res
		}
		res.ArchivedPath = archivePath
		res.DeltaBytes = n - outgoingBytes
		s.log.Debug(s.cfg.Verbose, "Size vs outgoing: %s", display.FormatBytesWithSign(res.DeltaBytes))
		if filepath.Base(archivePath) != filepath.Base(outgoing) {
			s.log.Warn("Archive name taken, stored as %s", filepath.Base(archivePath))
		}
	}

	// --- Source cleanup ---
	if s.cfg.RemoveSources {
		if err := s.files.Remove(candidate); err != nil {
			s.log.Warn("Cannot remove source: %v", err)
		}
	}

	s.log.Success("Replaced %s (%s)", base, display.FormatBytes(n))
	return res
}

// dryRun reports the actions a real run would take without touching any file.
func (s *Step) dryRun(candidate, dest, outgoing string, found bool) Result {
	base := filepath.Base(candidate)
	res := Result{Source: candidate, Status: StatusSuccess, ReplacedPath: dest}

	if fi, err := s.files.Stat(candidate); err == nil {
		res.Bytes = fi.Size()
	}

	if found {
		archivePath := s.collisions.Resolve(outgoing, filepath.Join(s.cfg.ArchiveDir, filepath.Base(outgoing)))
		res.ArchivedPath = archivePath
		if !s.cfg.NoWatermark && mutate.Eligible(outgoing) {
			s.log.Success("[DRY] Would replace %s, stamp and archive %s", base, filepath.Base(archivePath))
		} else {
			s.log.Success("[DRY] Would replace %s, archive %s", base, filepath.Base(archivePath))
		}
	} else {
		s.log.Success("[DRY] Would copy %s (no outgoing version)", base)
	}
	return res
}

func failure(source, detail string) Result {
	return Result{Source: source, Status: StatusFailure, ErrorDetail: detail}
}
