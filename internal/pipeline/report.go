package pipeline

import (
	"encoding/json"
	"os"
	"time"

	"github.com/docswap/docswap/internal/dedupe"
	"github.com/docswap/docswap/internal/mutate"
)

// Status is the terminal state of one processed candidate.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Result records the outcome of processing a single winning candidate.
type Result struct {
	Source        string         `json:"source"`
	Status        Status         `json:"status"`
	ErrorDetail   string         `json:"error,omitempty"`
	WatermarkUsed mutate.Strategy `json:"watermark_strategy,omitempty"`
	ReplacedPath  string         `json:"replaced_path,omitempty"`
	ArchivedPath  string         `json:"archived_path,omitempty"`
	Bytes         int64          `json:"bytes"`
	DeltaBytes    int64          `json:"delta_bytes,omitempty"` // Replacement size minus outgoing size.
}

// Skip records a candidate dropped during deduplication.
type Skip struct {
	Path   string        `json:"path"`
	Winner string        `json:"winner"`
	Reason dedupe.Reason `json:"reason"`
}

// Report aggregates a full batch run. Every candidate is accounted for:
// TotalCandidates always equals UniqueProcessed plus the number of skipped
// duplicates.
type Report struct {
	StartedAt         time.Time `json:"started_at"`
	FinishedAt        time.Time `json:"finished_at"`
	Results           []Result  `json:"results"`
	SkippedDuplicates []Skip    `json:"skipped_duplicates"`
	TotalCandidates   int       `json:"total_candidates"`
	UniqueProcessed   int       `json:"unique_processed"`
	TotalBytes        int64     `json:"total_bytes"`
}

// Succeeded returns the number of successfully processed candidates.
func (r *Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == StatusSuccess {
			n++
		}
	}
	return n
}

// Failed returns the number of failed candidates.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == StatusFailure {
			n++
		}
	}
	return n
}

// NetDelta returns the aggregate size change between replacements and the
// outgoing versions they displaced, and whether anything was archived at all.
func (r *Report) NetDelta() (int64, bool) {
	var delta int64
	archived := false
	for _, res := range r.Results {
		if res.ArchivedPath != "" {
			delta += res.DeltaBytes
			archived = true
		}
	}
	return delta, archived
}

// WriteFile writes the report as indented JSON.
func (r *Report) WriteFile(path string) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
