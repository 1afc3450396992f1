package mutate

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/docswap/docswap/internal/config"
)

// Strategy identifies which watermarking mechanism was used.
type Strategy string

const (
	StrategyAutomation Strategy = "automation" // External office automation tool.
	StrategyObject     Strategy = "object"     // Document object libraries (pdfcpu, excelize).
	StrategyAnnotate   Strategy = "annotate"   // Minimal in-place annotation.
)

// Mutator is the capability contract for one watermarking strategy.
// Mutate stamps the document at path in place and returns nil on success.
type Mutator interface {
	Name() Strategy
	Mutate(path string) error
}

// Watermark-eligible document types: word-processor documents, PDFs, and
// spreadsheets (lowercase, with leading dot).
var watermarkable = map[string]bool{
	".doc":  true,
	".docx": true,
	".odt":  true,
	".pdf":  true,
	".xls":  true,
	".xlsx": true,
	".xlsm": true,
	".ods":  true,
}

// Eligible reports whether the file at path is a watermark-eligible
// document type.
func Eligible(path string) bool {
	return watermarkable[strings.ToLower(filepath.Ext(path))]
}

// Chain tries mutators in priority order and reports the first that
// succeeds. The order is fixed: automation, then object libraries, then
// minimal annotation.
type Chain struct {
	mutators []Mutator
}

// NewChain builds the default strategy chain from cfg.
func NewChain(cfg *config.Config) *Chain {
	return &Chain{mutators: []Mutator{
		&AutomationMutator{
			Tool:    cfg.AutomationTool,
			Text:    cfg.WatermarkText,
			Timeout: cfg.AutomationTimeout,
		},
		&ObjectMutator{Text: cfg.WatermarkText},
		&AnnotateMutator{Text: cfg.WatermarkText},
	}}
}

// NewChainOf builds a chain from explicit mutators, in the given order.
// Used by tests and callers that need a custom strategy set.
func NewChainOf(mutators ...Mutator) *Chain {
	return &Chain{mutators: mutators}
}

// Apply runs the chain against path. It returns the name of the first
// strategy that succeeded, or a combined error when every strategy failed.
func (c *Chain) Apply(path string) (Strategy, error) {
	if len(c.mutators) == 0 {
		return "", errors.New("no watermark strategies configured")
	}

	var failures []string
	for _, m := range c.mutators {
		if err := m.Mutate(path); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", m.Name(), err))
			continue
		}
		return m.Name(), nil
	}
	return "", fmt.Errorf("all strategies failed: %s", strings.Join(failures, "; "))
}
