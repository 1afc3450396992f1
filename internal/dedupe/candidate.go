package dedupe

import (
	"path/filepath"
	"strings"
)

// Candidate is one input path. It is immutable; the derived accessors are
// cheap and computed on demand.
type Candidate struct {
	Path string
}

// Base returns the file name including extension.
func (c Candidate) Base() string {
	return filepath.Base(c.Path)
}

// Ext returns the lower-cased extension including the leading dot, or ""
// when the name has no extension.
func (c Candidate) Ext() string {
	return strings.ToLower(filepath.Ext(c.Path))
}

// LogicalName returns the case-normalized name without extension. Two
// candidates with the same logical name are variants of the same logical
// document. A path with no extension is its own logical name.
func (c Candidate) LogicalName() string {
	base := c.Base()
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

// IsPDF reports whether the candidate has a .pdf extension, case-insensitive.
func (c Candidate) IsPDF() bool {
	return c.Ext() == ".pdf"
}
