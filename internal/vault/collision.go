package vault

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// CollisionResolver tracks archive paths claimed by source files and resolves
// duplicates by appending " - dupN" suffixes. A path counts as claimed when
// another source owns it or when it already exists on disk, so archived files
// from earlier runs are never overwritten. All methods are goroutine-safe.
type CollisionResolver struct {
	mu       sync.Mutex
	files    *Files
	owners   map[string]string // archive path → source path that owns it
	counters map[string]int    // base archive path → next dup counter
}

// NewCollisionResolver creates a resolver that checks on-disk existence
// through files.
func NewCollisionResolver(files *Files) *CollisionResolver {
	return &CollisionResolver{
		files:    files,
		owners:   make(map[string]string),
		counters: make(map[string]int),
	}
}

// Resolve returns the final archive path for source, handling collisions.
// If requested is unclaimed (or already owned by source), it is returned
// as-is. Otherwise a " - dupN" variant is generated.
func (cr *CollisionResolver) Resolve(source, requested string) string {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if !cr.claimed(source, requested) {
		cr.owners[requested] = source
		return requested
	}

	dir := filepath.Dir(requested)
	base := filepath.Base(requested)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	counter := cr.counters[requested]
	if counter == 0 {
		counter = 1
	}

	for {
		candidate := filepath.Join(dir, fmt.Sprintf("%s - dup%d%s", stem, counter, ext))
		if !cr.claimed(source, candidate) {
			cr.counters[requested] = counter + 1
			cr.owners[candidate] = source
			return candidate
		}
		counter++
	}
}

// claimed reports whether path is taken by a different source or by an
// existing file. Callers must hold cr.mu.
func (cr *CollisionResolver) claimed(source, path string) bool {
	if owner, exists := cr.owners[path]; exists {
		return owner != source
	}
	return cr.files.Exists(path)
}
