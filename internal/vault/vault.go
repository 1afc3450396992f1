package vault

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// stagingSuffix marks a displaced file parked next to its target while the
// replacement lands. Staged files are never treated as outgoing versions.
const stagingSuffix = ".outgoing"

// Files wraps a billy filesystem with the operations the pipeline needs.
type Files struct {
	fs billy.Filesystem
}

// New returns Files backed by the given filesystem.
func New(fs billy.Filesystem) *Files {
	return &Files{fs: fs}
}

// NewOS returns Files backed by the real filesystem, addressed by absolute
// paths.
func NewOS() *Files {
	return New(osfs.New("/"))
}

// Stat returns file info for path.
func (f *Files) Stat(path string) (os.FileInfo, error) {
	return f.fs.Stat(path)
}

// Exists reports whether path names an existing file or directory.
func (f *Files) Exists(path string) bool {
	_, err := f.fs.Stat(path)
	return err == nil
}

// MkdirAll creates dir and any missing parents.
func (f *Files) MkdirAll(dir string) error {
	return f.fs.MkdirAll(dir, 0o755)
}

// Remove deletes path.
func (f *Files) Remove(path string) error {
	return f.fs.Remove(path)
}

// Copy copies src to dst, truncating any existing dst. Returns the number
// of bytes written.
func (f *Files) Copy(src, dst string) (int64, error) {
	in, err := f.fs.Open(src)
	if err != nil {
		return 0, fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := f.fs.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("create destination: %w", err)
	}

	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		return n, fmt.Errorf("copy data: %w", err)
	}
	if err := out.Close(); err != nil {
		return n, fmt.Errorf("close destination: %w", err)
	}
	return n, nil
}

// HashFile returns the hex SHA-256 digest of the file at path.
func (f *Files) HashFile(path string) (string, error) {
	in, err := f.fs.Open(path)
	if err != nil {
		return "", err
	}
	defer in.Close()

	h := sha256.New()
	if _, err := io.Copy(h, in); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Verify confirms that src and dst are byte-identical: sizes first, then
// SHA-256 digests.
func (f *Files) Verify(src, dst string) error {
	si, err := f.fs.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	di, err := f.fs.Stat(dst)
	if err != nil {
		return fmt.Errorf("stat destination: %w", err)
	}
	if si.Size() != di.Size() {
		return fmt.Errorf("size mismatch: source %d bytes, destination %d bytes", si.Size(), di.Size())
	}

	sh, err := f.HashFile(src)
	if err != nil {
		return fmt.Errorf("hash source: %w", err)
	}
	dh, err := f.HashFile(dst)
	if err != nil {
		return fmt.Errorf("hash destination: %w", err)
	}
	if sh != dh {
		return fmt.Errorf("hash mismatch: %s != %s", sh, dh)
	}
	return nil
}

// Stage renames path to an unused sibling name with the staging suffix
// inserted before the extension and returns the staged path. Keeping the
// extension lets staged files go through extension-dispatched processing.
// The rename keeps the file on the same filesystem so it stays cheap and
// atomic.
func (f *Files) Stage(path string) (string, error) {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)

	staged := stem + stagingSuffix + ext
	for n := 2; f.Exists(staged); n++ {
		staged = fmt.Sprintf("%s%s%d%s", stem, stagingSuffix, n, ext)
	}
	if err := f.fs.Rename(path, staged); err != nil {
		return "", fmt.Errorf("stage %s: %w", filepath.Base(path), err)
	}
	return staged, nil
}

// Unstage moves a staged file back to its original path (replace rollback).
func (f *Files) Unstage(staged, original string) error {
	return f.fs.Rename(staged, original)
}

// Move moves src to dst, preferring rename and falling back to copy+remove
// when the rename fails (e.g. across filesystems).
func (f *Files) Move(src, dst string) error {
	if err := f.fs.Rename(src, dst); err == nil {
		return nil
	}
	if _, err := f.Copy(src, dst); err != nil {
		return err
	}
	if err := f.fs.Remove(src); err != nil {
		return fmt.Errorf("remove after copy: %w", err)
	}
	return nil
}

// FindOutgoing locates the outgoing version of base inside dir. With
// prefixLen == 0 only an exact basename match counts. With prefixLen > 0 the
// first directory entry (sorted) sharing the leading prefixLen characters is
// returned, matching the legacy prefix behavior. Staged and temporary files
// are ignored.
func (f *Files) FindOutgoing(dir, base string, prefixLen int) (string, bool) {
	exact := f.fs.Join(dir, base)
	if f.Exists(exact) {
		return exact, true
	}
	if prefixLen <= 0 {
		return "", false
	}

	entries, err := f.fs.ReadDir(dir)
	if err != nil {
		return "", false
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.Contains(name, stagingSuffix) || strings.HasPrefix(name, ".docswap-") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	want := runePrefix(base, prefixLen)
	for _, name := range names {
		if runePrefix(name, prefixLen) == want {
			return f.fs.Join(dir, name), true
		}
	}
	return "", false
}

// runePrefix returns the first n runes of s (all of s when shorter).
func runePrefix(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}

// IsNotExist reports whether err stems from a missing file, across both the
// OS and in-memory filesystems.
func IsNotExist(err error) bool {
	return os.IsNotExist(err)
}
