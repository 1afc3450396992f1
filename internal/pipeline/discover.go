package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Supported document file extensions (lowercase, with leading dot).
var documentExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".odt":  true,
	".xls":  true,
	".xlsx": true,
	".xlsm": true,
	".ods":  true,
	".ppt":  true,
	".pptx": true,
	".txt":  true,
	".csv":  true,
	".rtf":  true,
}

// Discover walks sourceDir, collects files with document extensions, prunes
// directories named "archive" (case-insensitive), and returns the paths
// sorted lexicographically for deterministic processing order.
func Discover(sourceDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.EqualFold(d.Name(), "archive") {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if documentExtensions[ext] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
