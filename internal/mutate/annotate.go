package mutate

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// AnnotateMutator is the last-resort strategy: a minimal in-place text or
// cell annotation that must never corrupt the document. Workbooks get a
// marker sheet, PDFs a trailing comment line, zip-based containers (OOXML
// and OpenDocument) an archive comment, and plain text an appended line.
// Legacy OLE binary formats (.doc, .xls) have no safe in-place annotation
// and are only handled by the automation strategy.
type AnnotateMutator struct {
	Text string
}

// Name implements [Mutator].
func (m *AnnotateMutator) Name() Strategy { return StrategyAnnotate }

// Mutate dispatches on the file extension.
func (m *AnnotateMutator) Mutate(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return m.annotateWorkbook(path)
	case ".pdf":
		// Readers locate the document structure from the xref table, so a
		// trailing comment line after %%EOF is ignored by viewers.
		return appendLine(path, "%% "+m.Text)
	case ".docx", ".xltx", ".pptx", ".odt", ".ods", ".odp":
		return m.annotateZip(path)
	case ".txt", ".csv", ".log", ".md":
		return appendLine(path, m.Text)
	default:
		return fmt.Errorf("unsupported document type %q", filepath.Ext(path))
	}
}

// annotateWorkbook prepends a marker sheet carrying the watermark text,
// leaving existing sheets untouched.
func (m *AnnotateMutator) annotateWorkbook(path string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	idx, err := f.NewSheet("Notice")
	if err != nil {
		return fmt.Errorf("marker sheet: %w", err)
	}
	if err := f.SetCellValue("Notice", "A1", m.Text); err != nil {
		return fmt.Errorf("marker cell: %w", err)
	}
	f.SetActiveSheet(idx)

	if err := f.Save(); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// annotateZip rewrites a zip-based document container (OOXML, OpenDocument)
// with the watermark text as the archive comment. Entries are copied
// byte-for-byte, so the document parts are untouched.
func (m *AnnotateMutator) annotateZip(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("open container: %w", err)
	}
	defer r.Close()

	tmp, err := os.CreateTemp(filepath.Dir(path), ".docswap-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := zip.NewWriter(tmp)
	if err := w.SetComment(m.Text); err != nil {
		w.Close()
		tmp.Close()
		return err
	}
	for _, f := range r.File {
		if err := w.Copy(f); err != nil {
			w.Close()
			tmp.Close()
			return fmt.Errorf("copy entry %q: %w", f.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmp.Name(), info.Mode()); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// appendLine appends a single marker line to the file.
func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	if _, err := f.WriteString("\n" + line + "\n"); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
