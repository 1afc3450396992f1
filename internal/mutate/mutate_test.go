package mutate

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMutator is a scriptable strategy for chain tests.
type fakeMutator struct {
	name   Strategy
	err    error
	called int
}

func (f *fakeMutator) Name() Strategy { return f.name }
func (f *fakeMutator) Mutate(string) error {
	f.called++
	return f.err
}

func TestChain_FirstSuccessWins(t *testing.T) {
	a := &fakeMutator{name: StrategyAutomation}
	b := &fakeMutator{name: StrategyObject}
	c := &fakeMutator{name: StrategyAnnotate}

	used, err := NewChainOf(a, b, c).Apply("doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, StrategyAutomation, used)
	assert.Equal(t, 1, a.called)
	assert.Zero(t, b.called, "later strategies must not run after a success")
	assert.Zero(t, c.called)
}

func TestChain_FallsThroughToLast(t *testing.T) {
	a := &fakeMutator{name: StrategyAutomation, err: errors.New("tool missing")}
	b := &fakeMutator{name: StrategyObject, err: errors.New("bad format")}
	c := &fakeMutator{name: StrategyAnnotate}

	used, err := NewChainOf(a, b, c).Apply("doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, StrategyAnnotate, used)
	assert.Equal(t, 1, a.called)
	assert.Equal(t, 1, b.called)
}

func TestChain_AllFail(t *testing.T) {
	a := &fakeMutator{name: StrategyAutomation, err: errors.New("tool missing")}
	b := &fakeMutator{name: StrategyObject, err: errors.New("bad format")}
	c := &fakeMutator{name: StrategyAnnotate, err: errors.New("read-only")}

	used, err := NewChainOf(a, b, c).Apply("doc.pdf")
	require.Error(t, err)
	assert.Empty(t, used)
	assert.Contains(t, err.Error(), "automation: tool missing")
	assert.Contains(t, err.Error(), "object: bad format")
	assert.Contains(t, err.Error(), "annotate: read-only")
}

func TestChain_Empty(t *testing.T) {
	_, err := NewChainOf().Apply("doc.pdf")
	require.Error(t, err)
}

func TestEligible(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"contract.pdf", true},
		{"contract.PDF", true},
		{"letter.docx", true},
		{"letter.doc", true},
		{"sheet.xlsx", true},
		{"sheet.ods", true},
		{"notes.txt", false},
		{"image.png", false},
		{"README", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Eligible(tt.path), "Eligible(%q)", tt.path)
	}
}

func TestAutomation_MissingTool(t *testing.T) {
	m := &AutomationMutator{Tool: "definitely-not-a-real-binary-xyz", Text: "VOID", Timeout: time.Second}
	err := m.Mutate("doc.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found on PATH")
}

func TestObject_UnsupportedType(t *testing.T) {
	m := &ObjectMutator{Text: "VOID"}
	err := m.Mutate("letter.docx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported document type")
}

func TestAnnotate_AppendsToPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("original content"), 0o644))

	m := &AnnotateMutator{Text: "UNGÜLTIG"}
	require.NoError(t, m.Mutate(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "original content"), "original content must survive")
	assert.Contains(t, string(b), "UNGÜLTIG")
}

func TestAnnotate_PDFTrailingComment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n...\n%%EOF"), 0o644))

	m := &AnnotateMutator{Text: "UNGÜLTIG"}
	require.NoError(t, m.Mutate(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "%% UNGÜLTIG")
}

func TestAnnotate_ZipComment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "letter.docx")

	// Minimal OOXML-shaped container.
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	part, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = part.Write([]byte("<w:document/>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	m := &AnnotateMutator{Text: "UNGÜLTIG"}
	require.NoError(t, m.Mutate(path))

	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, "UNGÜLTIG", r.Comment)
	require.Len(t, r.File, 1)
	assert.Equal(t, "word/document.xml", r.File[0].Name)
}

func TestAnnotate_OpenDocumentZipComment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.odt")

	// Minimal OpenDocument-shaped container.
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	for name, body := range map[string]string{
		"mimetype":    "application/vnd.oasis.opendocument.text",
		"content.xml": "<office:document-content/>",
	} {
		part, err := w.Create(name)
		require.NoError(t, err)
		_, err = part.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	m := &AnnotateMutator{Text: "UNGÜLTIG"}
	require.NoError(t, m.Mutate(path))

	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, "UNGÜLTIG", r.Comment)
	assert.Len(t, r.File, 2)
}

func TestAnnotate_LegacyOLEUnsupported(t *testing.T) {
	m := &AnnotateMutator{Text: "VOID"}
	for _, name := range []string{"letter.doc", "sheet.xls"} {
		err := m.Mutate(name)
		require.Error(t, err, "Mutate(%q)", name)
	}
}

func TestAnnotate_UnsupportedType(t *testing.T) {
	m := &AnnotateMutator{Text: "VOID"}
	err := m.Mutate("image.png")
	require.Error(t, err)
}
