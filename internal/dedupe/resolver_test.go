package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paths(outs []Outcome) []string {
	var got []string
	for _, o := range outs {
		got = append(got, o.Winner.Path)
	}
	return got
}

func skippedPaths(outs []Outcome) []string {
	var got []string
	for _, o := range outs {
		for _, s := range o.Skipped {
			got = append(got, s.Path)
		}
	}
	return got
}

func TestResolve_PDFPriority(t *testing.T) {
	in := []string{"contract.pdf", "contract.docx", "contract.xlsx", "summary.xlsx", "notes.txt"}
	outs := Resolve(in)

	require.Len(t, outs, 3)

	assert.Equal(t, "contract.pdf", outs[0].Winner.Path)
	assert.Equal(t, ReasonPDFPriority, outs[0].Reason)
	assert.Equal(t, []string{"contract.docx", "contract.xlsx"}, skippedPaths(outs[:1]))

	assert.Equal(t, "summary.xlsx", outs[1].Winner.Path)
	assert.Equal(t, ReasonSingle, outs[1].Reason)
	assert.Empty(t, outs[1].Skipped)

	assert.Equal(t, "notes.txt", outs[2].Winner.Path)
	assert.Equal(t, ReasonSingle, outs[2].Reason)
}

func TestResolve_FirstAvailableWithoutPDF(t *testing.T) {
	in := []string{"contract.docx", "contract.xlsx", "summary.docx", "summary.xlsx", "notes.txt"}
	outs := Resolve(in)

	require.Len(t, outs, 3)
	assert.Equal(t, []string{"contract.docx", "summary.docx", "notes.txt"}, paths(outs))
	assert.Equal(t, ReasonFirstAvailable, outs[0].Reason)
	assert.Equal(t, []string{"contract.xlsx"}, skippedPaths(outs[:1]))
	assert.Equal(t, ReasonFirstAvailable, outs[1].Reason)
	assert.Equal(t, ReasonSingle, outs[2].Reason)
}

func TestResolve_FirstPDFWinsTie(t *testing.T) {
	// Two PDFs of the same logical document: input order decides.
	in := []string{"report.docx", "a/report.pdf", "b/report.pdf"}
	outs := Resolve(in)

	require.Len(t, outs, 1)
	assert.Equal(t, "a/report.pdf", outs[0].Winner.Path)
	assert.Equal(t, ReasonPDFPriority, outs[0].Reason)
	assert.Equal(t, []string{"report.docx", "b/report.pdf"}, skippedPaths(outs))
}

func TestResolve_CaseInsensitivePDFAndNames(t *testing.T) {
	in := []string{"Contract.DOCX", "CONTRACT.Pdf"}
	outs := Resolve(in)

	require.Len(t, outs, 1)
	assert.Equal(t, "CONTRACT.Pdf", outs[0].Winner.Path)
	assert.Equal(t, ReasonPDFPriority, outs[0].Reason)
}

func TestResolve_Empty(t *testing.T) {
	assert.Empty(t, Resolve(nil))
	assert.Empty(t, Resolve([]string{}))
}

func TestResolve_MalformedPaths(t *testing.T) {
	// Empty strings and extensionless names must not panic and must be
	// grouped as their own logical documents.
	in := []string{"", "Makefile", "makefile", "weird."}
	outs := Resolve(in)

	require.Len(t, outs, 3)
	assert.Equal(t, "Makefile", outs[1].Winner.Path)
	assert.Equal(t, ReasonFirstAvailable, outs[1].Reason)
	assert.Equal(t, []string{"makefile"}, skippedPaths(outs[1:2]))
}

func TestResolve_DuplicateFullPaths(t *testing.T) {
	in := []string{"x/contract.pdf", "x/contract.pdf"}
	outs := Resolve(in)

	require.Len(t, outs, 1)
	assert.Len(t, outs[0].Skipped, 1)
	assert.Equal(t, ReasonPDFPriority, outs[0].Reason)
}

func TestResolve_MemberConservation(t *testing.T) {
	in := []string{"a.pdf", "a.docx", "b.txt", "c.xlsx", "c.csv", "c.pdf", "d"}
	outs := Resolve(in)

	total := 0
	for _, o := range outs {
		total += 1 + len(o.Skipped)
	}
	assert.Equal(t, len(in), total, "winner+skipped across outcomes must equal input length")
}

func TestResolve_Idempotent(t *testing.T) {
	in := []string{"contract.pdf", "contract.docx", "summary.xlsx"}
	first := Resolve(in)
	second := Resolve(in)
	assert.Equal(t, first, second)
}

func TestIdentityOutcomes(t *testing.T) {
	in := []string{"a.pdf", "a.docx"}
	outs := identityOutcomes(in)

	require.Len(t, outs, 2)
	for i, o := range outs {
		assert.Equal(t, in[i], o.Winner.Path)
		assert.Equal(t, ReasonSingle, o.Reason)
		assert.Empty(t, o.Skipped)
	}
}

func TestCandidate_Accessors(t *testing.T) {
	c := Candidate{Path: "/tmp/Incoming/Contract V2.PDF"}
	assert.Equal(t, "Contract V2.PDF", c.Base())
	assert.Equal(t, ".pdf", c.Ext())
	assert.Equal(t, "contract v2", c.LogicalName())
	assert.True(t, c.IsPDF())

	plain := Candidate{Path: "README"}
	assert.Equal(t, "", plain.Ext())
	assert.Equal(t, "readme", plain.LogicalName())
	assert.False(t, plain.IsPDF())
}
