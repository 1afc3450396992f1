package mutate

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/xuri/excelize/v2"
)

// ObjectMutator stamps documents programmatically through document object
// libraries: pdfcpu for PDFs, excelize for workbooks. Word-processor formats
// have no object library in this chain and fall through to the next
// strategy.
type ObjectMutator struct {
	Text string
}

// Name implements [Mutator].
func (m *ObjectMutator) Name() Strategy { return StrategyObject }

// Mutate dispatches on the file extension.
func (m *ObjectMutator) Mutate(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return m.stampPDF(path)
	case ".xlsx", ".xlsm":
		return m.stampWorkbook(path)
	default:
		return fmt.Errorf("unsupported document type %q", filepath.Ext(path))
	}
}

// stampPDF overlays a diagonal translucent red text watermark on every page,
// in place.
func (m *ObjectMutator) stampPDF(path string) error {
	desc := "fontname:Helvetica, points:80, color:1 0 0, op:.7, rot:45"
	if err := api.AddTextWatermarksFile(path, "", nil, true, m.Text, desc, nil); err != nil {
		return fmt.Errorf("pdf watermark: %w", err)
	}
	return nil
}

// stampWorkbook writes a bold red marker cell and a centered page header on
// every sheet.
func (m *ObjectMutator) stampWorkbook(path string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	styleID, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 36, Color: "FF0000"},
	})
	if err != nil {
		return fmt.Errorf("workbook style: %w", err)
	}

	for _, sheet := range f.GetSheetList() {
		if err := f.SetCellValue(sheet, "B2", m.Text); err != nil {
			return fmt.Errorf("sheet %q: %w", sheet, err)
		}
		if err := f.SetCellStyle(sheet, "B2", "B2", styleID); err != nil {
			return fmt.Errorf("sheet %q: %w", sheet, err)
		}
		if err := f.SetHeaderFooter(sheet, &excelize.HeaderFooterOptions{
			OddHeader: "&C&\"Arial,Bold\"&36&KFF0000" + m.Text,
		}); err != nil {
			return fmt.Errorf("sheet %q header: %w", sheet, err)
		}
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
