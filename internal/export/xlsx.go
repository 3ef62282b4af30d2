package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matsen/refcite/internal/citation"
	"github.com/matsen/refcite/internal/reference"
	"github.com/matsen/refcite/internal/render"
)

// SheetName is the worksheet holding exported references.
const SheetName = "References"

// Columns is the header row of the exported sheet.
var Columns = []string{
	"Name", "Type", "Authors", "Year", "Title", "Journal", "Publisher",
	"Volume", "Issue", "Pages", "URL", "DOI", "Keywords", "Citation",
}

// WriteXLSX writes one row per record to w as an XLSX workbook. The last
// column holds the plain-text full citation, or is empty when the record
// cannot be rendered.
func WriteXLSX(w io.Writer, recs []reference.Record, formatter citation.Formatter) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, rec := range recs {
		var text render.Text
		citationText := ""
		if err := formatter.AddFull(&text, rec); err == nil {
			citationText = text.String()
		}

		row := []any{
			rec.Name, string(rec.Type), strings.Join(rec.Authors, "; "), rec.Year,
			rec.Title, rec.Journal, rec.Publisher, rec.Volume, rec.Issue,
			rec.Pages, rec.URL, rec.DOI, strings.Join(rec.Keywords, "; "), citationText,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("writing %s: %w", rec.Name, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
