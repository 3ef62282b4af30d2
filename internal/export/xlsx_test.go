package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/matsen/refcite/internal/citation"
	"github.com/matsen/refcite/internal/reference"
)

func TestWriteXLSX(t *testing.T) {
	broken := reference.Record{Name: "Broken 1999", Type: reference.TypeArticle, Year: "1999", Title: "No journal"}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, []reference.Record{article, broken}, citation.Formatter{}); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != SheetName {
		t.Errorf("sheets = %v, want [%s]", sheets, SheetName)
	}

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0][0] != "Name" || rows[0][len(Columns)-1] != "Citation" {
		t.Errorf("header = %v", rows[0])
	}

	first := rows[1]
	if first[0] != "Smith 2020a" || first[2] != "Smith, John; Doe, Jane" || first[3] != "2020" {
		t.Errorf("first row = %v", first)
	}
	wantCitation := "Smith, John, Doe, Jane. 2020. Cats & Dogs. Nature, 12 (3), 1-10."
	if first[len(Columns)-1] != wantCitation {
		t.Errorf("citation = %q, want %q", first[len(Columns)-1], wantCitation)
	}

	// GetRows trims trailing empty cells, so the unrenderable record has no
	// citation column.
	if second := rows[2]; second[0] != "Broken 1999" || len(second) == len(Columns) {
		t.Errorf("second row = %v", second)
	}
}
