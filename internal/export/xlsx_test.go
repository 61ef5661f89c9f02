package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tinytelemetry/applytrack/internal/model"
)

func TestWriteXLSX(t *testing.T) {
	score := 77.0
	records := []model.ApplicationRecord{
		{ID: "1", Company: "Acme", JobTitle: "SRE", Status: "Offer", MatchScore: &score,
			AppliedAt: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)},
		{ID: "2", Company: "Globex", Status: "rejected"},
	}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, records); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0][0] != "ID" || rows[1][1] != "Acme" || rows[2][4] != "rejected" {
		t.Fatalf("unexpected rows: %v", rows)
	}
	if got, _ := f.GetCellValue(SheetName, "G2"); got != "77" {
		t.Errorf("match score cell = %q", got)
	}
	if got, _ := f.GetCellValue(SheetName, "J2"); got != "/applications/acme-sre/index.html" {
		t.Errorf("detail url cell = %q", got)
	}
	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != SheetName {
		t.Errorf("sheets = %v", sheets)
	}
}
