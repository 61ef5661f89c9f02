// Package export writes the application list as a spreadsheet.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/tinytelemetry/applytrack/internal/dashboard"
	"github.com/tinytelemetry/applytrack/internal/model"
)

// SheetName is the worksheet holding the applications.
const SheetName = "Applications"

// ContentType is the MIME type of the workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var headers = []string{
	"ID", "Company", "Job Title", "Status", "Category", "Location",
	"Match Score", "Applied", "Updated", "Detail URL",
}

// WriteXLSX writes records, in the given order, as a workbook to w. Missing
// match scores and dates are left blank.
func WriteXLSX(w io.Writer, records []model.ApplicationRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("export: new sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("export: drop default sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 15}) // d-mmm-yy
	if err != nil {
		return fmt.Errorf("export: date style: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(SheetName, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(SheetName, "A1", last, bold)

	for i, r := range records {
		row := i + 2
		values := []any{
			r.ID, r.Company, r.JobTitle, r.Status,
			string(dashboard.Categorize(r.Status)), r.Location,
			nil, nil, nil, dashboard.DetailURL(r),
		}
		if r.MatchScore != nil {
			values[6] = *r.MatchScore
		}
		if !r.AppliedAt.IsZero() {
			values[7] = r.AppliedAt
		}
		if !r.LastActivity().IsZero() {
			values[8] = r.LastActivity()
		}
		start, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(SheetName, start, &values); err != nil {
			return fmt.Errorf("export: row %d: %w", row, err)
		}
		from, _ := excelize.CoordinatesToCellName(8, row)
		to, _ := excelize.CoordinatesToCellName(9, row)
		f.SetCellStyle(SheetName, from, to, dateStyle)
	}

	f.SetColWidth(SheetName, "B", "C", 28)
	f.SetColWidth(SheetName, "J", "J", 48)
	if err := f.SetPanes(SheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("export: freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}
