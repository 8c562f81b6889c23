// Package export renders the project register for download, as CSV for
// quick imports and as a formatted Excel workbook.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/fyptrack/fyptrack/internal/models"
)

var projectHeader = []string{"Title", "Student", "Supervisor", "Department", "Status", "Progress"}

func projectRow(p models.Project) []string {
	return []string{
		p.Title,
		p.StudentName,
		p.SupervisorName,
		p.Department,
		string(p.Status),
		fmt.Sprintf("%d%%", p.Progress),
	}
}

// ProjectsCSV streams the register. Column order is a download contract;
// clients import these files into spreadsheets.
func ProjectsCSV(w io.Writer, projects []models.Project) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(projectHeader); err != nil {
		return err
	}
	for _, p := range projects {
		if err := cw.Write(projectRow(p)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ProjectsWorkbook builds a single-sheet xlsx of the register with a bold,
// filterable header and width heuristics. Caller owns closing the file.
func ProjectsWorkbook(projects []models.Project) (*excelize.File, error) {
	const sheet = "Projects"
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for col, h := range projectHeader {
		cell := fmt.Sprintf("%s1", colName(col+1))
		if err := f.SetCellStr(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	for r, p := range projects {
		for c, val := range projectRow(p) {
			cell := fmt.Sprintf("%s%d", colName(c+1), r+2)
			if err := f.SetCellStr(sheet, cell, val); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		end := colName(len(projectHeader)) + "1"
		_ = f.SetCellStyle(sheet, "A1", end, bold)
		_ = f.AutoFilter(sheet, "A1:"+end, nil)
	}

	for c := 1; c <= len(projectHeader); c++ {
		max := len(projectHeader[c-1])
		for r := 0; r < len(projects) && r < 50; r++ {
			if l := len(projectRow(projects[r])[c-1]); l > max {
				max = l
			}
		}
		w := float64(max) * 0.9
		if w < 12 {
			w = 12
		}
		if w > 40 {
			w = 40
		}
		_ = f.SetColWidth(sheet, colName(c), colName(c), w)
	}
	return f, nil
}

// colName converts a 1-based column index to its Excel letter form.
func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+n%26)) + s
		n /= 26
	}
	return s
}
