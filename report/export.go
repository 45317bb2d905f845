package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ExportDaily writes the run date's wide rows to an xlsx workbook named
// Master_Report_<date>.xlsx under dir and returns the file path.
func ExportDaily(dir, date string, rows []WideRow) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Master_Report"
	if _, err := f.NewSheet(sheet); err != nil {
		return "", err
	}

	cells := make([][]string, 0, len(rows)+1)
	cells = append(cells, historyHeader)
	for _, r := range rows {
		cells = append(cells, formatRow(r))
	}
	for ri, row := range cells {
		for ci, val := range row {
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+1)
			if err != nil {
				return "", err
			}
			if err := f.SetCellStr(sheet, cell, val); err != nil {
				return "", err
			}
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", err
	}

	path := filepath.Join(dir, fmt.Sprintf("Master_Report_%s.xlsx", date))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save report %s: %w", path, err)
	}
	return path, nil
}
