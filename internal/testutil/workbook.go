package testutil

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Sheet is the content of one fixture sheet; Rows are written from A1.
type Sheet struct {
	Name string
	Rows [][]any
}

// WriteWorkbook saves a workbook with sheets (in order) under dir and
// returns its path. A non-nil vbaProject is embedded and the file is saved
// as .xlsm, otherwise as .xlsx.
func WriteWorkbook(t *testing.T, dir, base string, sheets []Sheet, vbaProject []byte) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			t.Fatalf("new sheet %s: %v", s.Name, err)
		}
		for r, row := range s.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetSheetRow(s.Name, cell, &row); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}

	ext := ".xlsx"
	if vbaProject != nil {
		ext = ".xlsm"
		if err := f.AddVBAProject(vbaProject); err != nil {
			t.Fatalf("add vba project: %v", err)
		}
	}

	path := filepath.Join(dir, base+ext)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save %s: %v", path, err)
	}
	return path
}
