package parser

import (
	"fmt"
	"io"

	"github.com/extrame/xls"

	"github.com/xltrail/xltrail-go/pkg/xltrail/models"
)

// legacyColumns is the column limit of a BIFF8 worksheet.
const legacyColumns = 256

// ExtractLegacySheets extracts every sheet of a legacy compound file as row
// signatures, in workbook order, with the same escaping and padding as
// ExtractRows. A file without a Workbook stream has no sheets.
func ExtractLegacySheets(r io.ReadSeeker, sep string) (sheets *models.Ordered[models.Sheet], err error) {
	// The BIFF reader indexes records without bounds checks.
	defer func() {
		if v := recover(); v != nil {
			sheets, err = nil, fmt.Errorf("%w: workbook stream: %v", ErrCorruptContainer, v)
		}
	}()

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	book, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open workbook stream: %w", err)
	}

	sheets = models.NewOrdered[models.Sheet]()
	if book == nil {
		return sheets, nil
	}
	for i := 0; i < book.NumSheets(); i++ {
		ws := book.GetSheet(i)
		if ws == nil {
			continue
		}
		sheets.Set(ws.Name, models.Sheet{Name: ws.Name, Rows: signatures(legacyCells(ws), sep)})
	}
	return sheets, nil
}

// legacyCells reads the cell text of ws row by row. Trailing empty cells
// and trailing empty rows are dropped, as excelize does for GetRows.
func legacyCells(ws *xls.WorkSheet) [][]string {
	var rows [][]string
	for i := 0; i <= int(ws.MaxRow); i++ {
		var cells []string
		if row := legacyRow(ws, i); row != nil {
			for j := 0; j < legacyColumns; j++ {
				if v := row.Col(j); v != "" {
					cells = append(cells, make([]string, j-len(cells))...)
					cells = append(cells, v)
				}
			}
		}
		rows = append(rows, cells)
	}
	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}
	return rows
}

// legacyRow returns nil for a row without records; WorkSheet.Row
// dereferences the missing entry.
func legacyRow(ws *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return ws.Row(i)
}
