package parser

import (
	"strings"

	"github.com/xltrail/xltrail-go/pkg/xltrail/models"
	"github.com/xuri/excelize/v2"
)

// DefaultSeparator joins cell values into a row signature.
const DefaultSeparator = "║"

// escapeRune escapes separator and escape runes inside cell text so that
// distinct rows never share a signature.
const escapeRune = "␛"

// ExtractSheets extracts every sheet of f as row signatures, in workbook order.
func ExtractSheets(f *excelize.File, sep string) (*models.Ordered[models.Sheet], error) {
	sheets := models.NewOrdered[models.Sheet]()
	for _, name := range f.GetSheetList() {
		rows, err := ExtractRows(f, name, sep)
		if err != nil {
			return nil, err
		}
		sheets.Set(name, models.Sheet{Name: name, Rows: rows})
	}
	return sheets, nil
}

// ExtractRows extracts the row signatures of one sheet.
// Raw cell values are used so number formats never show up as changes.
// Every stored row is kept, including empty ones, and rows are padded
// to the widest row so that each signature has the same column count.
func ExtractRows(f *excelize.File, sheetName string, sep string) ([]string, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	return signatures(rows, sep), nil
}

// signatures pads rows to the widest one and joins each into a signature.
func signatures(rows [][]string, sep string) []string {
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	result := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, width)
		copy(cells, row)
		result = append(result, RowSignature(cells, sep))
	}
	return result
}

// RowSignature joins cells with sep after escaping sep and the escape rune
// inside each cell.
func RowSignature(cells []string, sep string) string {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = escapeCell(c, sep)
	}
	return strings.Join(escaped, sep)
}

// escapeCell assumes sep is non-empty and differs from escapeRune.
func escapeCell(s, sep string) string {
	if !strings.Contains(s, escapeRune) && !strings.Contains(s, sep) {
		return s
	}
	s = strings.ReplaceAll(s, escapeRune, escapeRune+escapeRune)
	return strings.ReplaceAll(s, sep, escapeRune+sep)
}
