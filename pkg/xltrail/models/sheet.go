package models

// Sheet represents the tabular content of a single worksheet.
type Sheet struct {
	// Name is the sheet name as declared in the workbook.
	Name string
	// Rows holds one row signature per stored row, in sheet order.
	Rows []string
}

// Equal reports whether both sheets hold the same row signatures.
func (s Sheet) Equal(o Sheet) bool {
	if len(s.Rows) != len(o.Rows) {
		return false
	}
	for i := range s.Rows {
		if s.Rows[i] != o.Rows[i] {
			return false
		}
	}
	return true
}
