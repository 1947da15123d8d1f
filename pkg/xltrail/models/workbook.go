// Package models defines data structures for workbook revision diffing.
package models

// Workbook represents the comparable artifacts extracted from one revision.
type Workbook struct {
	// BookName is the workbook file name (no path).
	BookName string
	// Modules maps module name to Module in VBA project order.
	Modules *Ordered[Module]
	// Sheets maps sheet name to Sheet in workbook order.
	Sheets *Ordered[Sheet]
	// Properties holds document properties for listing. Never diffed.
	Properties []Property
}

// NewWorkbook returns an empty workbook, the shape of an absent revision.
func NewWorkbook(bookName string) *Workbook {
	return &Workbook{
		BookName: bookName,
		Modules:  NewOrdered[Module](),
		Sheets:   NewOrdered[Sheet](),
	}
}

// Property is a single document property such as the author or title.
type Property struct {
	Name  string
	Value string
}
