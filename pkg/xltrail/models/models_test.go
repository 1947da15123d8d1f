package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedKeepsFirstPosition(t *testing.T) {
	o := NewOrdered[int]()
	o.Set("b", 1)
	o.Set("a", 2)
	o.Set("b", 3)

	assert.Equal(t, []string{"b", "a"}, o.Keys())
	assert.Equal(t, 2, o.Len())

	v, ok := o.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.False(t, o.Has("c"))
}

func TestOrderedKeysIsCopy(t *testing.T) {
	o := NewOrdered[string]()
	o.Set("x", "1")

	keys := o.Keys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"x"}, o.Keys())
}

func TestOrderedNil(t *testing.T) {
	var o *Ordered[Sheet]
	_, ok := o.Get("Sheet1")
	assert.False(t, ok)
	assert.Nil(t, o.Keys())
	assert.Zero(t, o.Len())
}

func TestModuleLinesAndDigest(t *testing.T) {
	m := Module{Name: "Module1", Content: "Sub X()\nEnd Sub"}
	assert.Equal(t, []string{"Sub X()", "End Sub"}, m.Lines())

	// sha1 of the empty string
	assert.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709", Module{}.Digest())
	assert.Len(t, m.Digest(), 40)
	assert.NotEqual(t, Module{}.Digest(), m.Digest())
}

func TestSheetEqual(t *testing.T) {
	a := Sheet{Name: "S", Rows: []string{"1║2"}}
	assert.True(t, a.Equal(Sheet{Name: "other", Rows: []string{"1║2"}}))
	assert.False(t, a.Equal(Sheet{Rows: []string{"1║3"}}))
	assert.False(t, a.Equal(Sheet{}))
	assert.True(t, Sheet{}.Equal(Sheet{Rows: []string{}}))
}

func TestDiffLineString(t *testing.T) {
	tests := []struct {
		line     DiffLine
		expected string
	}{
		{DiffLine{TagContext, "a"}, " a"},
		{DiffLine{TagRemoved, "a"}, "-a"},
		{DiffLine{TagAdded, "a"}, "+a"},
		{DiffLine{TagHunkHeader, "@@ -1 +1 @@"}, "@@ -1 +1 @@"},
		{DiffLine{TagFileMarker, "--- "}, "--- "},
	}
	for _, tt := range tests {
		if got := tt.line.String(); got != tt.expected {
			t.Errorf("%s line: got %q, expected %q", tt.line.Tag, got, tt.expected)
		}
	}
}

func TestDiffRecordCounts(t *testing.T) {
	r := DiffRecord{Lines: []DiffLine{
		{TagFileMarker, "--- "},
		{TagHunkHeader, "@@ -1,2 +1,3 @@"},
		{TagRemoved, "a"},
		{TagAdded, "b"},
		{TagAdded, "c"},
		{TagContext, "d"},
	}}
	added, removed := r.Counts()
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, removed)
}

func TestNewWorkbookIsEmpty(t *testing.T) {
	wb := NewWorkbook("book.xlsm")
	assert.Equal(t, "book.xlsm", wb.BookName)
	assert.Zero(t, wb.Modules.Len())
	assert.Zero(t, wb.Sheets.Len())
}
