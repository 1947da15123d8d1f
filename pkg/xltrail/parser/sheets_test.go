package parser

import (
	"math/rand"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExtractRows(t *testing.T) {
	// Create a temporary Excel file for testing
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	// Set some test data
	f.SetCellValue(sheetName, "A1", "Header1")
	f.SetCellValue(sheetName, "B1", "Header2")
	f.SetCellValue(sheetName, "A2", 100)
	f.SetCellValue(sheetName, "B2", 200.5)
	f.SetCellValue(sheetName, "A3", "Text")
	f.SetCellValue(sheetName, "C5", "Far")

	// Save to temp file
	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	// Open and extract
	f2, err := excelize.OpenFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer f2.Close()

	rows, err := ExtractRows(f2, sheetName, DefaultSeparator)
	if err != nil {
		t.Fatalf("ExtractRows failed: %v", err)
	}

	expected := []string{
		"Header1║Header2║",
		"100║200.5║",
		"Text║║",
		"║║",
		"║║Far",
	}
	assert.Equal(t, expected, rows)
}

func TestExtractSheetsOrder(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Zeta"))
	_, err := f.NewSheet("Alpha")
	require.NoError(t, err)
	_, err = f.NewSheet("Mid")
	require.NoError(t, err)
	f.SetCellValue("Alpha", "A1", "x")

	sheets, err := ExtractSheets(f, DefaultSeparator)
	require.NoError(t, err)

	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, sheets.Keys())
	alpha, ok := sheets.Get("Alpha")
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, alpha.Rows)
	zeta, _ := sheets.Get("Zeta")
	assert.Empty(t, zeta.Rows)
}

// Booleans and dates keep their stored form: 1/0 and the date serial.
func TestExtractRowsRawValues(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetCellValue("Sheet1", "A1", true))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", false))
	require.NoError(t, f.SetCellValue("Sheet1", "C1", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, f.SetCellValue("Sheet1", "D1", "007"))

	rows, err := ExtractRows(f, "Sheet1", DefaultSeparator)
	require.NoError(t, err)
	assert.Equal(t, []string{"1║0║43831║007"}, rows)
}

func TestRowSignature(t *testing.T) {
	tests := []struct {
		cells    []string
		expected string
	}{
		{[]string{"1", "2", "3"}, "1║2║3"},
		{[]string{"", ""}, "║"},
		{[]string{"a║b"}, "a␛║b"},
		{[]string{"␛"}, "␛␛"},
		{[]string{"a|b", "c,d"}, "a|b║c,d"},
	}

	for _, tt := range tests {
		result := RowSignature(tt.cells, DefaultSeparator)
		if result != tt.expected {
			t.Errorf("RowSignature(%q) = %q, expected %q", tt.cells, result, tt.expected)
		}
	}
}

// Rows that differ must never share a signature, even when cells carry the
// separator or escape glyphs.
func TestRowSignatureInjective(t *testing.T) {
	alphabet := []string{"a", "║", "␛", ""}
	rng := rand.New(rand.NewSource(1))
	randomCell := func() string {
		var b strings.Builder
		for n := rng.Intn(4); n > 0; n-- {
			b.WriteString(alphabet[rng.Intn(len(alphabet))])
		}
		return b.String()
	}

	seen := make(map[string][]string)
	for i := 0; i < 5000; i++ {
		row := []string{randomCell(), randomCell(), randomCell()}
		sig := RowSignature(row, DefaultSeparator)
		if prev, ok := seen[sig]; ok && !equalCells(prev, row) {
			t.Fatalf("rows %q and %q share signature %q", prev, row, sig)
		}
		seen[sig] = row
	}

	// The collision a plain join would produce.
	assert.NotEqual(t,
		RowSignature([]string{"a║", "b"}, DefaultSeparator),
		RowSignature([]string{"a", "║b"}, DefaultSeparator))
}

func equalCells(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
