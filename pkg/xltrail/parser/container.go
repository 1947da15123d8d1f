// Package parser reads sheet content and VBA projects out of workbook files.
package parser

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// Format identifies the container format of a workbook file.
type Format int

const (
	// FormatUnknown is any file that is neither ZIP nor OLE2.
	FormatUnknown Format = iota
	// FormatOpenXML is an XML-based OOXML package (.xlsx, .xlsm, ...).
	FormatOpenXML
	// FormatBinary is an OOXML package with binary parts (.xlsb).
	FormatBinary
	// FormatLegacy is an OLE2 compound file (.xls, .xla, .xlt).
	FormatLegacy
)

func (f Format) String() string {
	switch f {
	case FormatOpenXML:
		return "openxml"
	case FormatBinary:
		return "binary"
	case FormatLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// Package part paths
const (
	partWorkbookXML = "xl/workbook.xml"
	partWorkbookBin = "xl/workbook.bin"
	partVBAProject  = "xl/vbaProject.bin"
)

var (
	oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	zipSignature = []byte{'P', 'K', 0x03, 0x04}
)

// ErrNoVBAProject indicates the workbook carries no VBA project.
var ErrNoVBAProject = errors.New("no vba project")

// DetectFormat sniffs the container format of the file at path.
func DetectFormat(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, err
	}
	defer f.Close()

	head := make([]byte, len(oleSignature))
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return FormatUnknown, err
	}
	head = head[:n]

	switch {
	case bytes.HasPrefix(head, oleSignature):
		return FormatLegacy, nil
	case bytes.HasPrefix(head, zipSignature):
		return detectPackageFormat(path)
	default:
		return FormatUnknown, nil
	}
}

// detectPackageFormat tells XML and binary OOXML packages apart.
func detectPackageFormat(path string) (Format, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return FormatUnknown, err
	}
	defer r.Close()

	for _, f := range r.File {
		switch f.Name {
		case partWorkbookXML:
			return FormatOpenXML, nil
		case partWorkbookBin:
			return FormatBinary, nil
		}
	}
	return FormatUnknown, nil
}

// ReadPackageVBAProject returns the raw vbaProject.bin part of an OOXML package.
func ReadPackageVBAProject(path string) ([]byte, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := readZipFile(&r.Reader, partVBAProject)
	if err != nil {
		if errors.Is(err, errPartNotFound) {
			return nil, ErrNoVBAProject
		}
		return nil, err
	}
	return data, nil
}

var errPartNotFound = errors.New("part not found")

// readZipFile reads a file from the zip archive.
func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("open %s: %w", name, err)
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("%s: %w", name, errPartNotFound)
}
