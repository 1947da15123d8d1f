package parser

import (
	"fmt"
	"io"

	"github.com/richardlehane/mscfb"
	"github.com/richardlehane/msoleps"
	"github.com/xltrail/xltrail-go/pkg/xltrail/models"
	"github.com/xuri/excelize/v2"
)

// ReadPackageProperties returns the core properties of an OOXML workbook.
func ReadPackageProperties(f *excelize.File) ([]models.Property, error) {
	props, err := f.GetDocProps()
	if err != nil {
		return nil, err
	}

	var result []models.Property
	add := func(name, value string) {
		if value != "" {
			result = append(result, models.Property{Name: name, Value: value})
		}
	}
	add("Title", props.Title)
	add("Subject", props.Subject)
	add("Creator", props.Creator)
	add("LastModifiedBy", props.LastModifiedBy)
	add("Modified", props.Modified)
	return result, nil
}

// ReadOLEProperties returns the property sets (SummaryInformation and
// DocumentSummaryInformation) of an OLE2 compound file.
func ReadOLEProperties(ra io.ReaderAt) ([]models.Property, error) {
	doc, err := mscfb.New(ra)
	if err != nil {
		return nil, fmt.Errorf("open compound file: %w", err)
	}

	props := msoleps.New()
	var result []models.Property
	for entry, err := doc.Next(); err != io.EOF; entry, err = doc.Next() {
		if err != nil {
			return nil, fmt.Errorf("read compound file: %w", err)
		}
		if !msoleps.IsMSOLEPS(entry.Initial) {
			continue
		}
		if err := props.Reset(entry); err != nil {
			return nil, fmt.Errorf("property set %s: %w", entry.Name, err)
		}
		for _, p := range props.Property {
			result = append(result, models.Property{Name: p.Name, Value: p.String()})
		}
	}
	return result, nil
}
