package xltrail

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat indicates the input file is neither an OOXML package
// nor an OLE2 workbook.
var ErrUnsupportedFormat = errors.New("unsupported workbook format")

// DocumentReadError represents a workbook that could not be opened or parsed.
type DocumentReadError struct {
	Path string
	Err  error
}

func (e *DocumentReadError) Error() string {
	return fmt.Sprintf("cannot read workbook %q: %v", e.Path, e.Err)
}

func (e *DocumentReadError) Unwrap() error {
	return e.Err
}

// NewDocumentReadError creates a new DocumentReadError.
func NewDocumentReadError(path string, err error) *DocumentReadError {
	return &DocumentReadError{
		Path: path,
		Err:  err,
	}
}

// ArgumentCountError represents a diff driver invocation with the wrong
// number of positional arguments.
type ArgumentCountError struct {
	Got  int
	Want int
}

func (e *ArgumentCountError) Error() string {
	return "Unexpected number of arguments"
}
