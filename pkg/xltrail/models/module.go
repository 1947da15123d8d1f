package models

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// ModuleKind is the VBA module category declared in the PROJECT stream.
type ModuleKind string

const (
	// KindModule is a standard (procedural) module.
	KindModule ModuleKind = "Module"
	// KindClass is a class module.
	KindClass ModuleKind = "Class"
	// KindDocument is a module bound to the workbook or a sheet.
	KindDocument ModuleKind = "Document"
	// KindForm is a UserForm designer module.
	KindForm ModuleKind = "Form"
)

// Module represents a single VBA module with its declarations stripped.
type Module struct {
	// Name is the value of the module's VB_Name attribute.
	Name string
	// Kind is the module category.
	Kind ModuleKind
	// Stream is the OLE stream name holding the compressed source.
	Stream string
	// Content is the module source, lines joined with "\n".
	Content string
}

// Lines returns the module source split into lines.
func (m Module) Lines() []string {
	return strings.Split(m.Content, "\n")
}

// Digest returns the hex SHA-1 of the module content.
func (m Module) Digest() string {
	sum := sha1.Sum([]byte(m.Content))
	return hex.EncodeToString(sum[:])
}
