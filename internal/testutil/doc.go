// Package testutil builds workbook fixtures for tests: minimal OLE2 compound
// files, MS-OVBA containers, VBA projects and macro-enabled workbooks.
package testutil
