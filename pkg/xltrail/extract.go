package xltrail

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/xltrail/xltrail-go/pkg/xltrail/models"
	"github.com/xltrail/xltrail-go/pkg/xltrail/parser"
)

// nullDevice is the path git passes for a side that does not exist.
const nullDevice = "/dev/null"

// IsAbsent reports whether path denotes a revision that does not exist.
func IsAbsent(path string) bool {
	return path == "" || path == os.DevNull || path == nullDevice
}

// Extract extracts the VBA modules and sheet contents of a workbook file.
// An absent path yields an empty workbook without touching the file system.
func Extract(path string, opts Options) (*models.Workbook, error) {
	if IsAbsent(path) {
		return models.NewWorkbook(""), nil
	}

	wb := models.NewWorkbook(filepath.Base(path))
	log := opts.logger().With(zap.String("path", path))

	format, err := parser.DetectFormat(path)
	if err != nil {
		return nil, NewDocumentReadError(path, err)
	}
	log.Debug("Detected workbook format", zap.Stringer("format", format))

	switch format {
	case parser.FormatOpenXML:
		err = extractOpenXML(path, wb, opts)
	case parser.FormatBinary:
		log.Warn("Sheet content of binary workbooks is not compared")
		err = extractPackageVBA(path, wb)
	case parser.FormatLegacy:
		err = extractLegacy(path, wb, opts, log)
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		return nil, NewDocumentReadError(path, err)
	}

	log.Debug("Extracted workbook",
		zap.Int("modules", wb.Modules.Len()),
		zap.Int("sheets", wb.Sheets.Len()))
	return wb, nil
}

func extractOpenXML(path string, wb *models.Workbook, opts Options) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if !opts.ModulesOnly {
		sheets, err := parser.ExtractSheets(f, opts.separator())
		if err != nil {
			return err
		}
		wb.Sheets = sheets
	}

	props, err := parser.ReadPackageProperties(f)
	if err != nil {
		opts.logger().Debug("No document properties", zap.String("path", path), zap.Error(err))
	}
	wb.Properties = props

	return extractPackageVBA(path, wb)
}

func extractPackageVBA(path string, wb *models.Workbook) error {
	bin, err := parser.ReadPackageVBAProject(path)
	if parser.IsNoVBAProject(err) {
		return nil
	}
	if err != nil {
		return err
	}

	modules, err := parser.ReadVBAProject(bytes.NewReader(bin))
	if err != nil && !parser.IsNoVBAProject(err) {
		return err
	}
	setModules(wb, modules)
	return nil
}

func extractLegacy(path string, wb *models.Workbook, opts Options, log *zap.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if !opts.ModulesOnly {
		sheets, err := parser.ExtractLegacySheets(f, opts.separator())
		if err != nil {
			return err
		}
		wb.Sheets = sheets
	}

	modules, err := parser.ReadVBAProject(f)
	if err != nil && !parser.IsNoVBAProject(err) {
		return err
	}
	setModules(wb, modules)

	props, err := parser.ReadOLEProperties(f)
	if err != nil {
		log.Debug("No document properties", zap.Error(err))
	}
	wb.Properties = props
	return nil
}

// setModules keys modules by their declared name. A later module with the
// same name replaces the earlier one but keeps its position.
func setModules(wb *models.Workbook, modules []models.Module) {
	for _, m := range modules {
		wb.Modules.Set(m.Name, m)
	}
}
