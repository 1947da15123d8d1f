package parser

import (
	"strings"

	"github.com/xltrail/xltrail-go/pkg/xltrail/models"
)

// parseProjectStream maps module names to their kind using the
// ProjectModules section of the PROJECT stream.
func parseProjectStream(data []byte, cp uint16) map[string]models.ModuleKind {
	kinds := make(map[string]models.ModuleKind)
	text := decodeMBCS(data, cp)
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.HasPrefix(line, "[") {
			break
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch key {
		case "Module":
			kinds[value] = models.KindModule
		case "Class":
			kinds[value] = models.KindClass
		case "BaseClass":
			kinds[value] = models.KindForm
		case "Document":
			// Document=ThisWorkbook/&H00000000
			name, _, _ := strings.Cut(value, "/")
			kinds[name] = models.KindDocument
		}
	}
	return kinds
}
