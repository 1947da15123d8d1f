package parser

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

const (
	nameDeclaration = "Attribute VB_Name = "
	attributePrefix = "Attribute"
	attributeMarker = "VB_"
)

// decodeSource decodes raw module bytes as ISO-8859-1. Every byte maps to a
// rune, so decoding never fails on 8-bit content.
func decodeSource(raw []byte) string {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}

// SplitSource splits decoded module source into its declared name and its
// content without attribute lines. Lines are split on "\r\n" when the source
// contains it and on "\n" otherwise. The content is joined with "\n".
func SplitSource(src string) (name, content string) {
	var lines []string
	if strings.Contains(src, "\r\n") {
		lines = strings.Split(src, "\r\n")
	} else {
		lines = strings.Split(src, "\n")
	}

	name = strings.Trim(strings.ReplaceAll(lines[0], nameDeclaration, ""), `"`)

	kept := make([]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.HasPrefix(line, attributePrefix) && strings.Contains(line, attributeMarker) {
			continue
		}
		kept = append(kept, line)
	}
	return name, strings.Join(kept, "\n")
}
