// Package linediff computes unified line diffs grouped into hunks.
//
// Alignment uses the SequenceMatcher from go-difflib: the longest matching
// block is found first (earliest on ties) and the halves on either side are
// matched recursively, so identical inputs always yield identical hunks.
package linediff

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/xltrail/xltrail-go/pkg/xltrail/models"
)

// DefaultContext is the conventional unified diff context window.
const DefaultContext = 3

// Diff compares oldLines and newLines. The result starts with the two
// file-marker lines and continues with one header plus body per hunk.
// Equal inputs yield no lines.
func Diff(oldLines, newLines []string, context int) []models.DiffLine {
	if context < 0 {
		context = DefaultContext
	}

	groups := difflib.NewMatcher(oldLines, newLines).GetGroupedOpCodes(context)
	if len(groups) == 0 {
		return nil
	}

	lines := []models.DiffLine{
		{Tag: models.TagFileMarker, Text: "--- "},
		{Tag: models.TagFileMarker, Text: "+++ "},
	}
	for _, group := range groups {
		lines = append(lines, Hunk(oldLines, newLines, group)...)
	}
	return lines
}

// Hunk renders one group of opcodes as a header and its body lines.
// Within a replace block all removals precede all additions.
func Hunk(oldLines, newLines []string, group []difflib.OpCode) []models.DiffLine {
	first, last := group[0], group[len(group)-1]
	lines := []models.DiffLine{{
		Tag:  models.TagHunkHeader,
		Text: fmt.Sprintf("@@ -%s +%s @@", formatRange(first.I1, last.I2), formatRange(first.J1, last.J2)),
	}}

	for _, c := range group {
		if c.Tag == 'e' {
			for _, line := range oldLines[c.I1:c.I2] {
				lines = append(lines, models.DiffLine{Tag: models.TagContext, Text: line})
			}
			continue
		}
		if c.Tag == 'r' || c.Tag == 'd' {
			for _, line := range oldLines[c.I1:c.I2] {
				lines = append(lines, models.DiffLine{Tag: models.TagRemoved, Text: line})
			}
		}
		if c.Tag == 'r' || c.Tag == 'i' {
			for _, line := range newLines[c.J1:c.J2] {
				lines = append(lines, models.DiffLine{Tag: models.TagAdded, Text: line})
			}
		}
	}
	return lines
}

// formatRange converts a half-open [start, stop) range to the unified diff
// "start,length" form. Length 1 is written as "start" alone; an empty range
// points at the line before it.
func formatRange(start, stop int) string {
	beginning := start + 1
	length := stop - start
	if length == 1 {
		return fmt.Sprintf("%d", beginning)
	}
	if length == 0 {
		beginning--
	}
	return fmt.Sprintf("%d,%d", beginning, length)
}
