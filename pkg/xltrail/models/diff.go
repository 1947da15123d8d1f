package models

// Tag classifies a rendered diff line.
type Tag int

const (
	// TagContext is an unchanged line shown around a change.
	TagContext Tag = iota
	// TagRemoved is a line only present in the old revision.
	TagRemoved
	// TagAdded is a line only present in the new revision.
	TagAdded
	// TagHunkHeader is an "@@ -a,b +c,d @@" line.
	TagHunkHeader
	// TagFileMarker is a raw "---"/"+++" line emitted by the line differ.
	TagFileMarker
)

// String returns the string representation of a tag.
func (t Tag) String() string {
	switch t {
	case TagContext:
		return "context"
	case TagRemoved:
		return "removed"
	case TagAdded:
		return "added"
	case TagHunkHeader:
		return "hunk-header"
	case TagFileMarker:
		return "file-marker"
	default:
		return "unknown"
	}
}

// Prefix returns the unified diff prefix for content lines.
func (t Tag) Prefix() string {
	switch t {
	case TagContext:
		return " "
	case TagRemoved:
		return "-"
	case TagAdded:
		return "+"
	default:
		return ""
	}
}

// DiffLine is one tagged line of a line diff.
type DiffLine struct {
	Tag  Tag
	Text string
}

// String returns the line as it appears in a unified diff.
func (l DiffLine) String() string {
	return l.Tag.Prefix() + l.Text
}

// DiffRecord is the diff of one artifact between two revisions.
type DiffRecord struct {
	// HeaderA is the "--- " label line.
	HeaderA string
	// HeaderB is the "+++ " label line.
	HeaderB string
	// Lines is the line diff body.
	Lines []DiffLine
}

// Counts returns the number of added and removed lines.
func (r DiffRecord) Counts() (added, removed int) {
	for _, l := range r.Lines {
		switch l.Tag {
		case TagAdded:
			added++
		case TagRemoved:
			removed++
		}
	}
	return added, removed
}
