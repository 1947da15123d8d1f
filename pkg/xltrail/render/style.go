package render

import (
	"github.com/muesli/termenv"

	"github.com/xltrail/xltrail-go/pkg/xltrail/models"
)

// sgr builds a Select Graphic Rendition escape sequence.
func sgr(seq string) string {
	return termenv.CSI + seq + "m"
}

var (
	styleBold  = sgr(termenv.BoldSeq)
	styleReset = sgr(termenv.ResetSeq)
)

// style is how lines of one tag are displayed.
type style struct {
	prefix     string
	suppressed bool
}

// styles maps every diff line tag to its display style.
var styles = map[models.Tag]style{
	models.TagContext:    {prefix: styleReset},
	models.TagRemoved:    {prefix: sgr(termenv.ANSIRed.Sequence(false))},
	models.TagAdded:      {prefix: sgr(termenv.ANSIGreen.Sequence(false))},
	models.TagHunkHeader: {prefix: sgr(termenv.ANSICyan.Sequence(false))},
	models.TagFileMarker: {suppressed: true},
}
