// Package xltrail extracts comparable artifacts from workbook revisions and
// turns them into per-artifact line diffs.
package xltrail

import (
	"go.uber.org/zap"

	"github.com/xltrail/xltrail-go/pkg/xltrail/linediff"
	"github.com/xltrail/xltrail-go/pkg/xltrail/parser"
)

// DefaultContext is the number of unchanged lines shown around a change.
const DefaultContext = linediff.DefaultContext

// Options configures extraction and diffing.
type Options struct {
	// Separator joins cell values into row signatures.
	// If empty, parser.DefaultSeparator is used.
	Separator string
	// Context is the number of context lines per hunk.
	// If zero or negative, DefaultContext is used.
	Context int
	// ModulesOnly skips sheet content, for listings that only need macros.
	ModulesOnly bool
	// Logger receives skipped-content warnings and per-record debug counts.
	// If nil, nothing is logged.
	Logger *zap.Logger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Separator: parser.DefaultSeparator,
		Context:   DefaultContext,
	}
}

func (o Options) separator() string {
	if o.Separator == "" {
		return parser.DefaultSeparator
	}
	return o.Separator
}

func (o Options) context() int {
	if o.Context <= 0 {
		return DefaultContext
	}
	return o.Context
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
