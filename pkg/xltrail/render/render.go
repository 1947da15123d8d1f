// Package render writes diff records as a colorized unified diff report.
package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/xltrail/xltrail-go/pkg/xltrail/models"
)

// Renderer writes reports to an output stream.
type Renderer struct {
	w     io.Writer
	color bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithColor turns ANSI styling on or off. It is on by default because the
// hosting pager expects colored output whatever the stream is.
func WithColor(enabled bool) Option {
	return func(r *Renderer) {
		r.color = enabled
	}
}

// New creates a Renderer writing to w.
func New(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{w: w, color: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes the report header followed by every record.
func (r *Renderer) Render(name string, records []models.DiffRecord) error {
	if err := r.Header(name); err != nil {
		return err
	}
	for _, rec := range records {
		if err := r.Record(rec); err != nil {
			return err
		}
	}
	return nil
}

// Header writes the top line naming both sides of the workbook.
func (r *Renderer) Header(name string) error {
	_, err := io.WriteString(r.w, r.bold("diff --xltrail a/"+name+" b/"+name)+"\n")
	return err
}

// Record writes one artifact: its two label lines, its body and a reset line.
func (r *Renderer) Record(rec models.DiffRecord) error {
	bw := bufio.NewWriter(r.w)
	bw.WriteString(r.bold(rec.HeaderA) + "\n")
	bw.WriteString(r.bold(rec.HeaderB) + "\n")
	bw.WriteString(strings.Join(r.body(rec.Lines), "\n") + "\n")
	bw.WriteString(r.reset() + "\n")
	return bw.Flush()
}

// body styles the visible lines of a record.
func (r *Renderer) body(lines []models.DiffLine) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		st := styles[l.Tag]
		if st.suppressed {
			continue
		}
		text := strings.Trim(l.String(), "\n")
		if r.color {
			text = st.prefix + text
		}
		out = append(out, text)
	}
	return out
}

func (r *Renderer) bold(s string) string {
	if !r.color {
		return s
	}
	return styleBold + s
}

func (r *Renderer) reset() string {
	if !r.color {
		return ""
	}
	return styleReset
}
