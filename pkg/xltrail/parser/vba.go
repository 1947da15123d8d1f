package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/richardlehane/mscfb"
	"github.com/xltrail/xltrail-go/pkg/xltrail/models"
)

const (
	vbaStorage    = "VBA"
	dirStream     = "dir"
	projectStream = "PROJECT"
)

// vbaStreams holds the streams of a VBA project storage.
type vbaStreams struct {
	// modules maps lower-cased stream name to raw stream bytes.
	modules map[string][]byte
	project []byte
}

// ReadVBAProject reads the modules of the VBA project held in the OLE2
// compound file ra, in dir stream order. In vbaProject.bin the project sits
// at the root; in a legacy workbook it sits under _VBA_PROJECT_CUR.
func ReadVBAProject(ra io.ReaderAt) ([]models.Module, error) {
	doc, err := mscfb.New(ra)
	if err != nil {
		return nil, fmt.Errorf("open compound file: %w", err)
	}

	streams, err := collectVBAStreams(doc)
	if err != nil {
		return nil, err
	}
	return decodeVBAProject(streams)
}

// collectVBAStreams reads every stream of the VBA storage plus the PROJECT
// stream next to it.
func collectVBAStreams(doc *mscfb.Reader) (*vbaStreams, error) {
	streams := &vbaStreams{modules: make(map[string][]byte)}
	for entry, err := doc.Next(); err != io.EOF; entry, err = doc.Next() {
		if err != nil {
			return nil, fmt.Errorf("read compound file: %w", err)
		}

		parent := ""
		if len(entry.Path) > 0 {
			parent = entry.Path[len(entry.Path)-1]
		}

		switch {
		case strings.EqualFold(parent, vbaStorage):
			data, err := io.ReadAll(entry)
			if err != nil {
				return nil, fmt.Errorf("read stream %s: %w", entry.Name, err)
			}
			streams.modules[strings.ToLower(entry.Name)] = data
		case entry.Name == projectStream:
			data, err := io.ReadAll(entry)
			if err != nil {
				return nil, fmt.Errorf("read stream %s: %w", entry.Name, err)
			}
			streams.project = data
		}
	}
	return streams, nil
}

// decodeVBAProject decompresses the dir stream and every module it lists.
func decodeVBAProject(streams *vbaStreams) ([]models.Module, error) {
	rawDir, ok := streams.modules[dirStream]
	if !ok {
		return nil, ErrNoVBAProject
	}
	dirData, err := Decompress(rawDir)
	if err != nil {
		return nil, fmt.Errorf("dir stream: %w", err)
	}
	info, err := parseDirStream(dirData)
	if err != nil {
		return nil, err
	}
	kinds := parseProjectStream(streams.project, info.CodePage)

	modules := make([]models.Module, 0, len(info.Modules))
	for _, m := range info.Modules {
		data, ok := streams.modules[strings.ToLower(m.Stream)]
		if !ok {
			return nil, fmt.Errorf("%w: module stream %q missing", ErrCorruptContainer, m.Stream)
		}
		if int64(m.TextOffset) > int64(len(data)) {
			return nil, fmt.Errorf("%w: module %q text offset %d beyond stream", ErrCorruptContainer, m.Name, m.TextOffset)
		}
		raw, err := Decompress(data[m.TextOffset:])
		if err != nil {
			return nil, fmt.Errorf("module %q: %w", m.Name, err)
		}

		name, content := SplitSource(decodeSource(raw))
		modules = append(modules, models.Module{
			Name:    name,
			Kind:    moduleKind(kinds, m),
			Stream:  m.Stream,
			Content: content,
		})
	}
	return modules, nil
}

func moduleKind(kinds map[string]models.ModuleKind, m dirModule) models.ModuleKind {
	if kind, ok := kinds[m.Name]; ok {
		return kind
	}
	if m.Procedural {
		return models.KindModule
	}
	return models.KindClass
}

// IsNoVBAProject reports whether err means the workbook has no macros.
func IsNoVBAProject(err error) bool {
	return errors.Is(err, ErrNoVBAProject)
}
