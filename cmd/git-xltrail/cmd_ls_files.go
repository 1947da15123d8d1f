package main

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xltrail/xltrail-go/pkg/xltrail"
	"github.com/xltrail/xltrail-go/pkg/xltrail/models"
)

// listing styles
var (
	styleFile   = termenv.CSI + termenv.ANSIWhite.Sequence(false) + ";" + termenv.BoldSeq + "m"
	styleModule = termenv.CSI + termenv.ANSIWhite.Sequence(false) + ";22m"
	styleCode   = termenv.CSI + termenv.ANSIYellow.Sequence(false) + ";22m"
	styleDim    = termenv.CSI + termenv.FaintSeq + "m"
)

// lockFilePrefix marks the owner files Excel keeps next to open workbooks.
const lockFilePrefix = "~$"

func newLsFilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls-files",
		Short: "List workbooks and their VBA modules",
		Long: `List workbooks below the working directory with their VBA modules.
-v also prints the code, -vv adds the content digest, the module stream
and the document properties.`,
		Args: cobra.NoArgs,
		RunE: runLsFiles,
	}

	cmd.Flags().StringP("pattern", "x", "", "File name pattern (default: from config, *.xls*)")
	cmd.Flags().CountP("verbose", "v", "Show VBA code (-vv adds digests and properties)")
	cmd.Flags().String("dir", ".", "Directory to search")
	cmd.Flags().Bool("no-color", false, "Disable ANSI colors")

	return cmd
}

func runLsFiles(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	pattern, _ := cmd.Flags().GetString("pattern")
	if pattern == "" {
		pattern = cfg.Pattern
	}
	verbosity, _ := cmd.Flags().GetCount("verbose")
	dir, _ := cmd.Flags().GetString("dir")
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		cfg.Color = false
	}

	files, err := findWorkbooks(dir, pattern)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	p := &printer{w: out, color: cfg.Color}
	opts := xltrail.Options{ModulesOnly: true, Logger: logger}
	for _, path := range files {
		wb, err := xltrail.Extract(path, opts)
		if err != nil {
			logger.Warn("Skipping workbook", zap.String("path", path), zap.Error(err))
			continue
		}
		p.workbook(displayPath(dir, path), wb, verbosity)
	}
	return nil
}

// findWorkbooks walks dir for files whose base name matches pattern.
// The .git directory and Excel lock files are skipped.
func findWorkbooks(dir, pattern string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), lockFilePrefix) {
			return nil
		}
		if ok, _ := filepath.Match(pattern, d.Name()); ok {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// displayPath renders path relative to dir as "./sub/book.xlsm".
func displayPath(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return "./" + filepath.ToSlash(rel)
}

type printer struct {
	w     io.Writer
	color bool
}

func (p *printer) line(style, text string) {
	if p.color {
		text = style + text
	}
	fmt.Fprintln(p.w, text)
}

func (p *printer) workbook(path string, wb *models.Workbook, verbosity int) {
	p.line(styleFile, path)
	if verbosity >= 2 {
		for _, prop := range wb.Properties {
			p.line(styleDim, "    "+prop.Name+": "+prop.Value)
		}
	}
	for _, key := range wb.Modules.Keys() {
		m, _ := wb.Modules.Get(key)
		p.line(styleModule, "    VBA/"+string(m.Kind)+"/"+m.Name)
		if verbosity >= 2 {
			p.line(styleDim, "    ["+m.Digest()[:7]+"] stream "+m.Stream)
		}
		if verbosity >= 1 {
			for _, l := range m.Lines() {
				p.line(styleCode, "        "+l)
			}
		}
	}
	fmt.Fprintln(p.w)
}
