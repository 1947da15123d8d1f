// Package main provides the git external diff driver for Excel workbooks.
//
// git invokes it as
//
//	git-xltrail-diff path old-file old-hex old-mode new-file new-hex new-mode
//
// and pages whatever it writes to stdout.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/xltrail/xltrail-go/pkg/xltrail"
	"github.com/xltrail/xltrail-go/pkg/xltrail/config"
	"github.com/xltrail/xltrail-go/pkg/xltrail/logging"
	"github.com/xltrail/xltrail-go/pkg/xltrail/render"
)

// driverArgs is the arity of git's external diff contract.
const driverArgs = 7

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "git-xltrail-diff path old-file old-hex old-mode new-file new-hex new-mode",
		Short: "git diff driver for Excel workbooks",
		Long: `git-xltrail-diff compares the VBA modules and sheet contents of two
revisions of a workbook and prints a colored unified diff.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE:               run,
	}
}

func run(cmd *cobra.Command, args []string) error {
	if len(args) != driverArgs {
		argErr := &xltrail.ArgumentCountError{Got: len(args), Want: driverArgs}
		fmt.Fprintln(cmd.OutOrStdout(), argErr.Error())
		return nil
	}

	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	logger := logging.OrNop(cfg.LogLevel)
	defer logger.Sync()

	// The old file is revision B, the new file revision A.
	name, oldFile, newFile := args[0], args[1], args[4]
	opts := xltrail.Options{
		Separator: cfg.Separator,
		Context:   cfg.Context,
		Logger:    logger,
	}
	return report(cmd.OutOrStdout(), name, absPath(newFile), absPath(oldFile), opts, cfg.Color)
}

// report compares both revisions and renders the result to w.
func report(w io.Writer, name, pathA, pathB string, opts xltrail.Options, color bool) error {
	records, err := xltrail.Compare(name, pathA, pathB, opts)
	if err != nil {
		return err
	}
	return render.New(w, render.WithColor(color)).Render(name, records)
}

func absPath(path string) string {
	if xltrail.IsAbsent(path) {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
