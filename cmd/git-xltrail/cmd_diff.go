package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/xltrail/xltrail-go/pkg/xltrail"
	"github.com/xltrail/xltrail-go/pkg/xltrail/render"
)

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "Compare two workbook files",
		Long: `Compare the VBA modules and sheet contents of two workbook files.
Either side may be /dev/null to show a workbook as added or removed.`,
		Args: cobra.ExactArgs(2),
		RunE: runDiff,
	}

	cmd.Flags().String("name", "", "Workbook name used in labels (default: base name of NEW)")
	cmd.Flags().Bool("no-color", false, "Disable ANSI colors")
	cmd.Flags().Int("context", 0, "Lines of context per hunk (default: from config)")

	return cmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	oldPath, newPath := args[0], args[1]

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = labelName(oldPath, newPath)
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		cfg.Color = false
	}
	if cmd.Flags().Changed("context") {
		cfg.Context, _ = cmd.Flags().GetInt("context")
	}

	opts := xltrail.Options{
		Separator: cfg.Separator,
		Context:   cfg.Context,
		Logger:    logger,
	}
	records, err := xltrail.Compare(name, newPath, oldPath, opts)
	if err != nil {
		return err
	}
	return render.New(cmd.OutOrStdout(), render.WithColor(cfg.Color)).Render(name, records)
}

// labelName picks the workbook label from whichever side exists.
func labelName(oldPath, newPath string) string {
	if !xltrail.IsAbsent(newPath) {
		return filepath.Base(newPath)
	}
	return filepath.Base(oldPath)
}
