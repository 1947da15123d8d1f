package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xltrail/xltrail-go/pkg/xltrail/config"
	"github.com/xltrail/xltrail-go/pkg/xltrail/logging"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "git-xltrail",
		Short:         "Version control helpers for Excel workbooks",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Config file (default: $XLTRAIL_CONFIG or <user config dir>/xltrail/config.yaml)")

	cmd.AddCommand(
		newDiffCmd(),
		newLsFilesCmd(),
		newVersionCmd(),
	)

	return cmd
}

// loadSettings reads the config selected by --config and builds the logger.
func loadSettings(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logger, nil
}
