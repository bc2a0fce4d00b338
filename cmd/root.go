package cmd

import (
	"fmt"
	"os"

	"bom-reconciler/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "bom-reconciler",
	Short: "BOM Reconciler Service",
	Long: `BOM Reconciler keeps local part data aligned with the authoritative catalog.
It detects and classifies field differences, tracks their resolution and
compares BOM snapshots across structure, quantity, cost, compliance and supplier.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with ISO8601 timestamps reads better on a terminal
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
