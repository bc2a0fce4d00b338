package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"bom-reconciler/core/syncrun"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncMode    string
	syncPartIDs []string
	syncLimit   int
)

// syncCmd is the parent command for sync run operations.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run and inspect reconciliation passes",
}

// syncRunCmd runs one pass in the foreground and waits for it to finish.
var syncRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a sync pass and wait for it",
	Long: `Scans the authoritative export and records every field difference.

Interrupting the command cancels the run at its next checkpoint; records
produced before that stay valid.

Examples:
  # Full pass
  sync run

  # Only changes since the last successful run
  sync run --mode incremental

  # Selected parts
  sync run --mode manual --part CPU-001 --part RAM-002`,
	RunE: runSync,
}

// syncListCmd lists recent runs.
var syncListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent sync runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		rt, err := newRuntime(ctx)
		if err != nil {
			return err
		}
		defer rt.close(ctx)

		runs, total, err := rt.orch.List(ctx, syncLimit, 0)
		if err != nil {
			return err
		}
		rt.log.Info("Sync runs", zap.Int64("total", total))
		for _, run := range runs {
			logRun(rt.log, &run)
		}
		return nil
	},
}

// syncStatusCmd shows one run.
var syncStatusCmd = &cobra.Command{
	Use:   "status <run-id>",
	Short: "Show the state of a sync run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		rt, err := newRuntime(ctx)
		if err != nil {
			return err
		}
		defer rt.close(ctx)

		run, err := rt.orch.Status(ctx, args[0])
		if err != nil {
			return err
		}
		logRun(rt.log, run)
		return nil
	},
}

func init() {
	syncRunCmd.Flags().StringVar(&syncMode, "mode", "full", "Sync mode: full, incremental or manual")
	syncRunCmd.Flags().StringSliceVar(&syncPartIDs, "part", nil, "Part ID to include (manual mode, repeatable)")
	syncListCmd.Flags().IntVar(&syncLimit, "limit", 20, "Number of runs to show")

	syncCmd.AddCommand(syncRunCmd, syncListCmd, syncStatusCmd)
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close(ctx)

	run, err := rt.orch.Start(ctx, syncrun.StartRequest{
		Mode:        syncrun.Mode(strings.ToUpper(syncMode)),
		Filters:     syncrun.Filters{PartIDs: syncPartIDs},
		TriggeredBy: "cli",
	})
	if err != nil {
		return fmt.Errorf("failed to start sync run: %w", err)
	}
	rt.log.Info("Sync run started", zap.String("run_id", run.ID), zap.String("mode", string(run.Mode)))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	go func() {
		if _, ok := <-sig; ok {
			rt.log.Warn("Interrupt received, cancelling sync run")
			_, _ = rt.orch.Cancel(ctx, run.ID)
		}
	}()

	final, err := rt.orch.Wait(ctx, run.ID)
	if err != nil {
		return err
	}
	logRun(rt.log, final)

	if final.Status == syncrun.StatusFailed {
		return fmt.Errorf("sync run %s failed: %s", final.ID, final.Error)
	}
	return nil
}

func logRun(l *zap.Logger, run *syncrun.Run) {
	fields := []zap.Field{
		zap.String("run_id", run.ID),
		zap.String("mode", string(run.Mode)),
		zap.String("status", string(run.Status)),
		zap.Time("started_at", run.StartedAt),
		zap.Int("items_scanned", run.ItemsScanned),
		zap.Int("items_synced", run.ItemsSynced),
		zap.Int("items_failed", run.ItemsFailed),
		zap.Int("differences_found", run.DifferencesFound),
	}
	if run.EndedAt != nil {
		fields = append(fields, zap.Duration("duration", run.EndedAt.Sub(run.StartedAt)))
	}
	if run.Error != "" {
		fields = append(fields, zap.String("error", run.Error))
	}
	l.Info("Sync run", fields...)
}
