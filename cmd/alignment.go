package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"bom-reconciler/core/alignment"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	alignSeverity string
	alignStatus   string
	alignPart     string
	alignPage     int
	alignPageSize int
	alignValue    string
	yesConfirm    bool
)

// alignmentCmd is the parent command for alignment record operations.
var alignmentCmd = &cobra.Command{
	Use:     "alignment",
	Aliases: []string{"alignments"},
	Short:   "List, resolve and ignore detected differences",
}

// alignmentListCmd lists records.
var alignmentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List alignment records, most severe first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		rt, err := newRuntime(ctx)
		if err != nil {
			return err
		}
		defer rt.close(ctx)

		page, err := rt.alignments.List(ctx,
			alignment.Filter{Severity: alignSeverity, Status: alignStatus, PartID: alignPart},
			alignment.PageRequest{Number: alignPage, Size: alignPageSize},
		)
		if err != nil {
			return err
		}

		rt.log.Info("Alignment records",
			zap.Int64("total", page.Total),
			zap.Int("page", page.Page),
			zap.Int("page_size", page.PageSize))
		for _, r := range page.Items {
			rt.log.Info("Record",
				zap.String("id", r.ID),
				zap.String("part_id", r.PartID),
				zap.String("field", r.Field),
				zap.String("severity", string(r.Severity)),
				zap.String("status", string(r.Status)),
				zap.Stringp("local", r.LocalValue),
				zap.Stringp("authoritative", r.AuthoritativeValue),
				zap.String("recommendation", r.Recommendation),
			)
		}
		return nil
	},
}

// alignmentResolveCmd resolves one or more records.
var alignmentResolveCmd = &cobra.Command{
	Use:   "resolve <id> [id...]",
	Short: "Align records with the authoritative value",
	Long: `Aligns PENDING records. With one id, --value adopts an explicit value instead
of the authoritative one. Several ids are resolved independently; failures do not
undo earlier successes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		explicit := cmd.Flags().Changed("value")
		if explicit && len(args) > 1 {
			return fmt.Errorf("--value is only accepted with a single id")
		}

		return withAlignments(args, "resolve", func(ctx context.Context, svc *alignment.Service) (*alignment.BatchResult, error) {
			if len(args) == 1 {
				var value *string
				if explicit {
					value = &alignValue
				}
				rec, err := svc.ApplyResolution(ctx, args[0], value)
				if err != nil {
					return nil, err
				}
				return single(alignment.ActionResolve, rec), nil
			}
			return svc.BatchApply(ctx, args)
		})
	},
}

// alignmentIgnoreCmd ignores one or more records.
var alignmentIgnoreCmd = &cobra.Command{
	Use:   "ignore <id> [id...]",
	Short: "Mark records as consciously diverging",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAlignments(args, "ignore", func(ctx context.Context, svc *alignment.Service) (*alignment.BatchResult, error) {
			if len(args) == 1 {
				rec, err := svc.Ignore(ctx, args[0])
				if err != nil {
					return nil, err
				}
				return single(alignment.ActionIgnore, rec), nil
			}
			return svc.BatchIgnore(ctx, args)
		})
	},
}

func init() {
	alignmentListCmd.Flags().StringVar(&alignSeverity, "severity", "", "Filter by severity (CRITICAL, HIGH, MEDIUM, LOW)")
	alignmentListCmd.Flags().StringVar(&alignStatus, "status", "", "Filter by status (PENDING, ALIGNED, IGNORED)")
	alignmentListCmd.Flags().StringVar(&alignPart, "part", "", "Filter by part ID")
	alignmentListCmd.Flags().IntVar(&alignPage, "page", 1, "Page number")
	alignmentListCmd.Flags().IntVar(&alignPageSize, "page-size", alignment.DefaultPageSize, "Page size")

	alignmentResolveCmd.Flags().StringVar(&alignValue, "value", "", "Explicit value to adopt (single id only)")
	for _, c := range []*cobra.Command{alignmentResolveCmd, alignmentIgnoreCmd} {
		c.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm batch actions (non-interactive)")
	}

	alignmentCmd.AddCommand(alignmentListCmd, alignmentResolveCmd, alignmentIgnoreCmd)
	RootCmd.AddCommand(alignmentCmd)
}

func single(action alignment.Action, rec *alignment.Record) *alignment.BatchResult {
	return &alignment.BatchResult{
		Action:  action,
		Results: []alignment.ItemResult{{ID: rec.ID, OK: true, Status: rec.Status, Record: rec}},
		Summary: alignment.BatchSummary{Requested: 1, Succeeded: 1},
	}
}

func withAlignments(ids []string, verb string, fn func(context.Context, *alignment.Service) (*alignment.BatchResult, error)) error {
	ctx := context.Background()
	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close(ctx)

	if len(ids) > 1 && !confirmBatchAction(verb, len(ids)) {
		rt.log.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	res, err := fn(ctx, rt.alignments)
	if err != nil {
		return err
	}

	for _, r := range res.Results {
		if r.OK {
			rt.log.Info("Done", zap.String("id", r.ID), zap.String("status", string(r.Status)))
			continue
		}
		rt.log.Warn("Failed", zap.String("id", r.ID), zap.String("kind", string(r.Error.Kind)), zap.String("error", r.Error.Message))
	}
	rt.log.Info("Summary",
		zap.String("action", string(res.Action)),
		zap.Int("requested", res.Summary.Requested),
		zap.Int("succeeded", res.Summary.Succeeded),
		zap.Int("failed", res.Summary.Failed))

	if res.Summary.Failed > 0 {
		return fmt.Errorf("%d of %d records could not be processed", res.Summary.Failed, res.Summary.Requested)
	}
	return nil
}

// confirmBatchAction prompts the user for confirmation or uses --yes flag.
func confirmBatchAction(verb string, n int) bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Printf("\n⚠️  Type 'yes' to %s %d records: ", verb, n)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
