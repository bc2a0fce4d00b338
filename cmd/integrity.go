package cmd

import (
	"context"
	"fmt"

	"bom-reconciler/core/config"
	"bom-reconciler/core/database"
	"bom-reconciler/core/logger"
	"bom-reconciler/core/storage"
	"bom-reconciler/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check database schema and authoritative storage readiness",
	Long: `Checks that every table the reconciler persists to carries its columns and that
the bucket holds an authoritative export. The database is inspected as is, nothing is migrated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, true)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false)
	},
}

// storageCmd represents the integrity storage command
var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check the bucket and authoritative export prefix",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(schemaCmd, storageCmd)
}

func runIntegrityChecks(ctx context.Context, runSchema, runStorage bool) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logg.Sync()

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("database connection required: %w", err)
	}

	svc := integrity.NewService(store, cfg.Storage.Bucket, []string{cfg.Sync.AuthoritativePrefix}, db, persistedModels(), logg)
	healthy := true

	if runSchema {
		logg.Info("Checking database schema...", zap.String("driver", cfg.Database.Driver))
		report, err := svc.CheckSchema(ctx)
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}
		if report.Matched {
			logg.Info("Database schema matches the persisted models.")
		} else {
			healthy = false
			logg.Warn("Database schema mismatches found")
			for table, tbl := range report.Tables {
				if tbl.Status != "ok" && len(tbl.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
			logg.Info("Run 'start' or 'sync run' once to migrate the schema.")
		}
	}

	if runStorage {
		logg.Info("Checking authoritative storage...", zap.String("bucket", cfg.Storage.Bucket))
		report, err := svc.CheckStorage(ctx)
		if err != nil {
			return fmt.Errorf("storage check failed: %w", err)
		}
		if report.Ready {
			logg.Info("Authoritative export is present.")
		} else {
			healthy = false
			logg.Warn("Missing prefixes detected", zap.Strings("missing", report.Missing))
		}
	}

	if !healthy {
		return fmt.Errorf("integrity checks reported problems")
	}
	return nil
}
