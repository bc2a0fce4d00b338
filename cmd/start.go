package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bom-reconciler/core/loader"
	"bom-reconciler/core/middleware/auth"
	"bom-reconciler/core/middleware/rayid"
	"bom-reconciler/core/server"

	"bom-reconciler/feature/alignment"
	"bom-reconciler/feature/bom"
	"bom-reconciler/feature/catalog"
	"bom-reconciler/feature/integrity"
	syncfeature "bom-reconciler/feature/sync"

	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "bom-reconciler/docs/swagger"
)

// @title BOM Reconciler API
// @version 1.0
// @description Detects, classifies and resolves differences between local and authoritative part data, and compares BOM snapshots.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

const shutdownTimeout = 30 * time.Second

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the reconciler server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		rt, err := newRuntime(ctx)
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		logg := rt.log
		zap.ReplaceGlobals(logg)

		app := server.NewApp(rt.cfg.Server, logg)

		mgr := loader.NewManager()
		mgr.Register(alignment.NewFeature(rt.alignments))
		mgr.Register(syncfeature.NewFeature(rt.orch, logg))
		mgr.Register(bom.NewFeature(rt.boms, rt.metrics, logg))
		mgr.Register(catalog.NewFeature(rt.catalog, rt.source, logg))
		mgr.Register(integrity.NewFeature(integrity.NewService(
			rt.storage,
			rt.cfg.Storage.Bucket,
			[]string{rt.cfg.Sync.AuthoritativePrefix},
			rt.db,
			persistedModels(),
			logg,
		)))

		// RayID first so every log line carries it
		app.Use(rayid.New())
		app.Use(server.RequestLogger(logg))

		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{
			ApiKey: rt.cfg.Server.ApiKey,
			Skip:   []string{"/metrics"},
		}))
		rt.metrics.Register(app)

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		go func() {
			logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
			if err := app.Listen(":" + rt.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logg.Warn("Server shutdown incomplete", zap.Error(err))
		}
		rt.close(shutdownCtx)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
