package cmd

import (
	"context"
	"fmt"

	"bom-reconciler/core/alignment"
	"bom-reconciler/core/config"
	"bom-reconciler/core/database"
	"bom-reconciler/core/events"
	"bom-reconciler/core/logger"
	"bom-reconciler/core/metrics"
	"bom-reconciler/core/reconcile"
	"bom-reconciler/core/storage"
	"bom-reconciler/core/syncrun"
	"bom-reconciler/core/telemetry"
	"bom-reconciler/feature/bom"
	"bom-reconciler/feature/catalog"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime holds the wired components shared by every command.
type runtime struct {
	cfg        *config.Config
	log        *zap.Logger
	db         *gorm.DB
	storage    storage.Client
	publisher  events.Publisher
	metrics    *metrics.Metrics
	alignments *alignment.Service
	boms       *bom.Repository
	catalog    *catalog.LocalCatalog
	source     *catalog.BucketSource
	orch       *syncrun.Orchestrator

	shutdownTracing func(context.Context) error
}

// persistedModels lists every model the reconciler migrates and the integrity check inspects.
func persistedModels() []any {
	return []any{
		&alignment.Record{},
		&syncrun.Run{},
		&bom.SnapshotRecord{},
		&bom.LineItemRecord{},
		&catalog.Part{},
	}
}

// newRuntime loads configuration and wires storage, persistence, events and the orchestrator.
func newRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	rt := &runtime{cfg: cfg, log: logg, metrics: metrics.New()}

	rt.db, err = database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(rt.db, persistedModels()...); err != nil {
		return nil, err
	}

	rt.storage, err = storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	rt.shutdownTracing, err = telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	rules, err := reconcile.LoadRuleTable(cfg.Reconcile)
	if err != nil {
		return nil, fmt.Errorf("failed to load rule table: %w", err)
	}

	rt.boms = bom.NewRepository(rt.db)
	rt.catalog = catalog.NewLocalCatalog(rt.db, catalog.DefaultProfile(), rt.boms)
	rt.source = catalog.NewBucketSource(rt.storage, cfg.Storage.Bucket, cfg.Sync.AuthoritativePrefix)

	external, err := events.New(cfg.Events, logg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect event transport: %w", err)
	}
	// resolved values reach the local catalog before consumers hear about them
	rt.publisher = events.Fanout{catalog.NewApplier(rt.catalog, logg), external}

	alignStore := alignment.NewStore(rt.db)
	rt.alignments = alignment.NewService(alignStore, rt.publisher, rt.metrics, logg)

	rt.orch, err = syncrun.New(ctx, cfg.Sync, syncrun.Deps{
		Source:     rt.source,
		Catalog:    rt.catalog,
		Classifier: reconcile.NewClassifier(rules),
		Alignments: alignStore,
		Runs:       syncrun.NewRunStore(rt.db),
		Publisher:  rt.publisher,
		Metrics:    rt.metrics,
		Logger:     logg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create sync orchestrator: %w", err)
	}

	return rt, nil
}

// close flushes tracing, closes the event transport and syncs the logger.
func (rt *runtime) close(ctx context.Context) {
	if rt.publisher != nil {
		rt.publisher.Close()
	}
	if rt.shutdownTracing != nil {
		if err := rt.shutdownTracing(ctx); err != nil {
			rt.log.Warn("Failed to flush traces", zap.Error(err))
		}
	}
	_ = rt.log.Sync()
}
