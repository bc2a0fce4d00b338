package syncrun

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"bom-reconciler/core/alignment"
	"bom-reconciler/core/apperr"
	"bom-reconciler/core/events"
	"bom-reconciler/core/metrics"
	"bom-reconciler/core/reconcile"
	"bom-reconciler/core/telemetry"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ErrBusy is returned by Start while another run is RUNNING.
var ErrBusy = apperr.InvalidState("a sync run is already running")

// UnassignedBOM stands in for the BOM reference of parts no BOM uses yet.
const UnassignedBOM = "unassigned"

const (
	stateIdle int32 = iota
	stateRunning
)

// Deps are the collaborators of an Orchestrator. Publisher and Metrics are optional.
type Deps struct {
	Source     Source
	Catalog    LocalCatalog
	Classifier *reconcile.Classifier
	Alignments *alignment.Store
	Runs       *RunStore
	Publisher  events.Publisher
	Metrics    *metrics.Metrics
	Logger     *zap.Logger
}

// StartRequest describes a run to start.
type StartRequest struct {
	Mode        Mode    `json:"mode"`
	Filters     Filters `json:"filters"`
	TriggeredBy string  `json:"triggered_by"`
}

// Orchestrator drives reconciliation passes. At most one run is active per process.
type Orchestrator struct {
	cfg  Config
	deps Deps
	now  func() time.Time

	state atomic.Int32

	mu     sync.Mutex
	active *activeRun
}

type activeRun struct {
	id        string
	cancelled atomic.Bool
	done      chan struct{}
}

// New creates an orchestrator and fails any run a previous process left RUNNING.
func New(ctx context.Context, cfg Config, deps Deps) (*Orchestrator, error) {
	if deps.Source == nil || deps.Catalog == nil || deps.Alignments == nil || deps.Runs == nil {
		return nil, errors.New("syncrun: source, catalog, alignment store and run store are required")
	}
	if deps.Classifier == nil {
		deps.Classifier = reconcile.NewClassifier(nil)
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	o := &Orchestrator{
		cfg:  cfg,
		deps: deps,
		now:  func() time.Time { return time.Now().UTC() },
	}

	recovered, err := deps.Runs.RecoverStale(ctx, o.now())
	if err != nil {
		return nil, err
	}
	if recovered > 0 {
		deps.Logger.Warn("Recovered interrupted sync runs", zap.Int64("count", recovered))
	}
	return o, nil
}

// Running reports whether a run is active.
func (o *Orchestrator) Running() bool {
	return o.state.Load() == stateRunning
}

// Start persists a RUNNING run and scans the source in the background.
// It returns ErrBusy while another run is active.
func (o *Orchestrator) Start(ctx context.Context, req StartRequest) (*Run, error) {
	if !req.Mode.Valid() {
		return nil, apperr.Validation("unknown sync mode %q", req.Mode)
	}
	if req.Mode == ModeManual && len(req.Filters.PartIDs) == 0 {
		return nil, apperr.Validation("manual sync requires part_ids")
	}
	if req.TriggeredBy == "" {
		req.TriggeredBy = "api"
	}

	if !o.state.CompareAndSwap(stateIdle, stateRunning) {
		return nil, ErrBusy
	}

	run, err := o.begin(ctx, req)
	if err != nil {
		o.state.Store(stateIdle)
		return nil, err
	}

	ar := &activeRun{id: run.ID, done: make(chan struct{})}
	o.mu.Lock()
	o.active = ar
	o.mu.Unlock()

	snapshot := *run
	go o.execute(context.WithoutCancel(ctx), ar, run, req.Filters)
	return &snapshot, nil
}

func (o *Orchestrator) begin(ctx context.Context, req StartRequest) (*Run, error) {
	run := &Run{
		ID:          uuid.NewString(),
		Mode:        req.Mode,
		Status:      StatusRunning,
		StartedAt:   o.now(),
		TriggeredBy: req.TriggeredBy,
		PartIDs:     req.Filters.PartIDs,
	}

	if req.Mode == ModeIncremental {
		last, err := o.deps.Runs.LastSuccessful(ctx)
		if err != nil {
			return nil, err
		}
		if last != nil {
			since := last.StartedAt
			run.Since = &since
		}
	}

	if err := o.deps.Runs.Create(ctx, run); err != nil {
		return nil, err
	}

	o.deps.Logger.Info("Sync run started",
		zap.String("run_id", run.ID),
		zap.String("mode", string(run.Mode)),
		zap.String("triggered_by", run.TriggeredBy),
	)
	return run, nil
}

// Status returns the persisted state of a run, including live counters while RUNNING.
func (o *Orchestrator) Status(ctx context.Context, id string) (*Run, error) {
	return o.deps.Runs.Get(ctx, id)
}

// List returns runs newest first.
func (o *Orchestrator) List(ctx context.Context, limit, offset int) ([]Run, int64, error) {
	return o.deps.Runs.List(ctx, limit, offset)
}

// Cancel asks the active run to stop at its next checkpoint and waits until
// it has stopped or ctx is done. Only a RUNNING run of this process can be cancelled.
func (o *Orchestrator) Cancel(ctx context.Context, id string) (*Run, error) {
	run, err := o.deps.Runs.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	ar := o.active
	o.mu.Unlock()

	if run.Status != StatusRunning || ar == nil || ar.id != id {
		return nil, apperr.InvalidState("sync run %s is not running", id)
	}

	if ar.cancelled.CompareAndSwap(false, true) {
		o.deps.Logger.Info("Sync run cancellation requested", zap.String("run_id", id))
	}

	select {
	case <-ar.done:
	case <-ctx.Done():
	}
	return o.deps.Runs.Get(context.WithoutCancel(ctx), id)
}

// Wait blocks until run id is no longer active or ctx is done, then returns its state.
func (o *Orchestrator) Wait(ctx context.Context, id string) (*Run, error) {
	o.mu.Lock()
	ar := o.active
	o.mu.Unlock()

	if ar != nil && ar.id == id {
		select {
		case <-ar.done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return o.deps.Runs.Get(ctx, id)
}

// execute scans the source page by page. Cancellation is observed between
// pages and between items, never during a source call.
func (o *Orchestrator) execute(ctx context.Context, ar *activeRun, run *Run, filters Filters) {
	defer func() {
		o.mu.Lock()
		if o.active == ar {
			o.active = nil
		}
		o.mu.Unlock()
		o.state.Store(stateIdle)
		close(ar.done)
	}()

	ctx, span := telemetry.Tracer().Start(ctx, "syncrun.execute", trace.WithAttributes(
		attribute.String("sync.run_id", run.ID),
		attribute.String("sync.mode", string(run.Mode)),
	))
	defer span.End()

	log := o.deps.Logger.With(zap.String("run_id", run.ID))

	var include map[string]struct{}
	if run.Mode == ModeManual {
		include = make(map[string]struct{}, len(filters.PartIDs))
		for _, id := range filters.PartIDs {
			include[id] = struct{}{}
		}
	}

	var (
		c       Counters
		cursor  *string
		status  Status
		reason  string
		limit   = o.cfg.batchSize()
		batchNo int
	)

scan:
	for {
		if ar.cancelled.Load() {
			status = StatusCancelled
			break
		}
		batchNo++

		batch, err := o.fetch(ctx, BatchRequest{Cursor: cursor, Since: run.Since, Limit: limit}, batchNo)
		if err != nil {
			var pe *PageError
			size := limit
			if errors.As(err, &pe) && pe.Size > 0 {
				size = pe.Size
			}
			c.Scanned += size
			c.Failed += size
			log.Warn("Batch failed after retries", zap.Int("batch", batchNo), zap.Int("items", size), zap.Error(err))

			if pe == nil {
				// the source cannot tell where the next page starts
				reason = fmt.Sprintf("batch %d: %v", batchNo, err)
				o.persistProgress(ctx, run.ID, c, log)
				break scan
			}
			cursor = pe.NextCursor
		} else {
			for _, item := range batch.Items {
				if ar.cancelled.Load() {
					status = StatusCancelled
					break scan
				}
				if include != nil {
					if _, ok := include[item.PartID]; !ok {
						continue
					}
				}
				c.Scanned++
				found, err := o.reconcileItem(ctx, run.ID, item)
				if err != nil {
					c.Failed++
					log.Warn("Item reconciliation failed", zap.String("part_id", item.PartID), zap.Error(err))
					continue
				}
				c.Synced++
				c.Differences += found
			}
			cursor = batch.NextCursor
		}

		o.persistProgress(ctx, run.ID, c, log)

		if o.breakerTripped(c) {
			status = StatusFailed
			reason = fmt.Sprintf("failure rate %d/%d exceeded threshold %.2f", c.Failed, c.Scanned, o.cfg.FailureRateThreshold)
			log.Error("Circuit breaker tripped", zap.String("reason", reason))
			break
		}
		if cursor == nil {
			break
		}
	}

	if status == "" {
		status = DeriveStatus(c)
	}
	if status == StatusFailed {
		span.SetStatus(codes.Error, reason)
	}
	span.SetAttributes(
		attribute.Int("sync.items_scanned", c.Scanned),
		attribute.Int("sync.items_failed", c.Failed),
		attribute.String("sync.status", string(status)),
	)

	o.finalize(ctx, run, status, c, reason, log)
}

func (o *Orchestrator) breakerTripped(c Counters) bool {
	if o.cfg.FailureRateThreshold <= 0 || c.Scanned == 0 || c.Scanned < o.cfg.MinSample {
		return false
	}
	return float64(c.Failed)/float64(c.Scanned) > o.cfg.FailureRateThreshold
}

// fetch reads one page, retrying with exponential backoff. Every attempt has its own timeout.
func (o *Orchestrator) fetch(ctx context.Context, req BatchRequest, batchNo int) (*Batch, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "syncrun.fetch_batch", trace.WithAttributes(
		attribute.Int("sync.batch", batchNo),
	))
	defer span.End()

	backoff := retry.WithMaxRetries(o.cfg.maxRetries(), retry.NewExponential(o.cfg.BackoffBase()))

	var (
		batch    *Batch
		attempts int
	)
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		if attempts > 1 && o.deps.Metrics != nil {
			o.deps.Metrics.SyncBatchRetries.Inc()
		}

		attemptCtx, cancel := context.WithTimeout(ctx, o.cfg.BatchTimeout())
		defer cancel()

		b, err := o.deps.Source.FetchBatch(attemptCtx, req)
		if err != nil {
			if apperr.IsKind(err, apperr.KindValidation) {
				return err
			}
			return retry.RetryableError(err)
		}
		if b == nil {
			b = &Batch{}
		}
		batch = b
		return nil
	})
	span.SetAttributes(attribute.Int("sync.attempts", attempts))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return nil, err
	}
	return batch, nil
}

// reconcileItem compares every tracked field the source reports for item and
// records the differences. It returns the number of differences recorded.
func (o *Orchestrator) reconcileItem(ctx context.Context, runID string, item Item) (int, error) {
	if item.PartID == "" {
		return 0, apperr.Validation("authoritative item without part id")
	}

	var (
		found   int
		boms    []string
		bomsSet bool
	)
	for _, field := range o.deps.Classifier.Rules().Fields() {
		authValue, reported := item.Fields[field]
		if !reported {
			continue
		}

		local, err := o.deps.Catalog.GetLocalValue(ctx, item.PartID, field)
		if apperr.IsKind(err, apperr.KindNotFound) {
			// not in the local catalog, nothing to align
			return found, nil
		}
		if err != nil {
			return found, err
		}

		res, err := o.deps.Classifier.Classify(field, local, authValue)
		if err != nil {
			return found, err
		}
		if !res.Differs {
			continue
		}

		if !bomsSet {
			boms, err = o.affectedBOMs(ctx, item)
			if err != nil {
				return found, err
			}
			bomsSet = true
		}

		id := runID
		_, _, err = o.deps.Alignments.Record(ctx, alignment.Detection{
			PartID:             item.PartID,
			Field:              field,
			LocalValue:         local,
			AuthoritativeValue: authValue,
			Classification:     res,
			AffectedBOMs:       boms,
			SyncRunID:          &id,
		})
		if err != nil {
			return found, err
		}
		found++
		if o.deps.Metrics != nil {
			o.deps.Metrics.DifferencesFound.WithLabelValues(string(res.Severity)).Inc()
		}
	}
	return found, nil
}

func (o *Orchestrator) affectedBOMs(ctx context.Context, item Item) ([]string, error) {
	local, err := o.deps.Catalog.WhereUsed(ctx, item.PartID)
	if err != nil {
		return nil, err
	}
	boms := append(append([]string{}, item.BOMRefs...), local...)
	if len(boms) == 0 {
		boms = []string{UnassignedBOM}
	}
	return boms, nil
}

func (o *Orchestrator) persistProgress(ctx context.Context, id string, c Counters, log *zap.Logger) {
	if err := o.deps.Runs.UpdateProgress(ctx, id, c); err != nil {
		log.Warn("Failed to persist sync progress", zap.Error(err))
	}
}

func (o *Orchestrator) finalize(ctx context.Context, run *Run, status Status, c Counters, reason string, log *zap.Logger) {
	ended := o.now()
	if ended.Before(run.StartedAt) {
		ended = run.StartedAt
	}

	if err := o.deps.Runs.Finalize(ctx, run.ID, status, c, ended, reason); err != nil {
		log.Error("Failed to finalize sync run", zap.Error(err))
		return
	}

	if m := o.deps.Metrics; m != nil {
		m.SyncRuns.WithLabelValues(string(run.Mode), string(status)).Inc()
		m.SyncItems.WithLabelValues("scanned").Add(float64(c.Scanned))
		m.SyncItems.WithLabelValues("synced").Add(float64(c.Synced))
		m.SyncItems.WithLabelValues("failed").Add(float64(c.Failed))
	}

	if o.deps.Publisher != nil {
		err := o.deps.Publisher.Publish(ctx, events.SyncRunCompleted{
			RunID:            run.ID,
			Mode:             string(run.Mode),
			Status:           string(status),
			ItemsScanned:     c.Scanned,
			ItemsSynced:      c.Synced,
			ItemsFailed:      c.Failed,
			DifferencesFound: c.Differences,
			StartedAt:        run.StartedAt,
			EndedAt:          ended,
		})
		if err != nil {
			log.Warn("Failed to publish sync completion", zap.Error(err))
		}
	}

	log.Info("Sync run finished",
		zap.String("status", string(status)),
		zap.Int("scanned", c.Scanned),
		zap.Int("synced", c.Synced),
		zap.Int("failed", c.Failed),
		zap.Int("differences", c.Differences),
	)
}
