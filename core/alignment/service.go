package alignment

import (
	"context"

	"bom-reconciler/core/apperr"
	"bom-reconciler/core/events"
	"bom-reconciler/core/metrics"

	"go.uber.org/zap"
)

// Action names a lifecycle operation in results and metrics.
type Action string

const (
	ActionResolve Action = "resolve"
	ActionIgnore  Action = "ignore"
)

// OutcomePublishFailed labels committed transitions whose event, including
// the local catalog write-back, was not delivered.
const OutcomePublishFailed = "publish_failed"

// ItemResult is the outcome of one id within a batch.
type ItemResult struct {
	ID     string            `json:"id"`
	OK     bool              `json:"ok"`
	Status Status            `json:"status,omitempty"`
	Error  *apperr.BodyError `json:"error,omitempty"`
	Record *Record           `json:"-"`
}

// BatchSummary counts batch outcomes.
type BatchSummary struct {
	Requested int `json:"requested"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// BatchResult is the per-id result list of a batch operation plus its summary.
type BatchResult struct {
	Action  Action       `json:"action"`
	Results []ItemResult `json:"results"`
	Summary BatchSummary `json:"summary"`
}

// Service drives the record lifecycle and notifies consumers of transitions.
type Service struct {
	store     *Store
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewService creates a lifecycle service. metrics may be nil.
func NewService(store *Store, publisher events.Publisher, m *metrics.Metrics, logger *zap.Logger) *Service {
	return &Service{store: store, publisher: publisher, metrics: m, logger: logger}
}

// Store returns the underlying store.
func (s *Service) Store() *Store {
	return s.store
}

// Logger returns the service logger.
func (s *Service) Logger() *zap.Logger {
	return s.logger
}

// Get returns a record by id.
func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	return s.store.Get(ctx, id)
}

// List returns a filtered page of records.
func (s *Service) List(ctx context.Context, f Filter, p PageRequest) (*Page, error) {
	return s.store.List(ctx, f, p)
}

// ApplyResolution aligns a PENDING record, adopting value or, when nil, the
// authoritative value. Emits AlignmentResolved.
func (s *Service) ApplyResolution(ctx context.Context, id string, value *string) (*Record, error) {
	rec, err := s.store.Resolve(ctx, id, value)
	s.observe(ActionResolve, err)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, ActionResolve, events.AlignmentResolved{
		AlignmentID:   rec.ID,
		PartID:        rec.PartID,
		Field:         rec.Field,
		ResolvedValue: rec.ResolvedValue,
		AffectedBOMs:  rec.AffectedBOMs,
		ResolvedAt:    rec.UpdatedAt,
	})
	s.logger.Info("Alignment resolved",
		zap.String("id", rec.ID),
		zap.String("part_id", rec.PartID),
		zap.String("field", rec.Field),
	)
	return rec, nil
}

// Ignore marks a PENDING record IGNORED. Emits AlignmentIgnored.
func (s *Service) Ignore(ctx context.Context, id string) (*Record, error) {
	rec, err := s.store.Ignore(ctx, id)
	s.observe(ActionIgnore, err)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, ActionIgnore, events.AlignmentIgnored{
		AlignmentID: rec.ID,
		PartID:      rec.PartID,
		Field:       rec.Field,
		IgnoredAt:   rec.UpdatedAt,
	})
	s.logger.Info("Alignment ignored", zap.String("id", rec.ID))
	return rec, nil
}

// BatchApply resolves each id independently with its authoritative value.
// Failures do not roll back earlier successes.
func (s *Service) BatchApply(ctx context.Context, ids []string) (*BatchResult, error) {
	return s.batch(ctx, ActionResolve, ids, func(id string) (*Record, error) {
		return s.ApplyResolution(ctx, id, nil)
	})
}

// BatchIgnore ignores each id independently.
func (s *Service) BatchIgnore(ctx context.Context, ids []string) (*BatchResult, error) {
	return s.batch(ctx, ActionIgnore, ids, func(id string) (*Record, error) {
		return s.Ignore(ctx, id)
	})
}

func (s *Service) batch(ctx context.Context, action Action, ids []string, fn func(string) (*Record, error)) (*BatchResult, error) {
	if len(ids) == 0 {
		return nil, apperr.Validation("ids must not be empty")
	}

	res := &BatchResult{Action: action, Results: make([]ItemResult, 0, len(ids))}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if err := ctx.Err(); err != nil {
			body := apperr.ToBody(apperr.Internal(err, "batch interrupted"))
			res.Results = append(res.Results, ItemResult{ID: id, Error: &body.Error})
			res.Summary.Failed++
			continue
		}

		rec, err := fn(id)
		if err != nil {
			body := apperr.ToBody(err)
			res.Results = append(res.Results, ItemResult{ID: id, Error: &body.Error})
			res.Summary.Failed++
			continue
		}
		res.Results = append(res.Results, ItemResult{ID: id, OK: true, Status: rec.Status, Record: rec})
		res.Summary.Succeeded++
	}
	res.Summary.Requested = len(res.Results)

	s.logger.Info("Batch alignment finished",
		zap.String("action", string(action)),
		zap.Int("succeeded", res.Summary.Succeeded),
		zap.Int("failed", res.Summary.Failed),
	)
	return res, nil
}

func (s *Service) publish(ctx context.Context, action Action, e events.Event) {
	if s.publisher == nil {
		return
	}
	// the transition is already committed; a lost notification is logged and counted, not surfaced
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.Warn("Failed to publish event", zap.String("event", e.EventName()), zap.Error(err))
		if s.metrics != nil {
			s.metrics.Resolutions.WithLabelValues(string(action), OutcomePublishFailed).Inc()
		}
	}
}

func (s *Service) observe(action Action, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = string(apperr.KindOf(err))
	}
	s.metrics.Resolutions.WithLabelValues(string(action), outcome).Inc()
}
