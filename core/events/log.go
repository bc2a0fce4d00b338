package events

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// LogPublisher writes events to the logger. Used when no broker is configured.
type LogPublisher struct {
	logger *zap.Logger
	prefix string
}

// NewLogPublisher creates a publisher logging at info level.
func NewLogPublisher(logger *zap.Logger, prefix string) *LogPublisher {
	return &LogPublisher{logger: logger, prefix: prefix}
}

// Publish logs the event payload.
func (p *LogPublisher) Publish(_ context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	p.logger.Info("Domain event",
		zap.String("subject", Subject(p.prefix, e)),
		zap.ByteString("payload", data),
	)
	return nil
}

// Close is a no-op.
func (p *LogPublisher) Close() {}

// New returns the publisher selected by cfg.
func New(cfg Config, logger *zap.Logger) (Publisher, error) {
	if cfg.NatsURL == "" {
		return NewLogPublisher(logger, cfg.SubjectPrefix), nil
	}
	return NewNATSPublisher(cfg.NatsURL, cfg.SubjectPrefix)
}
