package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "reconcile.alignment.resolved", Subject("reconcile", AlignmentResolved{}))
	assert.Equal(t, "syncrun.completed", Subject("", SyncRunCompleted{}))
	assert.Equal(t, "x.alignment.ignored", Subject("x", AlignmentIgnored{}))
}

func TestLogPublisher(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := NewLogPublisher(zap.New(core), "reconcile")

	err := p.Publish(context.Background(), SyncRunCompleted{
		RunID:        "run-1",
		Status:       "SUCCESS",
		ItemsScanned: 10,
		EndedAt:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	p.Close()

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	fields := entry.ContextMap()
	assert.Equal(t, "reconcile.syncrun.completed", fields["subject"])

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(fields["payload"].(string)), &payload))
	assert.Equal(t, "run-1", payload["run_id"])
	assert.EqualValues(t, 10, payload["items_scanned"])
}

func TestNewWithoutBroker(t *testing.T) {
	p, err := New(Config{SubjectPrefix: "reconcile"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &LogPublisher{}, p)
}

func TestNewNATSPublisherUnreachable(t *testing.T) {
	_, err := NewNATSPublisher("nats://127.0.0.1:1", "reconcile")
	assert.Error(t, err)
}

type failingPublisher struct{ closed bool }

func (f *failingPublisher) Publish(context.Context, Event) error { return assert.AnError }
func (f *failingPublisher) Close()                               { f.closed = true }

func TestFanout(t *testing.T) {
	rec := &Recorder{}
	bad := &failingPublisher{}
	f := Fanout{bad, rec}

	err := f.Publish(context.Background(), AlignmentIgnored{AlignmentID: "a1"})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Len(t, rec.Named(NameAlignmentIgnored), 1, "later publishers still receive the event")

	f.Close()
	assert.True(t, bad.closed)
}
