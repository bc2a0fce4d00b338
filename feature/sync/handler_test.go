package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bom-reconciler/core/alignment"
	"bom-reconciler/core/apperr"
	"bom-reconciler/core/database"
	"bom-reconciler/core/server"
	"bom-reconciler/core/syncrun"
	"bom-reconciler/core/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// gatedSource serves one page once gate is closed.
type gatedSource struct {
	gate    chan struct{}
	reached chan struct{}
}

func (s *gatedSource) FetchBatch(ctx context.Context, _ syncrun.BatchRequest) (*syncrun.Batch, error) {
	select {
	case s.reached <- struct{}{}:
	default:
	}
	<-s.gate
	return &syncrun.Batch{Items: []syncrun.Item{
		{PartID: "CPU-001", Fields: map[string]*string{"unit_price": utils.Ptr("360")}},
	}}, nil
}

type staticCatalog struct{}

func (staticCatalog) GetLocalValue(_ context.Context, partID, field string) (*string, error) {
	if partID != "CPU-001" {
		return nil, apperr.NotFound("part %s not found", partID)
	}
	return utils.Ptr("350"), nil
}

func (staticCatalog) WhereUsed(context.Context, string) ([]string, error) {
	return []string{"BOM-1"}, nil
}

type fixture struct {
	app     *fiber.App
	orch    *syncrun.Orchestrator
	handler *Handler
	source  *gatedSource
}

func setupTestApp(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, &alignment.Record{}, &syncrun.Run{}))

	src := &gatedSource{gate: make(chan struct{}), reached: make(chan struct{}, 1)}
	orch, err := syncrun.New(context.Background(), syncrun.Config{
		BatchSize:           10,
		BatchTimeoutSeconds: 30,
		MaxRetries:          1,
		BackoffBaseMs:       1,
	}, syncrun.Deps{
		Source:     src,
		Catalog:    staticCatalog{},
		Alignments: alignment.NewStore(db),
		Runs:       syncrun.NewRunStore(db),
		Logger:     zap.NewNop(),
	})
	require.NoError(t, err)

	f := NewFeature(orch, zap.NewNop())
	assert.Equal(t, "sync", f.Name())
	assert.True(t, f.IsEnabled())

	app := server.NewApp(server.Config{}, zap.NewNop())
	require.NoError(t, f.Load(app))
	return &fixture{app: app, orch: orch, handler: f.handler, source: src}
}

func (f *fixture) do(t *testing.T, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func (f *fixture) wait(t *testing.T, id string) *syncrun.Run {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	run, err := f.orch.Wait(ctx, id)
	require.NoError(t, err)
	return run
}

func TestStartStatusAndList(t *testing.T) {
	f := setupTestApp(t)

	resp, raw := f.do(t, "POST", "/sync/runs", `{"mode":"FULL","triggered_by":"tester"}`)
	require.Equal(t, 202, resp.StatusCode)
	var started syncrun.Run
	require.NoError(t, json.Unmarshal(raw, &started))
	assert.Equal(t, syncrun.StatusRunning, started.Status)
	<-f.source.reached

	t.Run("Busy", func(t *testing.T) {
		resp, raw := f.do(t, "POST", "/sync/runs", `{"mode":"FULL"}`)
		assert.Equal(t, 409, resp.StatusCode)

		var body apperr.Body
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, apperr.KindInvalidState, body.Error.Kind)
	})

	t.Run("Live Status", func(t *testing.T) {
		resp, raw := f.do(t, "GET", "/sync/runs/"+started.ID, "")
		require.Equal(t, 200, resp.StatusCode)
		var run syncrun.Run
		require.NoError(t, json.Unmarshal(raw, &run))
		assert.Equal(t, syncrun.StatusRunning, run.Status)
	})

	close(f.source.gate)
	done := f.wait(t, started.ID)
	assert.Equal(t, syncrun.StatusSuccess, done.Status)
	assert.Equal(t, 1, done.DifferencesFound)

	t.Run("Finished Status", func(t *testing.T) {
		resp, raw := f.do(t, "GET", "/sync/runs/"+started.ID, "")
		require.Equal(t, 200, resp.StatusCode)
		var run syncrun.Run
		require.NoError(t, json.Unmarshal(raw, &run))
		assert.Equal(t, syncrun.StatusSuccess, run.Status)
		assert.Equal(t, 1, run.ItemsScanned)
	})

	t.Run("List", func(t *testing.T) {
		resp, raw := f.do(t, "GET", "/sync/runs?limit=5", "")
		require.Equal(t, 200, resp.StatusCode)
		var list RunList
		require.NoError(t, json.Unmarshal(raw, &list))
		assert.Equal(t, int64(1), list.Total)
		require.Len(t, list.Items, 1)
		assert.Equal(t, "tester", list.Items[0].TriggeredBy)
	})

	t.Run("Cancel Finished Run", func(t *testing.T) {
		resp, _ := f.do(t, "POST", "/sync/runs/"+started.ID+"/cancel", "")
		assert.Equal(t, 409, resp.StatusCode)
	})

	t.Run("Unknown Run", func(t *testing.T) {
		resp, _ := f.do(t, "GET", "/sync/runs/nope", "")
		assert.Equal(t, 404, resp.StatusCode)
	})
}

func TestStartValidation(t *testing.T) {
	f := setupTestApp(t)

	for name, body := range map[string]string{
		"Unknown Mode":         `{"mode":"WEEKLY"}`,
		"Manual Without Parts": `{"mode":"MANUAL"}`,
	} {
		resp, _ := f.do(t, "POST", "/sync/runs", body)
		assert.Equal(t, 400, resp.StatusCode, name)
	}
	assert.False(t, f.orch.Running())
}

func TestCancel(t *testing.T) {
	f := setupTestApp(t)
	f.handler.cancelWait = 10 * time.Millisecond

	resp, raw := f.do(t, "POST", "/sync/runs", `{"mode":"FULL"}`)
	require.Equal(t, 202, resp.StatusCode)
	var started syncrun.Run
	require.NoError(t, json.Unmarshal(raw, &started))
	<-f.source.reached

	// the source call is in flight, so the run is still RUNNING when the wait expires
	resp, raw = f.do(t, "POST", "/sync/runs/"+started.ID+"/cancel", "")
	require.Equal(t, 200, resp.StatusCode)
	var pending syncrun.Run
	require.NoError(t, json.Unmarshal(raw, &pending))
	assert.Equal(t, syncrun.StatusRunning, pending.Status)

	close(f.source.gate)
	done := f.wait(t, started.ID)
	assert.Equal(t, syncrun.StatusCancelled, done.Status)
	assert.Zero(t, done.ItemsScanned)
}
