package alignment

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bom-reconciler/core/alignment"
	"bom-reconciler/core/apperr"
	"bom-reconciler/core/database"
	"bom-reconciler/core/events"
	"bom-reconciler/core/reconcile"
	"bom-reconciler/core/server"
	"bom-reconciler/core/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	app       *fiber.App
	store     *alignment.Store
	published *events.Recorder
}

func setupTestApp(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	store := alignment.NewStore(db)
	require.NoError(t, store.Migrate())

	rec := &events.Recorder{}
	svc := alignment.NewService(store, rec, nil, zap.NewNop())

	f := NewFeature(svc)
	assert.Equal(t, "alignment", f.Name())
	assert.True(t, f.IsEnabled())

	app := server.NewApp(server.Config{}, zap.NewNop())
	require.NoError(t, f.Load(app))
	return &fixture{app: app, store: store, published: rec}
}

func (f *fixture) seed(t *testing.T, part, field string, sev reconcile.Severity) *alignment.Record {
	t.Helper()
	rec, _, err := f.store.Record(context.Background(), alignment.Detection{
		PartID:             part,
		Field:              field,
		LocalValue:         utils.Ptr("350"),
		AuthoritativeValue: utils.Ptr("360"),
		Classification: reconcile.Classification{
			Differs:        true,
			Severity:       sev,
			DifferenceType: reconcile.DifferencePrice,
			Recommendation: reconcile.RecommendAdopt,
		},
		AffectedBOMs: []string{"BOM-1"},
	})
	require.NoError(t, err)
	return rec
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
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func errorKind(t *testing.T, raw []byte) apperr.Kind {
	t.Helper()
	var body apperr.Body
	require.NoError(t, json.Unmarshal(raw, &body))
	return body.Error.Kind
}

func TestListAndGet(t *testing.T) {
	f := setupTestApp(t)
	low := f.seed(t, "RES-010", "unit_price", reconcile.SeverityLow)
	crit := f.seed(t, "CPU-001", "unit_price", reconcile.SeverityCritical)
	f.seed(t, "CPU-001", "lead_time_days", reconcile.SeverityMedium)

	t.Run("Ordered By Severity", func(t *testing.T) {
		resp, raw := f.do(t, "GET", "/alignments", "")
		require.Equal(t, 200, resp.StatusCode)

		var page alignment.Page
		require.NoError(t, json.Unmarshal(raw, &page))
		assert.Equal(t, int64(3), page.Total)
		require.Len(t, page.Items, 3)
		assert.Equal(t, crit.ID, page.Items[0].ID)
		assert.Equal(t, low.ID, page.Items[2].ID)
	})

	t.Run("Filtered", func(t *testing.T) {
		resp, raw := f.do(t, "GET", "/alignments?severity=critical&status=PENDING", "")
		require.Equal(t, 200, resp.StatusCode)

		var page alignment.Page
		require.NoError(t, json.Unmarshal(raw, &page))
		require.Len(t, page.Items, 1)
		assert.Equal(t, crit.ID, page.Items[0].ID)
	})

	t.Run("Paged", func(t *testing.T) {
		resp, raw := f.do(t, "GET", "/alignments?page=2&page_size=2", "")
		require.Equal(t, 200, resp.StatusCode)

		var page alignment.Page
		require.NoError(t, json.Unmarshal(raw, &page))
		assert.Len(t, page.Items, 1)
		assert.Equal(t, 2, page.Page)
	})

	t.Run("Unknown Severity", func(t *testing.T) {
		resp, raw := f.do(t, "GET", "/alignments?severity=URGENT", "")
		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, apperr.KindValidation, errorKind(t, raw))
	})

	t.Run("Get", func(t *testing.T) {
		resp, raw := f.do(t, "GET", "/alignments/"+low.ID, "")
		require.Equal(t, 200, resp.StatusCode)

		var rec alignment.Record
		require.NoError(t, json.Unmarshal(raw, &rec))
		assert.Equal(t, "RES-010", rec.PartID)
	})

	t.Run("Get Unknown", func(t *testing.T) {
		resp, raw := f.do(t, "GET", "/alignments/nope", "")
		assert.Equal(t, 404, resp.StatusCode)
		assert.Equal(t, apperr.KindNotFound, errorKind(t, raw))
	})

	t.Run("Summary", func(t *testing.T) {
		resp, raw := f.do(t, "GET", "/alignments/summary", "")
		require.Equal(t, 200, resp.StatusCode)

		var sum SummaryResponse
		require.NoError(t, json.Unmarshal(raw, &sum))
		assert.Equal(t, int64(3), sum.Total)
		assert.Equal(t, int64(1), sum.Pending["CRITICAL"])
		assert.Equal(t, int64(0), sum.Pending["HIGH"])
	})
}

func TestResolve(t *testing.T) {
	f := setupTestApp(t)

	t.Run("Single With Authoritative Value", func(t *testing.T) {
		rec := f.seed(t, "CPU-001", "unit_price", reconcile.SeverityMedium)
		resp, raw := f.do(t, "POST", "/alignments/resolve", `{"id":"`+rec.ID+`"}`)
		require.Equal(t, 200, resp.StatusCode)

		var out alignment.Record
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.Equal(t, alignment.StatusAligned, out.Status)
		assert.Equal(t, "360", *out.ResolvedValue)
		assert.Len(t, f.published.Named(events.NameAlignmentResolved), 1)

		resp, raw = f.do(t, "POST", "/alignments/resolve", `{"id":"`+rec.ID+`"}`)
		assert.Equal(t, 409, resp.StatusCode)
		assert.Equal(t, apperr.KindInvalidState, errorKind(t, raw))
	})

	t.Run("Single With Explicit Value", func(t *testing.T) {
		rec := f.seed(t, "RAM-002", "unit_price", reconcile.SeverityHigh)
		resp, raw := f.do(t, "POST", "/alignments/resolve", `{"id":"`+rec.ID+`","value":"355"}`)
		require.Equal(t, 200, resp.StatusCode)

		var out alignment.Record
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.Equal(t, "355", *out.ResolvedValue)
	})

	t.Run("Batch Partial Failure", func(t *testing.T) {
		a := f.seed(t, "GPU-005", "unit_price", reconcile.SeverityLow)
		b := f.seed(t, "SSD-003", "unit_price", reconcile.SeverityLow)
		resp, raw := f.do(t, "POST", "/alignments/resolve", `{"ids":["`+a.ID+`","missing","`+b.ID+`"]}`)
		require.Equal(t, 200, resp.StatusCode)

		var out alignment.BatchResult
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.Equal(t, 3, out.Summary.Requested)
		assert.Equal(t, 2, out.Summary.Succeeded)
		assert.Equal(t, 1, out.Summary.Failed)
		require.Len(t, out.Results, 3)
		assert.False(t, out.Results[1].OK)
		assert.Equal(t, apperr.KindNotFound, out.Results[1].Error.Kind)
	})

	t.Run("Request Shape", func(t *testing.T) {
		for name, body := range map[string]string{
			"Both":           `{"id":"a","ids":["b"]}`,
			"Neither":        `{}`,
			"Empty Batch":    `{"ids":[]}`,
			"Value On Batch": `{"ids":["a"],"value":"1"}`,
			"Blank Id":       `{"id":"  "}`,
		} {
			resp, raw := f.do(t, "POST", "/alignments/resolve", body)
			assert.Equal(t, 400, resp.StatusCode, name)
			assert.Equal(t, apperr.KindValidation, errorKind(t, raw), name)
		}
	})

	t.Run("Malformed Body", func(t *testing.T) {
		resp, _ := f.do(t, "POST", "/alignments/resolve", `{"id":`)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestIgnore(t *testing.T) {
	f := setupTestApp(t)

	rec := f.seed(t, "CPU-001", "description", reconcile.SeverityLow)
	resp, raw := f.do(t, "POST", "/alignments/ignore", `{"id":"`+rec.ID+`"}`)
	require.Equal(t, 200, resp.StatusCode)

	var out alignment.Record
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, alignment.StatusIgnored, out.Status)
	assert.Nil(t, out.ResolvedValue)
	assert.Len(t, f.published.Named(events.NameAlignmentIgnored), 1)

	other := f.seed(t, "RAM-002", "description", reconcile.SeverityLow)
	resp, raw = f.do(t, "POST", "/alignments/ignore", `{"ids":["`+rec.ID+`","`+other.ID+`"]}`)
	require.Equal(t, 200, resp.StatusCode)

	var batch alignment.BatchResult
	require.NoError(t, json.Unmarshal(raw, &batch))
	assert.Equal(t, 1, batch.Summary.Succeeded)
	assert.Equal(t, 1, batch.Summary.Failed)
	assert.Equal(t, apperr.KindInvalidState, batch.Results[0].Error.Kind)
}
