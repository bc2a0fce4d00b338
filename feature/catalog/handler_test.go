package catalog

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"bom-reconciler/core/server"
	"bom-reconciler/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandler(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "bucket").Return(true, nil)
	client.On("ListObjects", mock.Anything, "bucket", mock.Anything).Return(listing(
		minio.ObjectInfo{Key: prefix + "0001.json"},
	))

	f := NewFeature(newTestCatalog(t), NewBucketSource(client, "bucket", prefix), zap.NewNop())
	assert.Equal(t, "catalog", f.Name())
	assert.True(t, f.IsEnabled())

	app := server.NewApp(server.Config{}, zap.NewNop())
	require.NoError(t, f.Load(app))

	t.Run("Get Part", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/catalog/parts/CPU-001", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body PartResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "350", *body.Fields["unit_price"])
		assert.Equal(t, []string{"BOM-1"}, body.UsedIn)
	})

	t.Run("Unknown Part", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/catalog/parts/NOPE", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("Source Status", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/catalog/source", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body SourceStatus
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Ready)
		assert.Equal(t, 1, body.Pages)
	})
}
