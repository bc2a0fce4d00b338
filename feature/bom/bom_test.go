package bom

import (
	"context"
	"sync"
	"testing"

	"bom-reconciler/core/apperr"
	"bom-reconciler/core/bomdiff"
	"bom-reconciler/core/database"
	"bom-reconciler/core/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	repo := NewRepository(db)
	require.NoError(t, repo.Migrate())
	return repo
}

func baselineRequest() CreateRequest {
	return CreateRequest{BOMRef: "BOM-1", Name: "rev A", Items: []bomdiff.LineItem{
		{PartNumber: "CPU-001", Quantity: 1, UnitCost: 350},
		{PartNumber: "RAM-002", Quantity: 2, UnitCost: 150, Supplier: "S1"},
	}}
}

func compareRequest() CreateRequest {
	return CreateRequest{BOMRef: "BOM-1", Name: "rev B", Items: []bomdiff.LineItem{
		{PartNumber: "CPU-001", Quantity: 1, UnitCost: 360},
		{PartNumber: "RAM-002", Quantity: 2, UnitCost: 150, Supplier: "S2"},
		{PartNumber: "GPU-005", Quantity: 1, UnitCost: 450},
	}}
}

func TestRepositoryCreateAndGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, compareRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 3, created.ItemCount)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 3)
	// stored order is preserved
	assert.Equal(t, "CPU-001", got.Items[0].PartNumber)
	assert.Equal(t, "GPU-005", got.Items[2].PartNumber)
	assert.Equal(t, "S2", got.Items[1].Supplier)

	_, err = repo.Get(ctx, "missing")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestRepositoryCreateValidation(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, CreateRequest{Name: "no ref"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = repo.Create(ctx, CreateRequest{BOMRef: "BOM-1", Items: []bomdiff.LineItem{
		{PartNumber: "CPU-001"}, {PartNumber: "CPU-001"},
	}})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = repo.Create(ctx, CreateRequest{BOMRef: "BOM-1", Items: []bomdiff.LineItem{{PartNumber: " "}}})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestRepositoryListAndWhereUsed(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, baselineRequest())
	require.NoError(t, err)
	other := compareRequest()
	other.BOMRef = "BOM-2"
	_, err = repo.Create(ctx, other)
	require.NoError(t, err)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := repo.List(ctx, "BOM-1")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, 2, one[0].ItemCount)
	assert.Empty(t, one[0].Items)

	refs, err := repo.WhereUsed(ctx, "CPU-001")
	require.NoError(t, err)
	assert.Equal(t, []string{"BOM-1", "BOM-2"}, refs)

	refs, err = repo.WhereUsed(ctx, "GPU-005")
	require.NoError(t, err)
	assert.Equal(t, []string{"BOM-2"}, refs)

	refs, err = repo.WhereUsed(ctx, "NONE")
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestRepositoryConcurrentGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, baselineRequest())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*Snapshot, 8)
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := repo.Get(ctx, created.ID)
			if err == nil {
				results[i] = s
			}
		}()
	}
	wg.Wait()

	for _, s := range results {
		require.NotNil(t, s)
		assert.Len(t, s.Items, 2)
	}
	// copies are independent
	results[0].Items[0].UnitCost = 1
	assert.Equal(t, 350.0, results[1].Items[0].UnitCost)
}

func TestServiceCompare(t *testing.T) {
	repo := newTestRepository(t)
	m := metrics.New()
	svc := NewService(repo, m, zap.NewNop())
	ctx := context.Background()

	base, err := svc.CreateSnapshot(ctx, baselineRequest())
	require.NoError(t, err)
	cmp, err := svc.CreateSnapshot(ctx, compareRequest())
	require.NoError(t, err)

	result, err := svc.Compare(ctx, CompareRequest{
		SnapshotIDs: []string{base.ID, cmp.ID},
		Dimensions:  []bomdiff.Dimension{bomdiff.DimensionStructure, bomdiff.DimensionCost, bomdiff.DimensionSupplier},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.Added)
	assert.Equal(t, 0, result.Summary.Removed)
	assert.Equal(t, 2, result.Summary.Modified)
	assert.Equal(t, 3, result.Summary.Total)
	assert.Equal(t, base.ID, result.BaselineID)
	assert.Equal(t, 1, testutil.CollectAndCount(m.DiffDuration))

	t.Run("Identical Copy", func(t *testing.T) {
		copyOf, err := svc.CreateSnapshot(ctx, baselineRequest())
		require.NoError(t, err)
		result, err := svc.Compare(ctx, CompareRequest{
			SnapshotIDs: []string{base.ID, copyOf.ID},
			Dimensions:  bomdiff.AllDimensions,
		})
		require.NoError(t, err)
		assert.Zero(t, result.Summary.Total)
	})

	t.Run("Unknown Snapshot", func(t *testing.T) {
		_, err := svc.Compare(ctx, CompareRequest{
			SnapshotIDs: []string{base.ID, "missing"},
			Dimensions:  bomdiff.AllDimensions,
		})
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("Too Few Snapshots", func(t *testing.T) {
		_, err := svc.Compare(ctx, CompareRequest{SnapshotIDs: []string{base.ID}, Dimensions: bomdiff.AllDimensions})
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run("Baseline Out Of Range", func(t *testing.T) {
		_, err := svc.Compare(ctx, CompareRequest{
			SnapshotIDs:   []string{base.ID, cmp.ID},
			BaselineIndex: 2,
			Dimensions:    bomdiff.AllDimensions,
		})
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})
}
