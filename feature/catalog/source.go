package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"bom-reconciler/core/apperr"
	"bom-reconciler/core/storage"
	"bom-reconciler/core/syncrun"

	"github.com/minio/minio-go/v7"
)

// BucketSource reads authoritative export pages from object storage.
type BucketSource struct {
	client storage.Client
	bucket string
	prefix string
}

// NewBucketSource creates a source over the pages under prefix.
func NewBucketSource(client storage.Client, bucket, prefix string) *BucketSource {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &BucketSource{client: client, bucket: bucket, prefix: prefix}
}

// FetchBatch reads the first eligible page after req.Cursor.
// A page that cannot be read or decoded is reported as a *syncrun.PageError
// so the run can continue with the following page.
func (s *BucketSource) FetchBatch(ctx context.Context, req syncrun.BatchRequest) (*syncrun.Batch, error) {
	current, next, err := s.nextPages(ctx, req)
	if err != nil {
		return nil, err
	}
	if current == "" {
		return &syncrun.Batch{}, nil
	}

	var nextCursor *string
	if next {
		key := current
		nextCursor = &key
	}

	page, err := s.readPage(ctx, current)
	if err != nil {
		return nil, &syncrun.PageError{Err: err, NextCursor: nextCursor}
	}

	items := make([]syncrun.Item, 0, len(page.Items))
	for _, it := range page.Items {
		items = append(items, syncrun.Item{PartID: it.PartID, Fields: it.Fields, BOMRefs: it.BOMRefs})
	}
	return &syncrun.Batch{Items: items, NextCursor: nextCursor}, nil
}

// nextPages returns the key of the first eligible page after the cursor and
// whether another eligible page follows it.
func (s *BucketSource) nextPages(ctx context.Context, req syncrun.BatchRequest) (string, bool, error) {
	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := minio.ListObjectsOptions{Prefix: s.prefix, Recursive: true}
	if req.Cursor != nil {
		opts.StartAfter = *req.Cursor
	}

	var current string
	for obj := range s.client.ListObjects(listCtx, s.bucket, opts) {
		if obj.Err != nil {
			return "", false, apperr.Upstream(obj.Err, "failed to list authoritative pages")
		}
		if !strings.HasSuffix(obj.Key, ".json") {
			continue
		}
		if req.Cursor != nil && obj.Key <= *req.Cursor {
			continue
		}
		if req.Since != nil && obj.LastModified.Before(*req.Since) {
			continue
		}
		if current == "" {
			current = obj.Key
			continue
		}
		return current, true, nil
	}
	if err := ctx.Err(); err != nil {
		return "", false, apperr.Upstream(err, "listing authoritative pages interrupted")
	}
	return current, false, nil
}

func (s *BucketSource) readPage(ctx context.Context, key string) (*Page, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, apperr.Upstream(err, "failed to open page %s", key)
	}
	defer obj.Close()

	var page Page
	if err := json.NewDecoder(obj).Decode(&page); err != nil {
		return nil, apperr.Upstream(err, "failed to decode page %s", key)
	}
	for i, it := range page.Items {
		if it.PartID == "" {
			return nil, apperr.Upstream(fmt.Errorf("item %d has no part_id", i), "malformed page %s", key)
		}
	}
	return &page, nil
}

// Ready reports whether the bucket exists and holds at least one page.
func (s *BucketSource) Ready(ctx context.Context) (bool, int, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return false, 0, apperr.Upstream(err, "failed to check bucket %s", s.bucket)
	}
	if !exists {
		return false, 0, nil
	}

	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	pages := 0
	for obj := range s.client.ListObjects(listCtx, s.bucket, minio.ListObjectsOptions{Prefix: s.prefix, Recursive: true}) {
		if obj.Err != nil {
			return false, 0, apperr.Upstream(obj.Err, "failed to list %s", s.prefix)
		}
		if strings.HasSuffix(obj.Key, ".json") {
			pages++
		}
	}
	return pages > 0, pages, nil
}
