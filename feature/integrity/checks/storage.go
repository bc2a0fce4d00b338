package checks

import (
	"context"
	"fmt"
	"strings"

	"bom-reconciler/core/storage"

	"github.com/minio/minio-go/v7"
)

// StorageReport is the result of a storage check.
type StorageReport struct {
	Bucket  string   `json:"bucket"`
	Ready   bool     `json:"ready"`
	Missing []string `json:"missing"`
}

// CheckStorage returns the required prefixes that hold no object.
func CheckStorage(ctx context.Context, client storage.Client, bucket string, prefixes []string) (*StorageReport, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	report := &StorageReport{Bucket: bucket, Missing: []string{}}
	for _, prefix := range prefixes {
		folderPath := prefix
		if !strings.HasSuffix(folderPath, "/") {
			folderPath += "/"
		}

		opts := minio.ListObjectsOptions{
			Prefix:    folderPath,
			Recursive: true,
			MaxKeys:   1,
		}

		found, err := anyObject(ctx, client, bucket, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", folderPath, err)
		}

		if !found {
			report.Missing = append(report.Missing, prefix)
		}
	}

	report.Ready = len(report.Missing) == 0
	return report, nil
}

// anyObject stops the listing after the first entry.
func anyObject(ctx context.Context, client storage.Client, bucket string, opts minio.ListObjectsOptions) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return false, obj.Err
		}
		return true, nil
	}
	return false, nil
}
