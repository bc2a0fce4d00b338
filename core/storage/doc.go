// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a narrow read-only interface. The
// authoritative system of record exports its part data as paged JSON objects
// into a bucket; the catalog feature pages through them during sync runs.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "authoritative")
package storage
