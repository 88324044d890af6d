// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so the catalog data files (items, catalogs,
// source images and exports) can live in an S3 compatible bucket instead of a
// local directory.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Helpers
//
//   - EnsureBucket: creates the bucket on first use.
//   - ReadObject / WriteObject: whole-object reads and writes.
//   - ListKeys: recursive, sorted listing under a prefix.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	data, err := storage.ReadObject(ctx, client, "catalog", "items/items.json")
package storage
