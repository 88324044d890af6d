// Package datastore reads and writes the JSON data files the catalog is built
// from. Two backends share the Store interface:
//
//   - fs: a directory on an afero filesystem (the OS by default, memory in tests)
//   - s3: objects under a prefix in a MinIO/S3 bucket, through core/storage
//
// Paths are always slash separated and relative to the store root, for
// example "items/main.json".
package datastore
