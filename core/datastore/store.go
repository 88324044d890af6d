package datastore

import (
	"context"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"catalog-manager/core/storage"

	"github.com/spf13/afero"
)

// Store gives access to data files by slash separated relative path.
type Store interface {
	// List returns the paths of the files directly or indirectly under dir
	// that end in ext, sorted.
	List(ctx context.Context, dir, ext string) ([]string, error)
	// Read returns the content of a file.
	Read(ctx context.Context, name string) ([]byte, error)
	// Write replaces the content of a file, creating parents as needed.
	Write(ctx context.Context, name string, data []byte) error
	// Location describes the store root for logs.
	Location() string
}

// New builds the store selected by cfg.Backend. The storage client is only
// used by the s3 backend and may be nil otherwise.
func New(cfg Config, client storage.Client, bucket string) (Store, error) {
	switch cfg.Backend {
	case BackendFS, "":
		return NewFSStore(afero.NewOsFs(), cfg.Dir), nil
	case BackendS3:
		if client == nil {
			return nil, fmt.Errorf("s3 data backend requires a storage client")
		}
		return NewBucketStore(client, bucket, cfg.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown data backend %q", cfg.Backend)
	}
}

// FSStore keeps data files in a directory of an afero filesystem.
type FSStore struct {
	fs   afero.Fs
	root string
}

// NewFSStore creates a store rooted at root on fs.
func NewFSStore(fs afero.Fs, root string) *FSStore {
	return &FSStore{fs: fs, root: path.Clean(toSlash(root))}
}

func (s *FSStore) List(ctx context.Context, dir, ext string) ([]string, error) {
	base := path.Join(s.root, dir)
	exists, err := afero.DirExists(s.fs, base)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", base, err)
	}
	if !exists {
		return nil, nil
	}

	var names []string
	err = afero.Walk(s.fs, base, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ext) {
			return nil
		}
		rel := strings.TrimPrefix(toSlash(p), toSlash(s.root)+"/")
		names = append(names, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", base, err)
	}
	sort.Strings(names)
	return names, nil
}

func (s *FSStore) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, path.Join(s.root, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func (s *FSStore) Write(ctx context.Context, name string, data []byte) error {
	full := path.Join(s.root, name)
	if err := s.fs.MkdirAll(path.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", name, err)
	}
	if err := afero.WriteFile(s.fs, full, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func (s *FSStore) Location() string {
	return s.root
}

// BucketStore keeps data files as objects under a key prefix.
type BucketStore struct {
	client storage.Client
	bucket string
	prefix string
}

// NewBucketStore creates a store over bucket, rooted at prefix.
func NewBucketStore(client storage.Client, bucket, prefix string) *BucketStore {
	return &BucketStore{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

func (s *BucketStore) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

func (s *BucketStore) List(ctx context.Context, dir, ext string) ([]string, error) {
	keys, err := storage.ListKeys(ctx, s.client, s.bucket, s.key(strings.Trim(dir, "/"))+"/")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, k := range keys {
		if !strings.HasSuffix(k, ext) {
			continue
		}
		if s.prefix != "" {
			k = strings.TrimPrefix(k, s.prefix+"/")
		}
		names = append(names, k)
	}
	return names, nil
}

func (s *BucketStore) Read(ctx context.Context, name string) ([]byte, error) {
	return storage.ReadObject(ctx, s.client, s.bucket, s.key(name))
}

func (s *BucketStore) Write(ctx context.Context, name string, data []byte) error {
	return storage.WriteObject(ctx, s.client, s.bucket, s.key(name), data, contentTypeFor(name))
}

func (s *BucketStore) Location() string {
	return "s3://" + path.Join(s.bucket, s.prefix)
}

func contentTypeFor(name string) string {
	switch path.Ext(name) {
	case ".json":
		return "application/json"
	case ".yaml", ".yml":
		return "application/yaml"
	case ".csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
