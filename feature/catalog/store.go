package catalog

import (
	"context"
	"sync"
	"time"

	"catalog-manager/core/datastore"
	"catalog-manager/core/logger"
	corereconcile "catalog-manager/core/reconcile"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/overrides"
	"catalog-manager/feature/catalog/reconcile"

	"go.uber.org/zap"
)

const snapshotKey = "catalog"

// Store holds the committed catalog database.
//
// The database is read from the data store on first use and re-read when the
// cache TTL expires. Once an import is committed the committed snapshot is
// pinned until Reload, so unexported changes are never dropped by a refresh.
// Concurrent commits are not serialized against each other: the last commit
// wins.
type Store struct {
	data   datastore.Store
	ov     *overrides.Overrides
	logger *zap.Logger
	cache  *corereconcile.Cache[*models.Database]

	mu     sync.RWMutex
	pinned *models.Database
}

// NewStore creates a snapshot store over data.
func NewStore(data datastore.Store, ov *overrides.Overrides, ttl time.Duration, log *zap.Logger) *Store {
	return &Store{
		data:   data,
		ov:     ov,
		logger: logger.OrNop(log),
		cache:  corereconcile.NewCache[*models.Database](ttl),
	}
}

// Database returns the current snapshot. Callers must not modify it.
func (s *Store) Database(ctx context.Context) (*models.Database, error) {
	s.mu.RLock()
	pinned := s.pinned
	s.mu.RUnlock()
	if pinned != nil {
		return pinned, nil
	}
	return s.cache.GetOrBuild(ctx, snapshotKey, s.load)
}

// Commit replaces the current snapshot.
func (s *Store) Commit(db *models.Database) {
	s.mu.Lock()
	s.pinned = db
	s.mu.Unlock()
	s.cache.Set(snapshotKey, db)
	s.logger.Info("Committed catalog snapshot", zap.Int("items", len(db.Items)))
}

// Reload drops the current snapshot so the next read comes from the data
// store. Uncommitted exports are lost.
func (s *Store) Reload() {
	s.mu.Lock()
	s.pinned = nil
	s.mu.Unlock()
	s.cache.Invalidate(snapshotKey)
}

// Overrides returns the overrides the store builds with.
func (s *Store) Overrides() *overrides.Overrides {
	return s.ov
}

func (s *Store) load(ctx context.Context) (*models.Database, error) {
	in, err := ReadBuildInput(ctx, s.data, s.logger)
	if err != nil {
		return nil, err
	}
	return reconcile.Build(in, s.ov, s.logger)
}
