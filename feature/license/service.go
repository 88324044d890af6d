package license

import (
	"context"

	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/collection"

	"go.uber.org/zap"
)

// CatalogProvider supplies the committed catalog snapshot.
type CatalogProvider interface {
	Database(ctx context.Context) (*models.Database, error)
}

// CollectionProvider supplies the player's collection.
type CollectionProvider interface {
	Snapshot(ctx context.Context) (map[int]collection.CollectedItem, error)
}

// Service computes license requirements.
type Service struct {
	catalog    CatalogProvider
	collection CollectionProvider
	logger     *zap.Logger
}

// NewService creates a new license service.
func NewService(catalog CatalogProvider, col CollectionProvider, logger *zap.Logger) *Service {
	return &Service{catalog: catalog, collection: col, logger: logger}
}

// Compute runs the calculator against the current catalog and collection.
func (s *Service) Compute(ctx context.Context, f Filter) (Result, error) {
	db, err := s.catalog.Database(ctx)
	if err != nil {
		return Result{}, err
	}
	col, err := s.collection.Snapshot(ctx)
	if err != nil {
		return Result{}, err
	}
	res := Compute(db, col, f)
	s.logger.Debug("Computed license requirements",
		zap.Int("items", len(res.Items)),
		zap.Int("materials", len(res.Materials)))
	return res, nil
}
