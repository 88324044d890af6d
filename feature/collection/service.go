package collection

import (
	"context"

	"go.uber.org/zap"
)

// Service handles collection operations.
type Service struct {
	repo   *Repository
	logger *zap.Logger
}

// NewService creates a new collection service.
func NewService(repo *Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// All returns every recorded item.
func (s *Service) All(ctx context.Context) ([]CollectedItem, error) {
	return s.repo.All(ctx)
}

// Get returns the state of one item.
func (s *Service) Get(ctx context.Context, id int) (CollectedItem, error) {
	return s.repo.Get(ctx, id)
}

// Save replaces the state of one item.
func (s *Service) Save(ctx context.Context, it CollectedItem) error {
	return s.repo.Save(ctx, it)
}

// Observe marks an item as seen.
func (s *Service) Observe(ctx context.Context, id int) (CollectedItem, error) {
	return s.repo.Observe(ctx, id)
}

// MarkLicensed marks an item as licensed.
func (s *Service) MarkLicensed(ctx context.Context, id int) (CollectedItem, error) {
	return s.repo.MarkLicensed(ctx, id)
}

// Snapshot returns the whole collection keyed by id.
func (s *Service) Snapshot(ctx context.Context) (map[int]CollectedItem, error) {
	c, err := s.repo.Export(ctx)
	if err != nil {
		return nil, err
	}
	return c.Items, nil
}

// Export returns the collection in its file form.
func (s *Service) Export(ctx context.Context) (Collection, error) {
	c, err := s.repo.Export(ctx)
	if err != nil {
		return Collection{}, err
	}
	s.logger.Info("Exported collection", zap.Int("items", len(c.Items)))
	return c, nil
}

// Import replaces the collection.
func (s *Service) Import(ctx context.Context, c Collection) error {
	if err := s.repo.Import(ctx, c); err != nil {
		return err
	}
	s.logger.Info("Imported collection", zap.Int("items", len(c.Items)))
	return nil
}
