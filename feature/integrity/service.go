package integrity

import (
	"context"

	"catalog-manager/core/datastore"
	"catalog-manager/feature/catalog"
	"catalog-manager/feature/catalog/validator"
	"catalog-manager/feature/collection"
	"catalog-manager/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CatalogValidator runs the catalog consistency checks.
type CatalogValidator interface {
	Validate(ctx context.Context) (validator.Report, error)
}

// Service handles integrity checks.
type Service struct {
	data    datastore.Store
	db      *gorm.DB
	catalog CatalogValidator
	logger  *zap.Logger
}

// NewService creates a new integrity service. db and catalog may be nil, in
// which case the matching checks fail.
func NewService(data datastore.Store, db *gorm.DB, catalog CatalogValidator, logger *zap.Logger) *Service {
	return &Service{
		data:    data,
		db:      db,
		catalog: catalog,
		logger:  logger,
	}
}

// CheckStructure returns the data folders holding no data file.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.data, catalog.DataDirs)
}

// FixStructure seeds the missing folders with empty data files.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.data, catalog.DataDirs, s.logger, missing)
}

// CheckDataFiles returns the data files that cannot be loaded.
func (s *Service) CheckDataFiles(ctx context.Context) ([]checks.FileIssue, error) {
	return checks.CheckDataFiles(ctx, s.data, catalog.DataDirs, catalog.CheckShape)
}

// CheckSchema verifies the collection tables.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, collection.CollectedItem{})
}

// CheckCatalog runs the catalog consistency checks.
func (s *Service) CheckCatalog(ctx context.Context) (validator.Report, error) {
	if s.catalog == nil {
		return validator.Report{}, errNoCatalog
	}
	return s.catalog.Validate(ctx)
}
