package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"

	"catalog-manager/core/datastore"
	corereconcile "catalog-manager/core/reconcile"
	"catalog-manager/feature/catalog/importers"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/overrides"
	"catalog-manager/feature/catalog/reconcile"
	"catalog-manager/feature/catalog/validator"

	"go.uber.org/zap"
)

// ErrNotFound is returned when a requested item, source or catalog does not
// exist.
var ErrNotFound = errors.New("not found")

// Sheet identifies a spreadsheet import format.
type Sheet string

const (
	SheetLicense Sheet = "license"
	SheetSources Sheet = "sources"
	SheetIcons   Sheet = "icons"
	SheetJourney Sheet = "journey"
)

// Sheets lists the supported import formats.
var Sheets = []Sheet{SheetLicense, SheetSources, SheetIcons, SheetJourney}

// ParseSheet validates a sheet name.
func ParseSheet(s string) (Sheet, error) {
	for _, sh := range Sheets {
		if string(sh) == s {
			return sh, nil
		}
	}
	return "", fmt.Errorf("unknown sheet %q", s)
}

// ImportOptions controls how an import is applied.
type ImportOptions struct {
	// DryRun plans the import without committing it.
	DryRun bool
	// Confirmed must be set for the import to be committed.
	Confirmed bool
	// KeepSources keeps existing item sources that a source import does not
	// mention.
	KeepSources bool
}

// ImportResult describes the outcome of an import.
type ImportResult struct {
	Sheet     Sheet                        `json:"sheet"`
	Plan      *corereconcile.ReconcilePlan `json:"plan"`
	Applied   int                          `json:"applied"`
	Committed bool                         `json:"committed"`
	Warnings  []validator.Warning          `json:"warnings"`
	// Catalogs lists the catalogs the import adds or changes.
	Catalogs []models.CatalogType `json:"catalogs"`
}

// HasChanges reports whether committing the import would change any item or
// catalog.
func (r *ImportResult) HasChanges() bool {
	return r.Plan.Summary.HasChanges() || len(r.Catalogs) > 0
}

// Export is a file written to the export folder.
type Export struct {
	Path string `json:"path"`
	Data []byte `json:"-"`
}

// Service handles catalog operations.
type Service struct {
	store     *Store
	data      datastore.Store
	exportDir string
	adapter   *ItemAdapter
	logger    *zap.Logger
}

// NewService creates a new catalog service.
func NewService(store *Store, data datastore.Store, exportDir string, logger *zap.Logger) *Service {
	return &Service{
		store:     store,
		data:      data,
		exportDir: exportDir,
		adapter:   NewItemAdapter(),
		logger:    logger,
	}
}

func (s *Service) overrides() *overrides.Overrides {
	return s.store.Overrides()
}

// Database returns the committed snapshot.
func (s *Service) Database(ctx context.Context) (*models.Database, error) {
	return s.store.Database(ctx)
}

// Items returns every item ordered by id.
func (s *Service) Items(ctx context.Context) ([]models.Item, error) {
	db, err := s.store.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.SortedItems(), nil
}

// Item returns a single item.
func (s *Service) Item(ctx context.Context, id int) (models.Item, error) {
	db, err := s.store.Database(ctx)
	if err != nil {
		return models.Item{}, err
	}
	it, ok := db.Items[id]
	if !ok {
		return models.Item{}, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	return it, nil
}

// Sources lists the source index, optionally limited to one type.
func (s *Service) Sources(ctx context.Context, only models.SourceType) ([]models.SourceDetails, error) {
	db, err := s.store.Database(ctx)
	if err != nil {
		return nil, err
	}
	return reconcile.ListSources(db, only), nil
}

// Source returns one entry of the source index.
func (s *Service) Source(ctx context.Context, key models.SourceKey) (models.SourceDetails, error) {
	db, err := s.store.Database(ctx)
	if err != nil {
		return models.SourceDetails{}, err
	}
	d, ok := db.Sources[key]
	if !ok {
		return models.SourceDetails{}, fmt.Errorf("source %s: %w", key, ErrNotFound)
	}
	return d, nil
}

// Catalog returns one catalog.
func (s *Service) Catalog(ctx context.Context, key models.CatalogType) (models.CatalogDef, error) {
	db, err := s.store.Database(ctx)
	if err != nil {
		return models.CatalogDef{}, err
	}
	c, ok := db.Catalogs[key]
	if !ok {
		return models.CatalogDef{}, fmt.Errorf("catalog %s: %w", key, ErrNotFound)
	}
	return c, nil
}

// Validate runs the integrity checks on the committed snapshot.
func (s *Service) Validate(ctx context.Context) (validator.Report, error) {
	db, err := s.store.Database(ctx)
	if err != nil {
		return validator.Report{}, err
	}
	return validator.Validate(db, s.overrides()), nil
}

// Reload drops the committed snapshot and reads the data store again.
func (s *Service) Reload(ctx context.Context) (*models.Database, error) {
	s.store.Reload()
	return s.store.Database(ctx)
}

// Import parses text as sheet, integrates it into the committed snapshot and
// plans the resulting item changes. The new snapshot is committed only when
// opts.Confirmed is set and opts.DryRun is not.
func (s *Service) Import(ctx context.Context, sheet Sheet, text string, opts ImportOptions) (*ImportResult, error) {
	current, err := s.store.Database(ctx)
	if err != nil {
		return nil, err
	}

	next, err := s.integrate(current, sheet, text, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to import %s sheet: %w", sheet, err)
	}

	report := validator.Validate(next, s.overrides())
	report.Log(s.logger)

	spec := &corereconcile.Spec{
		Adapter:  s.adapter,
		Current:  snapshotLoader(current),
		Incoming: snapshotLoader(next),
	}
	commit := corereconcile.CommitFunc(func(ctx context.Context, plan *corereconcile.ReconcilePlan) error {
		s.store.Commit(next)
		return nil
	})
	plan, applied, err := corereconcile.ReconcileAndApply(ctx, spec, commit, corereconcile.ReconcileOptions{
		DryRun:    opts.DryRun,
		Confirmed: opts.Confirmed,
	})
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		Sheet:     sheet,
		Plan:      plan,
		Applied:   applied,
		Committed: opts.Confirmed && !opts.DryRun,
		Warnings:  report.Warnings,
		Catalogs:  changedCatalogs(current, next),
	}
	s.logger.Info("Import planned",
		zap.String("sheet", string(sheet)),
		zap.Int("added", plan.Summary.Added),
		zap.Int("changed", plan.Summary.Changed),
		zap.Int("catalogs", len(result.Catalogs)),
		zap.Bool("committed", result.Committed))
	return result, nil
}

func (s *Service) integrate(db *models.Database, sheet Sheet, text string, opts ImportOptions) (*models.Database, error) {
	ov := s.overrides()
	switch sheet {
	case SheetLicense:
		items, err := importers.ImportLicenseSheet(text)
		if err != nil {
			return nil, err
		}
		return reconcile.Integrate(db, items, ov, s.logger)

	case SheetSources:
		imp, err := importers.ImportSourceSheet(text, ov, s.logger)
		if err != nil {
			return nil, err
		}
		return reconcile.IntegrateSources(db, imp, opts.KeepSources, ov, s.logger)

	case SheetIcons:
		icons, err := importers.ImportWikiIcons(text, s.logger)
		if err != nil {
			return nil, err
		}
		return reconcile.IntegrateIcons(db, icons, s.logger), nil

	case SheetJourney:
		items, quest, err := importers.ImportJourneyCatalog(text)
		if err != nil {
			return nil, err
		}
		next, err := reconcile.Integrate(db, items, ov, s.logger)
		if err != nil {
			return nil, err
		}
		return reconcile.ReplaceCatalog(next, quest, ov, s.logger)
	}
	return nil, fmt.Errorf("unknown sheet %q", sheet)
}

// changedCatalogs returns the catalogs of next that are missing from or
// differ from current, in catalog order.
func changedCatalogs(current, next *models.Database) []models.CatalogType {
	out := []models.CatalogType{}
	for _, key := range models.CatalogTypes {
		def, ok := next.Catalogs[key]
		if !ok {
			continue
		}
		old, ok := current.Catalogs[key]
		if !ok || !sameCatalog(old, def) {
			out = append(out, key)
		}
	}
	return out
}

func sameCatalog(a, b models.CatalogDef) bool {
	x, errA := json.Marshal(a)
	y, errB := json.Marshal(b)
	return errA == nil && errB == nil && string(x) == string(y)
}

func snapshotLoader(db *models.Database) corereconcile.Loader {
	return func(ctx context.Context) ([]corereconcile.Entity, error) {
		return itemEntities(db.SortedItems()), nil
	}
}

// ExportItems writes every item to the export folder.
func (s *Service) ExportItems(ctx context.Context) (*Export, error) {
	db, err := s.store.Database(ctx)
	if err != nil {
		return nil, err
	}
	return s.write(ctx, "items.json", reconcile.ExportItems(db))
}

// ExportNewItems writes the items created since the data files were loaded.
func (s *Service) ExportNewItems(ctx context.Context) (*Export, error) {
	db, err := s.store.Database(ctx)
	if err != nil {
		return nil, err
	}
	return s.write(ctx, "new-items.json", reconcile.ExportNewItems(db))
}

// ExportCatalog writes a single catalog under its file name.
func (s *Service) ExportCatalog(ctx context.Context, key models.CatalogType) (*Export, error) {
	db, err := s.store.Database(ctx)
	if err != nil {
		return nil, err
	}
	file, err := reconcile.ExportCatalog(db, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return s.write(ctx, key.FileName(), file)
}

// ExportSubset rewrites the item file at name, relative to the data store
// root, with the current version of its items.
func (s *Service) ExportSubset(ctx context.Context, name string) (*Export, error) {
	db, err := s.store.Database(ctx)
	if err != nil {
		return nil, err
	}
	data, err := s.data.Read(ctx, name)
	if err != nil {
		return nil, err
	}
	var original models.ItemFile
	if err := json.Unmarshal(data, &original); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return s.write(ctx, path.Base(name), reconcile.ExportItemSubset(db, original, s.logger))
}

func (s *Service) write(ctx context.Context, name string, v any) (*Export, error) {
	p := path.Join(s.exportDir, name)
	data, err := writeJSON(ctx, s.data, p, v)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Exported file", zap.String("path", p), zap.String("location", s.data.Location()))
	return &Export{Path: p, Data: data}, nil
}
