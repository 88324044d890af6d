package cmd

import (
	"context"
	"fmt"
	"time"

	"catalog-manager/core/config"
	"catalog-manager/core/database"
	"catalog-manager/core/datastore"
	"catalog-manager/core/logger"
	"catalog-manager/core/storage"
	"catalog-manager/feature/catalog"
	"catalog-manager/feature/catalog/overrides"
	"catalog-manager/feature/collection"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime bundles what every command needs.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	data    datastore.Store
	store   *catalog.Store
	catalog *catalog.Service
}

// bootstrap loads the configuration and opens the catalog data store.
func bootstrap(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	var client storage.Client
	if cfg.Data.Backend == datastore.BackendS3 {
		client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			return nil, err
		}
	}

	data, err := datastore.New(cfg.Data, client, cfg.Storage.Bucket)
	if err != nil {
		return nil, err
	}

	ov := overrides.Default()
	if cfg.Data.OverridesPath != "" {
		ov, err = overrides.Load(afero.NewOsFs(), cfg.Data.OverridesPath)
		if err != nil {
			return nil, err
		}
	}

	ttl := time.Duration(cfg.Data.CacheTTLSeconds) * time.Second
	store := catalog.NewStore(data, ov, ttl, logg)

	return &runtime{
		cfg:     cfg,
		logger:  logg,
		data:    data,
		store:   store,
		catalog: catalog.NewService(store, data, cfg.Data.ExportDir, logg),
	}, nil
}

// connect opens the collection database and migrates its tables.
func (r *runtime) connect(ctx context.Context) (*gorm.DB, *collection.Repository, error) {
	db, err := database.Connect(r.cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	repo := collection.NewRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		return nil, nil, err
	}
	return db, repo, nil
}
