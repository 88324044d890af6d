package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"catalog-manager/core/datastore"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/reconcile"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Data file layout, relative to the data store root.
const (
	ItemsDir        = "items"
	CatalogsDir     = "catalogs"
	SourceImagesDir = "source-images"
	jsonExt         = ".json"
)

// DataDirs lists the folders a data store is expected to hold, with the
// top-level array each of their files must carry.
var DataDirs = map[string]string{
	ItemsDir:        "items",
	CatalogsDir:     "catalogs",
	SourceImagesDir: "images",
}

// ReadBuildInput reads and decodes every data file of store.
func ReadBuildInput(ctx context.Context, store datastore.Store, log *zap.Logger) (reconcile.BuildInput, error) {
	var in reconcile.BuildInput

	if err := readAll(ctx, store, ItemsDir, func(name string, data []byte) error {
		var f models.ItemFile
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		in.ItemFiles = append(in.ItemFiles, f)
		return nil
	}); err != nil {
		return in, err
	}

	if err := readAll(ctx, store, CatalogsDir, func(name string, data []byte) error {
		var f models.CatalogFile
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		in.CatalogFiles = append(in.CatalogFiles, f)
		return nil
	}); err != nil {
		return in, err
	}

	if err := readAll(ctx, store, SourceImagesDir, func(name string, data []byte) error {
		var f models.SourceImageFile
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		in.SourceImageFiles = append(in.SourceImageFiles, f)
		return nil
	}); err != nil {
		return in, err
	}

	log.Debug("Read data files",
		zap.String("location", store.Location()),
		zap.Int("item_files", len(in.ItemFiles)),
		zap.Int("catalog_files", len(in.CatalogFiles)),
		zap.Int("source_image_files", len(in.SourceImageFiles)))
	return in, nil
}

func readAll(ctx context.Context, store datastore.Store, dir string, decode func(name string, data []byte) error) error {
	names, err := store.List(ctx, dir, jsonExt)
	if err != nil {
		return err
	}
	for _, name := range names {
		data, err := store.Read(ctx, name)
		if err != nil {
			return err
		}
		if err := CheckShape(data, DataDirs[dir]); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := decode(name, data); err != nil {
			return fmt.Errorf("failed to decode %s: %w", name, err)
		}
	}
	return nil
}

// CheckShape verifies that data is a JSON object carrying an array under
// field.
func CheckShape(data []byte, field string) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid JSON")
	}
	v := gjson.GetBytes(data, field)
	if !v.Exists() {
		return fmt.Errorf("missing %q array", field)
	}
	if !v.IsArray() {
		return fmt.Errorf("%q is not an array", field)
	}
	return nil
}

// writeJSON encodes v the way data files are laid out and writes it.
func writeJSON(ctx context.Context, store datastore.Store, name string, v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", name, err)
	}
	data = append(data, '\n')
	if err := store.Write(ctx, name, data); err != nil {
		return nil, err
	}
	return data, nil
}
