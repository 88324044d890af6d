package checks

import (
	"context"
	"fmt"
	"sort"

	"catalog-manager/core/datastore"

	"go.uber.org/zap"
)

// CheckStructure returns the data folders that hold no JSON file. folders
// maps each folder to the top-level array its files carry.
func CheckStructure(ctx context.Context, store datastore.Store, folders map[string]string) ([]string, error) {
	var missing []string
	for _, folder := range sortedKeys(folders) {
		names, err := store.List(ctx, folder, ".json")
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", folder, err)
		}
		if len(names) == 0 {
			missing = append(missing, folder)
		}
	}
	return missing, nil
}

// FixStructure seeds each missing folder with an empty data file.
func FixStructure(ctx context.Context, store datastore.Store, folders map[string]string, logger *zap.Logger, missing []string) error {
	for _, folder := range missing {
		field, ok := folders[folder]
		if !ok {
			return fmt.Errorf("unknown data folder %q", folder)
		}
		name := folder + "/" + field + ".json"
		body := fmt.Sprintf("{\n  %q: []\n}\n", field)
		if err := store.Write(ctx, name, []byte(body)); err != nil {
			logger.Error("Failed to create folder", zap.String("folder", folder), zap.Error(err))
			return err
		}
		logger.Info("Created missing folder", zap.String("folder", folder), zap.String("file", name))
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
