package checks

import (
	"context"
	"fmt"

	"catalog-manager/core/datastore"
)

// FileIssue is a data file that cannot be loaded.
type FileIssue struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// ShapeCheck validates the raw content of a data file against the top-level
// array it must carry.
type ShapeCheck func(data []byte, field string) error

// CheckDataFiles reads every JSON file of the data folders and reports the
// ones failing check.
func CheckDataFiles(ctx context.Context, store datastore.Store, folders map[string]string, check ShapeCheck) ([]FileIssue, error) {
	issues := []FileIssue{}
	for _, folder := range sortedKeys(folders) {
		names, err := store.List(ctx, folder, ".json")
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", folder, err)
		}
		for _, name := range names {
			data, err := store.Read(ctx, name)
			if err != nil {
				return nil, err
			}
			if err := check(data, folders[folder]); err != nil {
				issues = append(issues, FileIssue{Path: name, Error: err.Error()})
			}
		}
	}
	return issues, nil
}
