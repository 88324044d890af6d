package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"catalog-manager/feature/collection"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// collectionCmd is the parent command for collection transfers.
var collectionCmd = &cobra.Command{
	Use:   "collection",
	Short: "Export or import the player's collection",
}

var collectionExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the collection to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		svc, logg, err := openCollection(ctx)
		if err != nil {
			return err
		}

		c, err := svc.Export(ctx)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal collection: %w", err)
		}
		if err := os.WriteFile(args[0], data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", args[0], err)
		}
		logg.Info("Collection exported", zap.String("file", args[0]), zap.Int("items", len(c.Items)))
		return nil
	},
}

var collectionImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the collection with the content of a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		var c collection.Collection
		if err := json.Unmarshal(data, &c); err != nil {
			return fmt.Errorf("failed to decode %s: %w", args[0], err)
		}

		svc, logg, err := openCollection(ctx)
		if err != nil {
			return err
		}
		if err := svc.Import(ctx, c); err != nil {
			return err
		}
		logg.Info("Collection imported", zap.String("file", args[0]), zap.Int("items", len(c.Items)))
		return nil
	},
}

func init() {
	collectionCmd.AddCommand(collectionExportCmd, collectionImportCmd)
	RootCmd.AddCommand(collectionCmd)
}

func openCollection(ctx context.Context) (*collection.Service, *zap.Logger, error) {
	rt, err := bootstrap(ctx)
	if err != nil {
		return nil, nil, err
	}
	_, repo, err := rt.connect(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open collection database: %w", err)
	}
	return collection.NewService(repo, rt.logger), rt.logger, nil
}
