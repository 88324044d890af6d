package cmd

import (
	"context"

	"catalog-manager/feature/catalog"
	"catalog-manager/feature/catalog/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// exportCmd is the parent command for catalog exports.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write catalog files to the export folder",
}

var exportItemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Export every item",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(func(ctx context.Context, svc *catalog.Service) (*catalog.Export, error) {
			return svc.ExportItems(ctx)
		})
	},
}

var exportNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Export the items created since the data files were loaded",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(func(ctx context.Context, svc *catalog.Service) (*catalog.Export, error) {
			return svc.ExportNewItems(ctx)
		})
	},
}

var exportCatalogCmd = &cobra.Command{
	Use:   "catalog <key>",
	Short: "Export one catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := models.ParseCatalogType(args[0])
		if err != nil {
			return err
		}
		return runExport(func(ctx context.Context, svc *catalog.Service) (*catalog.Export, error) {
			return svc.ExportCatalog(ctx, key)
		})
	},
}

var exportSubsetCmd = &cobra.Command{
	Use:   "subset <file>",
	Short: "Rewrite an item file with the current version of its items",
	Long: `Rewrite an item file with the current version of its items.

The file path is relative to the data folder, e.g. items/event-items.json.
The result is written to the export folder under the same base name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(func(ctx context.Context, svc *catalog.Service) (*catalog.Export, error) {
			return svc.ExportSubset(ctx, args[0])
		})
	},
}

func init() {
	exportCmd.AddCommand(exportItemsCmd, exportNewCmd, exportCatalogCmd, exportSubsetCmd)
	RootCmd.AddCommand(exportCmd)
}

func runExport(fn func(context.Context, *catalog.Service) (*catalog.Export, error)) error {
	ctx := context.Background()
	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	export, err := fn(ctx, rt.catalog)
	if err != nil {
		return err
	}
	rt.logger.Info("Export written",
		zap.String("path", export.Path),
		zap.Int("bytes", len(export.Data)))
	return nil
}
