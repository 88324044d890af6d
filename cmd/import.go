package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"catalog-manager/core/reconcile"
	"catalog-manager/feature/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the import command
	dryRunImport bool
	keepSources  bool
	yesConfirm   bool
)

// importCmd integrates a spreadsheet export into the catalog.
var importCmd = &cobra.Command{
	Use:   "import {license|sources|icons|journey} <file>",
	Short: "Import a spreadsheet export into the catalog",
	Long: `Import a spreadsheet export into the catalog.

Plans the import and prints the added and changed items. Unless --dry-run is
set, asks for confirmation and then writes items.json, new-items.json and
every changed catalog to the export folder.

Examples:
  # Report only
  import license license.csv --dry-run

  # Import with interactive confirmation
  import sources sources.tsv

  # Import keeping sources the sheet does not mention
  import sources sources.tsv --keep-sources --yes`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&dryRunImport, "dry-run", false, "Plan the import without writing anything")
	importCmd.Flags().BoolVar(&keepSources, "keep-sources", false, "Keep existing sources missing from a sources sheet")
	importCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm the import (non-interactive)")

	RootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	sheet, err := catalog.ParseSheet(args[0])
	if err != nil {
		return err
	}
	text, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[1], err)
	}

	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	l := rt.logger.With(zap.String("sheet", string(sheet)))

	// Step 1: Plan (always runs)
	l.Info("Planning import...", zap.String("file", args[1]))
	opts := catalog.ImportOptions{DryRun: true, KeepSources: keepSources}
	result, err := rt.catalog.Import(ctx, sheet, string(text), opts)
	if err != nil {
		return err
	}

	// Step 2: Print report
	printReconcileReport(l, result.Plan)
	if len(result.Warnings) > 0 {
		l.Warn("Imported catalog has consistency warnings", zap.Int("warnings", len(result.Warnings)))
	}

	if dryRunImport {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if len(result.Catalogs) > 0 {
		l.Info("Catalogs changed", zap.Any("catalogs", result.Catalogs))
	}
	if !result.HasChanges() {
		l.Info("No changes required.")
		return nil
	}

	// Step 3: Apply (if confirmed)
	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	opts.DryRun = false
	opts.Confirmed = true
	result, err = rt.catalog.Import(ctx, sheet, string(text), opts)
	if err != nil {
		return fmt.Errorf("failed to apply import: %w", err)
	}
	l.Info("Import committed", zap.Int("applied", result.Applied))

	// Step 4: Persist the committed snapshot
	for _, export := range []func(context.Context) (*catalog.Export, error){
		rt.catalog.ExportItems,
		rt.catalog.ExportNewItems,
	} {
		if _, err := export(ctx); err != nil {
			return err
		}
	}
	for _, key := range result.Catalogs {
		if _, err := rt.catalog.ExportCatalog(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// printReconcileReport prints a formatted import report using logger.
func printReconcileReport(l *zap.Logger, plan *reconcile.ReconcilePlan) {
	s := plan.Summary

	l.Info("Import report",
		zap.Int("total_items", s.TotalItems),
		zap.Int("added", s.Added),
		zap.Int("changed", s.Changed),
		zap.Int("unchanged", s.Unchanged),
		zap.Int("removed", s.Removed),
	)

	if len(plan.Actions) == 0 {
		return
	}

	// Show sample of actions (max 5 for logger)
	maxShow := min(5, len(plan.Actions))
	for _, action := range plan.Actions[:maxShow] {
		l.Info("Sample action",
			zap.String("type", string(action.Type)),
			zap.String("key", action.Key),
			zap.String("name", action.Name),
			zap.String("reason", action.Reason),
		)
	}
	if len(plan.Actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm the import: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
