package cmd

import (
	"context"
	"fmt"
	"os"

	"catalog-manager/core/database"
	"catalog-manager/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixFlag bool

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Perform integrity checks on the catalog data",
	Long:  `Checks the data folder layout, the data files, the collection schema and the catalog consistency.`,
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(context.Background(), checkAll)
	},
}

// structureCmd represents the check structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix the data folder layout",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(context.Background(), checkStructure)
	},
}

// filesCmd represents the check files command
var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Check that every data file can be loaded",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(context.Background(), checkFiles)
	},
}

// schemaCmd represents the check schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the collection database schema",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(context.Background(), checkSchema)
	},
}

// catalogCheckCmd represents the check catalog command
var catalogCheckCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Check the catalog for inconsistent items and sources",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(context.Background(), checkCatalog)
	},
}

type checkSet int

const (
	checkStructure checkSet = 1 << iota
	checkFiles
	checkSchema
	checkCatalog

	checkAll = checkStructure | checkFiles | checkSchema | checkCatalog
)

func init() {
	RootCmd.AddCommand(checkCmd)
	checkCmd.AddCommand(structureCmd, filesCmd, schemaCmd, catalogCheckCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Seed missing folders with empty data files")
}

func runIntegrityChecks(ctx context.Context, set checkSet) {
	rt, err := bootstrap(ctx)
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	logg := rt.logger

	// Connect to Database (Optional)
	var db *gorm.DB
	if set&checkSchema != 0 {
		if conn, err := connectDatabase(rt); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			db = conn
		}
	}

	svc := integrity.NewService(rt.data, db, rt.catalog, logg)

	if set&checkStructure != 0 {
		logg.Info("Checking folder structure...", zap.String("location", rt.data.Location()))
		missing, err := svc.CheckStructure(ctx)
		if err != nil {
			logg.Fatal("Structure check failed", zap.Error(err))
		}

		if len(missing) == 0 {
			logg.Info("Structure is intact.")
		} else {
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))

			if set == checkStructure && fixFlag {
				logg.Info("Fixing missing folders...")
				if err := svc.FixStructure(ctx, missing); err != nil {
					logg.Fatal("Failed to fix structure", zap.Error(err))
				}
				logg.Info("Structure fixed successfully.")
			} else if set == checkStructure {
				logg.Info("Run with --fix to create missing folders.")
			}
		}
	}

	if set&checkFiles != 0 {
		logg.Info("Checking data files...")
		issues, err := svc.CheckDataFiles(ctx)
		if err != nil {
			logg.Fatal("Data file check failed", zap.Error(err))
		}

		if len(issues) == 0 {
			logg.Info("Data files are readable.")
		}
		for _, issue := range issues {
			logg.Warn("Unreadable data file", zap.String("path", issue.Path), zap.String("error", issue.Error))
		}
	}

	if set&checkSchema != 0 {
		logg.Info("Checking collection schema...")
		report, err := svc.CheckSchema()
		if err != nil {
			logg.Error("Schema check failed", zap.Error(err))
		} else if report.Matched {
			logg.Info("Collection schema matches expected definition.")
		} else {
			logg.Warn("Collection schema mismatches found")
			for table, tbl := range report.Tables {
				if tbl.Status != "ok" && len(tbl.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
		}
	}

	if set&checkCatalog != 0 {
		logg.Info("Checking catalog consistency...")
		report, err := svc.CheckCatalog(ctx)
		if err != nil {
			logg.Fatal("Catalog check failed", zap.Error(err))
		}
		printValidationReport(report)
	}
}

// connectDatabase opens the collection database without migrating it, so
// the schema check sees the tables as they are.
func connectDatabase(rt *runtime) (*gorm.DB, error) {
	return database.Connect(rt.cfg.Database)
}
