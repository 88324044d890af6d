package cmd

import (
	"context"
	"fmt"
	"sort"

	"catalog-manager/feature/catalog/validator"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var noColor bool

// validateCmd runs the catalog consistency checks.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the catalog for inconsistent items and sources",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if noColor {
			color.NoColor = true
		}

		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		report, err := rt.catalog.Validate(ctx)
		if err != nil {
			return err
		}
		printValidationReport(report)
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	RootCmd.AddCommand(validateCmd)
}

func printValidationReport(report validator.Report) {
	if report.Empty() {
		fmt.Printf("%s catalog is consistent\n", color.GreenString("✓"))
		return
	}

	for _, w := range report.Warnings {
		subject := color.HiBlackString("source")
		if w.ItemID != 0 {
			subject = fmt.Sprintf("#%d %s", w.ItemID, w.ItemName)
		}
		fmt.Printf("  %s %-32s %s\n", color.YellowString("✗"), string(w.Rule), subject)
		fmt.Printf("      %s\n", w.Message)
	}

	counts := report.Count()
	rules := make([]validator.Rule, 0, len(counts))
	for r := range counts {
		rules = append(rules, r)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i] < rules[j] })

	fmt.Printf("\n%s %d warnings\n", color.CyanString("summary:"), len(report.Warnings))
	for _, r := range rules {
		fmt.Printf("  %-32s %d\n", string(r), counts[r])
	}
}
