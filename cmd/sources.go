package cmd

import (
	"context"
	"fmt"

	"catalog-manager/feature/catalog/models"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var sourceType string

// sourcesCmd prints the source index.
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List every source and what it drops",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var only models.SourceType
		if sourceType != "" {
			t, err := models.ParseSourceType(sourceType)
			if err != nil {
				return err
			}
			only = t
		}

		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		db, err := rt.catalog.Database(ctx)
		if err != nil {
			return err
		}
		details, err := rt.catalog.Sources(ctx, only)
		if err != nil {
			return err
		}

		for _, d := range details {
			fmt.Printf("%s %s\n", color.CyanString(string(models.SourceKeyOf(d.Source))), models.DisplayName(d.Source))
			for _, drop := range d.Drops {
				name := color.HiBlackString("unknown")
				if it, ok := db.Items[drop.ItemID]; ok {
					name = it.Name
				}
				marker := ""
				if drop.Fragment {
					marker = color.YellowString(" (fragment)")
				}
				fmt.Printf("  %-6s #%d %s%s\n", drop.Kind, drop.ItemID, name, marker)
			}
		}
		fmt.Printf("\n%d sources\n", len(details))
		return nil
	},
}

func init() {
	sourcesCmd.Flags().StringVar(&sourceType, "type", "", "Only list sources of this type")
	RootCmd.AddCommand(sourcesCmd)
}
