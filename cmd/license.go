package cmd

import (
	"context"
	"fmt"

	"catalog-manager/feature/collection"
	"catalog-manager/feature/license"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	hideCatalogs    string
	hideUncollected bool
	hidePremium     bool
)

// licenseCmd prints what is left to license.
var licenseCmd = &cobra.Command{
	Use:   "license",
	Short: "List the items left to license and the materials they need",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		hidden, err := license.ParseHidden(hideCatalogs)
		if err != nil {
			return err
		}

		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		_, repo, err := rt.connect(ctx)
		if err != nil {
			return fmt.Errorf("failed to open collection database: %w", err)
		}

		svc := license.NewService(rt.catalog, collection.NewService(repo, rt.logger), rt.logger)
		res, err := svc.Compute(ctx, license.Filter{
			HiddenCatalogs:  hidden,
			HideUncollected: hideUncollected,
			HidePremium:     hidePremium,
		})
		if err != nil {
			return err
		}

		fmt.Println(color.CyanString("items:"))
		for _, e := range res.Items {
			fmt.Printf("  #%-5d %-32s %d left\n", e.ID, e.Name, e.Remaining)
		}
		fmt.Println(color.CyanString("materials:"))
		for _, m := range res.Materials {
			fmt.Printf("  #%-5d %-32s %g\n", m.ID, m.Name, m.Amount)
		}
		return nil
	},
}

func init() {
	licenseCmd.Flags().StringVar(&hideCatalogs, "hide", "", "Comma separated catalog keys to hide")
	licenseCmd.Flags().BoolVar(&hideUncollected, "hide-uncollected", false, "Hide items whose recipe was not collected")
	licenseCmd.Flags().BoolVar(&hidePremium, "hide-premium", false, "Hide premium pack items")
	RootCmd.AddCommand(licenseCmd)
}
