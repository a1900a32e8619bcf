package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"skorpik-value/catalog"
	"skorpik-value/models"
	"skorpik-value/utils"
)

var catalogFlags struct {
	filter string
	search string
	sort   string
	order  string
}

// CatalogCmd prints the catalog under a filter and ordering
var CatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List catalog items.",
	RunE: func(cmd *cobra.Command, args []string) error {
		view := models.ViewState{
			ActiveFilter: catalogFlags.filter,
			SearchTerm:   catalogFlags.search,
			SortKey:      models.SortKey(catalogFlags.sort),
			SortOrder:    models.SortOrder(catalogFlags.order),
		}
		if view.ActiveFilter != models.FilterAll && !models.IsKnownRarity(view.ActiveFilter) {
			return errors.Errorf("unknown rarity filter %q", view.ActiveFilter)
		}
		if !view.SortKey.IsValid() {
			return errors.Errorf("unknown sort key %q", view.SortKey)
		}
		if !view.SortOrder.IsValid() {
			return errors.Errorf("unknown sort order %q", view.SortOrder)
		}

		a, err := initApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		items := catalog.View(a.Catalog.Items(), view)
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tRARITY\tVALUE\tDEMAND\tSTATUS")
		for _, item := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				item.ID, item.Name, utils.RarityName(item.Rarity),
				utils.FormatValue(item.Value), utils.FormatDemand(item.Demand), item.Status)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d of %d items\n", len(items), a.Catalog.Len())
		return nil
	},
}

func init() {
	CatalogCmd.Flags().StringVar(&catalogFlags.filter, "filter", models.FilterAll, "rarity to show, or all")
	CatalogCmd.Flags().StringVar(&catalogFlags.search, "search", "", "case-insensitive name search")
	CatalogCmd.Flags().StringVar(&catalogFlags.sort, "sort", string(models.SortByName), "name, price-high, price-low, demand-high or demand-low")
	CatalogCmd.Flags().StringVar(&catalogFlags.order, "order", string(models.SortAsc), "asc or desc")
	rootCmd.AddCommand(CatalogCmd)
}
