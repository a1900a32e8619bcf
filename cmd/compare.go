package cmd

import (
	"github.com/spf13/cobra"
)

// CompareCmd prints the comparison of a trade given on the command line
var CompareCmd = &cobra.Command{
	Use:     "compare",
	Short:   "Compare the give and receive sides of a trade.",
	Example: "  skorpik-value compare --give scorp=2 --receive pass1",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := initApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := fillTrade(a.Session, tradeFlags.give, tradeFlags.receive); err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), a.Session.Summary())
		return nil
	},
}

func init() {
	CompareCmd.Flags().StringSliceVar(&tradeFlags.give, "give", nil, "items given, as id or id=quantity")
	CompareCmd.Flags().StringSliceVar(&tradeFlags.receive, "receive", nil, "items received, as id or id=quantity")
	rootCmd.AddCommand(CompareCmd)
}
