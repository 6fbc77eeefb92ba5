package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sljivkov/tradetracker/domain"
)

var priceCmd = &cobra.Command{
	Use:   "price SYMBOL...",
	Short: "Print current USD prices",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.Close()

		results := s.gecko.Prices(cmd.Context(), args)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		printed := make(map[string]bool, len(args))
		failed := 0

		for _, symbol := range args {
			if printed[symbol] {
				continue
			}
			printed[symbol] = true

			price, err := results[symbol].Value()
			if err != nil {
				failed++
				fmt.Fprintf(w, "%s\t%s\t%s\n", symbol, domain.KindOf(err), err)
				continue
			}

			fmt.Fprintf(w, "%s\tok\t$%s\n", symbol, decimal.NewFromFloat(price).String())
		}

		if err := w.Flush(); err != nil {
			return err
		}

		if failed == len(printed) {
			return fmt.Errorf("no prices available")
		}

		return nil
	},
}
