package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sljivkov/tradetracker/portfolio"
)

var (
	openMode  string
	openPrice string
)

func init() {
	openCmd.Flags().StringVar(&openMode, "mode", "usd", "what AMOUNT is measured in: usd or coin")
	openCmd.Flags().StringVar(&openPrice, "price", "", "buy price in USD (defaults to the current market price)")
}

var openCmd = &cobra.Command{
	Use:   "open COIN AMOUNT",
	Short: "Preview a new trade at the given or current price",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := portfolio.ParseAmountMode(openMode)
		if err != nil {
			return err
		}

		amount, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("please enter a valid number for amount: %w", err)
		}

		var price decimal.NullDecimal
		if openPrice != "" {
			p, err := decimal.NewFromString(openPrice)
			if err != nil {
				return fmt.Errorf("please enter a valid number for price: %w", err)
			}
			price = decimal.NewNullDecimal(p)
		}

		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.Close()

		tracker := portfolio.NewTracker(s.gecko, s.gecko, s.cfg.IconDir, portfolio.WithTrackerLogger(s.log))

		trade, err := tracker.Open(cmd.Context(), args[0], mode, amount, price)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "coin:       %s\n", trade.DisplayName())
		fmt.Fprintf(out, "buy price:  $%s\n", trade.BuyPrice.String())
		fmt.Fprintf(out, "invested:   $%s\n", trade.BuyAmountUSD.StringFixed(2))
		fmt.Fprintf(out, "coins:      %s\n", trade.CoinAmount.String())

		return nil
	},
}
