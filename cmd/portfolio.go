package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sljivkov/tradetracker/portfolio"
)

var ledgerPath string

func init() {
	portfolioCmd.Flags().StringVar(&ledgerPath, "ledger", "", "trade ledger file (yaml, json or toml)")
	_ = portfolioCmd.MarkFlagRequired("ledger")
}

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Show open and closed trades with profit and loss",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		trades, err := portfolio.LoadLedger(ledgerPath)
		if err != nil {
			return err
		}

		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.Close()

		tracker := portfolio.NewTracker(s.gecko, s.gecko, s.cfg.IconDir, portfolio.WithTrackerLogger(s.log))
		summary := tracker.Overview(cmd.Context(), trades)

		return printSummary(cmd.OutOrStdout(), summary)
	},
}

func printSummary(out io.Writer, s portfolio.Summary) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "OPEN\tCOIN\tINVESTED\tPRICE\tVALUE\tP/L\tP/L %\tICON")
	for _, p := range s.Open {
		if !p.Priced {
			fmt.Fprintf(w, "%d\t%s\t%s\t-\t-\t-\t-\t%s\n",
				p.Trade.ID, p.CoinName, usd(p.Trade.BuyAmountUSD), p.Icon)
			continue
		}

		fmt.Fprintf(w, "%d\t%s\t%s\t$%s\t%s\t%s\t%s\t%s\n",
			p.Trade.ID, p.CoinName, usd(p.Trade.BuyAmountUSD), p.CurrentPrice.String(),
			usd(p.CurrentValue), usd(p.UnrealizedProfit), pct(p.UnrealizedProfitPct), p.Icon)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "CLOSED\tCOIN\tINVESTED\tBUY\tSELL\tP/L\tP/L %\tICON")
	for _, p := range s.Closed {
		fmt.Fprintf(w, "%d\t%s\t%s\t$%s\t$%s\t%s\t%s\t%s\n",
			p.Trade.ID, p.CoinName, usd(p.Trade.BuyAmountUSD), p.Trade.BuyPrice.String(),
			p.Trade.SellPrice.Decimal.String(), usd(p.Trade.ProfitLoss.Decimal), pct(p.Trade.ProfitLossPct.Decimal), p.Icon)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "realized profit\t%s\t%s\n", usd(s.TotalRealizedProfit), pct(s.RealizedROI))
	fmt.Fprintf(w, "total profit\t%s\t%s\n", usd(s.TotalProfit), pct(s.TotalROI))

	return w.Flush()
}

func usd(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func pct(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}
