package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/sljivkov/tradetracker/domain"
)

// Position is a trade decorated for display with its icon and, for open
// trades, its value at the current market price.
type Position struct {
	Trade    Trade
	CoinName string
	Icon     string // relative icon path, "" when none

	// Set for open trades whose price lookup succeeded
	Priced              bool
	CurrentPrice        decimal.Decimal
	CurrentValue        decimal.Decimal
	UnrealizedProfit    decimal.Decimal
	UnrealizedProfitPct decimal.Decimal

	// Set for open trades whose price lookup failed
	PriceErr error
}

// Summary is the portfolio overview across open and closed trades
type Summary struct {
	Open   []Position
	Closed []Position

	TotalRealizedProfit   decimal.Decimal
	TotalRealizedInvested decimal.Decimal
	RealizedROI           decimal.Decimal

	TotalUnrealizedProfit   decimal.Decimal
	TotalUnrealizedInvested decimal.Decimal

	TotalProfit decimal.Decimal
	TotalROI    decimal.Decimal
}

// Summarize values open trades at prices and totals realized and unrealized
// profit. Open trades without a successful price are listed unpriced and left
// out of the unrealized totals.
func Summarize(trades []Trade, prices map[string]domain.PriceResult, icons map[string]string) Summary {
	var s Summary

	for _, t := range trades {
		p := Position{
			Trade:    t,
			CoinName: t.DisplayName(),
			Icon:     icons[t.Coin],
		}

		if !t.IsOpen() {
			if t.ProfitLoss.Valid {
				s.TotalRealizedProfit = s.TotalRealizedProfit.Add(t.ProfitLoss.Decimal)
			}
			s.TotalRealizedInvested = s.TotalRealizedInvested.Add(t.BuyAmountUSD)
			s.Closed = append(s.Closed, p)

			continue
		}

		price, err := prices[t.Coin].Value()
		if err != nil {
			p.PriceErr = err
			s.Open = append(s.Open, p)

			continue
		}

		p.Priced = true
		p.CurrentPrice = decimal.NewFromFloat(price)
		p.CurrentValue = t.CoinAmount.Mul(p.CurrentPrice)
		p.UnrealizedProfit = p.CurrentValue.Sub(t.BuyAmountUSD)
		p.UnrealizedProfitPct = percentOf(p.UnrealizedProfit, t.BuyAmountUSD)

		s.TotalUnrealizedProfit = s.TotalUnrealizedProfit.Add(p.UnrealizedProfit)
		s.TotalUnrealizedInvested = s.TotalUnrealizedInvested.Add(t.BuyAmountUSD)
		s.Open = append(s.Open, p)
	}

	s.RealizedROI = roi(s.TotalRealizedProfit, s.TotalRealizedInvested)

	totalInvested := s.TotalRealizedInvested.Add(s.TotalUnrealizedInvested)
	s.TotalProfit = s.TotalRealizedProfit.Add(s.TotalUnrealizedProfit)
	s.TotalROI = roi(s.TotalProfit, totalInvested)

	return s
}

// roi is profit/invested*100 for a positive investment, zero otherwise
func roi(profit, invested decimal.Decimal) decimal.Decimal {
	if !invested.IsPositive() {
		return decimal.Zero
	}

	return profit.Div(invested).Mul(hundred)
}
