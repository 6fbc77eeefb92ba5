package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sljivkov/tradetracker/domain"
)

func openTrade(t *testing.T, coin, usd, price string) Trade {
	t.Helper()

	trade, err := NewTrade(coin, ModeUSD, dec(usd), dec(price), buyTime)
	require.NoError(t, err)

	return *trade
}

func closedTrade(t *testing.T, coin, usd, buy, sell string) Trade {
	t.Helper()

	trade := openTrade(t, coin, usd, buy)
	require.NoError(t, trade.Close(dec(sell), buyTime))

	return trade
}

func TestSummarize(t *testing.T) {
	trades := []Trade{
		openTrade(t, "btc", "1000", "50000"),            // 0.02 btc
		openTrade(t, "doge", "300", "0.10"),             // 3000 doge
		openTrade(t, "eth", "500", "2500"),              // price lookup fails
		closedTrade(t, "btc", "1000", "40000", "50000"), // +250
		closedTrade(t, "sol", "200", "100", "80"),       // -40
	}

	prices := map[string]domain.PriceResult{
		"btc":  domain.Success(60000),
		"doge": domain.Success(0.15),
		"eth":  domain.Failure(domain.NewServiceUnavailable("eth", nil)),
	}
	icons := map[string]string{"btc": "coins/btc.png", "doge": ""}

	s := Summarize(trades, prices, icons)

	require.Len(t, s.Open, 3)
	require.Len(t, s.Closed, 2)

	btc := s.Open[0]
	assert.Equal(t, "BTC", btc.CoinName)
	assert.Equal(t, "coins/btc.png", btc.Icon)
	assert.True(t, btc.Priced)
	assertDecimal(t, "60000", btc.CurrentPrice)
	assertDecimal(t, "1200", btc.CurrentValue)
	assertDecimal(t, "200", btc.UnrealizedProfit)
	assertDecimal(t, "20", btc.UnrealizedProfitPct)

	doge := s.Open[1]
	assertDecimal(t, "450", doge.CurrentValue)
	assertDecimal(t, "150", doge.UnrealizedProfit)
	assertDecimal(t, "50", doge.UnrealizedProfitPct)
	assert.Empty(t, doge.Icon)

	eth := s.Open[2]
	assert.False(t, eth.Priced)
	assert.ErrorIs(t, eth.PriceErr, domain.ErrServiceUnavailable)
	assert.True(t, eth.CurrentValue.IsZero())

	assert.Equal(t, "coins/btc.png", s.Closed[0].Icon)

	assertDecimal(t, "210", s.TotalRealizedProfit)
	assertDecimal(t, "1200", s.TotalRealizedInvested)
	assertDecimal(t, "17.5", s.RealizedROI)

	assertDecimal(t, "350", s.TotalUnrealizedProfit)
	assertDecimal(t, "1300", s.TotalUnrealizedInvested)

	assertDecimal(t, "560", s.TotalProfit)
	assertDecimal(t, "22.4", s.TotalROI)
}

func TestSummarizeMissingPrice(t *testing.T) {
	s := Summarize([]Trade{openTrade(t, "btc", "100", "10")}, nil, nil)

	require.Len(t, s.Open, 1)
	assert.False(t, s.Open[0].Priced)
	assert.ErrorIs(t, s.Open[0].PriceErr, domain.ErrNoResult)
	assert.True(t, s.TotalROI.IsZero())
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil, nil)

	assert.Empty(t, s.Open)
	assert.Empty(t, s.Closed)
	assert.True(t, s.RealizedROI.IsZero())
	assert.True(t, s.TotalROI.IsZero())
}
