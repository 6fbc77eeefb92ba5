package portfolio

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

var buyTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNewTrade(t *testing.T) {
	t.Run("usd amount", func(t *testing.T) {
		trade, err := NewTrade(" BTC ", ModeUSD, dec("1000"), dec("50000"), buyTime)
		require.NoError(t, err)

		assert.Equal(t, "btc", trade.Coin)
		assert.Equal(t, StatusOpen, trade.Status)
		assertDecimal(t, "1000", trade.BuyAmountUSD)
		assertDecimal(t, "0.02", trade.CoinAmount)
		assert.Equal(t, buyTime, trade.BuyTime)
		assert.True(t, trade.IsOpen())
		assert.Equal(t, "BTC", trade.DisplayName())
	})

	t.Run("coin amount", func(t *testing.T) {
		trade, err := NewTrade("doge", ModeCoin, dec("1000"), dec("0.15"), buyTime)
		require.NoError(t, err)

		assertDecimal(t, "1000", trade.CoinAmount)
		assertDecimal(t, "150", trade.BuyAmountUSD)
	})

	tests := []struct {
		name    string
		coin    string
		mode    AmountMode
		amount  string
		price   string
		wantErr error
	}{
		{name: "empty coin", coin: " ", mode: ModeUSD, amount: "1", price: "1", wantErr: ErrEmptyCoin},
		{name: "zero amount", coin: "btc", mode: ModeUSD, amount: "0", price: "1", wantErr: ErrInvalidAmount},
		{name: "negative price", coin: "btc", mode: ModeUSD, amount: "1", price: "-1", wantErr: ErrInvalidPrice},
		{name: "unknown mode", coin: "btc", mode: "eur", amount: "1", price: "1", wantErr: ErrUnknownMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTrade(tt.coin, tt.mode, dec(tt.amount), dec(tt.price), buyTime)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseAmountMode(t *testing.T) {
	for in, want := range map[string]AmountMode{"usd": ModeUSD, "USDT": ModeUSD, " coin ": ModeCoin} {
		got, err := ParseAmountMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseAmountMode("eur")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestTradeClose(t *testing.T) {
	trade, err := NewTrade("btc", ModeUSD, dec("1000"), dec("50000"), buyTime)
	require.NoError(t, err)

	sellTime := buyTime.Add(24 * time.Hour)
	require.NoError(t, trade.Close(dec("60000"), sellTime))

	assert.Equal(t, StatusClosed, trade.Status)
	assert.False(t, trade.IsOpen())
	require.NotNil(t, trade.SellTime)
	assert.Equal(t, sellTime, *trade.SellTime)
	assertDecimal(t, "60000", trade.SellPrice.Decimal)
	assertDecimal(t, "200", trade.ProfitLoss.Decimal)
	assertDecimal(t, "20", trade.ProfitLossPct.Decimal)

	assert.ErrorIs(t, trade.Close(dec("70000"), sellTime), ErrAlreadyClosed)
}

func TestTradeCloseLoss(t *testing.T) {
	trade, err := NewTrade("doge", ModeCoin, dec("1000"), dec("0.20"), buyTime)
	require.NoError(t, err)

	require.NoError(t, trade.Close(dec("0.15"), buyTime))
	assertDecimal(t, "-50", trade.ProfitLoss.Decimal)
	assertDecimal(t, "-25", trade.ProfitLossPct.Decimal)

	fresh, err := NewTrade("doge", ModeCoin, dec("1"), dec("1"), buyTime)
	require.NoError(t, err)
	assert.ErrorIs(t, fresh.Close(decimal.Zero, buyTime), ErrInvalidPrice)
	assert.True(t, fresh.IsOpen())
}

func TestPercentOfZero(t *testing.T) {
	assert.True(t, percentOf(dec("10"), decimal.Zero).IsZero())
}
