package portfolio

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// ledgerEntry is one trade as written in a ledger file. Amounts are decoded
// as strings so decimals keep their exact value.
type ledgerEntry struct {
	ID         int    `mapstructure:"id"`
	Coin       string `mapstructure:"coin"`
	AmountUSD  string `mapstructure:"amount_usd"`
	CoinAmount string `mapstructure:"coin_amount"`
	BuyPrice   string `mapstructure:"buy_price"`
	BuyTime    any    `mapstructure:"buy_time"`
	SellPrice  string `mapstructure:"sell_price"`
	SellTime   any    `mapstructure:"sell_time"`
}

// LoadLedger reads trades from a YAML, JSON or TOML file with a top-level
// "trades" list. Each entry gives a coin, a buy price, and either amount_usd
// or coin_amount; a sell_price closes the trade.
func LoadLedger(path string) ([]Trade, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failure reading ledger %s", path)
	}

	var entries []ledgerEntry
	if err := v.UnmarshalKey("trades", &entries); err != nil {
		return nil, errors.Wrapf(err, "failure decoding ledger %s", path)
	}

	trades := make([]Trade, 0, len(entries))
	for i, e := range entries {
		t, err := e.trade()
		if err != nil {
			return nil, errors.Wrapf(err, "ledger entry %d", i+1)
		}

		if t.ID == 0 {
			t.ID = i + 1
		}

		trades = append(trades, *t)
	}

	return trades, nil
}

func (e ledgerEntry) trade() (*Trade, error) {
	price, err := parseDecimal("buy_price", e.BuyPrice)
	if err != nil {
		return nil, err
	}

	var (
		mode   AmountMode
		amount decimal.Decimal
	)

	switch {
	case e.AmountUSD != "" && e.CoinAmount != "":
		return nil, errors.New("only one of amount_usd and coin_amount may be set")
	case e.AmountUSD != "":
		mode = ModeUSD
		amount, err = parseDecimal("amount_usd", e.AmountUSD)
	case e.CoinAmount != "":
		mode = ModeCoin
		amount, err = parseDecimal("coin_amount", e.CoinAmount)
	default:
		return nil, errors.New("one of amount_usd and coin_amount is required")
	}

	if err != nil {
		return nil, err
	}

	buyTime, err := parseTime("buy_time", e.BuyTime)
	if err != nil {
		return nil, err
	}

	t, err := NewTrade(e.Coin, mode, amount, price, buyTime)
	if err != nil {
		return nil, err
	}

	t.ID = e.ID

	if e.SellPrice == "" {
		return t, nil
	}

	sellPrice, err := parseDecimal("sell_price", e.SellPrice)
	if err != nil {
		return nil, err
	}

	sellTime, err := parseTime("sell_time", e.SellTime)
	if err != nil {
		return nil, err
	}

	if err := t.Close(sellPrice, sellTime); err != nil {
		return nil, err
	}

	return t, nil
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "invalid %s %q", field, s)
	}

	return d, nil
}

// parseTime accepts RFC 3339 strings, plain dates, and timestamps already
// decoded by the YAML parser. A missing value is the zero time.
func parseTime(field string, v any) (time.Time, error) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return t.UTC(), nil
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.UTC(), nil
			}
		}

		return time.Time{}, errors.Errorf("invalid %s %q", field, t)
	default:
		return time.Time{}, errors.Errorf("invalid %s of type %T", field, v)
	}
}
