// Package portfolio models crypto trades and computes their profit and loss
package portfolio

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a trade
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// AmountMode says what the amount given when opening a trade is measured in
type AmountMode string

const (
	ModeUSD  AmountMode = "usd"  // amount is the USD spent
	ModeCoin AmountMode = "coin" // amount is the number of coins bought
)

var (
	ErrEmptyCoin     = errors.New("coin symbol is required")
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrInvalidPrice  = errors.New("price must be positive")
	ErrUnknownMode   = errors.New("unknown amount mode")
	ErrAlreadyClosed = errors.New("trade is already closed")
)

var hundred = decimal.NewFromInt(100)

// Trade is a single buy, optionally closed by a sell
type Trade struct {
	ID            int
	Coin          string // lowercase symbol
	BuyAmountUSD  decimal.Decimal
	BuyPrice      decimal.Decimal
	CoinAmount    decimal.Decimal
	BuyTime       time.Time
	SellPrice     decimal.NullDecimal
	SellTime      *time.Time
	ProfitLoss    decimal.NullDecimal
	ProfitLossPct decimal.NullDecimal
	Status        Status
}

// ParseAmountMode accepts "usd" (or "usdt") and "coin"
func ParseAmountMode(s string) (AmountMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "usd", "usdt":
		return ModeUSD, nil
	case "coin":
		return ModeCoin, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// NewTrade opens a trade. With ModeUSD the amount is the USD spent and the
// coin amount is derived from the price; with ModeCoin it is the other way
// round.
func NewTrade(coin string, mode AmountMode, amount, price decimal.Decimal, at time.Time) (*Trade, error) {
	coin = strings.ToLower(strings.TrimSpace(coin))
	if coin == "" {
		return nil, ErrEmptyCoin
	}

	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	if !price.IsPositive() {
		return nil, ErrInvalidPrice
	}

	t := &Trade{
		Coin:     coin,
		BuyPrice: price,
		BuyTime:  at,
		Status:   StatusOpen,
	}

	switch mode {
	case ModeUSD:
		t.BuyAmountUSD = amount
		t.CoinAmount = amount.Div(price)
	case ModeCoin:
		t.CoinAmount = amount
		t.BuyAmountUSD = amount.Mul(price)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	return t, nil
}

// Close sells the whole position at sellPrice and records the realized
// profit.
func (t *Trade) Close(sellPrice decimal.Decimal, at time.Time) error {
	if t.Status == StatusClosed {
		return ErrAlreadyClosed
	}

	if !sellPrice.IsPositive() {
		return ErrInvalidPrice
	}

	t.SellPrice = decimal.NewNullDecimal(sellPrice)
	t.SellTime = &at
	t.Status = StatusClosed
	t.calculateMetrics()

	return nil
}

// IsOpen reports whether the trade has not been sold yet
func (t *Trade) IsOpen() bool {
	return t.Status != StatusClosed
}

// DisplayName is the uppercase coin symbol
func (t *Trade) DisplayName() string {
	return strings.ToUpper(t.Coin)
}

func (t *Trade) calculateMetrics() {
	if t.Status != StatusClosed || !t.SellPrice.Valid {
		return
	}

	sellAmount := t.CoinAmount.Mul(t.SellPrice.Decimal)
	profit := sellAmount.Sub(t.BuyAmountUSD)

	t.ProfitLoss = decimal.NewNullDecimal(profit)
	t.ProfitLossPct = decimal.NewNullDecimal(percentOf(profit, t.BuyAmountUSD))
}

// percentOf returns part/whole*100, or zero when whole is zero
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}

	return part.Div(whole).Mul(hundred)
}
