package portfolio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sljivkov/tradetracker/domain"
	"github.com/sljivkov/tradetracker/pricefeed"
)

// ErrPriceUnavailable is returned when a trade must be closed at the market
// price and none could be fetched.
var ErrPriceUnavailable = errors.New("could not fetch current price, please enter it manually")

// Tracker combines a price feed and an icon feed to value trades
type Tracker struct {
	prices  pricefeed.PriceProvider
	icons   pricefeed.IconProvider
	iconDir string
	logger  *zap.Logger
	now     func() time.Time
}

// TrackerOption customizes a Tracker
type TrackerOption func(*Tracker)

// WithTrackerLogger sets the logger, zap.NewNop by default
func WithTrackerLogger(l *zap.Logger) TrackerOption {
	return func(t *Tracker) {
		t.logger = l
	}
}

// WithClock replaces time.Now for trade timestamps
func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) {
		t.now = now
	}
}

// NewTracker creates a tracker storing icons under iconDir
func NewTracker(prices pricefeed.PriceProvider, icons pricefeed.IconProvider, iconDir string, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		prices:  prices,
		icons:   icons,
		iconDir: iconDir,
		logger:  zap.NewNop(),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Overview prices the open trades and fetches icons for every traded coin
// concurrently, then summarizes the portfolio.
func (t *Tracker) Overview(ctx context.Context, trades []Trade) Summary {
	var openCoins, allCoins []string

	seen := make(map[string]struct{}, len(trades))
	for _, trade := range trades {
		if trade.IsOpen() {
			openCoins = append(openCoins, trade.Coin)
		}

		if _, ok := seen[trade.Coin]; !ok {
			seen[trade.Coin] = struct{}{}
			allCoins = append(allCoins, trade.Coin)
		}
	}

	var (
		prices map[string]domain.PriceResult
		icons  map[string]string
		eg     errgroup.Group
	)

	eg.Go(func() error {
		prices = t.prices.Prices(ctx, openCoins)
		return nil
	})

	eg.Go(func() error {
		icons = t.icons.FetchIcons(ctx, allCoins, t.iconDir)
		return nil
	})

	_ = eg.Wait()

	summary := Summarize(trades, prices, icons)
	t.logger.Info("portfolio overview",
		zap.Int("open", len(summary.Open)),
		zap.Int("closed", len(summary.Closed)),
		zap.String("total_profit", summary.TotalProfit.StringFixed(2)),
	)

	return summary
}

// Open starts a trade. Without a buy price the current market price is used;
// a failed lookup is returned with its message unchanged. The coin icon is
// fetched afterwards and never fails the trade.
func (t *Tracker) Open(
	ctx context.Context,
	coin string,
	mode AmountMode,
	amount decimal.Decimal,
	buyPrice decimal.NullDecimal,
) (*Trade, error) {
	coin = strings.ToLower(strings.TrimSpace(coin))

	price := buyPrice.Decimal
	if !buyPrice.Valid {
		p, err := t.prices.Price(ctx, coin)
		if err != nil {
			return nil, err
		}

		price = decimal.NewFromFloat(p)
	}

	trade, err := NewTrade(coin, mode, amount, price, t.now())
	if err != nil {
		return nil, err
	}

	if _, ok := t.icons.FetchIcon(ctx, coin, t.iconDir); !ok {
		t.logger.Debug("trade opened without icon", zap.String("coin", coin))
	}

	return trade, nil
}

// Close sells a trade. Without a sell price the current market price is
// used; a failed lookup yields ErrPriceUnavailable.
func (t *Tracker) Close(ctx context.Context, trade *Trade, sellPrice decimal.NullDecimal) error {
	price := sellPrice.Decimal
	if !sellPrice.Valid {
		p, err := t.prices.Price(ctx, trade.Coin)
		if err != nil {
			t.logger.Warn("price lookup failed while closing trade", zap.String("coin", trade.Coin), zap.Error(err))
			return fmt.Errorf("%w: %v", ErrPriceUnavailable, err)
		}

		price = decimal.NewFromFloat(p)
	}

	return trade.Close(price, t.now())
}

// Quote returns the current price of a coin for a close preview, making sure
// its icon is on disk. The price is invalid when the lookup failed.
func (t *Tracker) Quote(ctx context.Context, coin string) decimal.NullDecimal {
	var (
		price decimal.NullDecimal
		eg    errgroup.Group
	)

	eg.Go(func() error {
		if p, err := t.prices.Price(ctx, coin); err == nil {
			price = decimal.NewNullDecimal(decimal.NewFromFloat(p))
		}

		return nil
	})

	eg.Go(func() error {
		t.icons.FetchIcon(ctx, coin, t.iconDir)
		return nil
	})

	_ = eg.Wait()

	return price
}
