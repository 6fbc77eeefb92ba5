package apis

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sljivkov/tradetracker/domain"
)

// Price returns the USD price of a symbol. A cached price for the exact
// input string is returned without touching the network; otherwise the
// symbol is resolved and the price cached for cfg.PriceTTL.
func (g *CoinGecko) Price(ctx context.Context, symbol string) (float64, error) {
	if price, ok := g.prices.Get(symbol); ok {
		return price, nil
	}

	coinID, err := g.ResolveSymbol(ctx, symbol)
	if err != nil {
		return 0, err
	}

	params := url.Values{}
	params.Add("ids", coinID)
	params.Add("vs_currencies", quoteCurrency)

	var raw map[string]CurrencyPrice
	if err := g.getJSON(ctx, "simple/price", params, g.cfg.HTTPTimeout, &raw); err != nil {
		return 0, g.classify(symbol, err)
	}

	data, ok := raw[coinID]
	if !ok || data.USD == nil {
		return 0, domain.NewDataUnavailable(symbol)
	}

	g.prices.Set(symbol, *data.USD)
	g.logger.Debug("fetched price",
		zap.String("coin", symbol),
		zap.String("id", coinID),
		zap.Float64("usd", *data.USD),
		zap.Duration("ttl", g.prices.TTL()),
	)

	return *data.USD, nil
}

// Prices looks up every symbol concurrently. Each input position runs its
// own lookup; the map is keyed by input symbol, so duplicates share a key.
// A failing or panicking lookup only affects its own entry.
func (g *CoinGecko) Prices(ctx context.Context, symbols []string) map[string]domain.PriceResult {
	results := make([]domain.PriceResult, len(symbols))

	var eg errgroup.Group
	for i, symbol := range symbols {
		eg.Go(func() error {
			results[i] = g.safePrice(ctx, symbol)
			return nil
		})
	}

	_ = eg.Wait()

	out := make(map[string]domain.PriceResult, len(symbols))
	for i, symbol := range symbols {
		out[symbol] = results[i]
	}

	return out
}

func (g *CoinGecko) safePrice(ctx context.Context, symbol string) (res domain.PriceResult) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("price lookup panicked", zap.String("coin", symbol), zap.Any("panic", r))
			res = domain.Failure(domain.NewUnexpected(symbol, fmt.Errorf("%v", r)))
		}
	}()

	price, err := g.Price(ctx, symbol)
	if err != nil {
		return domain.Failure(err)
	}

	return domain.Success(price)
}
