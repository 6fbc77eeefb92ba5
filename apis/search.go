package apis

import (
	"context"
	"net/url"
	"strings"

	"github.com/sljivkov/tradetracker/domain"
)

// ResolveSymbol maps a user-entered symbol or name to a CoinGecko coin id.
// The first search result whose symbol or name equals the input, ignoring
// case, wins. Without an exact match the error suggests the first result.
func (g *CoinGecko) ResolveSymbol(ctx context.Context, symbol string) (string, error) {
	params := url.Values{}
	params.Add("query", symbol)

	var res SearchResponse
	if err := g.getJSON(ctx, "search", params, g.cfg.HTTPTimeout, &res); err != nil {
		return "", g.classify(symbol, err)
	}

	if len(res.Coins) == 0 {
		return "", domain.NewNotFound(symbol)
	}

	for _, coin := range res.Coins {
		if strings.EqualFold(coin.Symbol, symbol) || strings.EqualFold(coin.Name, symbol) {
			return coin.ID, nil
		}
	}

	first := res.Coins[0]

	return "", domain.NewSuggestion(symbol, first.Name, first.Symbol)
}
