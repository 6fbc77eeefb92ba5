// Package pricefeed provides the price and icon interfaces consumed by the portfolio
package pricefeed

import (
	"context"

	"github.com/sljivkov/tradetracker/domain"
)

// PriceProvider resolves coin symbols and returns their USD prices
type PriceProvider interface {
	// Price returns the current USD price for a single symbol
	Price(ctx context.Context, symbol string) (float64, error)

	// Prices looks up every symbol concurrently, keyed by input symbol
	Prices(ctx context.Context, symbols []string) map[string]domain.PriceResult
}

// IconProvider stores coin icons under a directory and returns their
// relative paths
type IconProvider interface {
	// FetchIcon returns the icon path for a symbol, false when none is available
	FetchIcon(ctx context.Context, symbol, dir string) (string, bool)

	// FetchIcons fetches icons for distinct symbols concurrently; symbols
	// without an icon map to ""
	FetchIcons(ctx context.Context, symbols []string, dir string) map[string]string
}
