// Package apis provides external price feed integrations
package apis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/sljivkov/tradetracker/cache"
	"github.com/sljivkov/tradetracker/config"
	"github.com/sljivkov/tradetracker/domain"
	"github.com/sljivkov/tradetracker/pricefeed"
)

const (
	apiKeyHeader  = "x-cg-demo-api-key"
	quoteCurrency = "usd"
)

var (
	_ pricefeed.PriceProvider = (*CoinGecko)(nil)
	_ pricefeed.IconProvider  = (*CoinGecko)(nil)
)

// CoinGecko implements a price feed using the CoinGecko API. All outbound
// requests of one instance share a single throttle, so concurrent lookups
// never start two requests closer than cfg.MinRequestInterval.
type CoinGecko struct {
	cfg       config.Config
	client    *http.Client
	throttle  *throttle
	prices    *cache.Cache[float64]
	ownsCache bool
	logger    *zap.Logger
}

// Option customizes a CoinGecko client
type Option func(*CoinGecko)

// WithPriceCache shares a price cache that outlives the client. The client
// never stops a cache it was given.
func WithPriceCache(c *cache.Cache[float64]) Option {
	return func(g *CoinGecko) {
		g.prices = c
	}
}

// WithLogger sets the logger, zap.NewNop by default
func WithLogger(l *zap.Logger) Option {
	return func(g *CoinGecko) {
		g.logger = l
	}
}

// WithHTTPClient replaces the client's own HTTP session
func WithHTTPClient(c *http.Client) Option {
	return func(g *CoinGecko) {
		g.client = c
	}
}

// NewCoinGecko creates a new CoinGecko price feed instance. Zero durations in
// cfg fall back to the defaults of config.Defaults.
func NewCoinGecko(cfg config.Config, opts ...Option) *CoinGecko {
	cfg = withDefaults(cfg)

	g := &CoinGecko{
		cfg: cfg,
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		throttle: newThrottle(cfg.MinRequestInterval),
		logger:   zap.NewNop(),
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.prices == nil {
		g.prices = cache.New[float64](cfg.PriceTTL)
		g.ownsCache = true
	}

	return g
}

func withDefaults(cfg config.Config) config.Config {
	def := config.Defaults()

	if cfg.URL == "" {
		cfg.URL = def.URL
	}
	if cfg.PriceTTL <= 0 {
		cfg.PriceTTL = def.PriceTTL
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = def.HTTPTimeout
	}
	if cfg.IconTimeout <= 0 {
		cfg.IconTimeout = def.IconTimeout
	}

	return cfg
}

// Close releases idle connections and stops a cache the client created
// itself.
func (g *CoinGecko) Close() {
	g.client.CloseIdleConnections()
	g.logger.Debug("closing coingecko client", zap.Int("cached_prices", g.prices.Len()))

	if g.ownsCache {
		g.prices.Stop()
	}
}

// transportError marks a failure of the HTTP exchange itself: throttle wait,
// dial, read, or a non-200 status.
type transportError struct {
	err error
}

func (e *transportError) Error() string {
	return e.err.Error()
}

func (e *transportError) Unwrap() error {
	return e.err
}

// endpoint builds an API URL below cfg.URL
func (g *CoinGecko) endpoint(path string, params url.Values) string {
	fullURL := fmt.Sprintf("%s/%s", strings.TrimRight(g.cfg.URL, "/"), path)
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	return fullURL
}

// do waits for the throttle, issues a GET with its own timeout and passes the
// body of a 200 response to handle. API calls carry the key header; icon
// downloads go to the image host without it.
func (g *CoinGecko) do(
	ctx context.Context,
	rawURL string,
	timeout time.Duration,
	apiCall bool,
	handle func(io.Reader) error,
) error {
	release, err := g.throttle.acquire(ctx)
	if err != nil {
		return &transportError{errors.Wrap(err, "throttle wait")}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		release()
		return errors.Wrap(err, "failed to create request")
	}

	if apiCall {
		req.Header.Set("Accept", "application/json")
		req.Header.Set(apiKeyHeader, g.cfg.APIKey)
	}

	resp, err := g.send(req, release)
	if err != nil {
		return &transportError{errors.Wrap(err, "failed to fetch")}
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &transportError{errors.Errorf("API returned non-200 status: %d", resp.StatusCode)}
	}

	return handle(resp.Body)
}

// send hands req to the HTTP client and releases the throttle slot once the
// transport returns, panics included.
func (g *CoinGecko) send(req *http.Request, release func()) (*http.Response, error) {
	defer release()

	return g.client.Do(req)
}

// getJSON performs a throttled API call and decodes the response into out
func (g *CoinGecko) getJSON(ctx context.Context, path string, params url.Values, timeout time.Duration, out any) error {
	return g.do(ctx, g.endpoint(path, params), timeout, true, func(body io.Reader) error {
		if err := json.NewDecoder(body).Decode(out); err != nil {
			return errors.Wrap(err, "failed to decode response")
		}

		return nil
	})
}

// classify turns a request error into the caller-facing LookupError. The
// transport detail only reaches the log.
func (g *CoinGecko) classify(symbol string, err error) *domain.LookupError {
	var le *domain.LookupError
	if errors.As(err, &le) {
		return le
	}

	g.logger.Debug("coingecko request failed", zap.String("coin", symbol), zap.Error(err))

	var te *transportError
	if errors.As(err, &te) {
		return domain.NewServiceUnavailable(symbol, err)
	}

	return domain.NewUnexpected(symbol, err)
}
