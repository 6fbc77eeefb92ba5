package apis

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sljivkov/tradetracker/logger"
)

const (
	coinsDir  = "coins"
	iconExt   = ".png"
	chunkSize = 8 * 1024
)

// IconPath returns the path of a coin icon relative to the icon directory,
// always slash separated so it can be used in URLs.
func IconPath(symbol string) string {
	return path.Join(coinsDir, strings.ToLower(symbol)+iconExt)
}

// FetchIcon stores the icon of a coin under dir/coins/<symbol>.png and
// returns its path relative to dir, slash separated, as IconPath does. An
// existing file is returned as is, without any request. Every failure is
// logged and reported as false.
func (g *CoinGecko) FetchIcon(ctx context.Context, symbol, dir string) (rel string, ok bool) {
	coin := strings.ToLower(symbol)
	log := logger.Coin(g.logger, coin)

	defer func() {
		if r := recover(); r != nil {
			log.Error("icon fetch panicked", zap.Any("panic", r))
			rel, ok = "", false
		}
	}()

	if !validIconName(coin) {
		log.Warn("invalid coin symbol for icon")
		return "", false
	}

	target := filepath.Join(dir, coinsDir, coin+iconExt)
	if _, err := os.Stat(target); err == nil {
		return IconPath(coin), true
	}

	coinID, err := g.ResolveSymbol(ctx, coin)
	if err != nil {
		log.Warn("invalid coin symbol", zap.Error(err))
		return "", false
	}

	iconURL, err := g.iconURL(ctx, coinID)
	if err != nil {
		log.Warn("failed to fetch coin data", zap.String("id", coinID), zap.Error(err))
		return "", false
	}

	if iconURL == "" {
		log.Warn("icon URL not found", zap.String("id", coinID))
		return "", false
	}

	if err := g.download(ctx, iconURL, target); err != nil {
		log.Warn("failed to save icon", zap.String("url", iconURL), zap.Error(err))
		return "", false
	}

	log.Info("saved coin icon", zap.String("path", target))

	return IconPath(coin), true
}

// FetchIcons fetches the icons of the distinct symbols concurrently. Symbols
// without an icon map to "".
func (g *CoinGecko) FetchIcons(ctx context.Context, symbols []string, dir string) map[string]string {
	distinct := unique(symbols)
	paths := make([]string, len(distinct))

	var eg errgroup.Group
	for i, symbol := range distinct {
		eg.Go(func() error {
			if p, ok := g.FetchIcon(ctx, symbol, dir); ok {
				paths[i] = p
			}

			return nil
		})
	}

	_ = eg.Wait()

	out := make(map[string]string, len(distinct))
	for i, symbol := range distinct {
		out[symbol] = paths[i]
	}

	return out
}

// iconURL reads the large image URL from the coin's metadata
func (g *CoinGecko) iconURL(ctx context.Context, coinID string) (string, error) {
	params := url.Values{}
	params.Add("localization", "false")
	params.Add("tickers", "false")
	params.Add("market_data", "false")
	params.Add("community_data", "false")
	params.Add("developer_data", "false")
	params.Add("sparkline", "false")

	var info CoinInfo
	if err := g.getJSON(ctx, "coins/"+url.PathEscape(coinID), params, g.cfg.IconTimeout, &info); err != nil {
		return "", err
	}

	return info.Image.Large, nil
}

// download streams the icon into a temporary file next to target and moves
// it into place once complete, so readers never see a partial image.
func (g *CoinGecko) download(ctx context.Context, iconURL, target string) error {
	return g.do(ctx, iconURL, g.cfg.IconTimeout, false, func(body io.Reader) error {
		dir := filepath.Dir(target)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "failed to create icon directory")
		}

		tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(target), uuid.NewString()))

		f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err != nil {
			return errors.Wrap(err, "failed to create icon file")
		}

		if err := copyChunks(f, body); err != nil {
			f.Close()
			os.Remove(tmp)

			return err
		}

		if err := f.Close(); err != nil {
			os.Remove(tmp)
			return errors.Wrap(err, "failed to close icon file")
		}

		if err := os.Rename(tmp, target); err != nil {
			os.Remove(tmp)
			return errors.Wrap(err, "failed to move icon into place")
		}

		return nil
	})
}

// copyChunks copies src to dst chunkSize bytes at a time
func copyChunks(dst io.Writer, src io.Reader) error {
	buf := make([]byte, chunkSize)

	for {
		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return errors.Wrap(werr, "failed to write icon")
			}
		}

		if err == io.EOF {
			return nil
		}

		if err != nil {
			return &transportError{errors.Wrap(err, "failed to read icon")}
		}
	}
}

// validIconName rejects symbols that cannot be used as a plain file name
func validIconName(coin string) bool {
	if coin == "" || coin == "." || coin == ".." {
		return false
	}

	return !strings.ContainsAny(coin, `/\`) && !strings.ContainsRune(coin, 0)
}

func unique(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))

	for _, s := range symbols {
		if _, ok := seen[s]; ok {
			continue
		}

		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}
