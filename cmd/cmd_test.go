package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeAPI(t *testing.T) *httptest.Server {
	var srv *httptest.Server

	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v3/search":
			coins := []map[string]string{}
			if r.URL.Query().Get("query") == "doge" {
				coins = append(coins, map[string]string{"id": "dogecoin", "name": "Dogecoin", "symbol": "doge"})
			}
			json.NewEncoder(w).Encode(map[string]any{"coins": coins})
		case "/api/v3/simple/price":
			w.Write([]byte(`{"dogecoin":{"usd":0.15}}`))
		case "/api/v3/coins/dogecoin":
			json.NewEncoder(w).Encode(map[string]any{
				"id":    "dogecoin",
				"image": map[string]string{"large": srv.URL + "/img/doge.png"},
			})
		case "/img/doge.png":
			w.Write([]byte("png"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	return srv
}

func setupEnv(t *testing.T) string {
	t.Helper()

	srv := newFakeAPI(t)
	dir := t.TempDir()

	t.Setenv("COINGECKO_API_KEY", "CG-test")
	t.Setenv("COINGECKO_URL", srv.URL+"/api/v3")
	t.Setenv("MIN_REQUEST_INTERVAL", "0s")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("ICON_DIR", dir)

	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)

	err := Execute(context.Background())

	return out.String(), err
}

func TestPriceCommand(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "price", "doge", "nope", "doge")
	require.NoError(t, err)
	assert.Contains(t, out, "$0.15")
	assert.Contains(t, out, "Coin 'nope' not found")
	assert.Regexp(t, `nope\s+not_found\s+Coin 'nope' not found`, out)
	assert.Regexp(t, `doge\s+ok\s+\$0\.15`, out)

	_, err = run(t, "price", "nope")
	assert.EqualError(t, err, "no prices available")
}

func TestIconsCommand(t *testing.T) {
	dir := setupEnv(t)
	iconDir = ""

	out, err := run(t, "icons", "DOGE", "nope")
	require.NoError(t, err)
	assert.Contains(t, out, "DOGE\tcoins/doge.png")
	assert.Contains(t, out, "nope\tno icon")

	data, err := os.ReadFile(filepath.Join(dir, "coins", "doge.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
}

func TestOpenCommand(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "open", "doge", "150", "--mode", "usd", "--price", "")
	require.NoError(t, err)
	assert.Contains(t, out, "coin:       DOGE")
	assert.Contains(t, out, "coins:      1000")

	_, err = run(t, "open", "doge", "lots", "--mode", "usd")
	assert.ErrorContains(t, err, "valid number for amount")

	_, err = run(t, "open", "doge", "1", "--mode", "eur")
	assert.Error(t, err)
}

func TestPortfolioCommand(t *testing.T) {
	setupEnv(t)

	ledger := filepath.Join(t.TempDir(), "trades.yaml")
	require.NoError(t, os.WriteFile(ledger, []byte(`
trades:
  - coin: doge
    amount_usd: "100"
    buy_price: "0.10"
  - coin: nope
    amount_usd: "50"
    buy_price: "1"
  - coin: doge
    coin_amount: "1000"
    buy_price: "0.20"
    sell_price: "0.25"
`), 0o600))

	out, err := run(t, "portfolio", "--ledger", ledger)
	require.NoError(t, err)

	assert.Contains(t, out, "DOGE")
	assert.Contains(t, out, "$150.00") // 1000 doge now worth 150
	assert.Contains(t, out, "coins/doge.png")
	assert.Contains(t, out, "realized profit")
	assert.Contains(t, out, "$50.00") // realized
}
