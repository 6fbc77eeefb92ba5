package apis

// CurrencyPrice represents the price response structure from CoinGecko.
// USD is nil when the quote is missing from the response.
type CurrencyPrice struct {
	USD *float64 `json:"usd"`
}

// SearchResponse is the body of /search
type SearchResponse struct {
	Coins []SearchCoin `json:"coins"`
}

// SearchCoin is one candidate returned by /search
type SearchCoin struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// CoinInfo is the subset of /coins/{id} used for icons
type CoinInfo struct {
	ID     string    `json:"id"`
	Symbol string    `json:"symbol"`
	Image  CoinImage `json:"image"`
}

// CoinImage holds the icon URLs of a coin
type CoinImage struct {
	Thumb string `json:"thumb"`
	Small string `json:"small"`
	Large string `json:"large"`
}
