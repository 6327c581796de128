package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stvowns/portfolio-tracker/internal/model"
)

// YahooClient fetches quotes from the Yahoo Finance chart API. One client
// serves every asset class: equities and funds by ticker (THYAO.IS, AAPL),
// crypto pairs (BTC-USD), and precious metals via futures symbols (GC=F,
// SI=F) converted from troy ounce to gram.
type YahooClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewYahooClient creates a Yahoo Finance client. baseURL is normally
// https://query1.finance.yahoo.com; tests point it at a local server.
func NewYahooClient(baseURL string) *YahooClient {
	return &YahooClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// chartResponse maps the relevant part of the Yahoo Finance chart API
// response format.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *string `json:"error"`
	} `json:"chart"`
}

// CurrentPrice returns the latest quote for the asset's symbol.
// Gold and silver quotes come back per troy ounce and are converted to the
// per-gram prices the application records transactions in.
func (c *YahooClient) CurrentPrice(ctx context.Context, asset model.Asset) (float64, error) {
	if asset.Symbol == "" {
		return 0, fmt.Errorf("asset %s has no symbol: %w", asset.ID, ErrPriceUnavailable)
	}

	quote, err := c.latestQuote(ctx, asset.Symbol)
	if err != nil {
		return 0, err
	}

	switch asset.Type {
	case model.AssetTypeGold, model.AssetTypeSilver:
		return OuncesToGrams(quote), nil
	default:
		return quote, nil
	}
}

// latestQuote fetches the last five days of daily candles and returns the
// most recent close, falling back to the regular market price from the
// metadata when the close series is empty (e.g. outside trading hours).
func (c *YahooClient) latestQuote(ctx context.Context, symbol string) (float64, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=5d", c.baseURL, symbol)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPriceUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPriceUnavailable, err)
	}

	var response chartResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPriceUnavailable, err)
	}
	if response.Chart.Error != nil {
		return 0, fmt.Errorf("%w: yahoo error: %s", ErrPriceUnavailable, *response.Chart.Error)
	}
	if len(response.Chart.Result) == 0 {
		return 0, fmt.Errorf("%w: no results for symbol %s", ErrPriceUnavailable, symbol)
	}

	result := response.Chart.Result[0]
	if len(result.Indicators.Quote) > 0 {
		closes := result.Indicators.Quote[0].Close
		for i := len(closes) - 1; i >= 0; i-- {
			if closes[i] > 0 {
				return closes[i], nil
			}
		}
	}
	if result.Meta.RegularMarketPrice > 0 {
		return result.Meta.RegularMarketPrice, nil
	}

	return 0, fmt.Errorf("%w: no usable close for symbol %s", ErrPriceUnavailable, symbol)
}
