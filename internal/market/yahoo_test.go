package market_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stvowns/portfolio-tracker/internal/market"
	"github.com/stvowns/portfolio-tracker/internal/model"
)

func chartBody(closes string, marketPrice float64) string {
	return fmt.Sprintf(`{
		"chart": {
			"result": [{
				"meta": {"currency": "USD", "symbol": "TEST", "regularMarketPrice": %g},
				"timestamp": [1700000000, 1700086400],
				"indicators": {"quote": [{"close": [%s]}]}
			}],
			"error": null
		}
	}`, marketPrice, closes)
}

func TestCurrentPrice(t *testing.T) {
	t.Run("returns the most recent close", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.Path, "/v8/finance/chart/THYAO.IS")
			fmt.Fprint(w, chartBody("310.0, 315.5", 320))
		}))
		defer server.Close()

		client := market.NewYahooClient(server.URL)
		price, err := client.CurrentPrice(context.Background(), model.Asset{
			ID: "a1", Type: model.AssetTypeStock, Symbol: "THYAO.IS",
		})
		require.NoError(t, err)
		assert.Equal(t, 315.5, price)
	})

	t.Run("skips trailing zero closes", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, chartBody("310.0, 0", 320))
		}))
		defer server.Close()

		client := market.NewYahooClient(server.URL)
		price, err := client.CurrentPrice(context.Background(), model.Asset{
			ID: "a1", Type: model.AssetTypeStock, Symbol: "THYAO.IS",
		})
		require.NoError(t, err)
		assert.Equal(t, 310.0, price)
	})

	t.Run("falls back to the regular market price", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, chartBody("0, 0", 320))
		}))
		defer server.Close()

		client := market.NewYahooClient(server.URL)
		price, err := client.CurrentPrice(context.Background(), model.Asset{
			ID: "a1", Type: model.AssetTypeStock, Symbol: "THYAO.IS",
		})
		require.NoError(t, err)
		assert.Equal(t, 320.0, price)
	})

	t.Run("converts metal quotes from troy ounce to gram", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, chartBody("2488.2781", 0))
		}))
		defer server.Close()

		client := market.NewYahooClient(server.URL)
		price, err := client.CurrentPrice(context.Background(), model.Asset{
			ID: "g1", Type: model.AssetTypeGold, Symbol: "GC=F",
		})
		require.NoError(t, err)
		assert.InDelta(t, 80.0, price, 0.001, "2488.2781 per ounce is ~80 per gram")
	})

	t.Run("asset without symbol", func(t *testing.T) {
		client := market.NewYahooClient("http://unused")
		_, err := client.CurrentPrice(context.Background(), model.Asset{ID: "c1", Type: model.AssetTypeCash})
		assert.ErrorIs(t, err, market.ErrPriceUnavailable)
	})

	t.Run("provider error payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"chart": {"result": [], "error": "Not Found"}}`)
		}))
		defer server.Close()

		client := market.NewYahooClient(server.URL)
		_, err := client.CurrentPrice(context.Background(), model.Asset{
			ID: "a1", Type: model.AssetTypeStock, Symbol: "GONE",
		})
		assert.ErrorIs(t, err, market.ErrPriceUnavailable)
	})
}

func TestOuncesToGrams(t *testing.T) {
	assert.InDelta(t, 1.0, market.OuncesToGrams(31.1034768), 1e-9)
}

func TestCoinPrice(t *testing.T) {
	quarter := market.GoldCoinTypes[1]
	require.Equal(t, "quarter", quarter.ID)
	assert.Equal(t, 4375.0, market.CoinPrice(2500, quarter))
}
