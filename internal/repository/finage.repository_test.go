package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"pricesim/internal/domain"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func Test_FinageRepository_List(t *testing.T) {
	t.Run("decodes aggregate bars into dated closes", func(t *testing.T) {
		var gotPath, gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"symbol": "AAPL",
				"totalResults": 2,
				"results": [
					{"o": 100.5, "h": 103, "l": 99.8, "c": 102.25, "v": 1200000, "t": 1764633600000},
					{"o": 102.3, "h": 104, "l": 101.5, "c": 103.75, "v": 900000, "t": 1764720000000}
				]
			}`))
		}))
		defer server.Close()

		handler := &FinageRepositoryHandler{
			HttpClient: server.Client(),
			BaseUrl:    server.URL,
			ApiKey:     "test-key",
		}

		ticker := domain.NewTicker("aapl", "Stock",
			time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		)

		prices, err := handler.List(context.Background(), ticker)
		require.NoError(t, err)

		require.Equal(t, "/agg/stock/AAPL/1/day/2025-12-01/2025-12-31", gotPath)
		require.Equal(t, "apikey=test-key", gotQuery)

		expected := []domain.AssetPrice{
			{Symbol: "AAPL", Price: 102.25, Date: time.UnixMilli(1764633600000).UTC()},
			{Symbol: "AAPL", Price: 103.75, Date: time.UnixMilli(1764720000000).UTC()},
		}
		require.Empty(t, cmp.Diff(expected, prices))
	})

	t.Run("non-200 responses surface as errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "invalid api key"}`))
		}))
		defer server.Close()

		handler := &FinageRepositoryHandler{
			HttpClient: server.Client(),
			BaseUrl:    server.URL,
			ApiKey:     "bad-key",
		}

		ticker := domain.NewTicker("AAPL", "stock",
			time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		)

		_, err := handler.List(context.Background(), ticker)
		require.ErrorContains(t, err, "status 401")
		require.ErrorContains(t, err, "invalid api key")
	})
}
