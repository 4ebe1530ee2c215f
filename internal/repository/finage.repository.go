package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"pricesim/internal/domain"
	"time"
)

const finageBaseUrl = "https://api.finage.co.uk"

type FinageRepositoryHandler struct {
	HttpClient *http.Client
	BaseUrl    string
	ApiKey     string
}

func NewFinageRepository(apiKey string) MarketDataRepository {
	return &FinageRepositoryHandler{
		HttpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		BaseUrl: finageBaseUrl,
		ApiKey:  apiKey,
	}
}

type finageAggregateBar struct {
	Open      float64 `json:"o"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	Close     float64 `json:"c"`
	Volume    float64 `json:"v"`
	Timestamp int64   `json:"t"`
}

type finageAggregateResponse struct {
	Symbol       string               `json:"symbol"`
	TotalResults int                  `json:"totalResults"`
	Results      []finageAggregateBar `json:"results"`
}

// List pulls daily aggregates from the Finage agg endpoint and flattens
// them to dated closes. Bar timestamps come back in epoch milliseconds.
func (h *FinageRepositoryHandler) List(ctx context.Context, ticker domain.Ticker) ([]domain.AssetPrice, error) {
	endpoint := h.BaseUrl + ticker.AggregatePath() + "?apikey=" + url.QueryEscape(h.ApiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build finage request: %w", err)
	}

	resp, err := h.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get aggregates for %s: %w", ticker.Symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("finage returned status %d for %s: %s", resp.StatusCode, ticker.Symbol, string(body))
	}

	response := finageAggregateResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode finage response for %s: %w", ticker.Symbol, err)
	}

	prices := make([]domain.AssetPrice, 0, len(response.Results))
	for _, bar := range response.Results {
		prices = append(prices, domain.AssetPrice{
			Symbol: ticker.Symbol,
			Price:  bar.Close,
			Date:   time.UnixMilli(bar.Timestamp).UTC(),
		})
	}

	return prices, nil
}
