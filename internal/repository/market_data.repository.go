package repository

import (
	"context"
	"pricesim/internal/domain"
)

//go:generate mockgen -destination=mocks/market_data.go -package=mock_repository pricesim/internal/repository MarketDataRepository

// MarketDataRepository retrieves a historical daily close series for an
// asset from a remote provider.
type MarketDataRepository interface {
	List(ctx context.Context, ticker domain.Ticker) ([]domain.AssetPrice, error)
}
