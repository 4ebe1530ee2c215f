package repository

import (
	"context"
	"fmt"
	"pricesim/internal/domain"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/shopspring/decimal"
)

type YahooRepositoryHandler struct{}

func NewYahooRepository() MarketDataRepository {
	return YahooRepositoryHandler{}
}

// List iterates daily chart bars from Yahoo and keeps the adjusted close,
// so splits and dividends don't show up as phantom returns.
func (h YahooRepositoryHandler) List(ctx context.Context, ticker domain.Ticker) ([]domain.AssetPrice, error) {
	start := ticker.Start
	end := ticker.End
	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Symbol:   ticker.Symbol,
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	prices := []domain.AssetPrice{}
	for iter.Next() {
		// yahoo occasionally reports zero bars on halted days
		if iter.Bar().AdjClose.LessThanOrEqual(decimal.Zero) {
			continue
		}
		prices = append(prices, domain.AssetPrice{
			Symbol: ticker.Symbol,
			Price:  iter.Bar().AdjClose.InexactFloat64(),
			Date:   time.Unix(int64(iter.Bar().Timestamp), 0).UTC(),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get prices for %s: %w", ticker.Symbol, err)
	}

	return prices, nil
}
