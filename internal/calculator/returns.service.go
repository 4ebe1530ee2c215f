package calculator

import (
	"fmt"
	"math"
	"pricesim/internal/domain"

	"github.com/montanaflynn/stats"
)

// ComputeReturnStats fits log-return statistics from a historical close
// series: log returns of consecutive closes, with NaN or non-positive
// pairs dropped. Returns the stats plus the number of observations used,
// which downstream feeds the validity check.
func ComputeReturnStats(prices []domain.AssetPrice) (*domain.ReturnStats, int, error) {
	if len(prices) < 2 {
		return nil, 0, fmt.Errorf("cannot compute log returns on %d prices; need at least 2", len(prices))
	}

	domain.SortPricesByDate(prices)

	logReturns := []float64{}
	for i := 1; i < len(prices); i++ {
		prev, curr := prices[i-1].Price, prices[i].Price
		if math.IsNaN(prev) || math.IsNaN(curr) || prev <= 0 || curr <= 0 {
			continue
		}
		logReturns = append(logReturns, math.Log(curr/prev))
	}
	if len(logReturns) < 2 {
		return nil, 0, fmt.Errorf("only %d usable log returns in series; need at least 2 to estimate volatility", len(logReturns))
	}

	mean, err := stats.Mean(logReturns)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to compute mean log return: %w", err)
	}
	stdev, err := stats.StandardDeviationSample(logReturns)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to compute log return stdev: %w", err)
	}

	lastPrice := prices[len(prices)-1].Price
	if !(lastPrice > 0) {
		return nil, 0, fmt.Errorf("last observed price must be strictly positive, got %f", lastPrice)
	}

	return &domain.ReturnStats{
		MeanLogReturn: mean,
		LogReturnStd:  stdev,
		LastPrice:     lastPrice,
	}, len(prices), nil
}
