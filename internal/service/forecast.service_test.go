package service

import (
	"context"
	"math"
	"pricesim/internal/data"
	"pricesim/internal/domain"
	mock_repository "pricesim/internal/repository/mocks"
	"pricesim/internal/util"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_ForecastHandler_Run(t *testing.T) {
	start := util.NewDate(2025, 1, 1)
	end := util.NewDate(2025, 3, 1)
	ticker := domain.NewTicker("AAPL", "stock", start, end)

	// 30 closes growing 1% per day: zero volatility, so the whole
	// pipeline is deterministic regardless of seed
	closes := make([]domain.AssetPrice, 30)
	price := 100.0
	for i := range closes {
		closes[i] = domain.AssetPrice{
			Symbol: "AAPL",
			Price:  price,
			Date:   start.AddDate(0, 0, i),
		}
		price *= 1.01
	}
	lastClose := closes[len(closes)-1].Price

	t.Run("runs the full pipeline and persists the run", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		marketDataRepository := mock_repository.NewMockMarketDataRepository(ctrl)
		runRepository := mock_repository.NewMockSimulationRunRepository(ctrl)

		marketDataRepository.EXPECT().
			List(gomock.Any(), ticker).
			Return(closes, nil)

		var persisted domain.SimulationRun
		runRepository.EXPECT().
			Add(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, run domain.SimulationRun) error {
				persisted = run
				return nil
			})

		handler := ForecastHandler{
			PriceService:  data.NewPriceService(marketDataRepository, ""),
			RunRepository: runRepository,
		}

		result, err := handler.Run(context.Background(), ForecastInput{
			Ticker:     ticker,
			Days:       5,
			Iterations: 50,
		})
		require.NoError(t, err)

		require.InDelta(t, math.Log(1.01), result.Stats.MeanLogReturn, 1e-9)
		require.InDelta(t, 0.0, result.Stats.LogReturnStd, 1e-9)
		require.InDelta(t, lastClose, result.Stats.LastPrice, 1e-9)

		summary := result.Summary
		require.Equal(t, 30, summary.Metadata.HistoryLength)
		require.Equal(t, 5, summary.Metadata.SimulationLength)
		require.Equal(t, domain.ValiditySafe, summary.Metadata.Validity)
		require.InDelta(t, lastClose, summary.Metadata.StartPrice, 1e-9)
		require.InDelta(t, lastClose*math.Exp(math.Log(1.01)*5), summary.Performance.MeanFinalPrice, 1e-6)
		require.Equal(t, 1.0, summary.Performance.ProbabilityOfProfit)

		require.Equal(t, result.RunID, persisted.RunID)
		require.Equal(t, "AAPL", persisted.Symbol)
		require.Equal(t, 5, persisted.Days)
		require.Equal(t, 50, persisted.Iterations)
		require.Equal(t, summary, persisted.Summary)
	})

	t.Run("critical validity when simulating past half the history", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		marketDataRepository := mock_repository.NewMockMarketDataRepository(ctrl)

		marketDataRepository.EXPECT().
			List(gomock.Any(), ticker).
			Return(closes, nil)

		handler := ForecastHandler{
			PriceService: data.NewPriceService(marketDataRepository, ""),
		}

		result, err := handler.Run(context.Background(), ForecastInput{
			Ticker:     ticker,
			Days:       20,
			Iterations: 50,
		})
		require.NoError(t, err)
		require.Equal(t, domain.ValidityCritical, result.Summary.Metadata.Validity)
	})

	t.Run("rejects non-positive horizon and iteration counts", func(t *testing.T) {
		handler := ForecastHandler{}

		_, err := handler.Run(context.Background(), ForecastInput{Ticker: ticker, Days: 0, Iterations: 10})
		require.ErrorContains(t, err, "days")

		_, err = handler.Run(context.Background(), ForecastInput{Ticker: ticker, Days: 10, Iterations: -1})
		require.ErrorContains(t, err, "iterations")
	})

	t.Run("too-short history surfaces as an error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		marketDataRepository := mock_repository.NewMockMarketDataRepository(ctrl)

		marketDataRepository.EXPECT().
			List(gomock.Any(), ticker).
			Return(closes[:1], nil)

		handler := ForecastHandler{
			PriceService: data.NewPriceService(marketDataRepository, ""),
		}

		_, err := handler.Run(context.Background(), ForecastInput{
			Ticker:     ticker,
			Days:       5,
			Iterations: 10,
		})
		require.ErrorContains(t, err, "failed to fit return statistics")
	})
}
