package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"pricesim/internal/data"
	"pricesim/internal/domain"
	mock_repository "pricesim/internal/repository/mocks"
	"pricesim/internal/service"
	"pricesim/internal/util"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_forecast(t *testing.T) {
	gin.SetMode(gin.TestMode)

	closes := make([]domain.AssetPrice, 40)
	start := util.NewDate(2025, 1, 1)
	price := 100.0
	for i := range closes {
		closes[i] = domain.AssetPrice{
			Symbol: "AAPL",
			Price:  price,
			Date:   start.AddDate(0, 0, i),
		}
		price *= 1.005
	}

	newHandler := func(t *testing.T) ApiHandler {
		ctrl := gomock.NewController(t)
		marketDataRepository := mock_repository.NewMockMarketDataRepository(ctrl)
		marketDataRepository.EXPECT().
			List(gomock.Any(), gomock.Any()).
			Return(closes, nil).
			AnyTimes()

		return ApiHandler{
			ForecastHandler: service.ForecastHandler{
				PriceService: data.NewPriceService(marketDataRepository, ""),
			},
		}
	}

	t.Run("returns a full report", func(t *testing.T) {
		router := newHandler(t).InitializeRouterEngine()

		body, err := json.Marshal(map[string]any{
			"symbol":     "AAPL",
			"start":      "2025-01-01",
			"end":        "2025-02-10",
			"days":       10,
			"iterations": 100,
			"seed":       7,
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/forecast", bytes.NewReader(body))
		router.ServeHTTP(w, req)

		require.Equal(t, 200, w.Code, w.Body.String())

		response := forecastResponse{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

		require.Equal(t, "AAPL", response.Symbol)
		require.NotEmpty(t, response.RunID)
		require.Equal(t, 40, response.Report.Metadata.HistoryLength)
		require.Equal(t, 10, response.Report.Metadata.SimulationLength)
		require.Equal(t, domain.ValiditySafe, response.Report.Metadata.Validity)
		require.Greater(t, response.Report.Metadata.StartPrice, 0.0)
		require.GreaterOrEqual(t, response.Report.Performance.ProbabilityOfProfit, 0.0)
		require.LessOrEqual(t, response.Report.Performance.ProbabilityOfProfit, 1.0)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		router := newHandler(t).InitializeRouterEngine()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/forecast", bytes.NewReader([]byte("{not json")))
		router.ServeHTTP(w, req)

		require.Equal(t, 400, w.Code)
	})

	t.Run("missing symbol returns 400", func(t *testing.T) {
		router := newHandler(t).InitializeRouterEngine()

		body := []byte(`{"start": "2025-01-01", "days": 10, "iterations": 100}`)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/forecast", bytes.NewReader(body))
		router.ServeHTTP(w, req)

		require.Equal(t, 400, w.Code)
		require.Contains(t, w.Body.String(), "symbol is required")
	})

	t.Run("non-positive days returns 400", func(t *testing.T) {
		router := newHandler(t).InitializeRouterEngine()

		body := []byte(`{"symbol": "AAPL", "start": "2025-01-01", "days": 0, "iterations": 100}`)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/forecast", bytes.NewReader(body))
		router.ServeHTTP(w, req)

		require.Equal(t, 400, w.Code)
		require.Contains(t, w.Body.String(), "days must be > 0")
	})
}
