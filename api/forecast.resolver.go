package api

import (
	"fmt"
	"pricesim/internal/domain"
	"pricesim/internal/service"
	"time"

	"github.com/gin-gonic/gin"
)

type forecastRequest struct {
	Symbol    string `json:"symbol"`
	AssetType string `json:"assetType"` // "stock" or "crypto"; defaults to stock
	Start     string `json:"start"`     // YYYY-MM-DD
	End       string `json:"end"`       // YYYY-MM-DD; defaults to today

	Days          int      `json:"days"`
	Iterations    int      `json:"iterations"`
	AnnualPeriods int      `json:"annualPeriods"`
	RiskFreeRate  *float64 `json:"riskFreeRate"`
	Seed          *int64   `json:"seed"`
}

type forecastResponse struct {
	RunID  string               `json:"runId"`
	Symbol string               `json:"symbol"`
	Report domain.SummaryReport `json:"report"`
}

func (m ApiHandler) forecast(c *gin.Context) {
	var requestBody forecastRequest
	if err := c.BindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to parse request body: %w", err), c, 400)
		return
	}

	input, err := requestBody.toForecastInput()
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	result, err := m.ForecastHandler.Run(c, *input)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, forecastResponse{
		RunID:  result.RunID.String(),
		Symbol: input.Ticker.Symbol,
		Report: result.Summary,
	})
}

func (r forecastRequest) toForecastInput() (*service.ForecastInput, error) {
	if r.Symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if r.Days <= 0 {
		return nil, fmt.Errorf("days must be > 0, got %d", r.Days)
	}
	if r.Iterations <= 0 {
		return nil, fmt.Errorf("iterations must be > 0, got %d", r.Iterations)
	}

	start, err := time.Parse(time.DateOnly, r.Start)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start date %q: %w", r.Start, err)
	}
	end := time.Now().UTC()
	if r.End != "" {
		end, err = time.Parse(time.DateOnly, r.End)
		if err != nil {
			return nil, fmt.Errorf("failed to parse end date %q: %w", r.End, err)
		}
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("start date %s must be before end date %s", r.Start, r.End)
	}

	assetType := r.AssetType
	if assetType == "" {
		assetType = "stock"
	}

	return &service.ForecastInput{
		Ticker:        domain.NewTicker(r.Symbol, assetType, start, end),
		Days:          r.Days,
		Iterations:    r.Iterations,
		AnnualPeriods: r.AnnualPeriods,
		RiskFreeRate:  r.RiskFreeRate,
		Seed:          r.Seed,
	}, nil
}
