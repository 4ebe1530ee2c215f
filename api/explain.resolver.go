package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type explainForecastRequest struct {
	RunID string `json:"runId"`
}

type explainForecastResponse struct {
	RunID      string `json:"runId"`
	Symbol     string `json:"symbol"`
	Commentary string `json:"commentary"`
}

func (m ApiHandler) explainForecast(c *gin.Context) {
	var requestBody explainForecastRequest
	if err := c.BindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to parse request body: %w", err), c, 400)
		return
	}

	if m.RunRepository == nil || m.GptRepository == nil {
		returnErrorJsonCode(fmt.Errorf("forecast explanations are not enabled"), c, 501)
		return
	}

	runID, err := uuid.Parse(requestBody.RunID)
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to parse run id %q: %w", requestBody.RunID, err), c, 400)
		return
	}

	run, err := m.RunRepository.Get(c, runID)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	commentary, err := m.GptRepository.ExplainForecast(c, run.Symbol, run.Summary)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, explainForecastResponse{
		RunID:      run.RunID.String(),
		Symbol:     run.Symbol,
		Commentary: commentary,
	})
}
