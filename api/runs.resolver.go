package api

import (
	"fmt"
	"pricesim/internal/domain"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type runResponse struct {
	RunID      string               `json:"runId"`
	Symbol     string               `json:"symbol"`
	Days       int                  `json:"days"`
	Iterations int                  `json:"iterations"`
	CreatedAt  string               `json:"createdAt"`
	Report     domain.SummaryReport `json:"report"`
}

func toRunResponse(run domain.SimulationRun) runResponse {
	return runResponse{
		RunID:      run.RunID.String(),
		Symbol:     run.Symbol,
		Days:       run.Days,
		Iterations: run.Iterations,
		CreatedAt:  run.CreatedAt.Format(time.RFC3339),
		Report:     run.Summary,
	}
}

func (m ApiHandler) getRun(c *gin.Context) {
	if m.RunRepository == nil {
		returnErrorJsonCode(fmt.Errorf("run persistence is not enabled"), c, 501)
		return
	}

	runID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to parse run id %q: %w", c.Param("id"), err), c, 400)
		return
	}

	run, err := m.RunRepository.Get(c, runID)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, toRunResponse(*run))
}

func (m ApiHandler) listRuns(c *gin.Context) {
	if m.RunRepository == nil {
		returnErrorJsonCode(fmt.Errorf("run persistence is not enabled"), c, 501)
		return
	}

	symbol := c.Query("symbol")
	if symbol == "" {
		returnErrorJsonCode(fmt.Errorf("symbol query param is required"), c, 400)
		return
	}

	runs, err := m.RunRepository.List(c, symbol)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := make([]runResponse, 0, len(runs))
	for _, run := range runs {
		out = append(out, toRunResponse(run))
	}

	c.JSON(200, out)
}
