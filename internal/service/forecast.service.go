package service

import (
	"context"
	"fmt"
	"pricesim/internal/calculator"
	"pricesim/internal/data"
	"pricesim/internal/domain"
	"pricesim/internal/logger"
	"pricesim/internal/montecarlo"
	"pricesim/internal/repository"
	"time"

	"github.com/google/uuid"
)

type ForecastInput struct {
	Ticker        domain.Ticker
	Days          int
	Iterations    int
	AnnualPeriods int      // 0 means default (252)
	RiskFreeRate  *float64 // nil means default (0.04)
	Seed          *int64   // nil means seed from time
}

const DefaultRiskFreeRate = 0.04

type ForecastResult struct {
	RunID   uuid.UUID
	Stats   domain.ReturnStats
	Summary domain.SummaryReport
}

// ForecastHandler runs the full pipeline: resolve historical closes, fit
// return statistics, simulate price paths, compute the risk summary, and
// persist the run when a run repository is wired.
type ForecastHandler struct {
	PriceService  data.PriceService
	RunRepository repository.SimulationRunRepository // optional
}

func (h ForecastHandler) Run(ctx context.Context, input ForecastInput) (*ForecastResult, error) {
	log := logger.FromContext(ctx)

	if input.Days <= 0 {
		return nil, fmt.Errorf("forecast days must be > 0, got %d", input.Days)
	}
	if input.Iterations <= 0 {
		return nil, fmt.Errorf("forecast iterations must be > 0, got %d", input.Iterations)
	}

	profile := domain.GetProfile(ctx)

	prices, err := h.PriceService.GetCloses(ctx, input.Ticker)
	if err != nil {
		return nil, err
	}
	profile.Add("resolved closes")

	returnStats, lenHistory, err := calculator.ComputeReturnStats(prices)
	if err != nil {
		return nil, fmt.Errorf("failed to fit return statistics for %s: %w", input.Ticker.Symbol, err)
	}

	simulator := montecarlo.NewSimulator()
	if input.Seed != nil {
		simulator = montecarlo.NewSeededSimulator(*input.Seed)
	}
	matrix, err := simulator.Simulate(*returnStats, input.Days, input.Iterations)
	if err != nil {
		return nil, fmt.Errorf("failed to simulate price paths for %s: %w", input.Ticker.Symbol, err)
	}
	profile.Add("simulated price paths")

	opts := []calculator.RiskSessionOption{}
	if input.AnnualPeriods > 0 {
		opts = append(opts, calculator.WithAnnualPeriods(input.AnnualPeriods))
	}
	session, err := calculator.NewRiskSession(matrix, lenHistory, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build risk session for %s: %w", input.Ticker.Symbol, err)
	}

	riskFreeRate := DefaultRiskFreeRate
	if input.RiskFreeRate != nil {
		riskFreeRate = *input.RiskFreeRate
	}
	summary, err := session.Summary(riskFreeRate)
	if err != nil {
		return nil, fmt.Errorf("failed to compute summary for %s: %w", input.Ticker.Symbol, err)
	}
	profile.Add("computed risk summary")

	run := domain.SimulationRun{
		RunID:      uuid.New(),
		Symbol:     input.Ticker.Symbol,
		Days:       input.Days,
		Iterations: input.Iterations,
		Summary:    *summary,
		CreatedAt:  time.Now().UTC(),
	}
	if h.RunRepository != nil {
		if err := h.RunRepository.Add(ctx, run); err != nil {
			return nil, fmt.Errorf("failed to persist run %s: %w", run.RunID, err)
		}
	}

	log.Infow("forecast complete",
		"symbol", input.Ticker.Symbol,
		"runId", run.RunID.String(),
		"days", input.Days,
		"iterations", input.Iterations,
		"validity", summary.Metadata.Validity,
	)

	return &ForecastResult{
		RunID:   run.RunID,
		Stats:   *returnStats,
		Summary: *summary,
	}, nil
}
