package calculator

import (
	"fmt"
	"math"
	"pricesim/internal/domain"
	"sync"

	"github.com/montanaflynn/stats"
)

const DefaultAnnualPeriods = 252

// RiskSession computes performance and risk metrics over one simulated
// price matrix. The matrix is immutable for the session's lifetime, so
// the two derived matrices (drawdowns and per-step log returns) are
// computed at most once and cached. A session is not safe for concurrent
// use; build one per forecast run.
type RiskSession struct {
	matrix        domain.PriceMatrix
	lenHistory    int
	annualPeriods int

	drawdownOnce sync.Once
	drawdowns    [][]float64

	logReturnOnce sync.Once
	logReturns    []float64
}

type RiskSessionOption func(*RiskSession)

// WithAnnualPeriods overrides the trading periods per year used for
// annualization (default 252).
func WithAnnualPeriods(n int) RiskSessionOption {
	return func(s *RiskSession) {
		s.annualPeriods = n
	}
}

// NewRiskSession validates the matrix up front; every metric downstream
// assumes a rectangular, strictly positive matrix with at least one
// simulated step.
func NewRiskSession(matrix domain.PriceMatrix, lenHistory int, opts ...RiskSessionOption) (*RiskSession, error) {
	if err := matrix.Validate(); err != nil {
		return nil, fmt.Errorf("invalid price matrix: %w", err)
	}
	if lenHistory <= 0 {
		return nil, fmt.Errorf("history length must be > 0, got %d", lenHistory)
	}

	session := &RiskSession{
		matrix:        matrix,
		lenHistory:    lenHistory,
		annualPeriods: DefaultAnnualPeriods,
	}
	for _, opt := range opts {
		opt(session)
	}
	if session.annualPeriods <= 0 {
		return nil, fmt.Errorf("annual periods must be > 0, got %d", session.annualPeriods)
	}

	return session, nil
}

type FinalStats struct {
	Mean                float64
	StdDev              float64
	ProbabilityOfProfit float64
}

// FinalStats summarizes the terminal column: mean and population stdev of
// terminal prices, plus the fraction of trajectories ending above the
// start price.
func (s *RiskSession) FinalStats() (*FinalStats, error) {
	terminal := s.matrix.TerminalPrices()

	mean, err := stats.Mean(terminal)
	if err != nil {
		return nil, fmt.Errorf("failed to compute terminal mean: %w", err)
	}
	stdev, err := stats.StandardDeviationPopulation(terminal)
	if err != nil {
		return nil, fmt.Errorf("failed to compute terminal stdev: %w", err)
	}

	startPrice := s.matrix.StartPrice()
	profitable := 0
	for _, price := range terminal {
		if price > startPrice {
			profitable++
		}
	}

	return &FinalStats{
		Mean:                mean,
		StdDev:              stdev,
		ProbabilityOfProfit: float64(profitable) / float64(len(terminal)),
	}, nil
}

// AnnualizedVolatility is the population stdev of the simulated per-step
// log returns, scaled by sqrt(annualPeriods).
func (s *RiskSession) AnnualizedVolatility() (float64, error) {
	stdev, err := stats.StandardDeviationPopulation(s.simulatedLogReturns())
	if err != nil {
		return 0, fmt.Errorf("failed to compute log return stdev: %w", err)
	}
	return stdev * math.Sqrt(float64(s.annualPeriods)), nil
}

type RiskMetrics struct {
	ValueAtRisk               float64
	ValueAtRiskPct            float64
	ConditionalValueAtRisk    float64
	ConditionalValueAtRiskPct float64
}

// RiskMetrics reports VaR and CVaR at the 5th percentile of terminal
// prices. When no terminal price falls strictly below the percentile
// (tiny iteration counts), the tail mean is undefined and CVaR falls
// back to VaR instead of propagating a NaN.
func (s *RiskSession) RiskMetrics() (*RiskMetrics, error) {
	terminal := s.matrix.TerminalPrices()

	p5, err := stats.Percentile(terminal, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to compute 5th percentile: %w", err)
	}

	startPrice := s.matrix.StartPrice()
	valueAtRisk := startPrice - p5

	tailSum := 0.0
	tailCount := 0
	for _, price := range terminal {
		if price < p5 {
			tailSum += price
			tailCount++
		}
	}

	conditional := valueAtRisk
	if tailCount > 0 {
		conditional = startPrice - tailSum/float64(tailCount)
	}

	return &RiskMetrics{
		ValueAtRisk:               valueAtRisk,
		ValueAtRiskPct:            valueAtRisk / startPrice,
		ConditionalValueAtRisk:    conditional,
		ConditionalValueAtRiskPct: conditional / startPrice,
	}, nil
}

// AvgMaxDrawdown takes each trajectory's worst drawdown and reports the
// 95th percentile across trajectories - a bad-but-plausible outcome
// rather than the single worst path.
func (s *RiskSession) AvgMaxDrawdown() (float64, error) {
	drawdowns := s.drawdownMatrix()

	maxima := make([]float64, len(drawdowns))
	for i, row := range drawdowns {
		worst := 0.0
		for _, dd := range row {
			if dd > worst {
				worst = dd
			}
		}
		maxima[i] = worst
	}

	p95, err := stats.Percentile(maxima, 95)
	if err != nil {
		return 0, fmt.Errorf("failed to compute drawdown percentile: %w", err)
	}
	return p95, nil
}

// UlcerIndex is the mean across trajectories of each trajectory's
// root-mean-square drawdown, penalizing depth and duration together.
func (s *RiskSession) UlcerIndex() (float64, error) {
	drawdowns := s.drawdownMatrix()

	perTrajectory := make([]float64, len(drawdowns))
	for i, row := range drawdowns {
		sumSquares := 0.0
		for _, dd := range row {
			sumSquares += dd * dd
		}
		perTrajectory[i] = math.Sqrt(sumSquares / float64(len(row)))
	}

	mean, err := stats.Mean(perTrajectory)
	if err != nil {
		return 0, fmt.Errorf("failed to compute ulcer index mean: %w", err)
	}
	return mean, nil
}

// SharpeRatio annualizes the mean simulated excess log return over its
// stdev. The annual risk-free rate is converted to an equivalent
// per-period log rate. A zero-volatility matrix has no meaningful ratio
// and reports 0.
func (s *RiskSession) SharpeRatio(riskFreeRate float64) (float64, error) {
	returns := s.simulatedLogReturns()
	rfPeriod := perPeriodLogRate(riskFreeRate, s.annualPeriods)

	mean, err := stats.Mean(returns)
	if err != nil {
		return 0, fmt.Errorf("failed to compute mean log return: %w", err)
	}
	stdev, err := stats.StandardDeviationPopulation(returns)
	if err != nil {
		return 0, fmt.Errorf("failed to compute log return stdev: %w", err)
	}
	if stdev == 0 {
		return 0, nil
	}

	return (mean - rfPeriod) / stdev * math.Sqrt(float64(s.annualPeriods)), nil
}

// SortinoRatio is Sharpe with only the downside half of excess returns in
// the denominator: RMS of min(excess, 0) over every period. When no
// period underperformed the risk-free rate the downside deviation is 0
// and the ratio is defined as 0.
func (s *RiskSession) SortinoRatio(riskFreeRate float64) (float64, error) {
	returns := s.simulatedLogReturns()
	rfPeriod := perPeriodLogRate(riskFreeRate, s.annualPeriods)

	mean, err := stats.Mean(returns)
	if err != nil {
		return 0, fmt.Errorf("failed to compute mean log return: %w", err)
	}

	downsideSumSquares := 0.0
	for _, ret := range returns {
		if excess := ret - rfPeriod; excess < 0 {
			downsideSumSquares += excess * excess
		}
	}
	downside := math.Sqrt(downsideSumSquares / float64(len(returns)))
	if downside == 0 {
		return 0, nil
	}

	return (mean - rfPeriod) / downside * math.Sqrt(float64(s.annualPeriods)), nil
}

// ValidityCheck compares the simulation horizon against the amount of
// history the input statistics were fitted on. This is a heuristic
// sufficiency guard, not a statistical test; the tier is advisory data in
// the report, never an error.
func (s *RiskSession) ValidityCheck() string {
	simulationLength := float64(s.matrix.SimulationLength())
	switch {
	case simulationLength > 0.5*float64(s.lenHistory):
		return domain.ValidityCritical
	case simulationLength > 0.3*float64(s.lenHistory):
		return domain.ValidityWarning
	default:
		return domain.ValiditySafe
	}
}

// Summary assembles the full report. Every leaf is a plain value, ready
// for JSON.
func (s *RiskSession) Summary(riskFreeRate float64) (*domain.SummaryReport, error) {
	finalStats, err := s.FinalStats()
	if err != nil {
		return nil, err
	}
	volatility, err := s.AnnualizedVolatility()
	if err != nil {
		return nil, err
	}
	riskMetrics, err := s.RiskMetrics()
	if err != nil {
		return nil, err
	}
	avgMaxDrawdown, err := s.AvgMaxDrawdown()
	if err != nil {
		return nil, err
	}
	ulcerIndex, err := s.UlcerIndex()
	if err != nil {
		return nil, err
	}
	sortino, err := s.SortinoRatio(riskFreeRate)
	if err != nil {
		return nil, err
	}
	sharpe, err := s.SharpeRatio(riskFreeRate)
	if err != nil {
		return nil, err
	}

	return &domain.SummaryReport{
		Metadata: domain.ReportMetadata{
			StartPrice:       s.matrix.StartPrice(),
			HistoryLength:    s.lenHistory,
			SimulationLength: s.matrix.SimulationLength(),
			Validity:         s.ValidityCheck(),
		},
		Performance: domain.ReportPerformance{
			MeanFinalPrice:       finalStats.Mean,
			FinalPriceStdDev:     finalStats.StdDev,
			AnnualizedVolatility: volatility,
			ProbabilityOfProfit:  finalStats.ProbabilityOfProfit,
		},
		Risk: domain.ReportRisk{
			UlcerIndex:                ulcerIndex,
			AvgMaxDrawdown:            avgMaxDrawdown,
			ValueAtRisk:               riskMetrics.ValueAtRisk,
			ValueAtRiskPct:            riskMetrics.ValueAtRiskPct,
			ConditionalValueAtRisk:    riskMetrics.ConditionalValueAtRisk,
			ConditionalValueAtRiskPct: riskMetrics.ConditionalValueAtRiskPct,
			SortinoRatio:              sortino,
			SharpeRatio:               sharpe,
		},
	}, nil
}

// drawdownMatrix lazily computes, per trajectory and step, the fractional
// decline from the running peak.
func (s *RiskSession) drawdownMatrix() [][]float64 {
	s.drawdownOnce.Do(func() {
		s.drawdowns = make([][]float64, len(s.matrix))
		for i, row := range s.matrix {
			drawdowns := make([]float64, len(row))
			peak := row[0]
			for j, price := range row {
				if price > peak {
					peak = price
				}
				drawdowns[j] = (peak - price) / peak
			}
			s.drawdowns[i] = drawdowns
		}
	})
	return s.drawdowns
}

// simulatedLogReturns lazily computes the per-step log returns of the
// simulated matrix, flattened across trajectories.
func (s *RiskSession) simulatedLogReturns() []float64 {
	s.logReturnOnce.Do(func() {
		steps := len(s.matrix[0]) - 1
		s.logReturns = make([]float64, 0, len(s.matrix)*steps)
		for _, row := range s.matrix {
			for j := 1; j < len(row); j++ {
				s.logReturns = append(s.logReturns, math.Log(row[j]/row[j-1]))
			}
		}
	})
	return s.logReturns
}

func perPeriodLogRate(annualRate float64, annualPeriods int) float64 {
	return math.Log(1+annualRate) / float64(annualPeriods)
}
