package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReturnStats holds the log-return statistics fitted from historical
// closes. Computed once and never mutated; the simulator is its only
// consumer.
type ReturnStats struct {
	MeanLogReturn float64
	LogReturnStd  float64
	LastPrice     float64
}

// PriceMatrix is a set of simulated price trajectories. Row = one
// trajectory, column 0 = the last observed price, columns 1..n = simulated
// future steps. Never mutated after the simulation run that produced it.
type PriceMatrix [][]float64

// Validate checks the structural invariants every downstream metric
// assumes: at least one trajectory, at least two columns, rectangular
// shape, strictly positive entries.
func (m PriceMatrix) Validate() error {
	if len(m) == 0 {
		return fmt.Errorf("price matrix has no trajectories")
	}
	width := len(m[0])
	if width < 2 {
		return fmt.Errorf("price matrix needs at least 2 columns, got %d", width)
	}
	for i, row := range m {
		if len(row) != width {
			return fmt.Errorf("price matrix is ragged: row %d has %d columns, expected %d", i, len(row), width)
		}
		for j, price := range row {
			if !(price > 0) {
				return fmt.Errorf("price matrix entry (%d, %d) is not strictly positive: %f", i, j, price)
			}
		}
	}
	return nil
}

// StartPrice returns the anchor price shared by every trajectory.
func (m PriceMatrix) StartPrice() float64 {
	return m[0][0]
}

// SimulationLength is the number of simulated steps (columns minus the
// anchor).
func (m PriceMatrix) SimulationLength() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0]) - 1
}

// TerminalPrices copies out the last column across all trajectories.
func (m PriceMatrix) TerminalPrices() []float64 {
	out := make([]float64, len(m))
	for i, row := range m {
		out[i] = row[len(row)-1]
	}
	return out
}

const (
	ValiditySafe     = "Safe"
	ValidityWarning  = "Warning"
	ValidityCritical = "Critical"
)

type ReportMetadata struct {
	StartPrice       float64 `json:"startPrice"`
	HistoryLength    int     `json:"historyLength"`
	SimulationLength int     `json:"simulationLength"`
	Validity         string  `json:"validity"`
}

type ReportPerformance struct {
	MeanFinalPrice       float64 `json:"meanFinalPrice"`
	FinalPriceStdDev     float64 `json:"finalPriceStdDev"`
	AnnualizedVolatility float64 `json:"annualizedVolatility"`
	ProbabilityOfProfit  float64 `json:"probabilityOfProfit"`
}

type ReportRisk struct {
	UlcerIndex                float64 `json:"ulcerIndex"`
	AvgMaxDrawdown            float64 `json:"avgMaxDrawdown"`
	ValueAtRisk               float64 `json:"valueAtRisk"`
	ValueAtRiskPct            float64 `json:"valueAtRiskPct"`
	ConditionalValueAtRisk    float64 `json:"conditionalValueAtRisk"`
	ConditionalValueAtRiskPct float64 `json:"conditionalValueAtRiskPct"`
	SortinoRatio              float64 `json:"sortinoRatio"`
	SharpeRatio               float64 `json:"sharpeRatio"`
}

// SummaryReport is the fully-resolved output of a forecast run. Every
// leaf is a plain value so the report serializes directly to JSON.
type SummaryReport struct {
	Metadata    ReportMetadata    `json:"metadata"`
	Performance ReportPerformance `json:"performance"`
	Risk        ReportRisk        `json:"risk"`
}

// SimulationRun is a persisted forecast: the inputs that produced it plus
// the resulting report.
type SimulationRun struct {
	RunID      uuid.UUID
	Symbol     string
	Days       int
	Iterations int
	Summary    SummaryReport
	CreatedAt  time.Time
}
