// Package montecarlo generates simulated future price paths with
// Geometric Brownian Motion, parameterized by historical log-return
// statistics.
package montecarlo

import (
	"fmt"
	"math"
	"math/rand"
	"pricesim/internal/domain"
	"time"
)

type Simulator struct {
	rng *rand.Rand
}

func NewSimulator() *Simulator {
	return NewSeededSimulator(time.Now().UnixNano())
}

// NewSeededSimulator returns a simulator with a fixed entropy source, so
// runs are reproducible.
func NewSeededSimulator(seed int64) *Simulator {
	return &Simulator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Simulate produces a matrix of shape (iterations, days+1). Column 0 is
// the last observed price; each later column is one discrete GBM step:
// the drift carries the Itô correction, and each step draws an
// independent standard-normal shock scaled by the return stdev.
//
// days == 0 is legal and yields a single column equal to the last price.
func (s *Simulator) Simulate(stats domain.ReturnStats, days, iterations int) (domain.PriceMatrix, error) {
	if days < 0 {
		return nil, fmt.Errorf("simulation days must be >= 0, got %d", days)
	}
	if iterations <= 0 {
		return nil, fmt.Errorf("simulation iterations must be > 0, got %d", iterations)
	}
	if !(stats.LastPrice > 0) {
		return nil, fmt.Errorf("last price must be strictly positive, got %f", stats.LastPrice)
	}
	if stats.LogReturnStd < 0 {
		return nil, fmt.Errorf("log return stdev must be >= 0, got %f", stats.LogReturnStd)
	}

	drift := stats.MeanLogReturn - 0.5*stats.LogReturnStd*stats.LogReturnStd

	paths := make(domain.PriceMatrix, iterations)
	for i := range paths {
		row := make([]float64, days+1)
		row[0] = stats.LastPrice
		price := stats.LastPrice
		for d := 1; d <= days; d++ {
			shock := stats.LogReturnStd * s.rng.NormFloat64()
			price *= math.Exp(drift + shock)
			row[d] = price
		}
		paths[i] = row
	}

	return paths, nil
}
