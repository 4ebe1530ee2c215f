package domain

import (
	"fmt"
	"strings"
	"time"
)

// Ticker describes an asset and the window of history to pull for it.
// AssetType matches the provider's path segment (e.g. "stock", "crypto").
type Ticker struct {
	Symbol     string
	AssetType  string
	Multiplier int
	Timespan   string
	Start      time.Time
	End        time.Time
}

func NewTicker(symbol, assetType string, start, end time.Time) Ticker {
	return Ticker{
		Symbol:     strings.ToUpper(symbol),
		AssetType:  strings.ToLower(assetType),
		Multiplier: 1,
		Timespan:   "day",
		Start:      start,
		End:        end,
	}
}

// AggregatePath renders the provider path for the aggregates endpoint,
// without host or api key.
func (t Ticker) AggregatePath() string {
	return fmt.Sprintf(
		"/agg/%s/%s/%d/%s/%s/%s",
		t.AssetType,
		t.Symbol,
		t.Multiplier,
		t.Timespan,
		t.Start.Format(time.DateOnly),
		t.End.Format(time.DateOnly),
	)
}
