package domain

import (
	"sort"
	"time"
)

type AssetPrice struct {
	Symbol string
	Price  float64
	Date   time.Time
}

// SortPricesByDate orders a price series oldest-first, in place.
func SortPricesByDate(prices []AssetPrice) {
	sort.Slice(prices, func(i, j int) bool {
		return prices[i].Date.Before(prices[j].Date)
	})
}
