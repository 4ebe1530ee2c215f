package data

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"pricesim/internal/domain"
	"pricesim/internal/repository"
	"sync"
	"time"

	"github.com/gocarina/gocsv"
)

// PriceService resolves close series for forecasts. Lookups go through an
// in-memory cache, then an on-disk csv snapshot (when a snapshot dir is
// configured), then the remote provider. Fetched series are written back
// to both layers.
type PriceService interface {
	GetCloses(ctx context.Context, ticker domain.Ticker) ([]domain.AssetPrice, error)
}

type priceServiceHandler struct {
	MarketDataRepository repository.MarketDataRepository
	SnapshotDir          string

	mu    sync.RWMutex
	cache map[string][]domain.AssetPrice
}

// NewPriceService builds a fetch-through price service. snapshotDir may
// be empty to disable the on-disk layer.
func NewPriceService(marketDataRepository repository.MarketDataRepository, snapshotDir string) PriceService {
	return &priceServiceHandler{
		MarketDataRepository: marketDataRepository,
		SnapshotDir:          snapshotDir,
		cache:                map[string][]domain.AssetPrice{},
	}
}

func (h *priceServiceHandler) GetCloses(ctx context.Context, ticker domain.Ticker) ([]domain.AssetPrice, error) {
	key := cacheKey(ticker)

	h.mu.RLock()
	if prices, ok := h.cache[key]; ok {
		h.mu.RUnlock()
		return prices, nil
	}
	h.mu.RUnlock()

	if h.SnapshotDir != "" {
		if prices, err := h.loadSnapshot(key); err == nil && len(prices) > 0 {
			h.addToCache(key, prices)
			return prices, nil
		}
	}

	prices, err := h.MarketDataRepository.List(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch closes for %s: %w", ticker.Symbol, err)
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("no prices returned for %s between %s and %s",
			ticker.Symbol, ticker.Start.Format(time.DateOnly), ticker.End.Format(time.DateOnly))
	}
	domain.SortPricesByDate(prices)

	h.addToCache(key, prices)
	if h.SnapshotDir != "" {
		if err := h.saveSnapshot(key, prices); err != nil {
			// snapshot is an optimization; a failed write shouldn't fail
			// the forecast
			fmt.Println(fmt.Errorf("failed to save price snapshot for %s: %w", ticker.Symbol, err))
		}
	}

	return prices, nil
}

func (h *priceServiceHandler) addToCache(key string, prices []domain.AssetPrice) {
	h.mu.Lock()
	h.cache[key] = prices
	h.mu.Unlock()
}

type priceSnapshotRow struct {
	Symbol string  `csv:"symbol"`
	Date   string  `csv:"date"`
	Close  float64 `csv:"close"`
}

func (h *priceServiceHandler) loadSnapshot(key string) ([]domain.AssetPrice, error) {
	f, err := os.Open(h.snapshotPath(key))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows := []priceSnapshotRow{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot %s: %w", key, err)
	}

	prices := make([]domain.AssetPrice, 0, len(rows))
	for _, row := range rows {
		date, err := time.Parse(time.DateOnly, row.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse snapshot date %q: %w", row.Date, err)
		}
		prices = append(prices, domain.AssetPrice{
			Symbol: row.Symbol,
			Price:  row.Close,
			Date:   date,
		})
	}
	domain.SortPricesByDate(prices)

	return prices, nil
}

func (h *priceServiceHandler) saveSnapshot(key string, prices []domain.AssetPrice) error {
	if err := os.MkdirAll(h.SnapshotDir, 0o755); err != nil {
		return err
	}

	rows := make([]priceSnapshotRow, 0, len(prices))
	for _, price := range prices {
		rows = append(rows, priceSnapshotRow{
			Symbol: price.Symbol,
			Date:   price.Date.Format(time.DateOnly),
			Close:  price.Price,
		})
	}

	f, err := os.Create(h.snapshotPath(key))
	if err != nil {
		return err
	}
	defer f.Close()

	return gocsv.MarshalFile(&rows, f)
}

func (h *priceServiceHandler) snapshotPath(key string) string {
	return filepath.Join(h.SnapshotDir, key+".csv")
}

func cacheKey(ticker domain.Ticker) string {
	return fmt.Sprintf("%s_%s_%s",
		ticker.Symbol,
		ticker.Start.Format(time.DateOnly),
		ticker.End.Format(time.DateOnly),
	)
}
