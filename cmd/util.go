package cmd

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"pricesim/api"
	"pricesim/internal"
	"pricesim/internal/data"
	"pricesim/internal/logger"
	"pricesim/internal/repository"
	"pricesim/internal/service"

	_ "github.com/lib/pq"
)

func CloseDependencies(handler *api.ApiHandler) {
	repo, ok := handler.RunRepository.(repository.SimulationRunRepositoryHandler)
	if !ok || repo.Db == nil {
		return
	}
	if err := repo.Db.Close(); err != nil {
		log.Fatalf("failed to close db: %v", err)
	}
}

func InitializeDependencies() (*api.ApiHandler, error) {
	secrets, err := internal.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	marketDataRepository := NewMarketDataRepository(secrets)
	priceService := data.NewPriceService(marketDataRepository, os.Getenv("PRICESIM_SNAPSHOT_DIR"))

	var runRepository repository.SimulationRunRepository
	if secrets.Db.Host != "" {
		dbConn, err := sql.Open("postgres", secrets.Db.ToConnectionStr())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to db: %w", err)
		}
		runRepository = repository.NewSimulationRunRepository(dbConn)
	}

	var gptRepository repository.GptRepository
	if secrets.ChatGPTApiKey != "" {
		gptRepository, err = repository.NewGptRepository(secrets.ChatGPTApiKey)
		if err != nil {
			return nil, err
		}
	}

	forecastHandler := service.ForecastHandler{
		PriceService:  priceService,
		RunRepository: runRepository,
	}

	return &api.ApiHandler{
		ForecastHandler: forecastHandler,
		RunRepository:   runRepository,
		GptRepository:   gptRepository,
		Logger:          logger.New(),
	}, nil
}

// NewMarketDataRepository picks the provider: finage when an api key is
// configured, otherwise yahoo (keyless).
func NewMarketDataRepository(secrets *internal.Secrets) repository.MarketDataRepository {
	if secrets.FinageApiKey != "" {
		return repository.NewFinageRepository(secrets.FinageApiKey)
	}
	return repository.NewYahooRepository()
}
