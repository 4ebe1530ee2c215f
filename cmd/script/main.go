package main

import (
	"context"
	"log"
	"pricesim/internal"
	"pricesim/internal/data"
	"pricesim/internal/domain"
	"pricesim/internal/logger"
	"pricesim/internal/repository"
	"pricesim/internal/service"
	treasury_client "pricesim/pkg/treasury"
	"time"

	"github.com/spf13/cobra"
)

var (
	flagSymbol        string
	flagAssetType     string
	flagStart         string
	flagEnd           string
	flagDays          int
	flagIterations    int
	flagAnnualPeriods int
	flagRiskFreeRate  float64
	flagSeed          int64
	flagSource        string
	flagSnapshotDir   string
	flagFinageApiKey  string
	flagTreasuryRate  bool
	flagProfile       bool
)

var rootCmd = &cobra.Command{
	Use:   "pricesim",
	Short: "Monte Carlo price forecasting",
}

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Simulate future price paths for a symbol and print the risk summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := time.Parse(time.DateOnly, flagStart)
		if err != nil {
			return err
		}
		end := time.Now().UTC()
		if flagEnd != "" {
			end, err = time.Parse(time.DateOnly, flagEnd)
			if err != nil {
				return err
			}
		}

		var marketDataRepository repository.MarketDataRepository
		switch flagSource {
		case "finage":
			marketDataRepository = repository.NewFinageRepository(flagFinageApiKey)
		default:
			marketDataRepository = repository.NewYahooRepository()
		}

		handler := service.ForecastHandler{
			PriceService: data.NewPriceService(marketDataRepository, flagSnapshotDir),
		}

		riskFreeRate := flagRiskFreeRate
		if flagTreasuryRate && !cmd.Flags().Changed("risk-free-rate") {
			rates, err := treasury_client.GetInterestRatesOnDay(end)
			if err != nil {
				return err
			}
			// match the treasury tenor to the simulation horizon,
			// ~21 trading days per month
			months := (flagDays + 20) / 21
			if months < 1 {
				months = 1
			}
			riskFreeRate, err = rates.GetRate(months)
			if err != nil {
				return err
			}
		}

		input := service.ForecastInput{
			Ticker:        domain.NewTicker(flagSymbol, flagAssetType, start, end),
			Days:          flagDays,
			Iterations:    flagIterations,
			AnnualPeriods: flagAnnualPeriods,
			RiskFreeRate:  &riskFreeRate,
		}
		if cmd.Flags().Changed("seed") {
			input.Seed = &flagSeed
		}

		ctx := context.WithValue(context.Background(), logger.ContextKey, logger.New())
		profile, endProfile := domain.NewProfile()
		ctx = context.WithValue(ctx, domain.ContextProfileKey, profile)

		result, err := handler.Run(ctx, input)
		if err != nil {
			return err
		}

		internal.Pprint(result.Summary)
		if flagProfile {
			endProfile()
			profile.Print()
		}
		return nil
	},
}

func init() {
	forecastCmd.Flags().StringVar(&flagSymbol, "symbol", "", "ticker symbol, e.g. AAPL or BTCUSD")
	forecastCmd.Flags().StringVar(&flagAssetType, "asset-type", "stock", "asset category (stock, crypto)")
	forecastCmd.Flags().StringVar(&flagStart, "start", "", "history start date (YYYY-MM-DD)")
	forecastCmd.Flags().StringVar(&flagEnd, "end", "", "history end date (YYYY-MM-DD), defaults to today")
	forecastCmd.Flags().IntVar(&flagDays, "days", 30, "simulation horizon in trading days")
	forecastCmd.Flags().IntVar(&flagIterations, "iterations", 10000, "number of simulated trajectories")
	forecastCmd.Flags().IntVar(&flagAnnualPeriods, "annual-periods", 0, "trading periods per year (default 252)")
	forecastCmd.Flags().Float64Var(&flagRiskFreeRate, "risk-free-rate", service.DefaultRiskFreeRate, "annual risk-free rate")
	forecastCmd.Flags().Int64Var(&flagSeed, "seed", 0, "rng seed for reproducible runs")
	forecastCmd.Flags().StringVar(&flagSource, "source", "yahoo", "market data source (yahoo, finage)")
	forecastCmd.Flags().StringVar(&flagSnapshotDir, "snapshot-dir", "", "directory for csv price snapshots")
	forecastCmd.Flags().StringVar(&flagFinageApiKey, "finage-api-key", "", "finage api key (required with --source finage)")
	forecastCmd.Flags().BoolVar(&flagTreasuryRate, "treasury-rate", false, "take the risk-free rate from the treasury yield curve")
	forecastCmd.Flags().BoolVar(&flagProfile, "profile", false, "print stage timings after the run")
	_ = forecastCmd.MarkFlagRequired("symbol")
	_ = forecastCmd.MarkFlagRequired("start")

	rootCmd.AddCommand(forecastCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
