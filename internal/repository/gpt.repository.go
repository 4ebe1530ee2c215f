package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"pricesim/internal/domain"

	"github.com/ayush6624/go-chatgpt"
)

type GptRepository interface {
	ExplainForecast(ctx context.Context, symbol string, report domain.SummaryReport) (string, error)
}

type gptRepositoryHandler struct {
	GptClient *chatgpt.Client
}

func NewGptRepository(apiKey string) (GptRepository, error) {
	client, err := chatgpt.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to construct gpt client: %w", err)
	}

	return gptRepositoryHandler{
		GptClient: client,
	}, nil
}

const explainPrompt = `
You are helping a retail investor read a Monte Carlo price forecast report. The user will send a JSON report with three groups:

- metadata: start price, how many historical observations the simulation statistics were fitted on, how many days were simulated, and a validity verdict ("Safe", "Warning" or "Critical") comparing the two
- performance: mean and standard deviation of the simulated final prices, annualized volatility, and probability of finishing above the start price
- risk: ulcer index, 95th-percentile maximum drawdown, value at risk and conditional value at risk (dollar and fractional), Sortino ratio, Sharpe ratio

Write a short plain-English commentary (4-6 sentences). Lead with the expected outcome and probability of profit, then the downside (VaR/CVaR and drawdowns), then the risk-adjusted ratios. If the validity verdict is "Warning" or "Critical", say clearly that the simulation is longer than the history supports and the numbers should be treated with caution. Do not restate every number; pick the ones that matter. No markdown, no bullet points.
`

func (h gptRepositoryHandler) ExplainForecast(ctx context.Context, symbol string, report domain.SummaryReport) (string, error) {
	reportJson, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report for %s: %w", symbol, err)
	}

	res, err := h.GptClient.Send(ctx, &chatgpt.ChatCompletionRequest{
		Model: chatgpt.GPT35Turbo,
		Messages: []chatgpt.ChatMessage{
			{
				Role:    chatgpt.ChatGPTModelRoleSystem,
				Content: explainPrompt,
			},
			{
				Role:    chatgpt.ChatGPTModelRoleUser,
				Content: fmt.Sprintf("symbol: %s\nreport: %s", symbol, string(reportJson)),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to get forecast commentary for %s: %w", symbol, err)
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("gpt returned no choices for %s", symbol)
	}

	return res.Choices[0].Message.Content, nil
}
