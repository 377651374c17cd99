package config

import (
	"fmt"
	"os"
)

type SummaryConfig struct {
	ApiUrl string
	ApiKey string
	Model  string
}

func GetSummaryConfig() (*SummaryConfig, error) {
	apiUrl := os.Getenv("SUMMARY_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("SUMMARY_API_URL must be set")
	}
	apiKey := os.Getenv("SUMMARY_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("SUMMARY_API_KEY must be set")
	}
	model := os.Getenv("SUMMARY_MODEL")
	if model == "" {
		return nil, fmt.Errorf("SUMMARY_MODEL must be set")
	}
	return &SummaryConfig{
		ApiUrl: apiUrl,
		ApiKey: apiKey,
		Model:  model,
	}, nil
}
