package config

import (
	"fmt"
	"os"
	"strconv"
)

const defaultSummaryWordLimit = 120

type ServerConfig struct {
	Port             string
	SummaryWordLimit int
	JwksUrl          string
	MockProviders    bool
}

func GetServerConfig() (*ServerConfig, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	wordLimit := defaultSummaryWordLimit
	if raw := os.Getenv("SUMMARY_WORD_LIMIT"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("failed to parse SUMMARY_WORD_LIMIT: %q", raw)
		}
		wordLimit = parsed
	}

	mockProviders := false
	if raw := os.Getenv("MOCK_PROVIDERS"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse MOCK_PROVIDERS: %q", raw)
		}
		mockProviders = parsed
	}

	return &ServerConfig{
		Port:             port,
		SummaryWordLimit: wordLimit,
		JwksUrl:          os.Getenv("JWKS_URL"),
		MockProviders:    mockProviders,
	}, nil
}
