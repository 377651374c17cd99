package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSummaryConfig(t *testing.T) {
	t.Setenv("SUMMARY_API_URL", "https://example.test/v1/chat/completions")
	t.Setenv("SUMMARY_API_KEY", "key")
	t.Setenv("SUMMARY_MODEL", "summarizer-1")

	cfg, err := GetSummaryConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/v1/chat/completions", cfg.ApiUrl)
	assert.Equal(t, "summarizer-1", cfg.Model)
}

func TestGetSummaryConfig_MissingKey(t *testing.T) {
	t.Setenv("SUMMARY_API_URL", "https://example.test")
	t.Setenv("SUMMARY_API_KEY", "")
	t.Setenv("SUMMARY_MODEL", "summarizer-1")

	_, err := GetSummaryConfig()
	assert.Error(t, err)
}

func TestGetSpeechConfig_DefaultVoice(t *testing.T) {
	t.Setenv("SPEECH_API_URL", "https://example.test/models")
	t.Setenv("SPEECH_API_KEY", "key")
	t.Setenv("SPEECH_MODEL", "speech-1")
	t.Setenv("SPEECH_VOICE", "")

	cfg, err := GetSpeechConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultVoice, cfg.Voice)
}

func TestGetServerConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SUMMARY_WORD_LIMIT", "")
	t.Setenv("MOCK_PROVIDERS", "")
	t.Setenv("JWKS_URL", "")

	cfg, err := GetServerConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, defaultSummaryWordLimit, cfg.SummaryWordLimit)
	assert.False(t, cfg.MockProviders)
	assert.Empty(t, cfg.JwksUrl)
}

func TestGetServerConfig_ParsesOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SUMMARY_WORD_LIMIT", "80")
	t.Setenv("MOCK_PROVIDERS", "true")

	cfg, err := GetServerConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 80, cfg.SummaryWordLimit)
	assert.True(t, cfg.MockProviders)
}

func TestGetServerConfig_RejectsBadWordLimit(t *testing.T) {
	t.Setenv("SUMMARY_WORD_LIMIT", "not-a-number")

	_, err := GetServerConfig()
	assert.Error(t, err)
}
