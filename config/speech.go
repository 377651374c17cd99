package config

import (
	"fmt"
	"os"
)

const DefaultVoice = "Kore"

type SpeechConfig struct {
	ApiUrl string
	ApiKey string
	Model  string
	Voice  string
}

func GetSpeechConfig() (*SpeechConfig, error) {
	apiUrl := os.Getenv("SPEECH_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("SPEECH_API_URL must be set")
	}
	apiKey := os.Getenv("SPEECH_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("SPEECH_API_KEY must be set")
	}
	model := os.Getenv("SPEECH_MODEL")
	if model == "" {
		return nil, fmt.Errorf("SPEECH_MODEL must be set")
	}
	voice := os.Getenv("SPEECH_VOICE")
	if voice == "" {
		voice = DefaultVoice
	}
	return &SpeechConfig{
		ApiUrl: apiUrl,
		ApiKey: apiKey,
		Model:  model,
		Voice:  voice,
	}, nil
}
