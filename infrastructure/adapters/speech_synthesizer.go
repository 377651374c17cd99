package adapters

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"generate-narration-api/application/ports/outbound"
	"generate-narration-api/audio_utils"
	"generate-narration-api/config"
)

// ErrNoAudioPayload is returned when the provider answers without an inline
// audio part. The caller must fail the whole narration in that case.
var ErrNoAudioPayload = errors.New("speech response carried no audio payload")

type generateSpeechRequest struct {
	Contents         []speechContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type speechContent struct {
	Parts []speechPart `json:"parts"`
}

type speechPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseModalities []string     `json:"responseModalities"`
	SpeechConfig       speechConfig `json:"speechConfig"`
}

type speechConfig struct {
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig prebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

type generateSpeechResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				InlineData struct {
					MimeType string `json:"mimeType"`
					Data     string `json:"data"`
				} `json:"inlineData"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type speechSynthesizer struct {
	ContentFetcher
	speechConfig *config.SpeechConfig
}

// NewSpeechSynthesizer calls a generateContent-style speech endpoint and
// decodes the base64 PCM payload it returns.
func NewSpeechSynthesizer(contentFetcher ContentFetcher, speechConfig *config.SpeechConfig) outbound.SpeechSynthesizerPort {
	return &speechSynthesizer{
		ContentFetcher: contentFetcher,
		speechConfig:   speechConfig,
	}
}

func (s *speechSynthesizer) Synthesize(ctx context.Context, synthReq outbound.SynthesizeSpeechRequest) (*outbound.SynthesizedSpeech, error) {
	voice := synthReq.Voice
	if voice == "" {
		voice = s.speechConfig.Voice
	}

	req, err := s.createRequest(ctx, synthReq.Text, voice)
	if err != nil {
		log.Error().Err(err).Str("action", "Synthesizing speech").Msg("Failed to construct the HTTP request for speech synthesis")
		return nil, err
	}

	payload, err := s.FetchContent(req)
	if err != nil {
		return nil, err
	}

	return s.extractSpeech(payload)
}

func (s *speechSynthesizer) extractSpeech(payload []byte) (*outbound.SynthesizedSpeech, error) {
	var body generateSpeechResponse
	if err := json.Unmarshal(payload, &body); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal speech response")
		return nil, err
	}

	if len(body.Candidates) == 0 || len(body.Candidates[0].Content.Parts) == 0 {
		return nil, ErrNoAudioPayload
	}

	inline := body.Candidates[0].Content.Parts[0].InlineData
	if inline.Data == "" {
		return nil, ErrNoAudioPayload
	}

	pcm, err := base64.StdEncoding.DecodeString(inline.Data)
	if err != nil {
		log.Error().Err(err).Msg("Failed to decode base64 audio payload")
		return nil, err
	}
	if len(pcm) == 0 {
		return nil, ErrNoAudioPayload
	}

	return &outbound.SynthesizedSpeech{
		PCM:        pcm,
		MediaType:  inline.MimeType,
		SampleRate: audio_utils.SampleRateFromMediaType(inline.MimeType),
	}, nil
}

func (s *speechSynthesizer) createRequest(ctx context.Context, text string, voice string) (*http.Request, error) {
	reqBody := generateSpeechRequest{
		Contents: []speechContent{
			{Parts: []speechPart{
				{Text: "Read the following news summary aloud in a clear, natural newsreader voice: " + text},
			}},
		},
		GenerationConfig: generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: speechConfig{
				VoiceConfig: voiceConfig{
					PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: voice},
				},
			},
		},
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		log.Error().Err(err).Str("action", "Marshalling JSON").Msg("Failed to marshal the request body for the speech API")
		return nil, err
	}

	url := fmt.Sprintf("%s/%s:generateContent", s.speechConfig.ApiUrl, s.speechConfig.Model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonPayload))
	if err != nil {
		log.Error().Err(err).Str("action", "Creating HTTP Request").Str("URL", url).Msg("Failed to create the HTTP POST request")
		return nil, err
	}

	req.Header.Set("x-goog-api-key", s.speechConfig.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}
