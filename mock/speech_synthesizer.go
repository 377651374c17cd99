package mock_provider

import (
	"context"
	"encoding/binary"
	"math"

	"generate-narration-api/application/ports/outbound"
)

const (
	mockSampleRate   = 24000
	mockToneHz       = 440.0
	secondsPerWord   = 0.3
	maxInventedAudio = 10.0
)

type speechSynthesizer struct {
	logger outbound.LoggerPort
}

// NewSpeechSynthesizer fabricates a sine tone whose length tracks the summary
// length, standing in for the provider's PCM payload.
func NewSpeechSynthesizer(logger outbound.LoggerPort) outbound.SpeechSynthesizerPort {
	return &speechSynthesizer{logger: logger}
}

func (s *speechSynthesizer) Synthesize(ctx context.Context, req outbound.SynthesizeSpeechRequest) (*outbound.SynthesizedSpeech, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	words := 1
	for _, r := range req.Text {
		if r == ' ' {
			words++
		}
	}

	seconds := math.Min(float64(words)*secondsPerWord, maxInventedAudio)
	sampleCount := int(seconds * mockSampleRate)

	pcm := make([]byte, sampleCount*2)
	for i := 0; i < sampleCount; i++ {
		sample := int16(8000 * math.Sin(2*math.Pi*mockToneHz*float64(i)/mockSampleRate))
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(sample))
	}

	s.logger.InfoWithFields("Fabricated mock speech", map[string]interface{}{
		"seconds": seconds,
		"bytes":   len(pcm),
	})

	return &outbound.SynthesizedSpeech{
		PCM:        pcm,
		MediaType:  "audio/L16;codec=pcm;rate=24000",
		SampleRate: mockSampleRate,
	}, nil
}
