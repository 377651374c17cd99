package outbound

import "context"

type SynthesizeSpeechRequest struct {
	Text  string
	Voice string
}

// SynthesizedSpeech carries the raw 16-bit little-endian mono PCM payload as
// decoded from the provider response, together with the media type it was
// declared with.
type SynthesizedSpeech struct {
	PCM        []byte
	MediaType  string
	SampleRate int
}

type SpeechSynthesizerPort interface {
	Synthesize(ctx context.Context, req SynthesizeSpeechRequest) (*SynthesizedSpeech, error)
}
