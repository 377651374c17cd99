package domain

type NarrationEventType string

const (
	SummaryEventType NarrationEventType = "summary"
	AudioEventType   NarrationEventType = "audio"
)

// SummaryChunk is a contiguous piece of the generated summary. Ordinals start
// at 0 and follow the order the provider streamed the text in.
type SummaryChunk struct {
	Text        string
	Ordinal     int
	NarrationID string
}

// NarrationAudio is the synthesized rendition of a complete summary, already
// wrapped in a WAV container.
type NarrationAudio struct {
	WAV             []byte
	MediaType       string
	SampleRate      int
	DurationSeconds float64
}

type Narration struct {
	ID      string
	Summary string
	Audio   NarrationAudio
}

type NarrationEvent struct {
	NarrationID     string             `json:"narration_id"`
	Type            NarrationEventType `json:"type"`
	Ordinal         int                `json:"ordinal"`
	Text            string             `json:"text,omitempty"`
	AudioBase64     string             `json:"audio_base64,omitempty"`
	MediaType       string             `json:"media_type,omitempty"`
	SampleRate      int                `json:"sample_rate,omitempty"`
	DurationSeconds float64            `json:"duration_seconds,omitempty"`
}

type ErrorEvent struct {
	NarrationID string `json:"narration_id"`
	Message     string `json:"message"`
}

func (c SummaryChunk) ToEvent() NarrationEvent {
	return NarrationEvent{
		NarrationID: c.NarrationID,
		Type:        SummaryEventType,
		Ordinal:     c.Ordinal,
		Text:        c.Text,
	}
}
