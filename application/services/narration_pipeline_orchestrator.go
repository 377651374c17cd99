package services

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"generate-narration-api/application/ports/inbound"
	"generate-narration-api/application/ports/outbound"
	"generate-narration-api/audio_utils"
	"generate-narration-api/domain"
)

// ErrEmptySummary signals that the summary step completed without producing
// any text. Per the provider contract this fails the whole narration.
var ErrEmptySummary = errors.New("summary generation produced no text")

const narrationChannels = 1

type narrationPipelineOrchestrator struct {
	logger            outbound.LoggerPort
	workerPool        outbound.TaskDispatcher
	summaryComposer   inbound.SummaryComposerPort
	speechSynthesizer outbound.SpeechSynthesizerPort
}

// NewNarrationPipelineOrchestrator wires the two dependent provider steps:
// the speech request is only issued once the summary stream has completed
// successfully.
func NewNarrationPipelineOrchestrator(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	summaryComposer inbound.SummaryComposerPort, speechSynthesizer outbound.SpeechSynthesizerPort) inbound.NarrationPipelinePort {
	return &narrationPipelineOrchestrator{
		logger:            logger,
		workerPool:        workerPool,
		summaryComposer:   summaryComposer,
		speechSynthesizer: speechSynthesizer,
	}
}

func (s *narrationPipelineOrchestrator) StartPipeline(ctx context.Context, params inbound.StartPipelineParams) (<-chan domain.NarrationEvent, <-chan error) {
	out := make(chan domain.NarrationEvent)
	errCh := make(chan error, 1)

	newCtx, cancel := context.WithCancel(ctx)

	chunkCh, composeErrCh := s.summaryComposer.Compose(newCtx, inbound.ComposeSummaryParams{
		ArticleText: params.ArticleText,
		NarrationID: params.NarrationID,
	})

	err := s.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		defer cancel()

		summary, ok := s.forwardSummaryChunks(newCtx, chunkCh, composeErrCh, out, errCh)
		if !ok {
			return
		}
		if summary == "" {
			errCh <- ErrEmptySummary
			return
		}

		audioEvent, err := s.synthesize(newCtx, params, summary)
		if err != nil {
			errCh <- err
			return
		}

		select {
		case out <- audioEvent:
		case <-newCtx.Done():
		}
	})
	if err != nil {
		s.logger.Error(err, "Failed to submit narration pipeline task")
		errCh <- err
	}

	return out, errCh
}

// forwardSummaryChunks drains the composer, re-emitting chunks as events and
// accumulating the full summary text. It reports ok=false when the pipeline
// must stop early.
func (s *narrationPipelineOrchestrator) forwardSummaryChunks(ctx context.Context, chunkCh <-chan domain.SummaryChunk,
	composeErrCh <-chan error, out chan<- domain.NarrationEvent, errCh chan<- error) (string, bool) {
	var parts []string
	for {
		select {
		case err, ok := <-composeErrCh:
			if ok {
				errCh <- err
				return "", false
			}
		case <-ctx.Done():
			return "", false
		case chunk, ok := <-chunkCh:
			if !ok {
				// The composer may have failed mid-stream; a partial
				// summary must never reach synthesis.
				if err, pending := <-composeErrCh; pending {
					errCh <- err
					return "", false
				}
				return strings.Join(parts, " "), true
			}
			parts = append(parts, chunk.Text)
			select {
			case out <- chunk.ToEvent():
			case <-ctx.Done():
				return "", false
			}
		}
	}
}

func (s *narrationPipelineOrchestrator) synthesize(ctx context.Context, params inbound.StartPipelineParams, summary string) (domain.NarrationEvent, error) {
	speech, err := s.speechSynthesizer.Synthesize(ctx, outbound.SynthesizeSpeechRequest{
		Text:  summary,
		Voice: params.Voice,
	})
	if err != nil {
		s.logger.ErrorWithFields(err, "Speech synthesis failed", map[string]interface{}{
			"narration_id": params.NarrationID,
		})
		return domain.NarrationEvent{}, err
	}

	wav, err := audio_utils.EncodeWAV(speech.PCM, speech.SampleRate, narrationChannels)
	if err != nil {
		s.logger.Error(err, "Failed to encode PCM payload as WAV")
		return domain.NarrationEvent{}, err
	}

	duration, err := audio_utils.DurationSeconds(speech.PCM, speech.SampleRate, narrationChannels)
	if err != nil {
		return domain.NarrationEvent{}, err
	}

	s.logger.InfoWithFields("Narration audio ready", map[string]interface{}{
		"narration_id":     params.NarrationID,
		"sample_rate":      speech.SampleRate,
		"duration_seconds": duration,
		"wav_bytes":        len(wav),
	})

	return domain.NarrationEvent{
		NarrationID:     params.NarrationID,
		Type:            domain.AudioEventType,
		AudioBase64:     base64.StdEncoding.EncodeToString(wav),
		MediaType:       "audio/wav",
		SampleRate:      speech.SampleRate,
		DurationSeconds: duration,
	}, nil
}
