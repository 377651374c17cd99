package services

import (
	"context"
	"regexp"
	"strings"

	"generate-narration-api/application/ports/inbound"
	"generate-narration-api/application/ports/outbound"
	"generate-narration-api/channel_utils"
	"generate-narration-api/domain"
)

type summaryComposer struct {
	logger           outbound.LoggerPort
	summaryGenerator outbound.SummaryGeneratorPort
	workerPool       outbound.TaskDispatcher
	wordLimit        int
	sentenceRegexp   *regexp.Regexp
}

// NewSummaryComposer buffers the token stream of the summary generator and
// emits chunks on sentence boundaries so consumers can render the summary
// progressively.
func NewSummaryComposer(wordLimit int, logger outbound.LoggerPort, summaryGenerator outbound.SummaryGeneratorPort,
	workerPool outbound.TaskDispatcher) inbound.SummaryComposerPort {
	return &summaryComposer{
		logger:           logger,
		summaryGenerator: summaryGenerator,
		workerPool:       workerPool,
		wordLimit:        wordLimit,
		sentenceRegexp:   regexp.MustCompile(`[.!?]["')\]]?(\s|$)`),
	}
}

func (s *summaryComposer) Compose(ctx context.Context, params inbound.ComposeSummaryParams) (<-chan domain.SummaryChunk, <-chan error) {
	out := make(chan domain.SummaryChunk)
	ownErrCh := make(chan error, 1)

	newCtx, cancel := context.WithCancel(ctx)

	tokenCh, generatorErrCh := s.summaryGenerator.Generate(newCtx, outbound.GenerateSummaryRequest{
		ArticleText: params.ArticleText,
		WordLimit:   s.wordLimit,
	})

	errCh, err := channel_utils.MergeChannels(s.workerPool, ownErrCh, generatorErrCh)
	if err != nil {
		s.logger.Error(err, "Failed to merge composer error channels")
		cancel()
		close(out)
		close(ownErrCh)
		failed := make(chan error, 1)
		failed <- err
		close(failed)
		return out, failed
	}

	err = s.workerPool.Submit(func() {
		defer close(out)
		defer close(ownErrCh)
		defer cancel()

		var builder strings.Builder
		ordinal := 0

		for {
			select {
			case <-newCtx.Done():
				return
			case token, ok := <-tokenCh:
				if !ok {
					if remainder := normalizeForSpeech(builder.String()); remainder != "" {
						select {
						case out <- s.newChunk(remainder, ordinal, params.NarrationID):
						case <-newCtx.Done():
						}
					}
					return
				}
				builder.WriteString(token)
				sentences, rest := s.extractSentences(builder.String())
				builder.Reset()
				builder.WriteString(rest)
				for _, sentence := range sentences {
					chunk := s.newChunk(sentence, ordinal, params.NarrationID)
					ordinal++
					select {
					case out <- chunk:
					case <-newCtx.Done():
						return
					}
				}
			}
		}
	})
	if err != nil {
		s.logger.Error(err, "Failed to submit summary composer task")
		cancel()
		ownErrCh <- err
		close(ownErrCh)
		close(out)
	}

	return out, errCh
}

func (s *summaryComposer) newChunk(text string, ordinal int, narrationID string) domain.SummaryChunk {
	chunk := domain.SummaryChunk{
		Text:        text,
		Ordinal:     ordinal,
		NarrationID: narrationID,
	}
	s.logger.DebugWithFields("Composed summary chunk", map[string]interface{}{
		"narration_id": chunk.NarrationID,
		"ord":          chunk.Ordinal,
		"txt":          chunk.Text,
	})
	return chunk
}

// extractSentences splits off every complete sentence in the buffer and
// returns the unfinished tail for further accumulation.
func (s *summaryComposer) extractSentences(buffer string) ([]string, string) {
	sentences := make([]string, 0)
	for {
		loc := s.sentenceRegexp.FindStringIndex(buffer)
		if loc == nil {
			return sentences, buffer
		}
		sentence := normalizeForSpeech(buffer[:loc[1]])
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		buffer = buffer[loc[1]:]
	}
}

func normalizeForSpeech(input string) string {
	result := strings.ReplaceAll(input, "\n", " ")
	result = strings.ReplaceAll(result, "\r", " ")
	result = strings.ReplaceAll(result, "\t", " ")
	for strings.Contains(result, "  ") {
		result = strings.ReplaceAll(result, "  ", " ")
	}
	return strings.TrimSpace(result)
}
