package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/donovanhide/eventsource"

	"generate-narration-api/application/ports/outbound"
	"generate-narration-api/config"
)

const DoneSignal = "[DONE]"

type chatCompletionRequest struct {
	Stream   bool                    `json:"stream"`
	Model    string                  `json:"model"`
	Messages []chatCompletionMessage `json:"messages"`
}

type chatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionChunkBody struct {
	Choices []chatCompletionChoice `json:"choices"`
}

type chatCompletionChoice struct {
	Index int `json:"index"`
	Delta struct {
		Content string `json:"content"`
	} `json:"delta"`
}

type summaryStreamGenerator struct {
	logger        outbound.LoggerPort
	summaryConfig *config.SummaryConfig
	workerPool    outbound.TaskDispatcher
}

// NewSummaryStreamGenerator streams article summaries from an
// OpenAI-compatible chat completions endpoint over SSE. The stream ends on
// the [DONE] sentinel; any transport error fails the whole operation.
func NewSummaryStreamGenerator(summaryConfig *config.SummaryConfig, workerPool outbound.TaskDispatcher,
	logger outbound.LoggerPort) outbound.SummaryGeneratorPort {
	return &summaryStreamGenerator{
		logger:        logger,
		summaryConfig: summaryConfig,
		workerPool:    workerPool,
	}
}

func (s *summaryStreamGenerator) Generate(ctx context.Context, genReq outbound.GenerateSummaryRequest) (<-chan string, <-chan error) {
	out := make(chan string)
	errCh := make(chan error, 1)

	newCtx, cancel := context.WithCancel(ctx)

	err := s.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		defer cancel()

		req, err := s.createRequest(newCtx, genReq.ArticleText, genReq.WordLimit)
		if err != nil {
			s.logger.Error(err, "Failed to create HTTP request for summary stream")
			errCh <- err
			return
		}

		stream, err := eventsource.SubscribeWithRequest("", req)
		if err != nil {
			s.logger.Error(err, "Failed to subscribe to summary stream")
			errCh <- err
			return
		}
		defer stream.Close()

		for {
			select {
			case <-newCtx.Done():
				return
			case ev := <-stream.Events:
				if ev.Data() == DoneSignal {
					s.logger.Debug("Summary stream finished")
					return
				}
				token, err := s.extractToken(ev)
				if err != nil {
					errCh <- err
					return
				}
				select {
				case out <- token:
				case <-newCtx.Done():
					return
				}
			case err := <-stream.Errors:
				if err == io.EOF {
					s.logger.Info("Summary stream closed")
					return
				}
				s.logger.Error(err, "Error occurred during summary streaming")
				errCh <- err
				return
			}
		}
	})
	if err != nil {
		s.logger.Error(err, "Failed to submit task to worker pool")
		cancel()
		errCh <- err
		close(errCh)
		close(out)
	}

	return out, errCh
}

func (s *summaryStreamGenerator) extractToken(event eventsource.Event) (string, error) {
	var chunkBody chatCompletionChunkBody
	if err := json.Unmarshal([]byte(event.Data()), &chunkBody); err != nil {
		s.logger.Error(err, "Failed to unmarshal event data")
		return "", err
	}
	if len(chunkBody.Choices) == 0 {
		return "", nil
	}
	return chunkBody.Choices[0].Delta.Content, nil
}

func (s *summaryStreamGenerator) createRequest(ctx context.Context, articleText string, wordLimit int) (*http.Request, error) {
	promptMessage := chatCompletionMessage{
		Role: "system",
		Content: fmt.Sprintf("Summarize the following news article in about %d words. "+
			"Keep a neutral, informative tone suitable for being read aloud. "+
			"Respond with the summary text only, no headings and no preamble.\n\n"+
			"Article:\n%s", wordLimit, articleText),
	}

	promptReq := chatCompletionRequest{
		Stream:   true,
		Model:    s.summaryConfig.Model,
		Messages: []chatCompletionMessage{promptMessage},
	}

	payloadBytes, err := json.Marshal(promptReq)
	if err != nil {
		s.logger.Error(err, "Failed to marshal the request body")
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.summaryConfig.ApiUrl, bytes.NewBuffer(payloadBytes))
	if err != nil {
		s.logger.Error(err, "Failed to create the HTTP request")
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+s.summaryConfig.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}
