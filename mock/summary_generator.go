package mock_provider

import (
	"context"
	"strings"
	"time"

	"generate-narration-api/application/ports/outbound"
)

const tokenReplayDelay = 30 * time.Millisecond

type summaryGenerator struct {
	logger     outbound.LoggerPort
	workerPool outbound.TaskDispatcher
}

// NewSummaryGenerator replays a truncated copy of the article itself as the
// "summary", token by token, so the UI can be exercised without provider
// credentials.
func NewSummaryGenerator(workerPool outbound.TaskDispatcher, logger outbound.LoggerPort) outbound.SummaryGeneratorPort {
	return &summaryGenerator{
		logger:     logger,
		workerPool: workerPool,
	}
}

func (g *summaryGenerator) Generate(ctx context.Context, req outbound.GenerateSummaryRequest) (<-chan string, <-chan error) {
	out := make(chan string)
	errCh := make(chan error, 1)

	words := strings.Fields(req.ArticleText)
	if req.WordLimit > 0 && len(words) > req.WordLimit {
		words = words[:req.WordLimit]
	}

	err := g.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)

		g.logger.InfoWithFields("Replaying mock summary", map[string]interface{}{
			"words": len(words),
		})

		for i, word := range words {
			token := word + " "
			if i == len(words)-1 && !strings.HasSuffix(word, ".") {
				token = word + "."
			}
			select {
			case <-ctx.Done():
				return
			case out <- token:
			}
			time.Sleep(tokenReplayDelay)
		}
	})
	if err != nil {
		errCh <- err
		close(errCh)
		close(out)
	}

	return out, errCh
}
