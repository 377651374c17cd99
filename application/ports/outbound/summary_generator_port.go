package outbound

import "context"

type GenerateSummaryRequest struct {
	ArticleText string
	WordLimit   int
}

// SummaryGeneratorPort streams summary text for an article, token by token,
// until the provider closes the stream.
type SummaryGeneratorPort interface {
	Generate(ctx context.Context, req GenerateSummaryRequest) (<-chan string, <-chan error)
}
