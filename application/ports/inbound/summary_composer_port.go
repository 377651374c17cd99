package inbound

import (
	"context"

	"generate-narration-api/domain"
)

type ComposeSummaryParams struct {
	ArticleText string
	NarrationID string
}

// SummaryComposerPort turns the raw token stream of the summary provider into
// ordered, cleaned-up summary chunks.
type SummaryComposerPort interface {
	Compose(ctx context.Context, params ComposeSummaryParams) (<-chan domain.SummaryChunk, <-chan error)
}
