package inbound

import (
	"context"

	"generate-narration-api/domain"
)

type StartPipelineParams struct {
	ArticleText string
	NarrationID string
	Voice       string
}

// NarrationPipelinePort runs the full narration flow: summary generation
// followed by dependent speech synthesis. Summary chunk events are emitted
// while the summary streams, a single audio event follows once synthesis
// completes, then both channels close.
type NarrationPipelinePort interface {
	StartPipeline(ctx context.Context, params StartPipelineParams) (<-chan domain.NarrationEvent, <-chan error)
}
