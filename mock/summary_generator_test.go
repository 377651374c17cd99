package mock_provider

import (
	"context"
	"strings"
	"testing"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"generate-narration-api/application/ports/outbound"
	"generate-narration-api/infrastructure/adapters"
)

type rejectingDispatcher struct{}

func (rejectingDispatcher) Submit(_ func()) error {
	return ants.ErrPoolClosed
}

func TestMockSummaryGenerator_ReplaysTruncatedArticle(t *testing.T) {
	workerPool, err := ants.NewPool(4)
	require.NoError(t, err)
	defer workerPool.Release()

	generator := NewSummaryGenerator(workerPool, adapters.NewZerologWrapper())

	tokenCh, errCh := generator.Generate(context.Background(), outbound.GenerateSummaryRequest{
		ArticleText: "one two three four five",
		WordLimit:   3,
	})

	var tokens []string
	for token := range tokenCh {
		tokens = append(tokens, token)
	}
	for err := range errCh {
		require.NoError(t, err)
	}

	require.Len(t, tokens, 3)
	assert.Equal(t, "one two three.", strings.TrimSpace(strings.Join(tokens, "")))
}

func TestMockSummaryGenerator_SubmitFailureClosesChannels(t *testing.T) {
	generator := NewSummaryGenerator(rejectingDispatcher{}, adapters.NewZerologWrapper())

	tokenCh, errCh := generator.Generate(context.Background(), outbound.GenerateSummaryRequest{
		ArticleText: "one two three",
		WordLimit:   3,
	})

	var tokens []string
	for token := range tokenCh {
		tokens = append(tokens, token)
	}
	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}

	assert.Empty(t, tokens)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ants.ErrPoolClosed)
}
