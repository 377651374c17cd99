package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"generate-narration-api/application/ports/inbound"
	"generate-narration-api/domain"
	"generate-narration-api/infrastructure/adapters"
	"generate-narration-api/infrastructure/gin_interface/dto"
)

type stubPipeline struct {
	events []domain.NarrationEvent
	err    error
}

func (s *stubPipeline) StartPipeline(_ context.Context, params inbound.StartPipelineParams) (<-chan domain.NarrationEvent, <-chan error) {
	out := make(chan domain.NarrationEvent)
	errCh := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errCh)
		for _, event := range s.events {
			event.NarrationID = params.NarrationID
			out <- event
		}
		if s.err != nil {
			errCh <- s.err
		}
	}()
	return out, errCh
}

func newTestRouter(pipeline inbound.NarrationPipelinePort) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewNarrationController(adapters.NewZerologWrapper(), pipeline).RegisterRoutes(router)
	return router
}

func TestCreateNarration_Success(t *testing.T) {
	pipeline := &stubPipeline{
		events: []domain.NarrationEvent{
			{Type: domain.SummaryEventType, Ordinal: 0, Text: "First sentence."},
			{Type: domain.SummaryEventType, Ordinal: 1, Text: "Second sentence."},
			{Type: domain.AudioEventType, AudioBase64: "UklGRg==", MediaType: "audio/wav", SampleRate: 24000, DurationSeconds: 1.5},
		},
	}
	router := newTestRouter(pipeline)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/narrations",
		strings.NewReader(`{"article_text":"Some long article."}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response dto.CreateNarrationResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))

	assert.NotEmpty(t, response.NarrationID)
	assert.Equal(t, "First sentence. Second sentence.", response.Summary)
	assert.Equal(t, "UklGRg==", response.AudioBase64)
	assert.Equal(t, "audio/wav", response.MediaType)
	assert.Equal(t, 24000, response.SampleRate)
	assert.InDelta(t, 1.5, response.DurationSeconds, 1e-9)
}

func TestCreateNarration_MissingArticleText(t *testing.T) {
	router := newTestRouter(&stubPipeline{})

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/narrations", strings.NewReader(`{"voice":"Kore"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCreateNarration_PipelineError(t *testing.T) {
	router := newTestRouter(&stubPipeline{err: errors.New("provider unavailable")})

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/narrations",
		strings.NewReader(`{"article_text":"Some long article."}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestCreateNarration_MissingAudioEvent(t *testing.T) {
	pipeline := &stubPipeline{
		events: []domain.NarrationEvent{
			{Type: domain.SummaryEventType, Ordinal: 0, Text: "Only a summary."},
		},
	}
	router := newTestRouter(pipeline)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/narrations",
		strings.NewReader(`{"article_text":"Some long article."}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestStreamNarration_EmitsEventSequence(t *testing.T) {
	pipeline := &stubPipeline{
		events: []domain.NarrationEvent{
			{Type: domain.SummaryEventType, Ordinal: 0, Text: "A sentence."},
			{Type: domain.AudioEventType, AudioBase64: "UklGRg==", MediaType: "audio/wav", SampleRate: 24000},
		},
	}
	router := newTestRouter(pipeline)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/narrations/stream",
		strings.NewReader(`{"article_text":"Some long article."}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "text/event-stream", recorder.Header().Get("Content-Type"))

	body := recorder.Body.String()
	summaryIdx := strings.Index(body, "event:summary")
	audioIdx := strings.Index(body, "event:audio")
	endIdx := strings.Index(body, "event:end")

	require.GreaterOrEqual(t, summaryIdx, 0)
	require.Greater(t, audioIdx, summaryIdx, "audio event follows summary events")
	require.Greater(t, endIdx, audioIdx, "end event closes the stream")
	assert.Contains(t, body, "A sentence.")
}

func TestStreamNarration_EmitsErrorEvent(t *testing.T) {
	router := newTestRouter(&stubPipeline{err: errors.New("provider unavailable")})

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/narrations/stream",
		strings.NewReader(`{"article_text":"Some long article."}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, req)

	body := recorder.Body.String()
	assert.Contains(t, body, "event:error")
	assert.Contains(t, body, "provider unavailable")
	assert.NotContains(t, body, "event:end")
}
