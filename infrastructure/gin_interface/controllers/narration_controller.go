package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"generate-narration-api/application/ports/inbound"
	"generate-narration-api/application/ports/outbound"
	"generate-narration-api/domain"
	"generate-narration-api/infrastructure/gin_interface/dto"
	"generate-narration-api/middleware"
)

var errNoAudioEvent = errors.New("narration pipeline finished without an audio event")

type NarrationController interface {
	CreateNarration(c *gin.Context)
	StreamNarration(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type narrationController struct {
	logger            outbound.LoggerPort
	narrationPipeline inbound.NarrationPipelinePort
}

func NewNarrationController(logger outbound.LoggerPort, narrationPipeline inbound.NarrationPipelinePort) NarrationController {
	return &narrationController{
		logger:            logger,
		narrationPipeline: narrationPipeline,
	}
}

// CreateNarration runs the whole pipeline and answers with a single JSON
// body: the summary text plus the WAV rendition, base64-encoded for direct
// playback in the browser.
func (n *narrationController) CreateNarration(c *gin.Context) {
	var createRequest dto.CreateNarrationRequest
	if err := c.ShouldBindJSON(&createRequest); err != nil {
		if abortErr := c.AbortWithError(http.StatusBadRequest, err); abortErr != nil {
			n.logger.Error(abortErr, "failed to abort with error")
		}
		return
	}

	newCtx, cancel := context.WithCancel(c)
	defer cancel()

	narrationID := uuid.NewString()

	eventsCh, errCh := n.narrationPipeline.StartPipeline(newCtx, inbound.StartPipelineParams{
		ArticleText: createRequest.ArticleText,
		NarrationID: narrationID,
		Voice:       createRequest.Voice,
	})

	response := dto.CreateNarrationResponse{NarrationID: narrationID}
	var summaryParts []string

	for {
		select {
		case err, ok := <-errCh:
			if ok {
				n.abortPipelineFailure(c, narrationID, err)
				return
			}
		case event, ok := <-eventsCh:
			if !ok {
				if err, pending := <-errCh; pending {
					n.abortPipelineFailure(c, narrationID, err)
					return
				}
				if response.AudioBase64 == "" {
					n.abortPipelineFailure(c, narrationID, errNoAudioEvent)
					return
				}
				response.Summary = strings.Join(summaryParts, " ")
				c.JSON(http.StatusOK, response)
				return
			}
			switch event.Type {
			case domain.SummaryEventType:
				summaryParts = append(summaryParts, event.Text)
			case domain.AudioEventType:
				response.AudioBase64 = event.AudioBase64
				response.MediaType = event.MediaType
				response.SampleRate = event.SampleRate
				response.DurationSeconds = event.DurationSeconds
			}
		}
	}
}

// StreamNarration emits the pipeline progressively over SSE: repeated
// "summary" events, one "audio" event, then "end".
func (n *narrationController) StreamNarration(c *gin.Context) {
	var createRequest dto.CreateNarrationRequest
	if err := c.ShouldBindJSON(&createRequest); err != nil {
		if abortErr := c.AbortWithError(http.StatusBadRequest, err); abortErr != nil {
			n.logger.Error(abortErr, "failed to abort with error")
		}
		return
	}

	newCtx, cancel := context.WithCancel(c)
	defer cancel()

	narrationID := uuid.NewString()

	eventsCh, errCh := n.narrationPipeline.StartPipeline(newCtx, inbound.StartPipelineParams{
		ArticleText: createRequest.ArticleText,
		NarrationID: narrationID,
		Voice:       createRequest.Voice,
	})

	sawAudio := false
	clientGone := c.Request.Context().Done()

	for {
		select {
		case <-clientGone:
			return
		case err, ok := <-errCh:
			if ok {
				n.emitStreamError(c, narrationID, err)
				return
			}
		case event, ok := <-eventsCh:
			if !ok {
				if err, pending := <-errCh; pending {
					n.emitStreamError(c, narrationID, err)
					return
				}
				if !sawAudio {
					n.emitStreamError(c, narrationID, errNoAudioEvent)
					return
				}
				c.SSEvent("end", domain.NarrationEvent{NarrationID: narrationID})
				c.Writer.Flush()
				return
			}
			if event.Type == domain.AudioEventType {
				sawAudio = true
			}
			c.SSEvent(string(event.Type), event)
			c.Writer.Flush()
		}
	}
}

func (n *narrationController) RegisterRoutes(g *gin.Engine) {
	g.POST("/narrations", n.CreateNarration)
	g.POST("/narrations/stream", middleware.SSEHeaders(), n.StreamNarration)
}

func (n *narrationController) abortPipelineFailure(c *gin.Context, narrationID string, err error) {
	n.logger.ErrorWithFields(err, "narration pipeline failed", map[string]interface{}{
		"narration_id": narrationID,
	})
	if abortErr := c.AbortWithError(http.StatusInternalServerError, err); abortErr != nil {
		n.logger.Error(abortErr, "failed to abort with error")
	}
}

func (n *narrationController) emitStreamError(c *gin.Context, narrationID string, err error) {
	n.logger.ErrorWithFields(err, "narration stream failed", map[string]interface{}{
		"narration_id": narrationID,
	})
	c.SSEvent("error", domain.ErrorEvent{
		NarrationID: narrationID,
		Message:     err.Error(),
	})
	c.Writer.Flush()
}
