package adapters

import (
	"fmt"
	"io"
	"net/http"

	"generate-narration-api/application/ports/outbound"
)

const errorBodyExcerptLimit = 512

type ContentFetcher interface {
	FetchContent(req *http.Request) ([]byte, error)
}

type contentFetcher struct {
	client *http.Client
	logger outbound.LoggerPort
}

// NewContentFetcher returns the shared HTTP helper used by the provider
// adapters. A nil client falls back to http.DefaultClient.
func NewContentFetcher(client *http.Client, logger outbound.LoggerPort) ContentFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &contentFetcher{
		client: client,
		logger: logger,
	}
}

func (c *contentFetcher) FetchContent(req *http.Request) ([]byte, error) {
	res, err := c.client.Do(req)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to send the HTTP request", map[string]interface{}{
			"method": req.Method,
			"URL":    req.URL.String(),
		})
		return nil, err
	}

	defer func(body io.ReadCloser) {
		if closeErr := body.Close(); closeErr != nil {
			c.logger.Error(closeErr, "Failed to close the response body")
		}
	}(res.Body)

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		excerpt, _ := io.ReadAll(io.LimitReader(res.Body, errorBodyExcerptLimit))
		c.logger.ErrorWithFields(nil, "HTTP request returned non-OK status code", map[string]interface{}{
			"method":  req.Method,
			"URL":     req.URL.String(),
			"status":  res.StatusCode,
			"message": string(excerpt),
		})
		return nil, fmt.Errorf("HTTP request returned non-OK status code: %d", res.StatusCode)
	}

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to read the response body", map[string]interface{}{
			"method": req.Method,
			"URL":    req.URL.String(),
		})
		return nil, err
	}

	return payload, nil
}
