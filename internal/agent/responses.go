package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ClientConfig configures the HTTP client for the reasoning service.
type ClientConfig struct {
	// BaseURL of the service API. Defaults to the OpenAI endpoint, or
	// OPENAI_BASE_URL when set.
	BaseURL string

	// APIKey authenticates requests.
	APIKey string

	// Model names the served model.
	Model string

	// Timeout bounds each request. Zero means 120s.
	Timeout time.Duration
}

// ResponsesClient calls the OpenAI Responses API. It is stateful: the id
// of each response is sent as previous_response_id on the next call, so
// every call is chained to the full prior conversation of this instance.
//
// Not safe for concurrent use; interleaved calls would corrupt the chain.
type ResponsesClient struct {
	model  string
	client *resty.Client
	logger *zap.Logger

	previousResponseID string
}

// NewResponsesClient creates a client for one conversation thread.
func NewResponsesClient(cfg ClientConfig, logger *zap.Logger) (*ResponsesClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
		if envURL := os.Getenv("OPENAI_BASE_URL"); envURL != "" {
			baseURL = envURL
		}
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)
	client.SetAuthToken(cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")

	return &ResponsesClient{
		model:  cfg.Model,
		client: client,
		logger: logger,
	}, nil
}

// responsesRequest is the request body for the Responses API.
type responsesRequest struct {
	Model              string        `json:"model"`
	Input              string        `json:"input"`
	Reasoning          reasoningOpts `json:"reasoning"`
	Text               textOpts      `json:"text"`
	PreviousResponseID string        `json:"previous_response_id,omitempty"`
}

type reasoningOpts struct {
	Effort string `json:"effort"`
}

type textOpts struct {
	Verbosity string `json:"verbosity"`
}

// responsesResponse covers the parts of the response shape we read.
type responsesResponse struct {
	ID     string `json:"id"`
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

// Produce sends prompt to the service and returns the completion text.
// Failures propagate to the caller; there is no retry here.
func (c *ResponsesClient) Produce(ctx context.Context, prompt string, effort, verbosity Level) (string, error) {
	req := responsesRequest{
		Model:              c.model,
		Input:              prompt,
		Reasoning:          reasoningOpts{Effort: string(effort)},
		Text:               textOpts{Verbosity: string(verbosity)},
		PreviousResponseID: c.previousResponseID,
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/responses")
	if err != nil {
		return "", fmt.Errorf("reasoning service request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("reasoning service returned %d: %s", resp.StatusCode(), resp.String())
	}

	var parsed responsesResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		// Permissive on shape drift: store something rather than stall
		// the pipeline.
		c.logger.Warn("unparseable response body, using raw text", zap.Error(err))
		return resp.String(), nil
	}
	if parsed.ID != "" {
		c.previousResponseID = parsed.ID
	}

	return extractText(parsed, resp.String()), nil
}

// extractText walks the response output for the first output_text block.
// When the shape does not match, it falls back to the raw body.
func extractText(parsed responsesResponse, raw string) string {
	for _, item := range parsed.Output {
		for _, part := range item.Content {
			if part.Type == "output_text" && part.Text != "" {
				return part.Text
			}
		}
	}
	return raw
}
