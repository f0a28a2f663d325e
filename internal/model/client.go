package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "github.com/inboxpilot-ai/inboxpilot/internal/errors"
)

const anthropicVersion = "bedrock-2023-05-31"

// ClientConfig configures the HTTP model client.
type ClientConfig struct {
	Endpoint string // base URL of the model runtime
	APIToken string
	Timeout  time.Duration
}

// DefaultClientConfig returns a client config with sane defaults.
func DefaultClientConfig(endpoint, token string) *ClientConfig {
	return &ClientConfig{
		Endpoint: endpoint,
		APIToken: token,
		Timeout:  120 * time.Second,
	}
}

// Client invokes models over HTTP. Transport and status failures are
// classified into error categories so the caller's retry policy can tell
// throttling from a permissions problem.
type Client struct {
	cfg    *ClientConfig
	client *http.Client
}

func NewClient(cfg *ClientConfig) *Client {
	if cfg == nil {
		return nil
	}
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Invoke sends one request to the named model and parses the response.
func (c *Client) Invoke(ctx context.Context, modelID string, req *Request) (*Response, error) {
	if c == nil {
		return nil, apperrors.Permanent(apperrors.CodeModelUnavailable, "model client not initialized")
	}

	req.AnthropicVersion = anthropicVersion
	body, err := req.MarshalBody()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInvalidInput, "failed to marshal request", apperrors.CategoryPermanent)
	}

	url := fmt.Sprintf("%s/model/%s/invoke", c.cfg.Endpoint, modelID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInvalidInput, "failed to create request", apperrors.CategoryPermanent)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.cfg.APIToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		// Transport errors include client timeouts, treat them as transient.
		return nil, apperrors.Wrap(err, apperrors.CodeModelTimeout, "model request failed", apperrors.CategoryTemporary)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeModelUnavailable, "failed to read response", apperrors.CategoryTemporary)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp.StatusCode, modelID, respBody)
	}

	var parsed Response
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeModelParseError, "failed to parse model response", apperrors.CategoryPermanent)
	}
	if len(parsed.Content) == 0 {
		return nil, apperrors.Temporary(apperrors.CodeModelEmptyResponse, "model returned empty content")
	}
	if parsed.Model == "" {
		parsed.Model = modelID
	}
	return &parsed, nil
}

// classifyStatus maps an HTTP status to an error category. Access denials
// are fatal for the whole tier, throttling and server errors are worth a
// retry, and other client errors mean the request itself is bad.
func classifyStatus(status int, modelID string, body []byte) error {
	msg := fmt.Sprintf("model %s returned status %d: %s", modelID, status, truncate(string(body), 200))
	switch {
	case status == http.StatusForbidden || status == http.StatusUnauthorized:
		return apperrors.AccessDenied(apperrors.CodeModelAccessDenied, msg)
	case status == http.StatusTooManyRequests:
		return apperrors.Temporary(apperrors.CodeModelThrottled, msg)
	case status == http.StatusRequestTimeout:
		return apperrors.Temporary(apperrors.CodeModelTimeout, msg)
	case status >= 500:
		return apperrors.Temporary(apperrors.CodeModelUnavailable, msg)
	default:
		return apperrors.Permanent(apperrors.CodeInvalidInput, msg)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
