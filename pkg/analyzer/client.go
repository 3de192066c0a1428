// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/NVIDIA/hostprobe/pkg/defaults"
	hperrors "github.com/NVIDIA/hostprobe/pkg/errors"
	"github.com/NVIDIA/hostprobe/pkg/serializer"
)

const (
	// DefaultEndpoint is the Messages API URL.
	DefaultEndpoint = "https://api.anthropic.com/v1/messages"
	// DefaultModel is the model asked for analysis unless configured otherwise.
	DefaultModel = "claude-sonnet-4-5-20250929"
	// APIVersion is sent as the anthropic-version header.
	APIVersion = "2023-06-01"

	maxErrorBody = 1 << 16
)

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the Messages API URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.Endpoint = endpoint
	}
}

// WithModel overrides the model name.
func WithModel(model string) Option {
	return func(c *Client) {
		c.Model = model
	}
}

// WithMaxTokens overrides the answer token limit.
func WithMaxTokens(n int) Option {
	return func(c *Client) {
		c.MaxTokens = n
	}
}

// WithTimeout bounds the whole request including the response read.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.Timeout = timeout
	}
}

// WithHTTPClient replaces the HTTP client, for example with an httptest server client.
func WithHTTPClient(doer Doer) Option {
	return func(c *Client) {
		c.HTTP = doer
	}
}

// WithLogger sets the logger used for unavailable answers.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.Logger = logger
	}
}

// Client sends payloads to the Messages API. One request per Analyze call,
// without retries or caching.
type Client struct {
	Endpoint  string
	Model     string
	MaxTokens int
	Timeout   time.Duration
	HTTP      Doer
	Logger    *slog.Logger
}

// NewClient creates a Client with default endpoint, model, token limit and timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		Endpoint:  DefaultEndpoint,
		Model:     DefaultModel,
		MaxTokens: defaults.AnalysisMaxTokens,
		Timeout:   defaults.AnalysisTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.HTTP == nil {
		c.HTTP = &http.Client{
			Timeout:   c.Timeout,
			Transport: serializer.NewTransport(defaults.AnalysisConnectTimeout, defaults.AnalysisTLSHandshakeTimeout),
		}
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Analyze sends payload and returns the text of the first content block.
// Any failure is logged at warn level and reported as ("", false).
func (c *Client) Analyze(ctx context.Context, apiKey string, payload *Payload) (string, bool) {
	start := time.Now()
	answer, err := c.analyze(ctx, apiKey, payload)
	analysisRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		analysisRequestsTotal.WithLabelValues(outcomeUnavailable).Inc()
		mapped := mapError(err)
		c.logger().Warn("analysis unavailable",
			"code", hperrors.CodeOf(mapped),
			"error", mapped)
		return "", false
	}

	analysisRequestsTotal.WithLabelValues(outcomeSuccess).Inc()
	return answer, true
}

func (c *Client) analyze(ctx context.Context, apiKey string, payload *Payload) (string, error) {
	if payload == nil {
		return "", hperrors.New(hperrors.ErrCodeInvalidRequest, "payload is required")
	}
	content, err := payload.Content()
	if err != nil {
		return "", hperrors.Wrap(hperrors.ErrCodeInternal, "failed to render payload", err)
	}
	analysisPayloadBytes.Observe(float64(len(content)))

	body, err := json.Marshal(messagesRequest{
		Model:     c.Model,
		MaxTokens: c.MaxTokens,
		Messages:  []chatMessage{{Role: "user", Content: content}},
	})
	if err != nil {
		return "", hperrors.Wrap(hperrors.ErrCodeInternal, "failed to marshal request", err)
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	rc, err := c.doPost(ctx, apiKey, body)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	var resp messagesResponse
	if err := json.NewDecoder(io.LimitReader(rc, defaults.MaxResponseBytes)).Decode(&resp); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", hperrors.Wrap(hperrors.ErrCodeMalformedResponse, "failed to decode response", err)
	}
	if len(resp.Content) == 0 {
		return "", hperrors.New(hperrors.ErrCodeMalformedResponse, "response has no content")
	}
	if resp.Content[0].Text == nil {
		return "", hperrors.NewWithContext(hperrors.ErrCodeMalformedResponse, "first content block has no text",
			map[string]any{"type": resp.Content[0].Type})
	}

	return *resp.Content[0].Text, nil
}

// doPost sends an authenticated POST request and returns the response body.
func (c *Client) doPost(ctx context.Context, apiKey string, body []byte) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, hperrors.Wrap(hperrors.ErrCodeInvalidRequest, "failed to create request", err)
	}
	req.Header.Set("content-type", "application/json")
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", APIVersion)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, parseStatusError(resp)
	}

	return resp.Body, nil
}

func (c *Client) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// statusError is a non-2xx answer from the API.
type statusError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d %s: %s", e.StatusCode, e.Type, e.Message)
}

// parseStatusError reads an error response body.
func parseStatusError(resp *http.Response) *statusError {
	var errResp struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || json.Unmarshal(data, &errResp) != nil {
		return &statusError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	msg := errResp.Error.Message
	if msg == "" {
		msg = resp.Status
	}
	return &statusError{
		StatusCode: resp.StatusCode,
		Type:       errResp.Error.Type,
		Message:    msg,
	}
}

// mapError classifies transport and status failures with a structured code.
func mapError(err error) error {
	var se *hperrors.StructuredError
	if errors.As(err, &se) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return hperrors.Wrap(hperrors.ErrCodeTimeout, "request timed out or cancelled", err)
	}

	var st *statusError
	if errors.As(err, &st) {
		return hperrors.WrapWithContext(statusCode(st.StatusCode), st.Message, err, map[string]any{
			"status": st.StatusCode,
			"type":   st.Type,
		})
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return hperrors.Wrap(hperrors.ErrCodeTimeout, "request timed out", err)
	}
	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) {
		return hperrors.Wrap(hperrors.ErrCodeUnavailable, "analysis endpoint unreachable", err)
	}

	return hperrors.Wrap(hperrors.ErrCodeInternal, "analysis request failed", err)
}

func statusCode(status int) hperrors.ErrorCode {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return hperrors.ErrCodeUnauthorized
	case status == http.StatusTooManyRequests:
		return hperrors.ErrCodeRateLimitExceeded
	case status == http.StatusNotFound:
		return hperrors.ErrCodeNotFound
	case status >= 500:
		return hperrors.ErrCodeUnavailable
	case status >= 400:
		return hperrors.ErrCodeInvalidRequest
	default:
		return hperrors.ErrCodeMalformedResponse
	}
}

// --- Messages API types ---

type messagesRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	ID      string         `json:"id"`
	Model   string         `json:"model"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string  `json:"type"`
	Text *string `json:"text"`
}
