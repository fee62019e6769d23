// Package generation talks to the external generative-language endpoint.
// One request, one attempt: callers decide what to do on failure.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/alexivanou/tripsynth-api/internal/config"
	"github.com/alexivanou/tripsynth-api/internal/prompt"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	topP            = 0.8
	maxOutputTokens = 8192

	maxResponseBytes = 4 << 20
	maxErrorBytes    = 4 << 10
)

// Kind classifies a generation failure
type Kind string

const (
	KindNotConfigured Kind = "not_configured"
	KindTransport     Kind = "transport"
	KindTimeout       Kind = "timeout"
	KindStatus        Kind = "status"
	KindEmpty         Kind = "empty"
)

// ErrNotConfigured is returned when no API key is set
var ErrNotConfigured = errors.New("generation api key is not configured")

// Error is a classified generation failure
type Error struct {
	Kind       Kind
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("generation %s (%d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("generation %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the failure kind of err, or "" when err is not a generation error
func KindOf(err error) Kind {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Kind
	}
	return ""
}

// Client calls a generateContent style endpoint
type Client struct {
	cfg        config.GenerationConfig
	httpClient *http.Client
}

// NewClient creates a client. A nil httpClient gets one bounded by cfg.Timeout.
func NewClient(cfg config.GenerationConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{cfg: cfg, httpClient: httpClient}
}

// Configured reports whether the client has credentials
func (c *Client) Configured() bool {
	return c.cfg.Configured()
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	TopP             float64 `json:"topP"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMimeType string  `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends the prompt and returns the raw candidate text
func (c *Client) Generate(ctx context.Context, p prompt.Prompt) (string, error) {
	if !c.Configured() {
		return "", &Error{Kind: KindNotConfigured, Err: ErrNotConfigured}
	}

	ctx, span := otel.Tracer("tripsynth/generation").Start(ctx, "generation.Generate")
	defer span.End()
	span.SetAttributes(attribute.String("generation.model", c.cfg.Model))

	text, err := c.generate(ctx, p)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(KindOf(err)))
		return "", err
	}
	span.SetAttributes(attribute.Int("generation.response_bytes", len(text)))
	return text, nil
}

func (c *Client) generate(ctx context.Context, p prompt.Prompt) (string, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: p.Text()}}}},
		GenerationConfig: generationConfig{
			Temperature:      c.cfg.Temperature,
			TopP:             topP,
			MaxOutputTokens:  maxOutputTokens,
			ResponseMimeType: "application/json",
		},
	})
	if err != nil {
		return "", &Error{Kind: KindTransport, Err: fmt.Errorf("failed to encode request: %w", err)}
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.cfg.Endpoint, url.PathEscape(c.cfg.Model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &Error{Kind: KindTransport, Err: fmt.Errorf("failed to build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", &Error{Kind: KindStatus, StatusCode: resp.StatusCode, Err: statusError(resp)}
	}

	var out generateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		if isTimeout(err) {
			return "", &Error{Kind: KindTimeout, Err: err}
		}
		return "", &Error{Kind: KindEmpty, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if len(out.Candidates) == 0 {
		return "", &Error{Kind: KindEmpty, Err: errors.New("no candidates in response")}
	}
	var sb strings.Builder
	for _, pt := range out.Candidates[0].Content.Parts {
		sb.WriteString(pt.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", &Error{Kind: KindEmpty, Err: fmt.Errorf("empty candidate (finish reason %q)", out.Candidates[0].FinishReason)}
	}
	return text, nil
}

func classifyTransport(err error) *Error {
	if isTimeout(err) {
		return &Error{Kind: KindTimeout, Err: err}
	}
	return &Error{Kind: KindTransport, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func statusError(resp *http.Response) error {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
	if err != nil || len(data) == 0 {
		return errors.New(resp.Status)
	}
	var payload apiError
	if err := json.Unmarshal(data, &payload); err != nil || payload.Error.Message == "" {
		return errors.New(resp.Status)
	}
	return errors.New(payload.Error.Message)
}
