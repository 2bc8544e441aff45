package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxResponseBytes = 1 << 20

// RequestIDHeader carries a per-request id for log correlation.
const RequestIDHeader = "X-Request-ID"

// Predictor sends text to a prediction backend.
type Predictor interface {
	Predict(ctx context.Context, text string) (RawResponse, error)
}

type requestIDKey struct{}

// WithRequestID attaches a request id that Client.Predict sends instead of a fresh one.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the request id stored by WithRequestID.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Client talks to the HTTP prediction endpoint.
type Client struct {
	HTTPClient *http.Client
	Endpoint   string
	logger     *slog.Logger
}

type predictRequest struct {
	Text string `json:"text"`
}

// NewClient builds a client for cfg.Endpoint(). A nil logger discards output.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		HTTPClient: &http.Client{},
		Endpoint:   cfg.Endpoint(),
		logger:     logger,
	}
}

// Predict posts text as {"text": ...} and returns the decoded response object.
func (c *Client) Predict(ctx context.Context, text string) (RawResponse, error) {
	payload, err := json.Marshal(predictRequest{Text: text})
	if err != nil {
		return RawResponse{}, &AnalyzeError{Kind: ErrParse, Err: fmt.Errorf("encode request: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return RawResponse{}, &AnalyzeError{Kind: ErrTransport, Err: fmt.Errorf("new request: %w", err)}
	}
	requestID := RequestIDFrom(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return RawResponse{}, &AnalyzeError{Kind: ErrTransport, Err: fmt.Errorf("do request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return RawResponse{}, &AnalyzeError{Kind: ErrTransport, Err: fmt.Errorf("read response: %w", err)}
	}
	c.logger.Debug("prediction response",
		slog.String("request_id", requestID),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
		slog.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return RawResponse{}, &AnalyzeError{Kind: ErrTransport, Message: failureMessage(resp.StatusCode, body)}
	}
	raw, err := ParseRawResponse(body)
	if err != nil {
		return RawResponse{}, &AnalyzeError{Kind: ErrParse, Err: err}
	}
	return raw, nil
}

// failureMessage prefers an error field, then the body text, then the status code.
func failureMessage(status int, body []byte) string {
	if raw, err := ParseRawResponse(body); err == nil {
		if msg, ok := raw.ErrorMessage(); ok {
			return msg
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fmt.Sprintf("Server error: %d", status)
}
