package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"trustview/internal/logging"
	"trustview/internal/types"
)

const (
	// DefaultBaseURL is used when neither config nor API_URL set one.
	DefaultBaseURL = "http://localhost:8081"
	// DefaultTimeout bounds every request.
	DefaultTimeout = 10 * time.Second

	headerUserAddress = "X-User-Address"
	headerRequestID   = "X-Request-ID"

	// maxErrorBody caps how much of a failed response is kept in StatusError.
	maxErrorBody = 512
)

// Client talks to the Orchestrator HTTP API.
type Client struct {
	baseURL string
	client  *http.Client
	newID   func() string
	// slowAfter is when a request is logged as slow: half the timeout.
	slowAfter time.Duration
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithRequestIDFunc overrides X-Request-ID generation.
func WithRequestIDFunc(fn func() string) ClientOption {
	return func(c *Client) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// NewClient creates a client for baseURL. A zero timeout means DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: timeout},
		newID:     uuid.NewString,
		slowAfter: timeout / 2,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListIntents fetches GET /intents.
func (c *Client) ListIntents(ctx context.Context, wallet string) ([]types.Intent, error) {
	var intents []types.Intent
	if err := c.getJSON(ctx, "/intents", wallet, &intents); err != nil {
		return nil, err
	}
	if intents == nil {
		intents = []types.Intent{}
	}
	return intents, nil
}

// GetIntent fetches GET /status/{id}. A 404 is reported as ErrNotFound.
func (c *Client) GetIntent(ctx context.Context, intentID, wallet string) (*types.IntentDetail, error) {
	if intentID == "" {
		return nil, fmt.Errorf("intent id is required")
	}

	var detail types.IntentDetail
	if err := c.getJSON(ctx, "/status/"+url.PathEscape(intentID), wallet, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Health fetches GET /health.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var hs HealthStatus
	if err := c.getJSON(ctx, "/health", "", &hs); err != nil {
		return nil, err
	}
	return &hs, nil
}

func (c *Client) getJSON(ctx context.Context, path, wallet string, out interface{}) error {
	reqID := c.newID()
	log := logging.WithRequestID(logging.CategoryAPI, reqID).WithField("path", path)
	timer := logging.StartTimer(logging.CategoryAPI, "GET "+path)
	defer timer.StopWithThreshold(c.slowAfter)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, reqID)
	if wallet != "" {
		req.Header.Set(headerUserAddress, wallet)
	}

	log.Debug("GET %s wallet=%q", path, wallet)
	resp, err := c.client.Do(req)
	if err != nil {
		log.Warn("request failed: %v", err)
		return fmt.Errorf("orchestrator request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.Warn("status %d", resp.StatusCode)
		if resp.StatusCode == http.StatusNotFound && strings.HasPrefix(path, "/status/") {
			return ErrNotFound
		}
		return &StatusError{
			Code: resp.StatusCode,
			Path: path,
			Body: strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Warn("malformed body: %v", err)
		return &DecodeError{Path: path, Err: err}
	}
	return nil
}
