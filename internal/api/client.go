package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenSource supplies the bearer token for authenticated calls.
type TokenSource interface {
	Token() (string, error)
}

// Client talks JSON over HTTP to the outreach backend. It carries no
// timeout or retry policy of its own; callers bound calls through ctx.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenSource
	logger  *zap.Logger
}

// New returns a client for the backend at baseURL.
func New(baseURL string, tokens TokenSource, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: u,
		http:    &http.Client{},
		tokens:  tokens,
		logger:  logger,
	}, nil
}

// BaseURL returns the backend address.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

type call struct {
	method string
	path   string
	query  url.Values
	body   any
	out    any
	// public calls (login, register) carry no Authorization header.
	public bool
}

func (c *Client) do(ctx context.Context, cl call) error {
	reqID := uuid.NewString()
	start := time.Now()

	u := *c.baseURL
	u.Path = c.baseURL.Path + cl.path
	if len(cl.query) > 0 {
		u.RawQuery = cl.query.Encode()
	}

	var body io.Reader
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if !cl.public && c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := c.logger.With(
		zap.String("request_id", reqID),
		zap.String("method", cl.method),
		zap.String("path", cl.path),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("backend unreachable", zap.Error(err), zap.Duration("took", time.Since(start)))
		return &TransportError{Op: cl.method + " " + cl.path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("read response failed", zap.Error(err))
		return &TransportError{Op: "read response", Err: err}
	}
	log.Info("backend call",
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Detail: parseDetail(data)}
	}
	if cl.out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, cl.out); err != nil {
		return &TransportError{Op: "decode response", Err: err}
	}
	return nil
}
