// Package mirror posts session records to an optional remote endpoint.
// Posting is best effort: it never blocks the caller, each record is sent
// once, and failures are only logged.
package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/abhisek/waddle/internal/records"
)

// DefaultTimeout bounds a single post.
const DefaultTimeout = 3 * time.Second

// Client mirrors session records to a remote URL.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-post timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithLogger sets the logger that receives discarded failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a client posting to url. An empty url yields a client that
// drops every record.
func New(url string, opts ...Option) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: slog.Default(),
		ctx:    ctx,
		cancel: cancel,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Enabled reports whether the client has a destination.
func (c *Client) Enabled() bool {
	return c.url != ""
}

// Dispatch posts rec in the background and returns immediately.
func (c *Client) Dispatch(rec records.SessionRecord) {
	if !c.Enabled() || c.ctx.Err() != nil {
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.post(c.ctx, rec); err != nil {
			c.logger.Debug("session mirror failed", "session_id", rec.SessionID, "error", err)
		}
	}()
}

// Close cancels in-flight posts and waits for them to return.
func (c *Client) Close() {
	c.cancel()
	c.wg.Wait()
}

// Wait blocks until every dispatched post has finished.
func (c *Client) Wait() {
	c.wg.Wait()
}

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// post sends rec exactly once.
func (c *Client) post(ctx context.Context, rec records.SessionRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}
