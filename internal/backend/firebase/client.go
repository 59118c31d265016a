// Package firebase implements the service.Service interface over the
// Firebase Realtime Database REST convention.
package firebase

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"

	"tasklist/internal/service"
)

// TasksURL is the collection read by the client.
const TasksURL = "https://your-firebase-db.firebaseio.com/tasks.json"

// Client implements service.Service with a single GET per fetch.
// There is no timeout and no retry; the caller's context is the only bound.
type Client struct {
	httpClient *http.Client
	url        string
	logger     *log.Logger // warnings about dropped entries
	debug      *log.Logger
}

// New creates a client for TasksURL.
// Either logger may be nil, which discards its output.
func New(logger, debug *log.Logger) *Client {
	return NewWithHTTPClient(&http.Client{}, TasksURL, logger, debug)
}

// NewWithHTTPClient creates a client with a custom HTTP client and URL (for testing).
func NewWithHTTPClient(httpClient *http.Client, url string, logger, debug *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if debug == nil {
		debug = log.New(io.Discard, "", 0)
	}
	return &Client{
		httpClient: httpClient,
		url:        url,
		logger:     logger,
		debug:      debug,
	}
}

// FetchTasks reads the task collection and decodes it.
func (c *Client) FetchTasks(ctx context.Context) ([]service.Task, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, service.NewFetchError(err)
	}
	req.Header.Set("Accept", "application/json")

	c.debug.Printf("GET %s", c.url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, service.NewFetchError(err)
	}
	defer resp.Body.Close()

	c.debug.Printf("%s %s", resp.Status, c.url)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, service.NewFetchError(fmt.Errorf("unexpected status: %s", resp.Status))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, service.NewFetchError(fmt.Errorf("read body: %w", err))
	}

	c.debug.Printf("read %d bytes", len(body))
	return DecodeTasks(body, c.logger)
}
