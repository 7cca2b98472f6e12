package notes

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/notesapp/notes.go/pkg/constants"
	"github.com/notesapp/notes.go/pkg/logger"
)

// maxErrorBody caps how much of a failed response is kept in a ResponseError.
const maxErrorBody = 64 << 10

// Client is a wrapper to make HTTP calls to a notes service.
//
// Each operation performs exactly one round trip. Nothing is retried,
// cached or deduplicated. A configured Client is safe for concurrent use;
// the Set* methods are meant to be called before the first request.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	logger      logger.Logger
	now         func() time.Time
	errorDetail bool
}

// NewClient creates a client for the notes service rooted at baseURL,
// e.g. "http://localhost:3000". A trailing slash is dropped.
//
// The underlying http.Client has no timeout; use SetTimeout or a context
// deadline to bound requests.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: constants.DefaultHTTPTimeout,
		},
		logger: logger.Noop(),
		now:    time.Now,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) SetTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

func (c *Client) SetHTTPClient(client *http.Client) *Client {
	c.httpClient = client
	return c
}

// SetLogger installs a logger. Requests are logged at debug level and
// failed responses at warn level. Bodies are never logged.
func (c *Client) SetLogger(l logger.Logger) *Client {
	if l == nil {
		l = logger.Noop()
	}
	c.logger = l
	return c
}

// SetClock replaces the time source used for createdAt.
func (c *Client) SetClock(now func() time.Time) *Client {
	c.now = now
	return c
}

// SetErrorDetail makes failed operations return a *ResponseError holding the
// status code and body instead of the bare error kind.
func (c *Client) SetErrorDetail(enabled bool) *Client {
	c.errorDetail = enabled
	return c
}

// send performs a single HTTP request.
//
// On a 2xx status the response is returned with its body open. Any other
// status is turned into kind and the body is closed. Errors from the
// transport itself are returned as they are.
func (c *Client) send(ctx context.Context, kind error, method, path string, body []byte) (*http.Response, error) {
	if c.baseURL == "" {
		return nil, constants.ErrNoBaseURL
	}

	bodyReader := io.Reader(http.NoBody)
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", constants.ContentTypeJSON)
	if body != nil {
		req.Header.Set("Content-Type", constants.ContentTypeJSON)
	}

	start := time.Now()
	c.logger.Debug("sending request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("received response",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer func() { _ = resp.Body.Close() }()
	c.logger.Warn("request failed", "error", kind.Error(), "method", method, "path", path, "status", resp.StatusCode)

	if !c.errorDetail {
		return nil, kind
	}
	return nil, readResponseError(kind, resp)
}

// readResponseError reads the body of a failed response into a ResponseError.
func readResponseError(kind error, resp *http.Response) *ResponseError {
	data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	body := string(data)
	if readErr != nil {
		body += fmt.Sprintf(" (body read error: %v)", readErr)
	}
	return &ResponseError{Op: kind, StatusCode: resp.StatusCode, Body: body}
}

func (c *Client) timestamp() string {
	return c.now().UTC().Format(constants.TimestampLayout)
}
