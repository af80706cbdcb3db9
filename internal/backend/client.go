package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/mallas/internal/form"
	"github.com/muurk/mallas/internal/logging"
	"github.com/muurk/mallas/internal/page"
	"github.com/muurk/mallas/internal/version"
)

const (
	// DefaultBaseURL is where the Flask simulator listens by default
	DefaultBaseURL = "http://127.0.0.1:5000"

	// DefaultExamplePath is the example endpoint relative to the base URL
	DefaultExamplePath = "/api/example"

	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// DefaultMaxRetries is the default number of retry attempts for failed requests
	DefaultMaxRetries = 2

	// DefaultRetryDelay is the default delay between retry attempts
	DefaultRetryDelay = 500 * time.Millisecond

	// DefaultMaxRetryDelay is the maximum delay for exponential backoff
	DefaultMaxRetryDelay = 5 * time.Second

	// maxBodySize caps how much of a response is read
	maxBodySize = 4 << 20
)

// Client talks to the mesh simulator backend
type Client struct {
	// BaseURL is the backend root (e.g., "http://127.0.0.1:5000")
	BaseURL string

	// ExamplePath is the example endpoint (default "/api/example")
	ExamplePath string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// MaxRetries is the maximum number of retry attempts for idempotent requests
	MaxRetries int

	// RetryDelay is the initial delay between retry attempts
	RetryDelay time.Duration

	// MaxRetryDelay is the maximum delay for exponential backoff
	MaxRetryDelay time.Duration

	// UseExponentialBackoff enables exponential backoff for retries
	UseExponentialBackoff bool
}

// NewClient creates a backend client for baseURL. An empty baseURL uses
// DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:               strings.TrimRight(baseURL, "/"),
		ExamplePath:           DefaultExamplePath,
		HTTPClient:            &http.Client{Timeout: DefaultTimeout},
		MaxRetries:            DefaultMaxRetries,
		RetryDelay:            DefaultRetryDelay,
		MaxRetryDelay:         DefaultMaxRetryDelay,
		UseExponentialBackoff: true,
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// SetRetry configures retry behavior
func (c *Client) SetRetry(maxRetries int, retryDelay time.Duration) {
	c.MaxRetries = maxRetries
	c.RetryDelay = retryDelay
}

// PageURL returns the address of the form page.
func (c *Client) PageURL() string {
	return c.BaseURL + "/"
}

// ExampleURL returns the address of the example endpoint.
func (c *Client) ExampleURL() string {
	return c.BaseURL + "/" + strings.TrimLeft(c.ExamplePath, "/")
}

// Ping checks that the backend answers on its page URL. Ping does not
// retry.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, c.PageURL(), "text/html", nil)
	return err
}

// FetchPage loads and parses the form page
func (c *Client) FetchPage(ctx context.Context) (*page.Document, error) {
	body, err := c.get(ctx, c.PageURL(), "text/html")
	if err != nil {
		return nil, err
	}
	doc, err := page.ParseBytes(body, c.PageURL())
	if err != nil {
		return nil, NewParseError("failed to parse page", err)
	}
	return doc, nil
}

// FetchExample loads the example record. Any transport failure, non-2xx
// status or body that is not a flat JSON object is an error.
func (c *Client) FetchExample(ctx context.Context) (form.ExampleRecord, error) {
	body, err := c.get(ctx, c.ExampleURL(), "application/json")
	if err != nil {
		return nil, err
	}
	rec, err := DecodeExample(body)
	if err != nil {
		return nil, NewParseError("failed to parse example response", err)
	}
	return rec, nil
}

// Submit sends the document's form the way a browser would and returns the
// page the backend answers with. POST submissions are not retried.
//
// doc is only read. Callers on an event loop pass doc.FormSnapshot().
//
// An error status whose body is a page with a server error block is
// returned as that page, the way a browser would show it.
func (c *Client) Submit(ctx context.Context, doc *page.Document) (*page.Document, error) {
	target, err := doc.ActionURL()
	if err != nil {
		return nil, NewRequestError("invalid form action", err)
	}
	return c.submitValues(ctx, doc.Method, target, doc.FormValues())
}

func (c *Client) submitValues(ctx context.Context, method, target string, values url.Values) (*page.Document, error) {
	var body []byte
	var err error
	final := target
	if method == http.MethodGet {
		u, perr := url.Parse(target)
		if perr != nil {
			return nil, NewRequestError("invalid form action", perr)
		}
		u.RawQuery = values.Encode()
		final = u.String()
		body, err = c.get(ctx, final, "text/html")
	} else {
		body, err = c.do(ctx, http.MethodPost, target, "text/html", values)
	}
	if err != nil {
		if doc := errorPage(err, final); doc != nil {
			return doc, nil
		}
		return nil, err
	}

	next, err := page.ParseBytes(body, final)
	if err != nil {
		return nil, NewParseError("failed to parse result page", err)
	}
	return next, nil
}

// errorPage returns the page carried by an HTTP error, or nil when the body
// is not a page with a server error block.
func errorPage(err error, pageURL string) *page.Document {
	be, ok := asError(err)
	if !ok || be.Type != ErrTypeHTTP || len(be.Body) == 0 {
		return nil
	}
	doc, perr := page.ParseBytes(be.Body, pageURL)
	if perr != nil || doc.ServerError == "" {
		return nil
	}
	logging.Warn("Backend answered with an error page",
		zap.Int("status_code", be.StatusCode),
		zap.String("error", doc.ServerError),
	)
	return doc
}

// get performs an idempotent GET with retries
func (c *Client) get(ctx context.Context, target, accept string) ([]byte, error) {
	var lastErr error
	currentDelay := c.RetryDelay

	// Retry loop with exponential backoff
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, NewNetworkError("request cancelled", ctx.Err())
			case <-time.After(currentDelay):
			}

			if c.UseExponentialBackoff {
				currentDelay *= 2
				if currentDelay > c.MaxRetryDelay {
					currentDelay = c.MaxRetryDelay
				}
			}
			logging.Warn("Retrying backend request",
				zap.String("url", target),
				zap.Int("attempt", attempt+1),
				zap.Error(lastErr),
			)
		}

		body, err := c.attempt(ctx, http.MethodGet, target, accept, nil, attempt+1)
		if err == nil {
			return body, nil
		}
		lastErr = err

		// Don't retry non-retryable errors
		if !IsRetryable(err) || ctx.Err() != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

// do performs a single non-idempotent request
func (c *Client) do(ctx context.Context, method, target, accept string, values url.Values) ([]byte, error) {
	return c.attempt(ctx, method, target, accept, values, 1)
}

// attempt performs one HTTP exchange
func (c *Client) attempt(ctx context.Context, method, target, accept string, values url.Values, n int) ([]byte, error) {
	var reqBody io.Reader
	if values != nil {
		reqBody = strings.NewReader(values.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, NewRequestError(fmt.Sprintf("failed to create %s request", method), err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", version.UserAgent())
	if values != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	logging.LogHTTPRequest(method, target, n)
	start := time.Now()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, NewNetworkError(fmt.Sprintf("%s %s failed", method, target), err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, NewNetworkError("failed to read response body", err)
	}
	logging.LogHTTPResponse(method, target, resp.StatusCode, len(body), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		herr := NewHTTPError(resp.StatusCode, target)
		herr.Body = body
		if snippet := bytes.TrimSpace(body); len(snippet) > 0 && len(snippet) < 200 {
			herr.Message = fmt.Sprintf("%s: %s", herr.Message, snippet)
		}
		return nil, herr
	}

	return body, nil
}
