package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/exp/rand"
)

//go:generate mockgen -package mocks -destination mocks/mock_http.go github.com/Nackophilz/fankai-jellyfin/pkg/http HTTPClient

const (
	DefaultMaxRetries  = 3
	DefaultBaseBackoff = time.Millisecond * 500
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RetryClient retries requests that failed in transit, were rate limited or
// hit a server error. It is safe for concurrent use.
type RetryClient struct {
	client      HTTPClient
	baseBackoff time.Duration
	maxRetries  int
}

// ClientOption is a function that can be used to configure a RetryClient
type ClientOption func(*RetryClient)

// NewRetryClient creates a new RetryClient. maxRetries is the total number of attempts made for one request.
func NewRetryClient(opts ...ClientOption) *RetryClient {
	c := &RetryClient{
		client:      http.DefaultClient,
		maxRetries:  DefaultMaxRetries,
		baseBackoff: DefaultBaseBackoff,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.maxRetries < 1 {
		c.maxRetries = 1
	}

	return c
}

// WithMaxRetries sets the maximum number of retries for the client
func WithMaxRetries(maxRetries int) ClientOption {
	return func(c *RetryClient) {
		c.maxRetries = maxRetries
	}
}

// WithBaseBackoff sets the base backoff time for the client
func WithBaseBackoff(baseBackoff time.Duration) ClientOption {
	return func(c *RetryClient) {
		c.baseBackoff = baseBackoff
	}
}

// WithHTTPClient sets the http client to use for the client
func WithHTTPClient(client HTTPClient) ClientOption {
	return func(c *RetryClient) {
		c.client = client
	}
}

// Do executes the request, retrying with exponential backoff until it succeeds or maxRetries attempts were made.
// When the last attempt still returned a retryable status, that response is returned together with an error and
// the caller is responsible for closing its body.
// Waiting between attempts stops as soon as the request context is done.
func (c *RetryClient) Do(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 && req.GetBody != nil {
			req.Body, err = req.GetBody()
			if err != nil {
				return nil, err
			}
		}

		resp, err = c.client.Do(req)
		if err == nil && !retryable(resp.StatusCode) {
			return resp, nil
		}

		if ctxErr := req.Context().Err(); ctxErr != nil {
			closeBody(resp)
			return nil, ctxErr
		}

		if attempt == c.maxRetries-1 {
			break
		}

		wait := c.getRetryAfter(resp, attempt)
		closeBody(resp)

		if err := sleep(req.Context(), wait); err != nil {
			return nil, err
		}
	}

	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return resp, fmt.Errorf("rate limit exceeded after %d retries", c.maxRetries)
	}

	return resp, fmt.Errorf("server error %d after %d retries", resp.StatusCode, c.maxRetries)
}

// getRetryAfter calculates the appropriate retry delay
func (c *RetryClient) getRetryAfter(resp *http.Response, attempt int) time.Duration {
	if resp != nil {
		retryAfterHeader := resp.Header.Get("Retry-After")
		if retryAfterHeader != "" {
			seconds, err := strconv.Atoi(retryAfterHeader)
			if err == nil {
				return time.Duration(seconds) * time.Second
			}

			at, err := http.ParseTime(retryAfterHeader)
			if err == nil {
				return max(time.Until(at), 0)
			}
		}
	}

	// 2^n backoff
	expBackoff := time.Duration(1<<attempt) * c.baseBackoff
	if c.baseBackoff <= 0 {
		return expBackoff
	}

	// staggers the backoff to avoid a thundering herd
	jitter := time.Duration(rand.Int63n(int64(c.baseBackoff)))

	return expBackoff + jitter
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func closeBody(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}

	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
