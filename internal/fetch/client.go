package fetch

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ksakamaki/hospdash/internal/config"
	"github.com/ksakamaki/hospdash/internal/errors"
	"github.com/ksakamaki/hospdash/internal/logger"
)

// maxBodyBytes caps how much of a response body is read. The feeds return
// small JSON documents; anything larger indicates a misbehaving endpoint.
const maxBodyBytes = 8 << 20

// Client fetches JSON documents with bounded retries.
type Client struct {
	httpClient  *http.Client
	maxAttempts int
	delay       time.Duration
	timeout     time.Duration
	log         logger.Logger
}

// Options configures a Client. Zero values fall back to the defaults
// from config.DefaultConfig().
type Options struct {
	MaxAttempts int
	Delay       time.Duration
	Timeout     time.Duration
	HTTPClient  *http.Client
	Logger      logger.Logger
}

// New creates a client from retry config.
func New(retry config.RetryConfig, log logger.Logger) *Client {
	return NewWithOptions(Options{
		MaxAttempts: retry.MaxAttempts,
		Delay:       retry.Delay,
		Timeout:     retry.Timeout,
		Logger:      log,
	})
}

// NewWithOptions creates a client with explicit options.
func NewWithOptions(opts Options) *Client {
	defaults := config.DefaultConfig().Retry
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = defaults.MaxAttempts
	}
	if opts.Delay <= 0 {
		opts.Delay = defaults.Delay
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaults.Timeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	return &Client{
		httpClient:  opts.HTTPClient,
		maxAttempts: opts.MaxAttempts,
		delay:       opts.Delay,
		timeout:     opts.Timeout,
		log:         opts.Logger,
	}
}

// FetchJSON GETs url and unmarshals the response body into v.
// Attempts are strictly sequential: each one fully completes (success,
// timeout, or rejection) before the next begins.
func (c *Client) FetchJSON(ctx context.Context, url string, v interface{}) error {
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		err := c.doAttempt(ctx, url, v)
		if err == nil {
			return nil
		}
		lastErr = err

		c.log.Error("fetch failed (attempt %d/%d) url=%s: %v", attempt, c.maxAttempts, url, err)

		if !errors.Retryable(err) {
			return err
		}
		if attempt == c.maxAttempts {
			break
		}

		c.log.Debug("retrying in %s", c.delay)
		if err := sleep(ctx, c.delay); err != nil {
			// Parent context cancelled while waiting; stop retrying.
			return lastErr
		}
	}

	return lastErr
}

// doAttempt performs a single request under its own deadline. The deadline
// timer is released on every exit path via the deferred cancel.
func (c *Client) doAttempt(ctx context.Context, url string, v interface{}) error {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid feed URL",
			"Check the configured feed URL: "+url)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if stderrors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
			return errors.WrapWithCode(err, errors.ErrTimeout,
				fmt.Sprintf("Request timed out after %s", c.timeout),
				"The endpoint may be slow or unreachable")
		}
		return errors.WrapWithCode(err, errors.ErrNetwork,
			"Request failed",
			"Check your network connection")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return errors.New(errors.ErrNetwork,
			fmt.Sprintf("HTTP error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
			"The endpoint returned a non-success status")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if stderrors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
			return errors.WrapWithCode(err, errors.ErrTimeout,
				fmt.Sprintf("Request timed out after %s", c.timeout),
				"The endpoint may be slow or unreachable")
		}
		return errors.WrapWithCode(err, errors.ErrNetwork,
			"Failed to read response body", "")
	}

	if err := json.Unmarshal(body, v); err != nil {
		return errors.WrapWithCode(err, errors.ErrParse,
			"Response is not valid JSON",
			"The endpoint may be returning an error page")
	}

	return nil
}

// sleep waits for d or until ctx is cancelled, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
