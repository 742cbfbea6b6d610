// Package chat provides a REST client for the workspace chat gateway
package chat

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	perr "faqrelay/internal/platform/errors"
	"faqrelay/internal/platform/logger"
)

const (
	baseURLDefault   = "http://127.0.0.1:8065"
	defaultTimeout   = 10 * time.Second
	defaultUA        = "faqrelay"
	defaultRetryBase = 500 * time.Millisecond
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Token is the bot account bearer token
	Token string

	// Retry config for rate limited responses. Deliveries are fire and
	// forget so MaxRetries defaults to zero
	MaxRetries int
	RetryBase  time.Duration
}

// Client is a minimal chat REST client with bearer auth
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(time.Duration)
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("chat"),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Do issues a request with auth headers and bounded rate limit handling
// body may be nil for GET style calls; it is replayed on retry
func (c *Client) Do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	url := c.opts.BaseURL + path
	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		var rd io.Reader
		if body != nil {
			rd = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, rd)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "chat new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.opts.Token != "" {
			req.Header.Set("Authorization", "Bearer "+c.opts.Token)
		}

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "chat do failed")
		}

		c.log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("chat http response")

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return resp, nil
		case resp.StatusCode == http.StatusNotFound:
			_ = drainAndClose(resp.Body)
			return nil, perr.NotFoundf("chat %s %s not found", method, path)
		case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
			_ = drainAndClose(resp.Body)
			return nil, perr.Unauthorizedf("chat token rejected (status %d)", resp.StatusCode)
		case resp.StatusCode == http.StatusTooManyRequests:
			wait := retryAfter(resp.Header, c.now())
			if wait <= 0 {
				wait = c.backoff(attempts)
			}
			_ = drainAndClose(resp.Body)
			if attempts >= c.opts.MaxRetries {
				return nil, perr.Newf(perr.ErrorCodeTooManyRequests, "chat rate limited")
			}
			c.log.Warn().Dur("sleep", wait).Msg("chat rate limited backing off")
			c.sleep(wait)
			attempts++
			continue
		default:
			// read a small tail for diagnostics then return
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return nil, perr.Newf(perr.ErrorCodeUnavailable,
				"chat unexpected status %d body %s", resp.StatusCode, string(b))
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase
	ms := int64(d / time.Millisecond)
	ms = ms << uint(attempt)
	max := int64(10 * time.Second / time.Millisecond)
	if ms > max {
		ms = max
	}
	return time.Duration(ms) * time.Millisecond
}
