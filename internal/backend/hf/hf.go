// Package hf talks to a Hugging Face Inference API compatible server: the
// hosted Inference API, text-generation-inference, or any local server that
// exposes POST /models/{model} with the same payloads.
package hf

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"grammarbot/internal/analyzer"
)

// DefaultBaseURL is the hosted Inference API.
const DefaultBaseURL = "https://api-inference.huggingface.co"

// Options configures a Client.
type Options struct {
	BaseURL        string
	Token          string
	RequestTimeout time.Duration
	ConnectTimeout time.Duration
	// RequestsPerSecond caps outbound calls; 0 disables the limiter.
	RequestsPerSecond float64
	Burst             int
}

// Client is a shared HTTP client for both model roles.
type Client struct {
	baseURL    string
	token      string
	reqTimeout time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New constructs a Client.
func New(opts Options) *Client {
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   opts.ConnectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	c := &Client{
		baseURL:    base,
		token:      opts.Token,
		reqTimeout: opts.RequestTimeout,
		// Deadlines come from the request context.
		httpClient: &http.Client{Transport: tr, Timeout: 0},
	}
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	return c
}

// modelURL returns the endpoint serving model.
func (c *Client) modelURL(model string) string {
	return c.baseURL + "/models/" + strings.TrimLeft(model, "/")
}

// post sends payload to the model endpoint and decodes the JSON answer into out.
func (c *Client) post(ctx context.Context, model string, payload any, out any) error {
	if c.reqTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.reqTimeout)
		defer cancel()
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.modelURL(model), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Translate context timeouts/cancels
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		se := &StatusError{Code: resp.StatusCode, Body: truncate(raw, 512)}
		if IsLoading(se) {
			return analyzer.DependencyUnavailable(se)
		}
		return se
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", model, err)
	}
	return nil
}

// Ping checks that the base URL answers at all. Any HTTP status counts as
// reachable; only transport failures are reported.
func (c *Client) Ping(ctx context.Context) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// StatusError is a non-2xx answer from the inference server.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("inference server http %d: %s", e.Code, e.Body)
}

// IsLoading reports whether err is the 503 the hosted API returns while a
// model is still being loaded.
func IsLoading(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusServiceUnavailable && strings.Contains(strings.ToLower(se.Body), "loading")
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
