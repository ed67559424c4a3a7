// Package upstream implements the authenticated client for the backend
// API. Every inbound request gets its own client copy carrying that
// request's cookies, so session state never leaks between requests.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client represents an HTTP client for the upstream API
type Client struct {
	baseURL      string
	httpClient   *http.Client
	cookieHeader string
	bearer       string
}

// Response is a fully-read upstream success response
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// New creates a new upstream API client
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// WithCookies returns a copy of the client that sends the given cookies
// on every request. The Cookie header is rebuilt from name=value pairs
// joined by "; " because the transport does not forward the inbound jar
// on its own.
func (c *Client) WithCookies(cookies []*http.Cookie) *Client {
	clone := *c

	pairs := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		pairs = append(pairs, ck.Name+"="+ck.Value)
	}
	clone.cookieHeader = strings.Join(pairs, "; ")

	return &clone
}

// WithBearer returns a copy of the client that falls back to a bearer
// token when no cookies are attached. Cookies stay authoritative: the
// Authorization header is only sent on cookie-less requests.
func (c *Client) WithBearer(token string) *Client {
	clone := *c
	clone.bearer = token
	return &clone
}

// Do issues one upstream call and reads the full response. A non-2xx
// status is returned as *Error carrying the backend-supplied message;
// any other failure is a transport error.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader, contentType string) (*Response, error) {
	resp, err := c.send(ctx, method, path, body, contentType)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Status: resp.StatusCode, Message: messageFromBody(data)}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       data,
	}, nil
}

// DoJSON marshals the payload and issues the call with a JSON body
func (c *Client) DoJSON(ctx context.Context, method, path string, payload any) (*Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.Do(ctx, method, path, bytes.NewReader(data), "application/json")
}

// Stream issues one upstream call and returns the open response so large
// bodies can be copied through without buffering. The caller owns the
// body. Non-2xx responses are drained and returned as *Error, same as Do.
func (c *Client) Stream(ctx context.Context, method, path string) (*http.Response, error) {
	resp, err := c.send(ctx, method, path, nil, "")
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &Error{Status: resp.StatusCode, Message: messageFromBody(data)}
	}

	return resp, nil
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if c.cookieHeader != "" {
		req.Header.Set("Cookie", c.cookieHeader)
	} else if c.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	return resp, nil
}
