// Package backend is a JSON client for the reservation backend. Every call takes the
// caller's bearer token explicitly; the client holds no session of its own.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/example/tablefinder/internal/internaltypes"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "tablefinder/1"
	maxErrorBody     = 512
)

type Client struct {
	HTTP      *http.Client
	BaseURL   string
	UserAgent string
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		HTTP:      &http.Client{Timeout: timeout},
		BaseURL:   baseURL,
		UserAgent: defaultUserAgent,
	}
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, payload any) (*http.Request, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, err
	}
	base.Path = strings.TrimSuffix(base.Path, "/") + "/" + strings.TrimPrefix(path, "/")

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, base.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// call performs one request and decodes a 2xx body into dest (which may be nil). Anything
// else comes back as *internaltypes.UpstreamError tagged with op.
func (c *Client) call(ctx context.Context, op, method, path, token string, payload, dest any) error {
	req, err := c.newRequest(ctx, method, path, token, payload)
	if err != nil {
		return &internaltypes.UpstreamError{Op: op, Err: err}
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &internaltypes.UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &internaltypes.UpstreamError{Op: op, StatusCode: resp.StatusCode, Body: errorDetail(b)}
	}
	if dest == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil && !errors.Is(err, io.EOF) {
		return &internaltypes.UpstreamError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// errorDetail pulls the "detail" message out of an error body when there is one.
func errorDetail(b []byte) string {
	var e struct {
		Detail any `json:"detail"`
	}
	if json.Unmarshal(b, &e) == nil {
		if s, ok := e.Detail.(string); ok && s != "" {
			return s
		}
	}
	return strings.TrimSpace(string(b))
}
