// Package remote talks to the workspace REST backend. Every method issues
// exactly one HTTP call; there are no retries and no caching at this layer.
package remote

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

	"github.com/SscSPs/workspace_dashboard/internal/apperrors"
	portsrepo "github.com/SscSPs/workspace_dashboard/internal/core/ports/repositories"
	"github.com/SscSPs/workspace_dashboard/internal/middleware"
)

const (
	defaultConnectTimeout = 5 * time.Second
	defaultTLSTimeout     = 5 * time.Second
	maxErrorBodyBytes     = 4 << 10
)

// Client is the HTTP implementation of the backend-facing repositories.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// Ensure Client implements portsrepo.RemoteProvider
var _ portsrepo.RemoteProvider = (*Client)(nil)

// NewClient builds a client for baseURL. A zero timeout leaves requests bounded
// only by their context.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	dialer := &net.Dialer{Timeout: defaultConnectTimeout}
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: defaultTLSTimeout,
	}
	return NewClientWithHTTP(baseURL, &http.Client{Transport: transport, Timeout: timeout})
}

// NewClientWithHTTP builds a client around an existing http.Client.
func NewClientWithHTTP(baseURL string, httpClient *http.Client) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("backend base URL cannot be empty")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend base URL must be absolute: %q", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: u, httpClient: httpClient}, nil
}

// route is a backend URL built by endpoint. err is set when a segment could
// not be placed safely, and every request built from the route fails with it.
type route struct {
	url string
	err error
}

// endpoint appends escaped path segments to the base URL. The result is never
// cleaned, so dot segments and empty ids are refused instead of resolved.
func (c *Client) endpoint(segments ...string) route {
	rawPath := strings.TrimSuffix(c.baseURL.Path, "/")
	escPath := strings.TrimSuffix(c.baseURL.EscapedPath(), "/")
	for _, s := range segments {
		if s == "" || s == "." || s == ".." {
			return route{err: fmt.Errorf("%w: invalid path segment %q", apperrors.ErrValidation, s)}
		}
		rawPath += "/" + s
		escPath += "/" + url.PathEscape(s)
	}
	u := *c.baseURL
	u.Path = rawPath
	u.RawPath = escPath
	return route{url: u.String()}
}

func (c *Client) newRequest(ctx context.Context, method string, target route, body io.Reader, contentType string) (*http.Request, error) {
	if target.err != nil {
		return nil, target.err
	}
	req, err := http.NewRequestWithContext(ctx, method, target.url, body)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	for _, cookie := range middleware.CookiesFromContext(ctx) {
		req.AddCookie(cookie)
	}
	return req, nil
}

// send performs the call and turns transport failures and non-2xx answers into
// taxonomy errors. On success the caller owns resp.Body.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", apperrors.ErrTransport, req.Method, req.URL.Path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, decodeRemoteError(resp)
	}
	return resp, nil
}

// doJSON sends a JSON request and decodes a JSON response (if out is non-nil).
// It returns the Set-Cookie headers of the response.
func (c *Client) doJSON(ctx context.Context, method string, target route, in any, out any) ([]*http.Cookie, error) {
	var body io.Reader
	contentType := ""
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(buf)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, target, body, contentType)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	cookies := resp.Cookies()
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return cookies, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return cookies, nil
		}
		return cookies, fmt.Errorf("decode response: %w", err)
	}
	return cookies, nil
}

// errorBody covers the error shapes the backend is known to send.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func decodeRemoteError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	msg := strings.TrimSpace(string(raw))

	var eb errorBody
	if json.Unmarshal(raw, &eb) == nil {
		switch {
		case eb.Message != "":
			msg = eb.Message
		case eb.Error != "":
			msg = eb.Error
		}
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &apperrors.RemoteError{StatusCode: resp.StatusCode, Message: msg}
}
