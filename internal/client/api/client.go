// Package api is the single point of outbound request construction for the
// Rentafind client. One Client instance exists per process; it owns the
// current bearer token and attaches it to every outgoing request.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

const apiPrefix = "/api"

// Client issues requests to the backend. Paths are always given with the
// fixed /api prefix (mirroring what a browser client would send); depending
// on deployment mode the prefix is either forwarded as-is to a reverse proxy
// or stripped for direct backend calls.
type Client struct {
	origin     string // reverse-proxy origin; paths are sent unmodified
	directBase string // optional backend override; /api prefix is stripped
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// Option customizes a Client.
type Option func(*Client)

// WithDirectBase switches the client to direct-backend mode: requests go to
// base and the literal leading /api segment is stripped from every path.
func WithDirectBase(base string) Option {
	return func(c *Client) { c.directBase = strings.TrimRight(base, "/") }
}

// WithHTTPClient replaces the underlying *http.Client (used in tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New constructs a Client that talks to the given reverse-proxy origin,
// e.g. "http://127.0.0.1:8080".
func New(origin string, opts ...Option) *Client {
	c := &Client{
		origin:     strings.TrimRight(origin, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetToken installs the current bearer token. Subsequent requests carry
// "Authorization: Bearer <token>".
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken removes the current bearer token.
func (c *Client) ClearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

// Token returns the current bearer token ("" when unauthenticated).
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// stripAPIPrefix removes the literal leading /api segment from path.
// Only a whole segment is ever stripped: "/api/x" -> "/x", "/api" -> "/",
// "/apiary" is left untouched.
func stripAPIPrefix(path string) string {
	if path == apiPrefix {
		return "/"
	}
	if strings.HasPrefix(path, apiPrefix+"/") {
		return path[len(apiPrefix):]
	}
	return path
}

// url resolves a request path to an absolute URL for the current
// deployment mode. The rewrite is deterministic.
func (c *Client) url(path string) string {
	if c.directBase != "" {
		return c.directBase + stripAPIPrefix(path)
	}
	return c.origin + path
}

// do performs a single HTTP request, attaching the bearer token when present.
// Non-2xx responses are returned as *StatusError with any server-supplied
// message decoded; transport failures as *TransportError.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err, Timeout: isTimeout(err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, decodeError(resp)
	}
	return resp, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// decodeError builds a StatusError from an error response, preferring the
// backend's {"error": "..."} body over the generic status text.
func decodeError(resp *http.Response) *StatusError {
	se := &StatusError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return se
	}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		se.Message = payload.Error
	}
	return se
}

// JSON issues a request with an optional JSON body and decodes the JSON
// response into out (when out is non-nil).
func (c *Client) JSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	resp, err := c.do(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// Multipart issues a POST with multipart/form-data fields and an optional
// file part. A nil file leaves the part out entirely.
func (c *Client) Multipart(ctx context.Context, path string, fields map[string]string, fileField, fileName string, file []byte, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("encoding form field %s: %w", k, err)
		}
	}
	if file != nil {
		part, err := mw.CreateFormFile(fileField, fileName)
		if err != nil {
			return fmt.Errorf("encoding file part: %w", err)
		}
		if _, err := part.Write(file); err != nil {
			return fmt.Errorf("encoding file part: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("finalizing form: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, path, &buf, mw.FormDataContentType())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// GetBytes fetches a raw resource (e.g. a listing image).
func (c *Client) GetBytes(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
