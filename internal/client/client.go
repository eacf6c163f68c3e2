// Package client provides an HTTP client for the villain REST API.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/evcraddock/villainapp/internal/comment"
	"github.com/evcraddock/villainapp/internal/villain"
)

// DefaultTimeout bounds every request so a hung backend surfaces as an error.
const DefaultTimeout = 30 * time.Second

// Client is an HTTP client for the villain API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a new API client rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Msg    string // server-provided error message, if any
}

func (e *StatusError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Code, e.Msg)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Code, http.StatusText(e.Code))
}

// IsNotFound reports whether err is a 404 StatusError.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// ListComments returns all comments for a villain. The payload is coerced to
// a list: anything other than a JSON array yields an empty slice.
func (c *Client) ListComments(villainID string) ([]*comment.Comment, error) {
	var raw json.RawMessage
	if err := c.get("/comentarios/"+url.PathEscape(villainID), &raw); err != nil {
		return nil, err
	}

	comments := make([]*comment.Comment, 0)
	if len(raw) == 0 || raw[0] != '[' {
		return comments, nil
	}
	if err := json.Unmarshal(raw, &comments); err != nil {
		return nil, fmt.Errorf("decoding comments: %w", err)
	}
	return comments, nil
}

// CreateComment posts a new comment. The response body is not used.
func (c *Client) CreateComment(villainID string, d comment.Draft) error {
	body := map[string]string{
		"villano":    villainID,
		"usuario":    d.Author,
		"comentario": d.Body,
	}
	return c.send(http.MethodPost, "/comentarios", body)
}

// UpdateComment replaces the author and text of a comment.
func (c *Client) UpdateComment(id string, d comment.Draft) error {
	body := map[string]string{
		"usuario":    d.Author,
		"comentario": d.Body,
	}
	return c.send(http.MethodPut, "/comentarios/"+url.PathEscape(id), body)
}

// DeleteComment removes a comment.
func (c *Client) DeleteComment(id string) error {
	return c.send(http.MethodDelete, "/comentarios/"+url.PathEscape(id), nil)
}

// ListVillains returns every villain in the catalog.
func (c *Client) ListVillains() ([]*villain.Villain, error) {
	villains := make([]*villain.Villain, 0)
	if err := c.get("/villanos", &villains); err != nil {
		return nil, err
	}
	return villains, nil
}

// GetVillain returns a villain by name.
func (c *Client) GetVillain(name string) (*villain.Villain, error) {
	var v villain.Villain
	if err := c.get("/villanos/"+url.PathEscape(name), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// CreateVillain adds a villain and returns the stored record.
func (c *Client) CreateVillain(v *villain.Villain) (*villain.Villain, error) {
	var created villain.Villain
	if err := c.post("/villanos", v, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteVillain removes a villain by name.
func (c *Client) DeleteVillain(name string) error {
	return c.send(http.MethodDelete, "/villanos/"+url.PathEscape(name), nil)
}

// Health checks that the server answers GET /health.
func (c *Client) Health() error {
	return c.send(http.MethodGet, "/health", nil)
}

// get performs a GET request and decodes the response.
func (c *Client) get(path string, result interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// post performs a POST request with a JSON body and decodes the response.
func (c *Client) post(path string, body interface{}, result interface{}) error {
	req, err := c.newJSONRequest(http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return c.do(req, result)
}

// send performs a request whose response body is discarded.
func (c *Client) send(method, path string, body interface{}) error {
	req, err := c.newJSONRequest(method, path, body)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) newJSONRequest(method, path string, body interface{}) (*http.Request, error) {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, rdr)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do executes an HTTP request and handles errors.
func (c *Client) do(req *http.Request, result interface{}) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("api request failed", "method", req.Method, "path", req.URL.Path, "error", err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Warn("closing response body", "error", cerr)
		}
	}()

	slog.Debug("api response",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start).String(),
	)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Method: req.Method, Path: req.URL.Path, Code: resp.StatusCode}
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil {
			se.Msg = errResp.Error
		}
		return se
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
