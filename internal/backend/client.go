// Package backend is the HTTP client for the prepdeck backend API. It attaches
// the bearer token, maps failures to *APIError and turns a 401 into a global
// sign-out.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/prepdeck/prepdeck-web/internal/observability/statsd"
	"github.com/prepdeck/prepdeck-web/internal/requestid"
)

const (
	defaultUserAgent = "prepdeck-web/1.0"
	maxErrorBody     = 64 << 10
)

// ExpiredHook runs after a 401 has cleared the session.
type ExpiredHook func(ctx context.Context)

// Options configures a Client.
type Options struct {
	// BaseURL is the API root, e.g. http://localhost:8000/api.
	BaseURL string
	// HTTPClient defaults to NewHTTPClient(DefaultTimeout).
	HTTPClient *http.Client
	// Session is used when the request context carries none.
	Session Session
	// OnSessionExpired is the global hook run on every 401.
	OnSessionExpired ExpiredHook
	Metrics          statsd.Sink
	Logger           *slog.Logger
	UserAgent        string
}

// Client performs JSON requests against the backend.
type Client struct {
	baseURL   string
	http      *http.Client
	session   Session
	onExpired ExpiredHook
	metrics   statsd.Sink
	logger    *slog.Logger
	userAgent string
}

// NewClient builds a Client.
func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = NewHTTPClient(DefaultTimeout)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		http:      hc,
		session:   opts.Session,
		onExpired: opts.OnSessionExpired,
		metrics:   opts.Metrics,
		logger:    logger.With("component", "backend_client"),
		userAgent: ua,
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.baseURL }

// Get decodes the response of GET endpoint into out.
func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.Do(ctx, http.MethodGet, endpoint, nil, out)
}

// Post sends body as JSON and decodes the response into out.
func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	return c.Do(ctx, http.MethodPost, endpoint, body, out)
}

// Put sends body as JSON and decodes the response into out.
func (c *Client) Put(ctx context.Context, endpoint string, body, out any) error {
	return c.Do(ctx, http.MethodPut, endpoint, body, out)
}

// Delete decodes the response of DELETE endpoint into out.
func (c *Client) Delete(ctx context.Context, endpoint string, out any) error {
	return c.Do(ctx, http.MethodDelete, endpoint, nil, out)
}

// Do performs one JSON request. body is encoded when non-nil; out is decoded
// when non-nil and the response has content.
func (c *Client) Do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return &APIError{Kind: KindTransport, Method: method, Endpoint: endpoint,
				Message: "could not encode request", Err: err}
		}
		reader = buf
	}
	contentType := ""
	if body != nil {
		contentType = "application/json"
	}
	return c.send(ctx, method, endpoint, reader, contentType, out)
}

// Upload is a multipart/form-data request body.
type Upload struct {
	// FieldName is the form field of the file part, "file" when empty.
	FieldName   string
	FileName    string
	ContentType string
	Content     io.Reader
	// Fields are extra form values sent before the file.
	Fields map[string]string
}

// Upload posts a multipart body. The content type, including the boundary,
// comes from the multipart writer.
func (c *Client) Upload(ctx context.Context, endpoint string, up Upload, out any) error {
	if up.Content == nil {
		return &APIError{Kind: KindTransport, Method: http.MethodPost, Endpoint: endpoint,
			Message: "no file to upload"}
	}
	buf := new(bytes.Buffer)
	mw := multipart.NewWriter(buf)
	if err := writeMultipart(mw, up); err != nil {
		return &APIError{Kind: KindTransport, Method: http.MethodPost, Endpoint: endpoint,
			Message: "could not encode upload", Err: err}
	}
	return c.send(ctx, http.MethodPost, endpoint, buf, mw.FormDataContentType(), out)
}

func writeMultipart(mw *multipart.Writer, up Upload) error {
	for k, v := range up.Fields {
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}
	field := up.FieldName
	if field == "" {
		field = "file"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, up.FileName))
	ct := up.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)
	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, up.Content); err != nil {
		return err
	}
	return mw.Close()
}

func (c *Client) send(ctx context.Context, method, endpoint string, body io.Reader, contentType string, out any) error {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, method, c.url(endpoint), body)
	if err != nil {
		return &APIError{Kind: KindTransport, Method: method, Endpoint: endpoint,
			Message: "invalid request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.Header, id)
	}
	sess := c.sessionFor(ctx)
	if sess != nil {
		if tok := sess.AccessToken(ctx); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(method, 0, start)
		c.logger.WarnContext(ctx, "backend request failed", "method", method, "endpoint", endpoint, "error", err)
		return &APIError{Kind: KindTransport, Method: method, Endpoint: endpoint,
			Message: transportMessage(err), Err: err}
	}
	defer resp.Body.Close()
	c.observe(method, resp.StatusCode, start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := statusError(method, endpoint, resp.StatusCode, raw)
		if apiErr.Kind == KindUnauthorized {
			c.expire(ctx, sess)
		}
		c.logger.DebugContext(ctx, "backend returned error status",
			"method", method, "endpoint", endpoint, "status", resp.StatusCode, "message", apiErr.Message)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &APIError{Kind: KindDecode, StatusCode: resp.StatusCode, Method: method, Endpoint: endpoint,
			Message: "unexpected response from server", Err: err}
	}
	return nil
}

// expire clears the session and runs the global hook. No retry follows.
func (c *Client) expire(ctx context.Context, sess Session) {
	if sess != nil {
		sess.Invalidate(ctx)
	}
	if c.onExpired != nil {
		c.onExpired(ctx)
	}
}

func (c *Client) sessionFor(ctx context.Context) Session {
	if s, ok := SessionFromContext(ctx); ok {
		return s
	}
	return c.session
}

func (c *Client) url(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return c.baseURL + endpoint
}

func (c *Client) observe(method string, status int, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.Timing("backend.request", time.Since(start), map[string]string{
		"method": method,
		"status": statsd.StatusClass(status),
	})
}

func transportMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "the server took too long to respond"
	}
	if errors.Is(err, context.Canceled) {
		return "request canceled"
	}
	return "could not reach the server"
}
