package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/karanch577/sneakerx-admin/prometheus"
	"go.uber.org/zap"
)

const maxBodyBytes = 10 << 20

// MultipartPayload is a request body sent as multipart/form-data
type MultipartPayload interface {
	WriteMultipart(w *multipart.Writer) error
}

// Client talks to the SneakerX REST API. Credentials are the API's session
// cookies, kept in the client's cookie jar.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the client logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithHTTPClient replaces the underlying HTTP client. A client without a
// cookie jar gets a fresh one.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h.Jar == nil {
			h.Jar = c.httpClient.Jar
		}
		c.httpClient = h
	}
}

// New creates a client for the API rooted at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Jar: jar, Timeout: 30 * time.Second},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root
func (c *Client) BaseURL() string {
	return c.baseURL
}

type request struct {
	resource string
	method   string
	path     string
	query    url.Values
	body     any
}

func (r request) op() string {
	return r.method + " " + r.path
}

// envelope is a decoded response body keyed by top-level field
type envelope map[string]json.RawMessage

func (e envelope) decode(key string, out any) error {
	raw, ok := e[key]
	if !ok || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %q: %w", key, err)
	}
	return nil
}

func (e envelope) message() string {
	var msg string
	_ = e.decode("message", &msg)
	return msg
}

// do performs one call and returns the decoded body. It never retries.
func (c *Client) do(ctx context.Context, r request) (envelope, error) {
	start := time.Now()
	status := 0
	defer func() {
		prometheus.RecordAPICall(r.resource, r.method, status, time.Since(start))
	}()

	req, err := c.newRequest(ctx, r)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Op: r.op(), Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("API call failed", zap.String("op", r.op()), zap.Error(err))
		return nil, &Error{Kind: KindNetwork, Op: r.op(), Err: err}
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Op: r.op(), Status: status, Err: err}
	}

	env := envelope{}
	var decodeErr error
	if len(bytes.TrimSpace(body)) > 0 {
		decodeErr = json.Unmarshal(body, &env)
	}

	c.log.Debug("API call",
		zap.String("op", r.op()),
		zap.Int("status", status),
		zap.Duration("latency", time.Since(start)))

	if status < 200 || status >= 300 {
		return nil, &Error{Kind: classify(status), Op: r.op(), Status: status, Message: env.message()}
	}
	if decodeErr != nil {
		return nil, &Error{Kind: KindServer, Op: r.op(), Status: status, Err: fmt.Errorf("decode response: %w", decodeErr)}
	}

	var success *bool
	if err := env.decode("success", &success); err == nil && success != nil && !*success {
		return nil, &Error{Kind: KindValidation, Op: r.op(), Status: status, Message: env.message()}
	}
	return env, nil
}

func (c *Client) newRequest(ctx context.Context, r request) (*http.Request, error) {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch payload := r.body.(type) {
	case nil:
	case MultipartPayload:
		buf := &bytes.Buffer{}
		w := multipart.NewWriter(buf)
		if err := payload.WriteMultipart(w); err != nil {
			return nil, fmt.Errorf("encode multipart body: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		body, contentType = buf, w.FormDataContentType()
	default:
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body, contentType = bytes.NewReader(b), "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}
