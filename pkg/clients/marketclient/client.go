// Package marketclient is the client's only route to the network. Every call shows the
// progress indicator for its lifetime and resolves to a Response; it never returns an error.
package marketclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/gramconnect/pkg/core/model"
)

const (
	DefaultTimeout = 15 * time.Second

	indicatorTitle   = "Processing"
	indicatorMessage = "Please wait..."
	errorTitle       = "Error"
)

// Indicator is a blocking progress display shown while a call is in flight
type Indicator interface {
	Show(title, message string)
	Hide()
}

// Notifier shows failures to the user
type Notifier interface {
	NotifyError(title, message string)
}

// ApplicationRow is the raw job_applications row returned after a status update
type ApplicationRow struct {
	ID        string `json:"id"`
	JobID     string `json:"job_id"`
	WorkerID  string `json:"worker_id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// Response is the envelope every endpoint returns. Payload fields are set per endpoint.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`

	User         *model.Identity     `json:"user,omitempty"`
	Job          *model.Job          `json:"job,omitempty"`
	Jobs         []model.Job         `json:"jobs,omitempty"`
	Applications []model.Application `json:"applications,omitempty"`
	Application  *ApplicationRow     `json:"application,omitempty"`
	Message      string              `json:"message,omitempty"`
	Database     string              `json:"database,omitempty"`
}

// CallOptions describes one request. Body must already be serialized JSON.
type CallOptions struct {
	Method  string
	Body    []byte
	Headers map[string]string
}

// Client calls the marketplace API
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	identity   func() string
	indicator  Indicator
	notifier   Notifier
	logger     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithTimeout bounds every call; zero or negative keeps the default
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.timeout = d
		}
	}
}

// WithIdentity supplies the current identity ID; an empty ID sends no identity header
func WithIdentity(f func() string) Option {
	return func(cl *Client) { cl.identity = f }
}

// WithIndicator sets the progress indicator
func WithIndicator(i Indicator) Option {
	return func(cl *Client) { cl.indicator = i }
}

// WithNotifier sets where failures are shown
func WithNotifier(n Notifier) Option {
	return func(cl *Client) { cl.notifier = n }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// New creates a client for the API rooted at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		timeout:    DefaultTimeout,
		identity:   func() string { return "" },
		indicator:  nopIndicator{},
		notifier:   nopNotifier{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Call performs one request. Transport failures, non-2xx statuses and undecodable
// bodies become {Success: false, Error: message} and are reported to the notifier.
func (c *Client) Call(ctx context.Context, endpoint string, opts CallOptions) Response {
	resp, err := c.callWithIndicator(ctx, endpoint, opts)
	if err != nil {
		c.logger.Warn("API call failed", zap.String("endpoint", endpoint), zap.Error(err))
		c.notifier.NotifyError(errorTitle, "Network error: "+err.Error())
		return Response{Success: false, Error: err.Error()}
	}
	return resp
}

func (c *Client) callWithIndicator(ctx context.Context, endpoint string, opts CallOptions) (resp Response, err error) {
	c.indicator.Show(indicatorTitle, indicatorMessage)
	defer c.indicator.Hide()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	return c.do(ctx, endpoint, opts)
}

func (c *Client) do(ctx context.Context, endpoint string, opts CallOptions) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		body = bytes.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return Response{}, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if id := c.identity(); id != "" {
		req.Header.Set(model.IdentityHeader, id)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Response{}, fmt.Errorf("request timed out after %s", c.timeout)
		}
		if errors.Is(err, context.Canceled) {
			return Response{}, errors.New("request cancelled")
		}
		return Response{}, err
	}
	defer httpResp.Body.Close()

	c.logger.Debug("API call",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Int("status", httpResp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return Response{}, fmt.Errorf("HTTP error! status: %d", httpResp.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(httpResp.Body).Decode(&out); err != nil {
		return Response{}, fmt.Errorf("invalid response body: %w", err)
	}
	return out, nil
}

func (c *Client) send(ctx context.Context, method, endpoint string, payload any) Response {
	body, err := json.Marshal(payload)
	if err != nil {
		c.notifier.NotifyError(errorTitle, err.Error())
		return Response{Success: false, Error: err.Error()}
	}
	return c.Call(ctx, endpoint, CallOptions{Method: method, Body: body})
}

type nopIndicator struct{}

func (nopIndicator) Show(string, string) {}
func (nopIndicator) Hide()               {}

type nopNotifier struct{}

func (nopNotifier) NotifyError(string, string) {}
