// Package apiclient talks to the AgenticLearn educator API.
//
// Every call is a single attempt: there is no retry, backoff or client-side
// timeout beyond the caller's context. Responses are returned as parsed JSON
// bodies; callers decide how to unwrap envelopes.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// Endpoint paths, relative to the base URL.
const (
	EndpointProfile           = "/api/agenticlearn/educator/profile"
	EndpointAdvancedAnalytics = "/api/agenticlearn/educator/analytics/advanced"
	EndpointStudentAlerts     = "/api/agenticlearn/educator/analytics/student-alerts"
	EndpointMessages          = "/api/agenticlearn/educator/communication/messages"
	EndpointSendMessage       = "/api/agenticlearn/educator/communication/send-message"
	EndpointForums            = "/api/agenticlearn/educator/communication/forums"
	EndpointVideoSessions     = "/api/agenticlearn/educator/communication/video-sessions"
	EndpointContentLibrary    = "/api/agenticlearn/educator/content/library"
	EndpointAIInsights        = "/api/agenticlearn/educator/ai/insights"
	EndpointSystemHealth      = "/api/agenticlearn/educator/system/health"
	EndpointActivityTimeline  = "/api/agenticlearn/educator/activity/timeline"
)

// ErrRequest wraps every failed call.
var ErrRequest = errors.New("api request failed")

// StatusError reports a non-success HTTP status or a success:false envelope.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", ErrRequest, e.Status)
	}
	return fmt.Sprintf("%s: status %d: %s", ErrRequest, e.Status, e.Message)
}

func (e *StatusError) Unwrap() error { return ErrRequest }

// TokenSource returns the bearer token for the next request.
type TokenSource func() (string, error)

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Token   TokenSource
	Logger  *logrus.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.HTTP = h } }
func WithTokenSource(t TokenSource) Option { return func(c *Client) { c.Token = t } }
func WithLogger(l *logrus.Logger) Option   { return func(c *Client) { c.Logger = l } }

// WithStaticToken sends the same bearer token on every request.
func WithStaticToken(tok string) Option {
	return WithTokenSource(func() (string, error) { return tok, nil })
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request issues one call and returns the parsed JSON body.
func (c *Client) Request(ctx context.Context, method, endpoint string, body any) (map[string]any, error) {
	var reader io.Reader
	if body != nil && method != http.MethodGet {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: encode body: %v", ErrRequest, err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.Token != nil {
		tok, err := c.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: token: %v", ErrRequest, err)
		}
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrRequest, method, endpoint, err)
	}
	defer func() { _ = res.Body.Close() }()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrRequest, err)
	}
	var parsed map[string]any
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &parsed); err != nil && res.StatusCode < 300 {
			return nil, fmt.Errorf("%w: decode body: %v", ErrRequest, err)
		}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg := envelopeMessage(parsed)
		if msg == "" {
			msg = http.StatusText(res.StatusCode)
		}
		c.logFailure(method, endpoint, res.StatusCode, msg)
		return nil, &StatusError{Status: res.StatusCode, Message: msg}
	}
	if ok, present := parsed["success"].(bool); present && !ok {
		msg := envelopeMessage(parsed)
		c.logFailure(method, endpoint, res.StatusCode, msg)
		return nil, &StatusError{Status: res.StatusCode, Message: msg}
	}
	if parsed == nil {
		parsed = map[string]any{}
	}
	return parsed, nil
}

func (c *Client) logFailure(method, endpoint string, status int, msg string) {
	if c.Logger == nil {
		return
	}
	c.Logger.WithFields(logrus.Fields{
		"method":   method,
		"endpoint": endpoint,
		"status":   status,
	}).Warn("api request failed: " + msg)
}

// envelopeMessage picks the most descriptive failure text out of an envelope.
func envelopeMessage(body map[string]any) string {
	var parts []string
	if m, ok := body["message"].(string); ok && m != "" {
		parts = append(parts, m)
	}
	switch e := body["error"].(type) {
	case string:
		if e != "" {
			parts = append(parts, e)
		}
	case map[string]any:
		if b, err := json.Marshal(e); err == nil {
			parts = append(parts, string(b))
		}
	}
	return strings.Join(parts, ": ")
}

// GetProfile fetches the educator profile. The record may be at the top level or
// nested under "profile" or "data".
func (c *Client) GetProfile(ctx context.Context) (map[string]any, error) {
	return c.Request(ctx, http.MethodGet, EndpointProfile, nil)
}

// UpdateUserProfile submits a partial profile.
func (c *Client) UpdateUserProfile(ctx context.Context, fields map[string]any) (map[string]any, error) {
	return c.Request(ctx, http.MethodPut, EndpointProfile, fields)
}

func (c *Client) GetAdvancedAnalytics(ctx context.Context) (map[string]any, error) {
	return c.getObject(ctx, EndpointAdvancedAnalytics)
}

func (c *Client) GetSystemHealth(ctx context.Context) (map[string]any, error) {
	return c.getObject(ctx, EndpointSystemHealth)
}

func (c *Client) GetStudentAlerts(ctx context.Context) ([]map[string]any, error) {
	return c.getList(ctx, EndpointStudentAlerts)
}

func (c *Client) GetMessages(ctx context.Context) ([]map[string]any, error) {
	return c.getList(ctx, EndpointMessages)
}

func (c *Client) GetForums(ctx context.Context) ([]map[string]any, error) {
	return c.getList(ctx, EndpointForums)
}

func (c *Client) GetVideoSessions(ctx context.Context) ([]map[string]any, error) {
	return c.getList(ctx, EndpointVideoSessions)
}

func (c *Client) GetContentLibrary(ctx context.Context) ([]map[string]any, error) {
	return c.getList(ctx, EndpointContentLibrary)
}

func (c *Client) GetAIInsights(ctx context.Context) ([]map[string]any, error) {
	return c.getList(ctx, EndpointAIInsights)
}

func (c *Client) GetActivityTimeline(ctx context.Context) ([]map[string]any, error) {
	return c.getList(ctx, EndpointActivityTimeline)
}

// SendMessage posts a message to a student.
func (c *Client) SendMessage(ctx context.Context, msg map[string]any) (map[string]any, error) {
	body, err := c.Request(ctx, http.MethodPost, EndpointSendMessage, msg)
	if err != nil {
		return nil, err
	}
	return Unwrap(body, "data"), nil
}

func (c *Client) getObject(ctx context.Context, endpoint string) (map[string]any, error) {
	body, err := c.Request(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	return Unwrap(body, "data"), nil
}

func (c *Client) getList(ctx context.Context, endpoint string) ([]map[string]any, error) {
	body, err := c.Request(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	raw, ok := body["data"].([]any)
	if !ok {
		if body["data"] == nil {
			return []map[string]any{}, nil
		}
		return nil, fmt.Errorf("%w: %s: data is not a list", ErrRequest, endpoint)
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// Unwrap returns the first key of body holding an object, or body itself.
func Unwrap(body map[string]any, keys ...string) map[string]any {
	for _, k := range keys {
		if m, ok := body[k].(map[string]any); ok {
			return m
		}
	}
	return body
}
