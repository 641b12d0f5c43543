package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ticketlane/eventwizard/internal/payload"
)

// ErrUpstream marks any failed call to the events backend so handlers can
// map the whole class to one user-facing notification.
var ErrUpstream = errors.New("events backend request failed")

type Client struct {
	base string
	http *http.Client
	log  *slog.Logger

	// optional latency observer, fed (op, status, seconds) per call
	observe func(op, status string, seconds float64)
}

func New(baseURL string, log *slog.Logger) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 15 * time.Second},
		log:  log,
	}
}

// WithObserver registers a per-call latency callback, typically backed by a
// prometheus histogram. Returns the client for chaining at wire-up.
func (c *Client) WithObserver(f func(op, status string, seconds float64)) *Client {
	c.observe = f

	return c
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return c.do(req, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body any, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: encode body: %v", ErrUpstream, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) sendMultipart(ctx context.Context, method, path string, body *bytes.Buffer, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", contentType)

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	start := time.Now()

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer res.Body.Close()

	if c.log != nil {
		c.log.Debug("upstream call",
			"method", req.Method,
			"path", req.URL.Path,
			"status", res.StatusCode,
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}

	if c.observe != nil {
		c.observe(opLabel(req), fmt.Sprint(res.StatusCode), time.Since(start).Seconds())
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		// best effort at surfacing the backend's own message
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("%w: %s %s: status %d: %s", ErrUpstream, req.Method, req.URL.Path, res.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}

	return nil
}

// opLabel collapses a request to "METHOD /first-segment" so event ids do not
// explode the metric's cardinality.
func opLabel(req *http.Request) string {
	path := strings.TrimPrefix(req.URL.Path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}

	return req.Method + " /" + path
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var envelope struct {
		Data []Category `json:"data"`
	}

	if err := c.get(ctx, "/categories/list", &envelope); err != nil {
		return nil, err
	}

	return envelope.Data, nil
}

func (c *Client) EventTypes(ctx context.Context) ([]EventType, error) {
	var envelope struct {
		Data []EventType `json:"data"`
	}

	if err := c.get(ctx, "/eventtype/active", &envelope); err != nil {
		return nil, err
	}

	return envelope.Data, nil
}

func (c *Client) Event(ctx context.Context, eventID string) (EventDetail, error) {
	var envelope struct {
		Data EventDetail `json:"data"`
	}

	if err := c.get(ctx, "/new-events/"+url.PathEscape(eventID), &envelope); err != nil {
		return EventDetail{}, err
	}

	return envelope.Data, nil
}

func (c *Client) Slots(ctx context.Context, eventID string) (SlotBundle, error) {
	var envelope struct {
		Data SlotBundle `json:"data"`
	}

	if err := c.get(ctx, "/new-slots/get/"+url.PathEscape(eventID), &envelope); err != nil {
		return SlotBundle{}, err
	}

	return envelope.Data, nil
}

// CreateEvent posts the multipart metadata form and returns the new event id.
func (c *Client) CreateEvent(ctx context.Context, body *bytes.Buffer, contentType string) (string, error) {
	var envelope struct {
		Data struct {
			EventID string `json:"event_id"`
		} `json:"data"`
	}

	if err := c.sendMultipart(ctx, http.MethodPost, "/new-events/create-with-images", body, contentType, &envelope); err != nil {
		return "", err
	}

	if envelope.Data.EventID == "" {
		return "", fmt.Errorf("%w: create response missing event_id", ErrUpstream)
	}

	return envelope.Data.EventID, nil
}

func (c *Client) UpdateEvent(ctx context.Context, eventID string, body *bytes.Buffer, contentType string) error {
	return c.sendMultipart(ctx, http.MethodPut, "/new-events/update-with-images/"+url.PathEscape(eventID), body, contentType, nil)
}

func (c *Client) CreateSlots(ctx context.Context, p payload.SlotPayload) error {
	return c.sendJSON(ctx, http.MethodPost, "/new-slots/create", p, nil)
}

func (c *Client) UpdateSlots(ctx context.Context, eventRefID string, p payload.SlotPayload) error {
	return c.sendJSON(ctx, http.MethodPut, "/new-slots/update?event_ref_id="+url.QueryEscape(eventRefID), p, nil)
}
