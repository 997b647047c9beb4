// Package client talks to a running taskstore API over HTTP.
package client

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

	"github.com/roach88/taskstore/internal/store"
)

// ErrNoAPIURL is returned by New when no base URL is configured.
var ErrNoAPIURL = errors.New("no API URL configured (set api_url, TASKSTORE_API_URL or --api-url)")

// StatusError is a non-2xx API response.
type StatusError struct {
	Code int

	// Message is the server's error field, or "Error: <code>" when the body
	// carries none.
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// DogImage is the upstream dog API payload.
type DogImage struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Client is an API client bound to one base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client (10s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a client for baseURL, e.g. "http://localhost:3000".
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, ErrNoAPIURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse API URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse API URL: unsupported scheme %q", u.Scheme)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// List returns all tasks.
func (c *Client) List(ctx context.Context) ([]store.Task, error) {
	var tasks []store.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []store.Task{}
	}
	return tasks, nil
}

// Get returns one task.
func (c *Client) Get(ctx context.Context, id int64) (store.Task, error) {
	var task store.Task
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, &task); err != nil {
		return store.Task{}, fmt.Errorf("get task %d: %w", id, err)
	}
	return task, nil
}

// Create adds a task.
func (c *Client) Create(ctx context.Context, text string) (store.Task, error) {
	var task store.Task
	body := map[string]string{"text": text}
	if err := c.do(ctx, http.MethodPost, "/api/tasks", body, &task); err != nil {
		return store.Task{}, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

type updateBody struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// Update applies p to the task. Nil patch fields are not sent.
func (c *Client) Update(ctx context.Context, id int64, p store.Patch) (store.Task, error) {
	var task store.Task
	body := updateBody{Text: p.Text, Completed: p.Completed}
	if err := c.do(ctx, http.MethodPut, taskPath(id), body, &task); err != nil {
		return store.Task{}, fmt.Errorf("update task %d: %w", id, err)
	}
	return task, nil
}

// Delete removes a task. Deleting an absent task succeeds.
func (c *Client) Delete(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, taskPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return nil
}

// Dog fetches a random dog image through the API.
func (c *Client) Dog(ctx context.Context) (DogImage, error) {
	var img DogImage
	if err := c.do(ctx, http.MethodGet, "/api/dog", nil, &img); err != nil {
		return DogImage{}, fmt.Errorf("fetch dog: %w", err)
	}
	return img, nil
}

func taskPath(id int64) string {
	return fmt.Sprintf("/api/tasks/%d", id)
}

// do sends a JSON request and decodes a JSON response into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) *StatusError {
	se := &StatusError{
		Code:    resp.StatusCode,
		Message: fmt.Sprintf("Error: %d", resp.StatusCode),
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err == nil && body.Error != "" {
		se.Message = body.Error
	}
	return se
}
