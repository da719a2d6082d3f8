// Package client is a Go client for the student API.
//
// Client is a thin wrapper over the four HTTP operations. Session layers
// the UI behaviour on top: it keeps the last fetched collection as its
// only state and refetches the whole list after every successful
// mutation, exactly like the web page does.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/utils/response"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

// Client talks to one API base URL, e.g. "http://localhost:8082/api".
type Client struct {
	base string
	http *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client (10s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches the whole collection.
func (c *Client) List(ctx context.Context) ([]types.Student, error) {
	var students []types.Student
	if err := c.do(ctx, http.MethodGet, "/students", nil, &students); err != nil {
		return nil, err
	}
	if students == nil {
		students = []types.Student{}
	}
	return students, nil
}

// Create POSTs a new student.
func (c *Client) Create(ctx context.Context, f Form) (types.Student, error) {
	var out types.Student
	err := c.do(ctx, http.MethodPost, "/students", types.StudentInput{Name: f.Name, Email: f.Email}, &out)
	return out, err
}

// Update PUTs the form over the student with id. Both fields are sent, as
// the web form does.
func (c *Client) Update(ctx context.Context, id int, f Form) (types.Student, error) {
	patch := types.StudentPatch{Name: &f.Name, Email: &f.Email}
	var out types.Student
	err := c.do(ctx, http.MethodPut, "/students/"+strconv.Itoa(id), patch, &out)
	return out, err
}

// Patch PUTs only the fields set in patch.
func (c *Client) Patch(ctx context.Context, id int, patch types.StudentPatch) (types.Student, error) {
	var out types.Student
	err := c.do(ctx, http.MethodPut, "/students/"+strconv.Itoa(id), patch, &out)
	return out, err
}

// Delete removes the student with id and returns the server's message.
func (c *Client) Delete(ctx context.Context, id int) (string, error) {
	var out response.Message
	err := c.do(ctx, http.MethodDelete, "/students/"+strconv.Itoa(id), nil, &out)
	return out.Message, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode body: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var env response.Response
	msg := strings.TrimSpace(string(b))
	if json.Unmarshal(b, &env) == nil && env.Error != "" {
		msg = env.Error
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
