package gateway

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

	pkgerrors "github.com/vmsuarez/usermap/pkg/errors"
)

const (
	usersPath                  = "/api/users"
	requestBodyReadLimit int64 = 1024
)

var errBaseURLRequired = errors.New("crud gateway base url is required")

// Client wraps the external CRUD API that owns user mutations. Calls are
// fire-and-forget from the caller's perspective: no retry, and a
// superseded call is never cancelled.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds the gateway client for the configured base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return client, nil
}

// UserInput is the mutation payload accepted by the gateway.
type UserInput struct {
	Name string `json:"name"`
	Zip  string `json:"zip"`
}

// CreateUser submits a new record; the store assigns its id.
func (c *Client) CreateUser(ctx context.Context, input UserInput) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "crud gateway client not configured")
	}
	return c.do(ctx, http.MethodPost, usersPath, &input, "create user")
}

// UpdateUser partially updates the record with the given id.
func (c *Client) UpdateUser(ctx context.Context, id string, input UserInput) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "crud gateway client not configured")
	}
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	return c.do(ctx, http.MethodPatch, usersPath+"/"+url.PathEscape(id), &input, "update user")
}

// DeleteUser removes the record with the given id.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "crud gateway client not configured")
	}
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	return c.do(ctx, http.MethodDelete, usersPath+"/"+url.PathEscape(id), nil, "delete user")
}

func (c *Client) do(ctx context.Context, method, path string, body any, action string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal "+action+" request")
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build "+action+" request")
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute "+action+" request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, requestBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), action+" request failed")
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
