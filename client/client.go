// Package client holds the state containers a front end keeps for one signed-in
// user: mood records, insights, notifications and the auth session. Every store
// proxies to the REST API through a Client.
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
)

const defaultTimeout = 30 * time.Second

// APIError is a non-2xx reply. Message is the server's "error" string when it
// sent one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  TokenStore
}

// New returns a client for the API rooted at baseURL. tokens may be nil, in
// which case the session token is kept in memory.
func New(baseURL string, tokens TokenStore) *Client {
	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: defaultTimeout},
		Tokens:  tokens,
	}
}

// do sends body as JSON and decodes a 2xx reply into out. The stored token is
// read on every call.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.Tokens.Load()
	if err != nil {
		return fmt.Errorf("read session token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage pulls the message out of {"error": ...} or {"detail": ...}.
func errorMessage(raw []byte) string {
	var body struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if json.Unmarshal(raw, &body) != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Detail
}

// decodeList accepts either a bare JSON array or a {"results": [...]} envelope.
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}

	if trimmed[0] == '{' {
		var envelope struct {
			Results []T `json:"results"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("decode list envelope: %w", err)
		}
		if envelope.Results == nil {
			return []T{}, nil
		}
		return envelope.Results, nil
	}

	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *Client) getList(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, query, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
