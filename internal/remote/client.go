// Package remote is the HTTP client for the Mahakal storefront REST API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aniket44788/Mahakal-Admin/internal/session"
)

const maxErrorBody = 4 << 10

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, client *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// envelope holds the fields every API response may carry next to its payload.
type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

func (e envelope) failed() bool {
	return e.Success != nil && !*e.Success
}

func (e envelope) messageOr(fallback string) string {
	if e.Message != "" {
		return e.Message
	}
	return fallback
}

type request struct {
	method      string
	path        string
	body        io.Reader
	contentType string
	sess        *session.Session
}

func jsonRequest(method, path string, sess *session.Session, payload any) (request, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return request{}, fmt.Errorf("marshal request body: %w", err)
	}
	return request{
		method:      method,
		path:        path,
		body:        bytes.NewReader(data),
		contentType: "application/json",
		sess:        sess,
	}, nil
}

// do sends the request and decodes a 2xx body into out. A nil sess marks a
// public call; a non-nil unauthenticated session short-circuits before any
// network traffic.
func (c *Client) do(ctx context.Context, r request, out any) error {
	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.sess != nil {
		if err := r.sess.Authorize(req); err != nil {
			return err
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode >= http.StatusInternalServerError:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	case resp.StatusCode >= http.StatusBadRequest:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var env envelope
		_ = json.Unmarshal(body, &env)
		return &RejectedError{
			StatusCode: resp.StatusCode,
			Message:    env.messageOr(http.StatusText(resp.StatusCode)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return nil
}
