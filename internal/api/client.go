// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP clients for the EleKnowledge backend:
// the chat-management API (session directory, message history, feedback)
// and the RAG query API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/eleknowledge/eleknowledge-tui/internal/auth"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from a backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling. Transport failures
// and backend-reported failures stay distinguishable so the UI can word
// the toast accordingly.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeUnauthorized
	ErrTypeNotFound
	ErrTypeThrottled
	ErrTypeBackend
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrUnauthorized = &ClientError{Type: ErrTypeUnauthorized, Message: "not authorized"}
	ErrThrottled    = &ClientError{Type: ErrTypeThrottled, Message: "sending too fast, wait a moment"}
)

// UserMessage returns the toast text for a given error type.
func (t ErrorType) UserMessage() string {
	switch t {
	case ErrTypeConnection:
		return "Could not reach the server. Check your connection."
	case ErrTypeTimeout:
		return "The request timed out. Please try again."
	case ErrTypeUnauthorized:
		return "Your session has expired. Please sign in again."
	case ErrTypeNotFound:
		return "That item no longer exists on the server."
	case ErrTypeThrottled:
		return "You're sending requests too quickly. Wait a moment."
	case ErrTypeBackend:
		return "The server reported an error. Please try again."
	default:
		return "Something went wrong. Please try again."
	}
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend clients.
type ClientConfig struct {
	// RagURL is the RAG query API base URL
	RagURL string

	// ChatURL is the chat-management API base URL
	ChatURL string

	// Timeout for requests. Query submission runs a full retrieval and
	// generation pass server-side, so the default is generous (120s).
	Timeout time.Duration

	// QueryEvery throttles query submission (default: 2s between
	// queries, burst of 1)
	QueryEvery time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		Timeout:    120 * time.Second,
		QueryEvery: 2 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the EleKnowledge backend APIs.
//
// Credentials come from the TokenProvider fresh on every call, never
// captured at construction. The Client is thread-safe for concurrent
// use.
type Client struct {
	config       *ClientConfig
	httpClient   *http.Client
	tokens       auth.TokenProvider
	queryLimiter *rate.Limiter
}

// NewClient creates a backend client.
func NewClient(config *ClientConfig, tokens auth.TokenProvider) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Timeout == 0 {
		config.Timeout = 120 * time.Second
	}
	if config.QueryEvery == 0 {
		config.QueryEvery = 2 * time.Second
	}

	return &Client{
		config:       config,
		httpClient:   &http.Client{Timeout: config.Timeout},
		tokens:       tokens,
		queryLimiter: rate.NewLimiter(rate.Every(config.QueryEvery), 1),
	}
}

// =============================================================================
// TRANSPORT
// =============================================================================

// do issues an authenticated request and decodes the response into out.
// A nil body sends no payload; a nil out discards the response body.
func (c *Client) do(ctx context.Context, method, url string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &ClientError{Type: ErrTypeUnknown, Message: "failed to encode request", Cause: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return &ClientError{Type: ErrTypeUnknown, Message: "failed to build request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	// Fresh token per call: an expired session surfaces here, not as a
	// mysterious 401 from a stale captured credential.
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return &ClientError{Type: ErrTypeUnauthorized, Message: "session expired", Cause: err}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			return &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
		}
		return &ClientError{Type: ErrTypeConnection, Message: "could not reach server", Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode >= 400 {
		return c.decodeError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "unexpected response from server", Cause: err}
		}
	}
	return nil
}

// decodeError turns a backend {error, message} body into a typed error.
func (c *Client) decodeError(status int, data []byte) error {
	var apiErr struct {
		Name    string `json:"error"`
		Message string `json:"message"`
	}
	msg := "request failed"
	if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
		msg = apiErr.Message
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &ClientError{Type: ErrTypeUnauthorized, Message: msg}
	case status == http.StatusNotFound:
		return &ClientError{Type: ErrTypeNotFound, Message: msg}
	case status == http.StatusTooManyRequests:
		return &ClientError{Type: ErrTypeThrottled, Message: msg}
	default:
		return &ClientError{Type: ErrTypeBackend, Message: msg}
	}
}

// chatURL joins a path onto the chat-management base URL.
func (c *Client) chatURL(path string) string {
	return strings.TrimRight(c.config.ChatURL, "/") + path
}

// ragURL joins a path onto the RAG base URL.
func (c *Client) ragURL(path string) string {
	return strings.TrimRight(c.config.RagURL, "/") + path
}
