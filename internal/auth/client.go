// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth provides the identity client and session handling for
// the EleKnowledge terminal client.
package auth

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
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the identity client.
type ClientConfig struct {
	// BaseURL is the identity API base URL
	BaseURL string

	// Timeout for identity requests (default: 30s)
	Timeout time.Duration

	// ResendEvery throttles verification-code resends (default: 30s)
	ResendEvery time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		Timeout:     30 * time.Second,
		ResendEvery: 30 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the identity API.
//
// The Client is thread-safe for concurrent use.
type Client struct {
	config        *ClientConfig
	httpClient    *http.Client
	resendLimiter *rate.Limiter
}

// NewClient creates an identity client for the given base URL.
func NewClient(baseURL string) *Client {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	return NewClientWithConfig(cfg)
}

// NewClientWithConfig creates an identity client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.ResendEvery == 0 {
		config.ResendEvery = 30 * time.Second
	}

	return &Client{
		config:        config,
		httpClient:    &http.Client{Timeout: config.Timeout},
		resendLimiter: rate.NewLimiter(rate.Every(config.ResendEvery), 1),
	}
}

// =============================================================================
// OPERATIONS
// =============================================================================

// SignUp registers a new account and triggers the verification email.
// Returns the new user's ID.
func (c *Client) SignUp(ctx context.Context, email, password, name string) (string, error) {
	if err := ValidateEmail(email); err != nil {
		return "", err
	}
	if err := ValidatePassword(password); err != nil {
		return "", err
	}

	var resp struct {
		UserID string `json:"userId"`
	}
	err := c.post(ctx, "/auth/signup", map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.UserID, nil
}

// ConfirmSignUp verifies an account with the emailed 6-digit code.
func (c *Client) ConfirmSignUp(ctx context.Context, email, code string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidateCode(code); err != nil {
		return err
	}
	return c.post(ctx, "/auth/verify", map[string]string{
		"email": email,
		"code":  code,
	}, nil)
}

// ResendCode requests a fresh verification code. Throttled client-side
// so a held-down key cannot spam the identity provider.
func (c *Client) ResendCode(ctx context.Context, email string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if !c.resendLimiter.Allow() {
		return ErrTooManyRequests
	}
	return c.post(ctx, "/auth/resend-code", map[string]string{
		"email": email,
	}, nil)
}

// SignIn authenticates and returns the live session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, &Error{Type: ErrTypeValidation, Message: "password is required"}
	}

	var resp struct {
		Tokens struct {
			AccessToken  string `json:"accessToken"`
			IDToken      string `json:"idToken"`
			RefreshToken string `json:"refreshToken"`
			ExpiresIn    int    `json:"expiresIn"`
		} `json:"tokens"`
		User struct {
			UserID string `json:"userId"`
			Email  string `json:"email"`
		} `json:"user"`
	}
	if err := c.post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp); err != nil {
		return nil, err
	}

	return NewSession(resp.User.UserID, resp.User.Email, resp.Tokens.IDToken, resp.Tokens.ExpiresIn), nil
}

// ForgotPassword requests a password-reset code for the account.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	return c.post(ctx, "/auth/forgot-password", map[string]string{
		"email": email,
	}, nil)
}

// ConfirmForgotPassword sets a new password using the reset code.
func (c *Client) ConfirmForgotPassword(ctx context.Context, email, code, newPassword string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidateCode(code); err != nil {
		return err
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}
	return c.post(ctx, "/auth/confirm-password-reset", map[string]string{
		"email":       email,
		"code":        code,
		"newPassword": newPassword,
	}, nil)
}

// =============================================================================
// TRANSPORT
// =============================================================================

// post sends a JSON body and decodes either the success payload into out
// or the backend's {error, message} shape into a typed error.
func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &Error{Type: ErrTypeUnknown, Message: "failed to encode request", Cause: err}
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return &Error{Type: ErrTypeUnknown, Message: "failed to build request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			return &Error{Type: ErrTypeTimeout, Message: "identity request timed out", Cause: err}
		}
		return &Error{Type: ErrTypeConnection, Message: "could not reach identity service", Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &Error{Type: ErrTypeConnection, Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Name    string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Name != "" {
			return mapBackendError(apiErr.Name, apiErr.Message)
		}
		return &Error{Type: ErrTypeUnknown, Message: "identity request failed: " + resp.Status}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &Error{Type: ErrTypeUnknown, Message: "unexpected response from identity service", Cause: err}
		}
	}
	return nil
}
