// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// TOKEN PROVIDER
// =============================================================================

// TokenProvider supplies the credentials attached to backend calls.
// Token is consulted fresh before every request rather than captured
// once, so an expired or replaced session is noticed at the next call.
type TokenProvider interface {
	// Token returns the bearer token for the current session.
	// Returns ErrNotSignedIn when no session is active.
	Token(ctx context.Context) (string, error)

	// UserID returns the stable user identity for the current session.
	UserID() string
}

// =============================================================================
// LIVE SESSION
// =============================================================================

// expirySlack treats a token as expired slightly before its actual
// deadline so an in-flight request does not race the cutoff.
const expirySlack = 30 * time.Second

// Session is the TokenProvider backed by a successful sign-in.
// Thread-safe: the chat view reads tokens from command goroutines.
type Session struct {
	mu        sync.RWMutex
	userID    string
	email     string
	idToken   string
	expiresAt time.Time
}

// NewSession creates a session from sign-in results. expiresIn is the
// token lifetime in seconds as reported by the identity API.
func NewSession(userID, email, idToken string, expiresIn int) *Session {
	return &Session{
		userID:    userID,
		email:     email,
		idToken:   idToken,
		expiresAt: time.Now().Add(time.Duration(expiresIn) * time.Second),
	}
}

// Token returns the session's ID token, or an expiry error that sends
// the user back to the login screen.
func (s *Session) Token(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.idToken == "" {
		return "", ErrNotSignedIn
	}
	if time.Now().After(s.expiresAt.Add(-expirySlack)) {
		return "", &Error{Type: ErrTypeNotSignedIn, Message: "session expired, sign in again"}
	}
	return s.idToken, nil
}

// UserID returns the signed-in user's identity.
func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Email returns the signed-in user's email address.
func (s *Session) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

// =============================================================================
// BYPASS PROVIDER
// =============================================================================

// BypassProvider is the TokenProvider for development runs with the auth
// bypass active. It yields an empty token and a fixed local identity.
// Only constructed when config.BypassEnabled() is true, which release
// builds never report.
type BypassProvider struct {
	userID string
}

// NewBypassProvider creates a bypass provider with the given identity.
func NewBypassProvider(userID string) *BypassProvider {
	if userID == "" {
		userID = "local-dev"
	}
	return &BypassProvider{userID: userID}
}

// Token returns an empty token; development backends accept
// unauthenticated requests.
func (p *BypassProvider) Token(ctx context.Context) (string, error) {
	return "", nil
}

// UserID returns the fixed development identity.
func (p *BypassProvider) UserID() string {
	return p.userID
}
