// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import "strings"

// =============================================================================
// ERROR TYPES
// =============================================================================

// Error represents an error from the identity client.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes identity errors for handling. Each business
// error maps to a distinct user-facing message in the auth screens.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeValidation
	ErrTypeNotAuthorized
	ErrTypeUserNotFound
	ErrTypeUserNotConfirmed
	ErrTypeUserExists
	ErrTypeInvalidPassword
	ErrTypeCodeMismatch
	ErrTypeCodeExpired
	ErrTypeTooManyRequests
	ErrTypeNotSignedIn
)

// Sentinel errors for easy checking.
var (
	ErrNotAuthorized    = &Error{Type: ErrTypeNotAuthorized, Message: "incorrect email or password"}
	ErrUserNotFound     = &Error{Type: ErrTypeUserNotFound, Message: "user account does not exist"}
	ErrUserNotConfirmed = &Error{Type: ErrTypeUserNotConfirmed, Message: "email not verified yet"}
	ErrUserExists       = &Error{Type: ErrTypeUserExists, Message: "an account with this email already exists"}
	ErrInvalidPassword  = &Error{Type: ErrTypeInvalidPassword, Message: "password does not meet requirements"}
	ErrCodeMismatch     = &Error{Type: ErrTypeCodeMismatch, Message: "verification code is incorrect"}
	ErrCodeExpired      = &Error{Type: ErrTypeCodeExpired, Message: "verification code has expired"}
	ErrTooManyRequests  = &Error{Type: ErrTypeTooManyRequests, Message: "too many attempts, try again later"}
	ErrNotSignedIn      = &Error{Type: ErrTypeNotSignedIn, Message: "not signed in"}
)

// UserMessage returns the message to surface in the UI for a given
// error type.
func (t ErrorType) UserMessage() string {
	switch t {
	case ErrTypeNotAuthorized:
		return "Incorrect email or password."
	case ErrTypeUserNotFound:
		return "No account exists for this email."
	case ErrTypeUserNotConfirmed:
		return "Please verify your email before logging in."
	case ErrTypeUserExists:
		return "An account with this email already exists."
	case ErrTypeInvalidPassword:
		return "Password must be 8+ characters with uppercase, lowercase, number, and symbol."
	case ErrTypeCodeMismatch:
		return "The verification code is incorrect."
	case ErrTypeCodeExpired:
		return "The verification code has expired. Request a new one."
	case ErrTypeTooManyRequests:
		return "Too many attempts. Please wait a moment and try again."
	case ErrTypeConnection:
		return "Could not reach the server. Check your connection."
	case ErrTypeTimeout:
		return "The request timed out. Please try again."
	default:
		return "Something went wrong. Please try again."
	}
}

// mapBackendError classifies a backend error by its reported error name.
// The identity API reports either provider-style names
// ("NotAuthorizedException") or its own mapped names
// ("AuthenticationError"), so matching is by substring.
func mapBackendError(name, message string) *Error {
	wrap := func(t ErrorType) *Error {
		msg := message
		if msg == "" {
			msg = name
		}
		return &Error{Type: t, Message: msg}
	}

	switch {
	case strings.Contains(name, "NotAuthorized"), strings.Contains(name, "AuthenticationError"):
		return wrap(ErrTypeNotAuthorized)
	case strings.Contains(name, "UserNotConfirmed"):
		return wrap(ErrTypeUserNotConfirmed)
	case strings.Contains(name, "UserNotFound"):
		return wrap(ErrTypeUserNotFound)
	case strings.Contains(name, "UsernameExists"), strings.Contains(name, "UserExists"):
		return wrap(ErrTypeUserExists)
	case strings.Contains(name, "InvalidPassword"):
		return wrap(ErrTypeInvalidPassword)
	case strings.Contains(name, "CodeMismatch"):
		return wrap(ErrTypeCodeMismatch)
	case strings.Contains(name, "ExpiredCode"), strings.Contains(name, "CodeExpired"):
		return wrap(ErrTypeCodeExpired)
	case strings.Contains(name, "TooManyRequests"), strings.Contains(name, "LimitExceeded"):
		return wrap(ErrTypeTooManyRequests)
	case strings.Contains(name, "Validation"):
		return wrap(ErrTypeValidation)
	default:
		return wrap(ErrTypeUnknown)
	}
}
