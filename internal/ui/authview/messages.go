// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package authview provides the sign-in flow for the TUI.
//
// This file defines all Bubble Tea message types used by the auth
// screens. Each backend call reports through exactly one result
// message carrying the error, if any.
package authview

import (
	"github.com/eleknowledge/eleknowledge-tui/internal/auth"
)

// =============================================================================
// RESULT MESSAGES
// =============================================================================

// SignUpResultMsg reports the outcome of an account creation request.
type SignUpResultMsg struct {
	Email string
	Err   error
}

// VerifyResultMsg reports the outcome of a confirmation-code check.
type VerifyResultMsg struct {
	Email string
	Err   error
}

// ResendResultMsg reports the outcome of a confirmation-code resend.
type ResendResultMsg struct {
	Err error
}

// SignInResultMsg reports the outcome of a credential check. On
// success Session carries the authenticated identity. Email is
// echoed back so an unconfirmed account can move to the verify
// screen with its address intact.
type SignInResultMsg struct {
	Email   string
	Session *auth.Session
	Err     error
}

// ForgotResultMsg reports the outcome of a password-reset request.
type ForgotResultMsg struct {
	Email string
	Err   error
}

// ResetResultMsg reports the outcome of a password-reset confirmation.
type ResetResultMsg struct {
	Err error
}

// SignedInMsg hands the authenticated session to the parent model.
// The auth view emits this once and considers itself finished.
type SignedInMsg struct {
	Session *auth.Session
}
