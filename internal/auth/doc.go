// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth provides identity handling for the EleKnowledge terminal
// client.
//
// # Key Types
//
//   - TokenProvider: the credential source consulted fresh before every
//     backend call
//   - Client: HTTP client for the identity API (signup, verify, login,
//     password reset)
//   - Session: live provider backed by a sign-in
//   - BypassProvider: fixed local identity for development builds
//
// Field validation (email shape, password policy, 6-digit codes) runs
// client-side before any network call; business-rule failures from the
// identity provider map to typed errors with user-facing messages.
package auth
