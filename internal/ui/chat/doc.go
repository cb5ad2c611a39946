// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the conversation screen: the session
// sidebar, the transcript pane with incremental answer disclosure,
// the query input with retrieval filters, and session management.
//
// # Key Types
//
//   - Model: the Bubble Tea model tying the panes together
//   - State: the pane lifecycle (Empty, LoadingHistory, Ready,
//     AwaitingReply, Revealing)
//   - Backend: the server surface, satisfied by api.Client
//   - Store: the local cache surface, satisfied by storage.Cache
//
// # Behavior
//
// At most one query is in flight at a time; submitting is a no-op
// while waiting. The user's question appears in the transcript
// immediately and is never removed, only flagged when sending fails.
// Selecting sessions in quick succession is safe: each selection
// opens a new fetch generation and results from older generations
// are discarded, so the transcript always matches the last choice.
// Deleting a session changes nothing locally until the server
// confirms.
package chat
