// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the TUI.
//
// This file defines all Bubble Tea message types used by the chat
// interface. Messages are organized into the following categories:
//   - Sessions: cached and fetched session lists, deletion results
//   - History: cached and fetched transcripts for a session
//   - Query: RAG answers
//   - Feedback: rating submission results
//   - Reveal: typewriter animation ticks
//
// Fetch messages carry the session ID and fetch generation they were
// issued for, so answers for a session the user has already navigated
// away from can be discarded.
package chat

import (
	"github.com/eleknowledge/eleknowledge-tui/internal/api"
	"github.com/eleknowledge/eleknowledge-tui/internal/model"
)

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// CachedSessionsMsg delivers the locally cached session list. It only
// paints the sidebar while the network fetch is out; the fetched list
// always wins.
type CachedSessionsMsg struct {
	Sessions []model.Session
}

// SessionsLoadedMsg delivers the session list from the server.
type SessionsLoadedMsg struct {
	Sessions []model.Session
	Err      error
}

// SessionDeletedMsg reports the outcome of a session deletion.
type SessionDeletedMsg struct {
	SessionID string
	Err       error
}

// =============================================================================
// HISTORY MESSAGES
// =============================================================================

// CachedHistoryMsg delivers a locally cached transcript.
type CachedHistoryMsg struct {
	SessionID string
	Gen       int
	Messages  []*model.Message
}

// HistoryLoadedMsg delivers a transcript from the server.
type HistoryLoadedMsg struct {
	SessionID string
	Gen       int
	Messages  []*model.Message
	Err       error
}

// =============================================================================
// QUERY MESSAGES
// =============================================================================

// QueryResultMsg delivers the answer to a submitted query.
// LocalUserMsgID identifies the optimistic transcript entry the
// submission created, so it can be confirmed or marked failed.
type QueryResultMsg struct {
	LocalUserMsgID string
	Resp           *api.QueryResponse
	Err            error
}

// =============================================================================
// FEEDBACK MESSAGES
// =============================================================================

// FeedbackResultMsg reports the outcome of a rating submission.
// Failures surface as a toast only; the local rating stands.
type FeedbackResultMsg struct {
	SessionID string
	MessageID string
	Feedback  model.Feedback
	Err       error
}

// =============================================================================
// REVEAL MESSAGES
// =============================================================================

// RevealTickMsg advances the typewriter animation for a message.
// Ticks for a message that is no longer revealing are ignored.
type RevealTickMsg struct {
	MessageID string
}
