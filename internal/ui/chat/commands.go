// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the TUI.
//
// This file defines the tea.Cmd constructors that run backend and
// cache calls off the update loop. Each command resolves to exactly
// one of the message types in messages.go.
package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/eleknowledge/eleknowledge-tui/internal/api"
	"github.com/eleknowledge/eleknowledge-tui/internal/model"
	"github.com/eleknowledge/eleknowledge-tui/internal/reveal"
)

// =============================================================================
// SESSION COMMANDS
// =============================================================================

// loadCachedSessionsCmd reads the session list from the local cache.
// Misses and cache errors resolve to nothing; the network fetch is the
// authority.
func (m Model) loadCachedSessionsCmd() tea.Cmd {
	if m.store == nil {
		return nil
	}
	store, userID := m.store, m.userID
	return func() tea.Msg {
		sessions, err := store.GetSessions(userID)
		if err != nil || sessions == nil {
			return nil
		}
		return CachedSessionsMsg{Sessions: sessions}
	}
}

// loadSessionsCmd fetches the session list from the server and
// refreshes the cache on success.
func (m Model) loadSessionsCmd() tea.Cmd {
	backend, store, userID := m.backend, m.store, m.userID
	return func() tea.Msg {
		sessions, err := backend.ListSessions(context.Background(), userID)
		if err == nil && store != nil {
			_ = store.PutSessions(userID, sessions)
		}
		return SessionsLoadedMsg{Sessions: sessions, Err: err}
	}
}

// deleteSessionCmd deletes a session on the server. The sidebar entry
// is only removed once the server confirms.
func (m Model) deleteSessionCmd(sessionID string) tea.Cmd {
	backend, store := m.backend, m.store
	return func() tea.Msg {
		err := backend.DeleteSession(context.Background(), sessionID)
		if err == nil && store != nil {
			_ = store.DeleteSession(sessionID)
		}
		return SessionDeletedMsg{SessionID: sessionID, Err: err}
	}
}

// =============================================================================
// HISTORY COMMANDS
// =============================================================================

// loadCachedHistoryCmd reads a transcript from the local cache for an
// instant paint while the fetch is out.
func (m Model) loadCachedHistoryCmd(sessionID string, gen int) tea.Cmd {
	if m.store == nil {
		return nil
	}
	store := m.store
	return func() tea.Msg {
		msgs, err := store.GetMessages(sessionID)
		if err != nil || msgs == nil {
			return nil
		}
		return CachedHistoryMsg{SessionID: sessionID, Gen: gen, Messages: msgs}
	}
}

// loadHistoryCmd fetches a transcript from the server and refreshes
// the cache on success.
func (m Model) loadHistoryCmd(sessionID string, gen int) tea.Cmd {
	backend, store := m.backend, m.store
	return func() tea.Msg {
		msgs, err := backend.ListMessages(context.Background(), sessionID)
		if err == nil && store != nil {
			_ = store.PutMessages(sessionID, msgs)
		}
		return HistoryLoadedMsg{SessionID: sessionID, Gen: gen, Messages: msgs, Err: err}
	}
}

// =============================================================================
// QUERY COMMANDS
// =============================================================================

// submitQueryCmd sends a query to the RAG backend.
func (m Model) submitQueryCmd(localUserMsgID, query string) tea.Cmd {
	backend := m.backend
	req := api.NewQueryRequest(m.activeID, m.userID, query, m.filters)
	return func() tea.Msg {
		resp, err := backend.SubmitQuery(context.Background(), req)
		return QueryResultMsg{LocalUserMsgID: localUserMsgID, Resp: resp, Err: err}
	}
}

// =============================================================================
// FEEDBACK COMMANDS
// =============================================================================

// submitFeedbackCmd records a rating on the server. The local rating
// is already applied and is kept regardless of the outcome.
func (m Model) submitFeedbackCmd(sessionID, messageID string, fb model.Feedback) tea.Cmd {
	backend, store := m.backend, m.store
	return func() tea.Msg {
		err := backend.SubmitFeedback(context.Background(), messageID, sessionID, fb)
		if err == nil && store != nil {
			_ = store.SetFeedback(sessionID, messageID, fb)
		}
		return FeedbackResultMsg{SessionID: sessionID, MessageID: messageID, Feedback: fb, Err: err}
	}
}

// =============================================================================
// REVEAL COMMANDS
// =============================================================================

// revealTickCmd schedules the next animation step for a message at
// its script-dependent cadence.
func revealTickCmd(st *reveal.State) tea.Cmd {
	id := st.MessageID()
	return tea.Tick(st.Interval(), func(time.Time) tea.Msg {
		return RevealTickMsg{MessageID: id}
	})
}
