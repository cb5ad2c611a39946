// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the TUI.
//
// This file implements the state machine: every transition between
// Empty, LoadingHistory, Ready, AwaitingReply, and Revealing happens
// here, driven by key presses and the result messages in messages.go.
package chat

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/eleknowledge/eleknowledge-tui/internal/api"
	"github.com/eleknowledge/eleknowledge-tui/internal/model"
	"github.com/eleknowledge/eleknowledge-tui/internal/reveal"
	"github.com/eleknowledge/eleknowledge-tui/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.state != StateAwaitingReply && m.state != StateLoadingHistory {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case components.ToastTickMsg:
		m.toasts.TickToasts()
		if m.toasts.HasToasts() {
			return m, components.ToastTickCmd()
		}
		return m, nil

	case CachedSessionsMsg:
		// The fetched list is authoritative; the cache only paints
		// the sidebar while the fetch is still out.
		if m.serverSessions {
			return m, nil
		}
		m.sidebar.Sessions = msg.Sessions
		m.sidebar.ClampCursor()
		return m, nil

	case SessionsLoadedMsg:
		if msg.Err != nil {
			m.toasts.AddError("Could not load sessions: " + userMessage(msg.Err))
			return m, components.ToastTickCmd()
		}
		m.serverSessions = true
		m.sidebar.Sessions = msg.Sessions
		m.sidebar.ClampCursor()
		return m, nil

	case CachedHistoryMsg:
		return m.handleCachedHistory(msg), nil

	case HistoryLoadedMsg:
		return m.handleHistoryLoaded(msg)

	case QueryResultMsg:
		return m.handleQueryResult(msg)

	case SessionDeletedMsg:
		return m.handleSessionDeleted(msg)

	case FeedbackResultMsg:
		// Ratings are best-effort: the optimistic mark stands whether
		// or not the server recorded it, and failures stay quiet.
		return m, nil

	case RevealTickMsg:
		return m.handleRevealTick(msg)
	}

	return m, nil
}

// =============================================================================
// RESIZE
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	m.layout()
	if !m.ready {
		m.ready = true
	}
	m.syncViewport(true)
	return m
}

// =============================================================================
// KEY HANDLING
// =============================================================================

// handleKey routes a keypress through the active overlay, then the
// focused pane.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Delete confirmation swallows everything except its own answer.
	if m.confirmDelete != "" {
		switch msg.String() {
		case "y", "Y":
			id := m.confirmDelete
			m.confirmDelete = ""
			return m, m.deleteSessionCmd(id)
		case "n", "N", "esc":
			m.confirmDelete = ""
			return m, nil
		}
		return m, nil
	}

	if m.focus == focusFilters {
		return m.handleFilterKey(msg)
	}

	if key.Matches(msg, m.keys.ToggleFocus) {
		return m.toggleFocus(), nil
	}
	if key.Matches(msg, m.keys.NewChat) {
		return m.newConversation(), nil
	}
	if key.Matches(msg, m.keys.EditFilters) {
		return m.openFilterEditor(), nil
	}
	if key.Matches(msg, m.keys.ClearFilters) {
		m.filters = model.FilterSet{}
		m.toasts.AddStatus("Filters cleared")
		return m, components.ToastTickCmd()
	}
	if key.Matches(msg, m.keys.Refresh) {
		return m, m.loadSessionsCmd()
	}
	if key.Matches(msg, m.keys.RateGood) {
		return m.rate(model.FeedbackGood)
	}
	if key.Matches(msg, m.keys.RateBad) {
		return m.rate(model.FeedbackBad)
	}
	if key.Matches(msg, m.keys.PrevAnswer) {
		m.moveRateTarget(-1)
		return m, nil
	}
	if key.Matches(msg, m.keys.NextAnswer) {
		m.moveRateTarget(1)
		return m, nil
	}

	if m.focus == focusSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handleInputKey(msg)
}

func (m Model) toggleFocus() Model {
	if m.focus == focusInput {
		m.focus = focusSidebar
		m.sidebar.Focused = true
		m.input.Blur()
	} else {
		m.focus = focusInput
		m.sidebar.Focused = false
		m.input.Focus()
	}
	return m
}

func (m Model) handleSidebarKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.sidebar.MoveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.sidebar.MoveCursor(1)
		return m, nil
	case key.Matches(msg, m.keys.Select):
		if s := m.sidebar.CursorSession(); s != nil {
			return m.selectSession(s.SessionID)
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if s := m.sidebar.CursorSession(); s != nil {
			m.confirmDelete = s.SessionID
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down),
		key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// FILTER EDITOR
// =============================================================================

func (m Model) openFilterEditor() Model {
	m.focus = focusFilters
	m.input.Blur()
	m.sidebar.Focused = false
	m.filterInputs[0].SetValue(m.filters.DocumentType)
	m.filterInputs[1].SetValue(m.filters.Product)
	m.filterInputs[2].SetValue(m.filters.Model)
	m.filterFocus = 0
	for i := range m.filterInputs {
		m.filterInputs[i].Blur()
	}
	m.filterInputs[0].Focus()
	return m
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = focusInput
		m.input.Focus()
		return m, nil
	case "tab", "down":
		return m.focusFilterField(m.filterFocus + 1), nil
	case "shift+tab", "up":
		return m.focusFilterField(m.filterFocus - 1), nil
	case "enter":
		m.filters = model.FilterSet{
			DocumentType: strings.TrimSpace(m.filterInputs[0].Value()),
			Product:      strings.TrimSpace(m.filterInputs[1].Value()),
			Model:        strings.TrimSpace(m.filterInputs[2].Value()),
		}.Normalize()
		m.focus = focusInput
		m.input.Focus()
		if m.filters.IsZero() {
			m.toasts.AddStatus("Filters cleared")
		} else {
			m.toasts.AddStatus("Filters: " + m.filters.Summary())
		}
		return m, components.ToastTickCmd()
	}

	var cmd tea.Cmd
	m.filterInputs[m.filterFocus], cmd = m.filterInputs[m.filterFocus].Update(msg)
	return m, cmd
}

func (m Model) focusFilterField(i int) Model {
	if i < 0 {
		i = len(m.filterInputs) - 1
	}
	if i >= len(m.filterInputs) {
		i = 0
	}
	m.filterInputs[m.filterFocus].Blur()
	m.filterFocus = i
	m.filterInputs[m.filterFocus].Focus()
	return m
}

// =============================================================================
// SESSION NAVIGATION
// =============================================================================

// selectSession switches the pane to a session. Any reveal in
// progress is cancelled; a fetch generation is opened so the last
// selection always wins over slower earlier fetches. The outgoing
// pane is snapshotted first: the selection only sticks once its
// history arrives, and a failed fetch falls back to the snapshot.
func (m Model) selectSession(sessionID string) (Model, tea.Cmd) {
	m.cancelReveal()

	m.prevActiveID = m.activeID
	m.prevConv = m.conv
	m.prevServerHistory = m.serverHistory
	m.prevState = m.state
	if m.prevState == StateAwaitingReply || m.prevState == StateRevealing {
		m.prevState = StateReady
	}

	m.rateTarget = ""
	m.activeID = sessionID
	m.sidebar.ActiveID = sessionID
	m.conv = model.NewConversation(sessionID)
	m.histGen++
	m.serverHistory = false
	m.state = StateLoadingHistory
	m.syncViewport(true)

	return m, tea.Batch(
		m.spinner.Tick,
		m.loadCachedHistoryCmd(sessionID, m.histGen),
		m.loadHistoryCmd(sessionID, m.histGen),
	)
}

// newConversation clears the pane for a fresh conversation. No server
// call is made; the session is created by the first query.
func (m Model) newConversation() Model {
	m.cancelReveal()
	m.rateTarget = ""
	m.activeID = ""
	m.sidebar.ActiveID = ""
	m.conv = model.NewConversation("")
	m.histGen++
	m.serverHistory = false
	m.state = StateEmpty
	m.focus = focusInput
	m.sidebar.Focused = false
	m.input.Focus()
	m.syncViewport(true)
	return m
}

// =============================================================================
// HISTORY RESULTS
// =============================================================================

func (m Model) handleCachedHistory(msg CachedHistoryMsg) Model {
	// Only paint the cache while this exact selection is still
	// loading and the server has not answered yet.
	if msg.Gen != m.histGen || msg.SessionID != m.activeID || m.serverHistory {
		return m
	}
	if m.state != StateLoadingHistory {
		return m
	}
	m.conv.ReplaceHistory(msg.Messages)
	m.state = StateReady
	m.syncViewport(true)
	return m
}

func (m Model) handleHistoryLoaded(msg HistoryLoadedMsg) (Model, tea.Cmd) {
	if msg.Gen != m.histGen || msg.SessionID != m.activeID {
		return m, nil // stale fetch, a later selection won
	}
	// A query may have started from the cached paint; the transcript
	// now contains an optimistic entry that must not be overwritten.
	if m.state == StateAwaitingReply || m.state == StateRevealing {
		return m, nil
	}
	if msg.Err != nil {
		// Nothing of the failed session was shown: fall back to the
		// conversation the user was on. If the cache already painted
		// (state left LoadingHistory), the cached view stays up and
		// only the toast reports the failure.
		var cmd tea.Cmd
		if m.state == StateLoadingHistory {
			m.activeID = m.prevActiveID
			m.sidebar.ActiveID = m.prevActiveID
			m.conv = m.prevConv
			m.serverHistory = m.prevServerHistory
			m.state = m.prevState
			if m.state == StateLoadingHistory && m.activeID != "" {
				// The pane we fall back to was itself still loading;
				// reissue its fetch under a fresh generation.
				m.histGen++
				cmd = tea.Batch(
					m.loadCachedHistoryCmd(m.activeID, m.histGen),
					m.loadHistoryCmd(m.activeID, m.histGen),
				)
			}
			m.syncViewport(true)
		}
		m.toasts.AddError("Could not load conversation: " + userMessage(msg.Err))
		return m, tea.Batch(cmd, components.ToastTickCmd())
	}
	m.conv.ReplaceHistory(msg.Messages)
	m.serverHistory = true
	m.rateTarget = ""
	m.state = StateReady
	m.syncViewport(true)
	return m, nil
}

// =============================================================================
// QUERY SUBMISSION
// =============================================================================

// submit sends the input box content as a query. Blank input is a
// no-op, as is submitting while a query is already in flight or a
// transcript is loading. A reveal in progress snaps to complete
// before the new exchange starts.
func (m Model) submit() (Model, tea.Cmd) {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		return m, nil
	}
	if m.state == StateAwaitingReply || m.state == StateLoadingHistory {
		return m, nil
	}

	m.finishReveal()

	userMsg := model.NewUserMessage(query)
	m.conv.Append(userMsg)
	m.input.Reset()
	m.pendingGen = m.histGen
	m.state = StateAwaitingReply
	m.syncViewport(true)

	return m, tea.Batch(
		m.spinner.Tick,
		m.submitQueryCmd(userMsg.ID, query),
	)
}

func (m Model) handleQueryResult(msg QueryResultMsg) (Model, tea.Cmd) {
	if m.state != StateAwaitingReply || m.pendingGen != m.histGen {
		return m, nil // the user navigated away, nothing to attach to
	}

	userMsg := m.conv.MessageByID(msg.LocalUserMsgID)

	if msg.Err != nil {
		// The question stays in the transcript, flagged as failed.
		if userMsg != nil {
			userMsg.SendState = model.SendFailed
		}
		m.state = StateReady
		if m.conv.IsEmpty() {
			m.state = StateEmpty
		}
		m.toasts.AddError(userMessage(msg.Err))
		m.syncViewport(false)
		return m, components.ToastTickCmd()
	}

	resp := msg.Resp
	if userMsg != nil {
		userMsg.SendState = model.SendConfirmed
		if resp.UserMessageID != "" {
			userMsg.ID = resp.UserMessageID
		}
	}

	var cmds []tea.Cmd

	// First query of a new conversation: adopt the session the
	// backend created and refresh the sidebar to show it.
	if m.activeID == "" {
		m.activeID = resp.SessionID
		m.sidebar.ActiveID = resp.SessionID
		m.conv.SessionID = resp.SessionID
		cmds = append(cmds, m.loadSessionsCmd())
	}

	answer := model.NewAssistantMessage(resp.AIMessageID, resp.Content, resp.Citations, resp.SourceDocuments)
	if ts, err := time.Parse(time.RFC3339, resp.Timestamp); err == nil {
		answer.Timestamp = ts
	}
	m.conv.Append(answer)
	m.rateTarget = "" // rating keys snap back to the newest answer

	if store := m.store; store != nil {
		sessionID, msgs := m.activeID, m.conv.Messages
		cmds = append(cmds, func() tea.Msg {
			_ = store.PutMessages(sessionID, msgs)
			return nil
		})
	}

	m.reveal = reveal.New(answer.ID, answer.Content)
	if m.reveal.Done() {
		m.state = StateReady
	} else {
		m.state = StateRevealing
		cmds = append(cmds, revealTickCmd(m.reveal))
	}
	m.syncViewport(true)
	return m, tea.Batch(cmds...)
}

// =============================================================================
// REVEAL
// =============================================================================

func (m Model) handleRevealTick(msg RevealTickMsg) (Model, tea.Cmd) {
	if m.state != StateRevealing || m.reveal == nil || m.reveal.MessageID() != msg.MessageID {
		return m, nil
	}
	m.reveal.Advance()
	m.syncViewport(true)
	if m.reveal.Done() {
		m.state = StateReady
		return m, nil
	}
	return m, revealTickCmd(m.reveal)
}

// =============================================================================
// DELETE
// =============================================================================

func (m Model) handleSessionDeleted(msg SessionDeletedMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		// The session stays listed; nothing was removed locally.
		m.toasts.AddError("Could not delete session: " + userMessage(msg.Err))
		return m, components.ToastTickCmd()
	}

	m.sidebar.Sessions = model.RemoveSession(m.sidebar.Sessions, msg.SessionID)
	m.sidebar.ClampCursor()

	if msg.SessionID == m.activeID {
		m = m.newConversation()
	}
	m.toasts.AddSuccess("Session deleted")
	return m, tea.Batch(components.ToastTickCmd(), m.loadSessionsCmd())
}

// =============================================================================
// FEEDBACK
// =============================================================================

// rate applies a rating to the targeted assistant message — the
// newest answer by default, or an earlier one selected with the
// answer keys. Ratings are optimistic and final from the UI's point
// of view: a server failure never clears the mark.
func (m Model) rate(fb model.Feedback) (Model, tea.Cmd) {
	answer := m.rateTargetMessage()
	if answer == nil || !m.isRevealed(answer) {
		return m, nil
	}
	if m.activeID == "" {
		return m, nil
	}
	if answer.Feedback == fb {
		return m, nil // already rated this way
	}
	answer.Feedback = fb
	m.syncViewport(false)
	return m, m.submitFeedbackCmd(m.activeID, answer.ID, fb)
}

// =============================================================================
// ERROR TEXT
// =============================================================================

// userMessage maps a backend error to display text. ClientError types
// carry per-category wording; anything else falls back to Error().
func userMessage(err error) string {
	var clientErr *api.ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type.UserMessage()
	}
	return err.Error()
}
