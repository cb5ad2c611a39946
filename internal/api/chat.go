// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/eleknowledge/eleknowledge-tui/internal/model"
)

// =============================================================================
// SESSION DIRECTORY
// =============================================================================

// ListSessions fetches the user's session directory, newest first.
func (c *Client) ListSessions(ctx context.Context, userID string) ([]model.Session, error) {
	var resp struct {
		Sessions []model.Session `json:"sessions"`
	}
	u := c.chatURL("/chat/sessions") + "?userId=" + url.QueryEscape(userID)
	if err := c.do(ctx, http.MethodGet, u, nil, &resp); err != nil {
		return nil, err
	}
	model.SortSessions(resp.Sessions)
	return resp.Sessions, nil
}

// DeleteSession deletes a session and all its messages server-side.
// The caller removes it from the local list only after this succeeds.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	u := c.chatURL("/chat/sessions/" + url.PathEscape(sessionID))
	return c.do(ctx, http.MethodDelete, u, nil, nil)
}

// =============================================================================
// MESSAGE HISTORY
// =============================================================================

// historyMessage is the chat-management wire shape for a stored message.
// Server items use "messageId" and string timestamps.
type historyMessage struct {
	MessageID       string                 `json:"messageId"`
	Role            model.Role             `json:"role"`
	Content         string                 `json:"content"`
	Timestamp       string                 `json:"timestamp"`
	Citations       []string               `json:"citations,omitempty"`
	SourceDocuments []model.SourceDocument `json:"sourceDocuments,omitempty"`
	Feedback        model.Feedback         `json:"feedback,omitempty"`
}

// ListMessages fetches a session's transcript, oldest first.
func (c *Client) ListMessages(ctx context.Context, sessionID string) ([]*model.Message, error) {
	var resp struct {
		Messages []historyMessage `json:"messages"`
	}
	u := c.chatURL("/chat/sessions/" + url.PathEscape(sessionID) + "/messages")
	if err := c.do(ctx, http.MethodGet, u, nil, &resp); err != nil {
		return nil, err
	}

	msgs := make([]*model.Message, 0, len(resp.Messages))
	for _, hm := range resp.Messages {
		msgs = append(msgs, hm.toMessage())
	}
	return msgs, nil
}

func (hm historyMessage) toMessage() *model.Message {
	ts, err := time.Parse(time.RFC3339, hm.Timestamp)
	if err != nil {
		// Some items carry fractional seconds without a zone.
		ts, _ = time.Parse("2006-01-02T15:04:05.999999", hm.Timestamp)
	}
	return &model.Message{
		ID:              hm.MessageID,
		Role:            hm.Role,
		Content:         hm.Content,
		Timestamp:       ts,
		Citations:       hm.Citations,
		SourceDocuments: hm.SourceDocuments,
		Feedback:        hm.Feedback,
		SendState:       model.SendConfirmed,
	}
}

// =============================================================================
// FEEDBACK
// =============================================================================

// SubmitFeedback records a good/bad rating on a message. Best-effort
// from the UI's perspective: the optimistic rating is kept regardless of
// the outcome.
func (c *Client) SubmitFeedback(ctx context.Context, messageID, sessionID string, feedback model.Feedback) error {
	if !feedback.Valid() {
		return &ClientError{Type: ErrTypeUnknown, Message: "feedback must be good or bad"}
	}
	u := c.chatURL("/chat/messages/" + url.PathEscape(messageID) + "/feedback")
	body := map[string]string{
		"sessionId": sessionID,
		"feedback":  string(feedback),
	}
	return c.do(ctx, http.MethodPut, u, body, nil)
}
