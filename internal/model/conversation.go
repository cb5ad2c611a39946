// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "github.com/eleknowledge/eleknowledge-tui/internal/util"

// =============================================================================
// CONVERSATION
// =============================================================================

// titleMaxChars is how much of the first message becomes the provisional
// session title, matching the backend's own truncation rule.
const titleMaxChars = 50

// Conversation is the transcript of the active session: the session ID
// plus an ordered message list. A zero SessionID means no session has
// been adopted yet (the next query creates one server-side).
type Conversation struct {
	SessionID string
	Messages  []*Message
}

// NewConversation creates an empty conversation bound to a session.
// An empty id starts an unadopted conversation.
func NewConversation(sessionID string) *Conversation {
	return &Conversation{SessionID: sessionID}
}

// Append adds a message to the end of the transcript.
func (c *Conversation) Append(msg *Message) {
	c.Messages = append(c.Messages, msg)
}

// ReplaceHistory swaps the transcript for server-fetched history.
// History messages are by definition confirmed.
func (c *Conversation) ReplaceHistory(msgs []*Message) {
	for _, m := range msgs {
		m.SendState = SendConfirmed
	}
	c.Messages = msgs
}

// MessageByID returns the message with the given ID, or nil.
func (c *Conversation) MessageByID(id string) *Message {
	for _, m := range c.Messages {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// LastMessage returns the final message in the transcript, or nil.
func (c *Conversation) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// LastAssistantMessage returns the most recent assistant message, or nil.
func (c *Conversation) LastAssistantMessage() *Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].IsAssistant() {
			return c.Messages[i]
		}
	}
	return nil
}

// Len returns the number of messages in the transcript.
func (c *Conversation) Len() int {
	return len(c.Messages)
}

// IsEmpty reports whether the transcript has no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// ProvisionalTitle derives a session title from the first user message,
// used for the sidebar entry of a freshly created session until the
// directory refresh returns the server's title.
func (c *Conversation) ProvisionalTitle() string {
	for _, m := range c.Messages {
		if m.IsUser() {
			return util.TruncateRunesNoEllipsis(util.FirstLine(m.Content), titleMaxChars)
		}
	}
	return "New conversation"
}
