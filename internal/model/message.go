// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLES AND TAGS
// =============================================================================

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Feedback is a user rating on an assistant message.
type Feedback string

const (
	FeedbackNone Feedback = ""
	FeedbackGood Feedback = "good"
	FeedbackBad  Feedback = "bad"
)

// Valid reports whether f is a rating the backend accepts.
func (f Feedback) Valid() bool {
	return f == FeedbackGood || f == FeedbackBad
}

// SendState tracks the delivery status of an optimistically appended
// user message. A user message is appended to the transcript before the
// backend acknowledges it and is never removed; on dispatch failure it
// stays in the transcript tagged SendFailed.
type SendState int

const (
	// SendConfirmed means the backend acknowledged the message (or it
	// came from server history in the first place).
	SendConfirmed SendState = iota

	// SendPending means the message was appended locally and the query
	// carrying it is still in flight.
	SendPending

	// SendFailed means the query carrying this message failed. The
	// message remains visible so the user can re-send the text.
	SendFailed
)

// String returns the send state as a short tag for display.
func (s SendState) String() string {
	switch s {
	case SendPending:
		return "sending"
	case SendFailed:
		return "failed"
	default:
		return ""
	}
}

// =============================================================================
// SOURCE DOCUMENTS
// =============================================================================

// SourceDocument describes one retrieved document that grounded an
// assistant answer. Field names follow the backend response shape.
type SourceDocument struct {
	DocumentName string  `json:"documentName"`
	SourceURI    string  `json:"sourceUri"`
	DocumentType string  `json:"documentType,omitempty"`
	Product      string  `json:"product,omitempty"`
	Model        string  `json:"model,omitempty"`
	Relevance    float64 `json:"relevance"`
}

// =============================================================================
// MESSAGE
// =============================================================================

// Message is a single chat message in a session transcript.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// Assistant-only retrieval metadata.
	Citations       []string         `json:"citations,omitempty"`
	SourceDocuments []SourceDocument `json:"sourceDocuments,omitempty"`

	// Feedback is the user's rating, applied optimistically and never
	// rolled back on submission failure.
	Feedback Feedback `json:"feedback,omitempty"`

	// SendState is client-local and never serialized.
	SendState SendState `json:"-"`
}

// NewUserMessage creates a user message with a client-generated ID and a
// pending send state. The ID is provisional: after a successful query the
// transcript is reconciled against server-assigned IDs.
func NewUserMessage(content string) *Message {
	return &Message{
		ID:        generateID(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: time.Now(),
		SendState: SendPending,
	}
}

// NewAssistantMessage creates an assistant message carrying the backend's
// message ID and retrieval metadata.
func NewAssistantMessage(id, content string, citations []string, docs []SourceDocument) *Message {
	return &Message{
		ID:              id,
		Role:            RoleAssistant,
		Content:         content,
		Timestamp:       time.Now(),
		Citations:       citations,
		SourceDocuments: docs,
	}
}

// IsUser reports whether the message was authored by the user.
func (m *Message) IsUser() bool {
	return m.Role == RoleUser
}

// IsAssistant reports whether the message was authored by the assistant.
func (m *Message) IsAssistant() bool {
	return m.Role == RoleAssistant
}

// HasSources reports whether the message carries retrieval metadata
// worth rendering.
func (m *Message) HasSources() bool {
	return len(m.SourceDocuments) > 0 || len(m.Citations) > 0
}

// generateID returns a client-side message identifier. Prefixed so
// provisional IDs are distinguishable from server-assigned ones in logs.
func generateID() string {
	return "msg_" + uuid.NewString()
}
