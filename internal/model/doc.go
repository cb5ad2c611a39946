// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the core data types for the EleKnowledge
// terminal client.
//
// # Key Types
//
//   - Message: a chat message with role, content, retrieval metadata
//     (citations and source documents), feedback, and a client-local
//     send state for optimistic user messages
//   - Session: one entry in the user's session directory, including the
//     retention countdown reported by the backend
//   - Conversation: the transcript of the active session
//   - FilterSet: optional documentType/product/model constraints applied
//     to the next query
//
// Types that appear on the wire carry JSON tags matching the backend's
// camelCase field names.
package model
