// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP clients for the EleKnowledge backend.
//
// # Key Types
//
//   - Client: authenticated client for both backend surfaces
//   - QueryRequest / QueryResponse: RAG query wire shapes
//   - ClientError: typed errors separating transport failures from
//     backend-reported ones
//
// # Endpoints
//
// Chat management (session directory, history, feedback):
//
//	GET    /chat/sessions?userId={id}
//	GET    /chat/sessions/{sessionId}/messages
//	DELETE /chat/sessions/{sessionId}
//	PUT    /chat/messages/{messageId}/feedback
//
// RAG query:
//
//	POST /rag/query
//
// Every call fetches a fresh bearer token from the TokenProvider; query
// submission is rate limited client-side.
package api
