// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"

	"github.com/eleknowledge/eleknowledge-tui/internal/model"
)

// =============================================================================
// RAG QUERY
// =============================================================================

// QueryRequest is the payload for a RAG query. SessionID is omitted for
// the first query of a new conversation; the backend then creates a
// session and reports its ID in the response. Filters with no set field
// are omitted entirely.
type QueryRequest struct {
	SessionID string           `json:"sessionId,omitempty"`
	UserID    string           `json:"userId"`
	Query     string           `json:"query"`
	Filters   *model.FilterSet `json:"filters,omitempty"`
}

// NewQueryRequest builds a query payload, normalizing filters and
// dropping them when blank.
func NewQueryRequest(sessionID, userID, query string, filters model.FilterSet) QueryRequest {
	req := QueryRequest{
		SessionID: sessionID,
		UserID:    userID,
		Query:     query,
	}
	if !filters.IsZero() {
		f := filters.Normalize()
		req.Filters = &f
	}
	return req
}

// QueryResponse is the backend's answer to a query.
type QueryResponse struct {
	SessionID       string                 `json:"sessionId"`
	SessionTitle    string                 `json:"sessionTitle,omitempty"`
	UserMessageID   string                 `json:"userMessageId"`
	AIMessageID     string                 `json:"aiMessageId"`
	Content         string                 `json:"content"`
	Citations       []string               `json:"citations,omitempty"`
	SourceDocuments []model.SourceDocument `json:"sourceDocuments,omitempty"`
	Timestamp       string                 `json:"timestamp"`
}

// SubmitQuery sends a query to the RAG backend and returns the answer.
// Submission is rate limited; a burst of sends surfaces ErrThrottled
// without touching the network.
func (c *Client) SubmitQuery(ctx context.Context, req QueryRequest) (*QueryResponse, error) {
	if !c.queryLimiter.Allow() {
		return nil, ErrThrottled
	}

	var resp QueryResponse
	if err := c.do(ctx, http.MethodPost, c.ragURL("/rag/query"), req, &resp); err != nil {
		return nil, err
	}
	if resp.AIMessageID == "" || resp.Content == "" {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "incomplete answer from server"}
	}
	return &resp, nil
}
