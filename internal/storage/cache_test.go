// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eleknowledge/eleknowledge-tui/internal/model"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSessionsRoundTrip(t *testing.T) {
	c := newTestCache(t)

	sessions := []model.Session{
		{SessionID: "s1", Title: "breaker reset", LastMessageTime: "2026-08-20T10:00:00Z", MessageCount: 4, DaysUntilDeletion: 25},
		{SessionID: "s2", Title: "点検手順", LastMessageTime: "2026-08-10T10:00:00Z", MessageCount: 2, DaysUntilDeletion: 15},
	}
	require.NoError(t, c.PutSessions("u-1", sessions))

	got, err := c.GetSessions("u-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, sessions, got, "order and fields preserved")

	// Other users see nothing.
	other, err := c.GetSessions("u-2")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestPutSessions_Overwrites(t *testing.T) {
	c := newTestCache(t)

	require.NoError(t, c.PutSessions("u-1", []model.Session{{SessionID: "old"}}))
	require.NoError(t, c.PutSessions("u-1", []model.Session{{SessionID: "new"}}))

	got, err := c.GetSessions("u-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].SessionID, "server copy replaces cache wholesale")
}

func TestMessagesRoundTrip(t *testing.T) {
	c := newTestCache(t)

	ts := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	msgs := []*model.Message{
		{ID: "m1", Role: model.RoleUser, Content: "how?", Timestamp: ts, SendState: model.SendConfirmed},
		{
			ID: "m2", Role: model.RoleAssistant, Content: "like this", Timestamp: ts,
			Citations: []string{"manual.pdf"},
			SourceDocuments: []model.SourceDocument{
				{DocumentName: "manual.pdf", SourceURI: "s3://b/manual.pdf", Relevance: 0.91},
			},
			Feedback:  model.FeedbackGood,
			SendState: model.SendConfirmed,
		},
	}
	require.NoError(t, c.PutMessages("s1", msgs))

	got, err := c.GetMessages("s1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, msgs[1].Citations, got[1].Citations)
	assert.Equal(t, msgs[1].SourceDocuments, got[1].SourceDocuments)
	assert.Equal(t, model.FeedbackGood, got[1].Feedback)
	assert.Equal(t, model.SendConfirmed, got[0].SendState)
	assert.True(t, got[0].Timestamp.Equal(ts))
}

func TestGetMessages_Uncached(t *testing.T) {
	c := newTestCache(t)
	got, err := c.GetMessages("never-seen")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteSession(t *testing.T) {
	c := newTestCache(t)

	require.NoError(t, c.PutSessions("u-1", []model.Session{{SessionID: "s1"}, {SessionID: "s2"}}))
	require.NoError(t, c.PutMessages("s1", []*model.Message{{ID: "m1", Role: model.RoleUser, Content: "x"}}))

	require.NoError(t, c.DeleteSession("s1"))

	sessions, err := c.GetSessions("u-1")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "s2", sessions[0].SessionID)

	msgs, err := c.GetMessages("s1")
	require.NoError(t, err)
	assert.Nil(t, msgs)
}

func TestSetFeedback(t *testing.T) {
	c := newTestCache(t)
	require.NoError(t, c.PutMessages("s1", []*model.Message{
		{ID: "m1", Role: model.RoleAssistant, Content: "answer"},
	}))

	require.NoError(t, c.SetFeedback("s1", "m1", model.FeedbackBad))

	msgs, err := c.GetMessages("s1")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, model.FeedbackBad, msgs[0].Feedback)
}
