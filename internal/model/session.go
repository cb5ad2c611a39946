// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "sort"

// =============================================================================
// SESSION DIRECTORY
// =============================================================================

// Session is one entry in the user's session directory. Field names
// follow the backend response shape; timestamps are RFC 3339 strings as
// returned by the server and compared lexically for ordering, which is
// valid for RFC 3339 in a single zone.
type Session struct {
	SessionID       string `json:"sessionId"`
	Title           string `json:"title"`
	CreatedAt       string `json:"createdAt"`
	LastMessageTime string `json:"lastMessageTime"`
	MessageCount    int    `json:"messageCount"`

	// DaysUntilDeletion is derived server-side from the 30-day
	// retention TTL. Zero means the backend did not report it.
	DaysUntilDeletion int `json:"daysUntilDeletion,omitempty"`
}

// SortSessions orders sessions newest-first by last message time,
// matching the order the backend presents them in.
func SortSessions(sessions []Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].LastMessageTime > sessions[j].LastMessageTime
	})
}

// FindSession returns the index of the session with the given ID, or -1.
func FindSession(sessions []Session, id string) int {
	for i := range sessions {
		if sessions[i].SessionID == id {
			return i
		}
	}
	return -1
}

// RemoveSession returns sessions with the given ID removed. The input
// slice is not modified.
func RemoveSession(sessions []Session, id string) []Session {
	out := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if s.SessionID != id {
			out = append(out, s)
		}
	}
	return out
}
