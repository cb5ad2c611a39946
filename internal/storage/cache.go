// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the local read-through cache for the
// EleKnowledge terminal client.
//
// The cache holds the last known session directory and message
// histories so a previously viewed session renders immediately while the
// network refresh is in flight. It is strictly advisory: server
// responses always overwrite it, and a cold or deleted cache only costs
// a spinner.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/eleknowledge/eleknowledge-tui/internal/model"
)

// =============================================================================
// CACHE
// =============================================================================

// Cache is the on-disk session/history cache. Safe for concurrent use;
// database/sql serializes access to the single connection.
type Cache struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	user_id             TEXT NOT NULL,
	session_id          TEXT NOT NULL,
	title               TEXT NOT NULL DEFAULT '',
	created_at          TEXT NOT NULL DEFAULT '',
	last_message_time   TEXT NOT NULL DEFAULT '',
	message_count       INTEGER NOT NULL DEFAULT 0,
	days_until_deletion INTEGER NOT NULL DEFAULT 0,
	position            INTEGER NOT NULL,
	PRIMARY KEY (user_id, session_id)
);

CREATE TABLE IF NOT EXISTS messages (
	session_id       TEXT NOT NULL,
	message_id       TEXT NOT NULL,
	position         INTEGER NOT NULL,
	role             TEXT NOT NULL,
	content          TEXT NOT NULL,
	timestamp        TEXT NOT NULL DEFAULT '',
	citations        TEXT NOT NULL DEFAULT '[]',
	source_documents TEXT NOT NULL DEFAULT '[]',
	feedback         TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (session_id, message_id)
);

CREATE INDEX IF NOT EXISTS idx_messages_session ON messages (session_id, position);
`

// Open opens (and if needed creates) the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// =============================================================================
// SESSION DIRECTORY
// =============================================================================

// PutSessions replaces the cached session directory for a user with the
// server's copy.
func (c *Cache) PutSessions(userID string, sessions []model.Session) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM sessions WHERE user_id = ?`, userID); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO sessions
			(user_id, session_id, title, created_at, last_message_time, message_count, days_until_deletion, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, s := range sessions {
		if _, err := stmt.Exec(userID, s.SessionID, s.Title, s.CreatedAt,
			s.LastMessageTime, s.MessageCount, s.DaysUntilDeletion, i); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetSessions returns the cached session directory for a user, in the
// order the server last presented it. An empty cache returns nil.
func (c *Cache) GetSessions(userID string) ([]model.Session, error) {
	rows, err := c.db.Query(`
		SELECT session_id, title, created_at, last_message_time, message_count, days_until_deletion
		FROM sessions WHERE user_id = ? ORDER BY position`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		var s model.Session
		if err := rows.Scan(&s.SessionID, &s.Title, &s.CreatedAt,
			&s.LastMessageTime, &s.MessageCount, &s.DaysUntilDeletion); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// DeleteSession drops a session and its messages from the cache. Called
// after a server-confirmed delete.
func (c *Cache) DeleteSession(sessionID string) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM sessions WHERE session_id = ?`, sessionID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM messages WHERE session_id = ?`, sessionID); err != nil {
		return err
	}
	return tx.Commit()
}

// =============================================================================
// MESSAGE HISTORY
// =============================================================================

// PutMessages replaces a session's cached transcript with the server's
// copy.
func (c *Cache) PutMessages(sessionID string, msgs []*model.Message) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM messages WHERE session_id = ?`, sessionID); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO messages
			(session_id, message_id, position, role, content, timestamp, citations, source_documents, feedback)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, m := range msgs {
		citations, err := json.Marshal(m.Citations)
		if err != nil {
			return err
		}
		docs, err := json.Marshal(m.SourceDocuments)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(sessionID, m.ID, i, string(m.Role), m.Content,
			m.Timestamp.Format(time.RFC3339), string(citations), string(docs),
			string(m.Feedback)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetMessages returns a session's cached transcript, oldest first.
// An uncached session returns nil.
func (c *Cache) GetMessages(sessionID string) ([]*model.Message, error) {
	rows, err := c.db.Query(`
		SELECT message_id, role, content, timestamp, citations, source_documents, feedback
		FROM messages WHERE session_id = ? ORDER BY position`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []*model.Message
	for rows.Next() {
		var (
			m         model.Message
			role      string
			ts        string
			citations string
			docs      string
			feedback  string
		)
		if err := rows.Scan(&m.ID, &role, &m.Content, &ts, &citations, &docs, &feedback); err != nil {
			return nil, err
		}
		m.Role = model.Role(role)
		m.Feedback = model.Feedback(feedback)
		m.SendState = model.SendConfirmed
		m.Timestamp, _ = time.Parse(time.RFC3339, ts)
		if err := json.Unmarshal([]byte(citations), &m.Citations); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(docs), &m.SourceDocuments); err != nil {
			return nil, err
		}
		msgs = append(msgs, &m)
	}
	return msgs, rows.Err()
}

// SetFeedback updates a cached message's rating so the optimistic value
// survives a restart even when the network submission failed.
func (c *Cache) SetFeedback(sessionID, messageID string, feedback model.Feedback) error {
	_, err := c.db.Exec(`
		UPDATE messages SET feedback = ? WHERE session_id = ? AND message_id = ?`,
		string(feedback), sessionID, messageID)
	return err
}
