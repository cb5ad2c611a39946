// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/eleknowledge/eleknowledge-tui/internal/model"
	"github.com/eleknowledge/eleknowledge-tui/internal/ui/styles"
	"github.com/eleknowledge/eleknowledge-tui/internal/util"
)

// =============================================================================
// SESSION SIDEBAR
// =============================================================================

// retentionWarnDays is the countdown at which the sidebar starts
// flagging a session's upcoming deletion.
const retentionWarnDays = 7

// SessionList renders the session sidebar: every session with its
// title, message count, and retention countdown, plus a cursor for
// keyboard navigation.
type SessionList struct {
	Sessions []model.Session
	Cursor   int    // highlighted row
	ActiveID string // session whose transcript is shown
	Width    int
	Height   int
	Focused  bool
}

// ClampCursor keeps the cursor inside the list after refreshes or
// deletes shrink it.
func (l *SessionList) ClampCursor() {
	if l.Cursor >= len(l.Sessions) {
		l.Cursor = len(l.Sessions) - 1
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
}

// CursorSession returns the session under the cursor, or nil.
func (l *SessionList) CursorSession() *model.Session {
	if l.Cursor < 0 || l.Cursor >= len(l.Sessions) {
		return nil
	}
	return &l.Sessions[l.Cursor]
}

// MoveCursor moves the cursor by delta, clamped to the list.
func (l *SessionList) MoveCursor(delta int) {
	l.Cursor += delta
	l.ClampCursor()
}

// Render renders the sidebar.
func (l SessionList) Render(theme *styles.Theme) string {
	var b strings.Builder

	title := "Sessions"
	if l.Focused {
		title = "Sessions ◂"
	}
	b.WriteString(theme.SourceTitle.Render(title))
	b.WriteString("\n\n")

	if len(l.Sessions) == 0 {
		b.WriteString(theme.SessionMeta.Render("No conversations yet"))
		return theme.SessionList.Width(l.Width).Height(l.Height).Render(b.String())
	}

	// Two rows per session plus the header.
	visible := (l.Height - 3) / 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.Cursor >= visible {
		start = l.Cursor - visible + 1
	}

	for i := start; i < len(l.Sessions) && i < start+visible; i++ {
		s := l.Sessions[i]

		title := util.TruncateWidth(s.Title, l.Width-4)
		if title == "" {
			title = "(untitled)"
		}

		meta := fmt.Sprintf("%d msgs", s.MessageCount)
		if s.DaysUntilDeletion > 0 && s.DaysUntilDeletion <= retentionWarnDays {
			meta += theme.RetentionWarning.Render(fmt.Sprintf("  %dd left", s.DaysUntilDeletion))
		} else if s.DaysUntilDeletion > 0 {
			meta += fmt.Sprintf("  %dd left", s.DaysUntilDeletion)
		}

		marker := "  "
		if s.SessionID == l.ActiveID {
			marker = "▸ "
		}

		row := marker + title
		if i == l.Cursor && l.Focused {
			b.WriteString(theme.SessionItemSelected.Render(row))
		} else {
			b.WriteString(theme.SessionItem.Render(row))
		}
		b.WriteString("\n")
		b.WriteString(theme.SessionMeta.Render("   " + meta))
		b.WriteString("\n")
	}

	return theme.SessionList.Width(l.Width).Height(l.Height).Render(b.String())
}
