// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/eleknowledge/eleknowledge-tui/internal/ui/styles"
	"github.com/eleknowledge/eleknowledge-tui/internal/util"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// StatusBar renders the single-line footer: view state, active filters,
// signed-in user, and the key hints for the current state.
type StatusBar struct {
	State   string // human-readable view state ("ready", "waiting for reply", ...)
	User    string // signed-in email or dev identity
	Filters string // active filter summary, "" when none
	Hints   string // context-dependent key hints
	Width   int
}

// Render renders the status bar at the configured width.
func (s StatusBar) Render(theme *styles.Theme) string {
	state := theme.StatusState.Render(s.State)

	var filters string
	if s.Filters != "" {
		filters = theme.FilterActive.Render("⧩ " + s.Filters)
	}

	var user string
	if s.User != "" {
		user = theme.ShortcutDesc.Render(util.TruncateRunes(s.User, 28))
	}

	left := joinNonEmpty("  ", state, filters, user)
	right := theme.ShortcutDesc.Render(s.Hints)

	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	bar := left + lipgloss.NewStyle().Width(gap).Render("") + right
	return theme.StatusBar.Width(s.Width).Render(bar)
}
