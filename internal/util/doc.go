// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the EleKnowledge terminal client.
//
// This package contains rune- and width-aware string helpers used when
// rendering backend-supplied text (session titles, document names) in a
// fixed-width terminal layout.
//
// # Key Functions
//
//   - TruncateRunes: UTF-8 safe truncation with ellipsis
//   - TruncateWidth: display-column truncation (CJK aware)
//   - FirstLine: first trimmed line of a message, for session titles
//
// # Usage
//
//	// Truncate long strings safely for display
//	display := util.TruncateRunes(longText, 50)
//
//	// Fit a title into a sidebar column
//	title := util.TruncateWidth(session.Title, sidebarWidth-4)
package util
