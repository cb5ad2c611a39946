// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the TUI.
//
// This file defines keyboard bindings for the chat interface.
package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chat interface.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Submit       key.Binding
	NewChat      key.Binding
	ToggleFocus  key.Binding
	Select       key.Binding
	Delete       key.Binding
	RateGood     key.Binding
	RateBad      key.Binding
	PrevAnswer   key.Binding
	NextAnswer   key.Binding
	EditFilters  key.Binding
	ClearFilters key.Binding
	Refresh      key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default key bindings for the chat interface.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn", "page down"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		NewChat: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "new conversation"),
		),
		ToggleFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "switch pane"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "open session"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete session"),
		),
		RateGood: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("C-g", "rate helpful"),
		),
		RateBad: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("C-b", "rate not helpful"),
		),
		PrevAnswer: key.NewBinding(
			key.WithKeys("ctrl+up"),
			key.WithHelp("C-↑", "rate an earlier answer"),
		),
		NextAnswer: key.NewBinding(
			key.WithKeys("ctrl+down"),
			key.WithHelp("C-↓", "rate a later answer"),
		),
		EditFilters: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "edit filters"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "clear filters"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "refresh sessions"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.ToggleFocus, k.NewChat, k.EditFilters, k.Quit}
}
