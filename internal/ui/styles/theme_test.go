// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}
	// A few representative styles must be initialized.
	if theme.UserBubble.GetPaddingLeft() == 0 {
		t.Error("UserBubble not initialized")
	}
	if !theme.SessionItemSelected.GetBold() {
		t.Error("SessionItemSelected should be bold")
	}
}

func TestLayoutMode(t *testing.T) {
	theme := NewTheme()

	theme.SetSize(40, 24)
	if theme.GetLayoutMode() != LayoutNarrow {
		t.Error("40 columns should be narrow")
	}

	theme.SetSize(80, 24)
	if theme.GetLayoutMode() != LayoutMedium {
		t.Error("80 columns should be medium")
	}

	theme.SetSize(140, 40)
	if theme.GetLayoutMode() != LayoutWide {
		t.Error("140 columns should be wide")
	}
}

func TestNewThemeWithBackground(t *testing.T) {
	dark := NewThemeWithBackground(true)
	if !dark.IsDark {
		t.Error("forced dark theme should report IsDark")
	}
	light := NewThemeWithBackground(false)
	if light.IsDark {
		t.Error("forced light theme should not report IsDark")
	}
}
