// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import "testing"

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxRunes int
		want     string
	}{
		{"shorter than max", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"truncated with ellipsis", "hello world", 8, "hello..."},
		{"max at or below ellipsis", "hello", 3, "hel"},
		{"zero max", "hello", 0, ""},
		{"cjk not split", "電気設備の点検手順", 6, "電気設..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateRunes(tt.input, tt.maxRunes); got != tt.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tt.input, tt.maxRunes, got, tt.want)
			}
		})
	}
}

func TestTruncateRunesNoEllipsis(t *testing.T) {
	if got := TruncateRunesNoEllipsis("hello world", 5); got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
	if got := TruncateRunesNoEllipsis("hi", 5); got != "hi" {
		t.Errorf("got %q, want %q", got, "hi")
	}
}

func TestTruncateWidth(t *testing.T) {
	// Each CJK rune is two columns wide.
	if got := TruncateWidth("電気設備", 4); got != "電気" {
		t.Errorf("got %q, want %q", got, "電気")
	}
	if got := TruncateWidth("abcdef", 10); got != "abcdef" {
		t.Errorf("got %q, want %q", got, "abcdef")
	}
	if got := StringWidth("電気ab"); got != 6 {
		t.Errorf("StringWidth = %d, want 6", got)
	}
}

func TestFirstLine(t *testing.T) {
	if got := FirstLine("  first\nsecond\n"); got != "first" {
		t.Errorf("got %q, want %q", got, "first")
	}
	if got := FirstLine("single"); got != "single" {
		t.Errorf("got %q, want %q", got, "single")
	}
}

func TestRuneLen(t *testing.T) {
	if got := RuneLen("電気"); got != 2 {
		t.Errorf("RuneLen = %d, want 2", got)
	}
}
