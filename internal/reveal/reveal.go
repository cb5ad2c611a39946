// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package reveal implements the incremental "typewriter" disclosure of
// assistant messages.
//
// The reveal is a deterministic prefix generator: the visible prefix is a
// pure function of the full text, the number of elapsed ticks, and the
// text's script classification. Rendering never mutates the generator, so
// a reveal can be restarted, replayed, or snapped to completion at any
// point without drift.
//
// Dense wide-script text (CJK) carries more information per rune than
// Latin text, so it is revealed in smaller chunks on a slower cadence:
// 2 runes per 50ms tick versus 3 runes per 30ms tick for narrow text.
package reveal

import (
	"time"

	"github.com/mattn/go-runewidth"
)

// =============================================================================
// SCRIPT CLASSIFICATION
// =============================================================================

// ScriptClass buckets a message's text by dominant script width.
type ScriptClass int

const (
	// ScriptNarrow covers text dominated by single-column runes.
	ScriptNarrow ScriptClass = iota

	// ScriptWide covers text dominated by double-column runes (CJK).
	ScriptWide
)

// String returns the class name for logs and tests.
func (c ScriptClass) String() string {
	if c == ScriptWide {
		return "wide"
	}
	return "narrow"
}

// Cadence parameters per script class.
const (
	narrowChunkRunes = 3
	narrowInterval   = 30 * time.Millisecond

	wideChunkRunes = 2
	wideInterval   = 50 * time.Millisecond

	// wideThreshold is the fraction of double-width runes at which a
	// message counts as wide-script overall. Mixed Japanese text with
	// embedded ASCII identifiers still classifies as wide.
	wideThreshold = 0.3
)

// Classify buckets text by the fraction of double-width runes among its
// non-space runes. Empty or all-space text classifies as narrow.
func Classify(text string) ScriptClass {
	total := 0
	wide := 0
	for _, r := range text {
		if r == ' ' || r == '\n' || r == '\t' {
			continue
		}
		total++
		if runewidth.RuneWidth(r) >= 2 {
			wide++
		}
	}
	if total == 0 {
		return ScriptNarrow
	}
	if float64(wide)/float64(total) >= wideThreshold {
		return ScriptWide
	}
	return ScriptNarrow
}

// ChunkRunes returns how many runes one tick discloses for this class.
func (c ScriptClass) ChunkRunes() int {
	if c == ScriptWide {
		return wideChunkRunes
	}
	return narrowChunkRunes
}

// Interval returns the tick cadence for this class.
func (c ScriptClass) Interval() time.Duration {
	if c == ScriptWide {
		return wideInterval
	}
	return narrowInterval
}

// =============================================================================
// PURE PREFIX FUNCTION
// =============================================================================

// PrefixAt returns the visible prefix of text after the given number of
// elapsed ticks, for the text's own classification. Deterministic:
// calling it twice with the same arguments yields the same prefix.
func PrefixAt(text string, ticks int) string {
	if ticks <= 0 {
		return ""
	}
	runes := []rune(text)
	n := ticks * Classify(text).ChunkRunes()
	if n >= len(runes) {
		return text
	}
	return string(runes[:n])
}

// =============================================================================
// REVEAL STATE
// =============================================================================

// State tracks an in-progress reveal of one assistant message. At most
// one State is active at a time; starting a new reveal or leaving the
// session discards the previous one.
type State struct {
	messageID string
	runes     []rune
	class     ScriptClass
	ticks     int
	snapped   bool
}

// New starts a reveal of the given message text at tick zero.
func New(messageID, text string) *State {
	return &State{
		messageID: messageID,
		runes:     []rune(text),
		class:     Classify(text),
	}
}

// MessageID returns the ID of the message being revealed.
func (s *State) MessageID() string {
	return s.messageID
}

// Class returns the script classification of the message text.
func (s *State) Class() ScriptClass {
	return s.class
}

// Interval returns the tick cadence for this reveal.
func (s *State) Interval() time.Duration {
	return s.class.Interval()
}

// Advance consumes one tick and reports whether the reveal is complete.
func (s *State) Advance() bool {
	if s.Done() {
		return true
	}
	s.ticks++
	return s.Done()
}

// Shown returns how many runes are currently visible.
func (s *State) Shown() int {
	if s.snapped {
		return len(s.runes)
	}
	n := s.ticks * s.class.ChunkRunes()
	if n > len(s.runes) {
		n = len(s.runes)
	}
	return n
}

// Visible returns the currently visible prefix.
func (s *State) Visible() string {
	return string(s.runes[:s.Shown()])
}

// Done reports whether the full text is visible.
func (s *State) Done() bool {
	return s.Shown() >= len(s.runes)
}

// Complete snaps the reveal to the full text. Used when a new send
// force-completes the previous reveal.
func (s *State) Complete() {
	s.snapped = true
}

// Restart rewinds the reveal to tick zero.
func (s *State) Restart() {
	s.ticks = 0
	s.snapped = false
}
