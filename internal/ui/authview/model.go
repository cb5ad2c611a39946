// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

package authview

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/eleknowledge/eleknowledge-tui/internal/auth"
	"github.com/eleknowledge/eleknowledge-tui/internal/ui/styles"
)

// =============================================================================
// SCREENS
// =============================================================================

// Screen identifies which auth form is showing.
type Screen int

const (
	// ScreenLogin collects email and password.
	ScreenLogin Screen = iota
	// ScreenSignUp collects name, email, and a new password.
	ScreenSignUp
	// ScreenVerify collects the emailed confirmation code.
	ScreenVerify
	// ScreenForgot collects the email to send a reset code to.
	ScreenForgot
	// ScreenReset collects the reset code and the new password.
	ScreenReset
)

// String returns the form title for the screen.
func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "Sign In"
	case ScreenSignUp:
		return "Create Account"
	case ScreenVerify:
		return "Verify Email"
	case ScreenForgot:
		return "Reset Password"
	case ScreenReset:
		return "Choose New Password"
	default:
		return "EleKnowledge"
	}
}

// =============================================================================
// FORM FIELDS
// =============================================================================

// field pairs a text input with its label.
type field struct {
	label  string
	secret bool
	input  textinput.Model
}

func newField(label, placeholder string, secret bool) field {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 256
	in.Width = 40
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	return field{label: label, secret: secret, input: in}
}

// fieldsFor builds the input set for a screen. Field order is the tab
// order.
func fieldsFor(screen Screen) []field {
	switch screen {
	case ScreenLogin:
		return []field{
			newField("Email", "you@example.com", false),
			newField("Password", "", true),
		}
	case ScreenSignUp:
		return []field{
			newField("Name", "Full name", false),
			newField("Email", "you@example.com", false),
			newField("Password", "8+ chars, mixed case, digit, symbol", true),
			newField("Confirm password", "", true),
		}
	case ScreenVerify:
		return []field{
			newField("Verification code", "6-digit code", false),
		}
	case ScreenForgot:
		return []field{
			newField("Email", "you@example.com", false),
		}
	case ScreenReset:
		return []field{
			newField("Reset code", "6-digit code", false),
			newField("New password", "", true),
			newField("Confirm password", "", true),
		}
	default:
		return nil
	}
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the auth flow. It owns one screen
// at a time and hands off with SignedInMsg when a sign-in succeeds.
type Model struct {
	client *auth.Client
	theme  *styles.Theme

	screen Screen
	fields []field
	focus  int

	busy    bool // a backend call is in flight
	spinner spinner.Model

	errText  string // inline validation or backend error
	infoText string // non-error status ("code sent", ...)

	// email carries across screens: sign-up to verify, forgot to
	// reset, verify back to login.
	email string

	width  int
	height int
}

// New creates the auth flow starting at the login screen.
func New(client *auth.Client, theme *styles.Theme) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	m := Model{
		client:  client,
		theme:   theme,
		spinner: sp,
	}
	m.setScreen(ScreenLogin)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Screen returns the currently visible screen.
func (m Model) Screen() Screen {
	return m.screen
}

// setScreen swaps the form, resetting inputs and focus. Errors are
// cleared; infoText survives so "code sent" style notices carry over
// a transition.
func (m *Model) setScreen(s Screen) {
	m.screen = s
	m.fields = fieldsFor(s)
	m.focus = 0
	m.errText = ""
	if len(m.fields) > 0 {
		m.fields[0].input.Focus()
	}
}

// setFocus moves keyboard focus to field i, clamped.
func (m *Model) setFocus(i int) {
	if len(m.fields) == 0 {
		return
	}
	if i < 0 {
		i = len(m.fields) - 1
	}
	if i >= len(m.fields) {
		i = 0
	}
	m.fields[m.focus].input.Blur()
	m.focus = i
	m.fields[m.focus].input.Focus()
}

// value returns the trimmed-as-typed value of field i, or "".
func (m Model) value(i int) string {
	if i < 0 || i >= len(m.fields) {
		return ""
	}
	return m.fields[i].input.Value()
}
