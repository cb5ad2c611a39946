// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

package authview

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eleknowledge/eleknowledge-tui/internal/auth"
	"github.com/eleknowledge/eleknowledge-tui/internal/ui/styles"
)

func newTestModel() Model {
	return New(auth.NewClient("http://127.0.0.1:1"), styles.NewThemeWithBackground(true))
}

func typeInto(m Model, text string) Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(m Model, key string) (Model, tea.Cmd) {
	switch key {
	case "enter":
		return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	case "tab":
		return m.Update(tea.KeyMsg{Type: tea.KeyTab})
	case "esc":
		return m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	default:
		return m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	}
}

func TestStartsAtLogin(t *testing.T) {
	m := newTestModel()
	assert.Equal(t, ScreenLogin, m.Screen())
	assert.Len(t, m.fields, 2)
}

func TestLoginValidatesEmailInline(t *testing.T) {
	m := newTestModel()
	m = typeInto(m, "not-an-email")
	m, _ = press(m, "tab")
	m = typeInto(m, "Password1!")

	m, cmd := press(m, "enter")

	assert.Nil(t, cmd, "invalid email must not dispatch a request")
	assert.False(t, m.busy)
	assert.NotEmpty(t, m.errText)
	assert.Equal(t, ScreenLogin, m.Screen())
}

func TestLoginRequiresPassword(t *testing.T) {
	m := newTestModel()
	m = typeInto(m, "user@example.com")
	m, _ = press(m, "tab")

	m, cmd := press(m, "enter")

	assert.Nil(t, cmd)
	assert.Contains(t, m.errText, "password")
}

func TestEnterAdvancesFocusBeforeSubmitting(t *testing.T) {
	m := newTestModel()
	m = typeInto(m, "user@example.com")

	m, cmd := press(m, "enter")

	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.focus, "enter on a non-final field moves focus")
}

func TestLoginDispatchesWhenValid(t *testing.T) {
	m := newTestModel()
	m = typeInto(m, "user@example.com")
	m, _ = press(m, "tab")
	m = typeInto(m, "Password1!")

	m, cmd := press(m, "enter")

	require.NotNil(t, cmd)
	assert.True(t, m.busy)
}

func TestSignInSuccessEmitsSignedIn(t *testing.T) {
	m := newTestModel()
	session := auth.NewSession("u1", "user@example.com", "token", 3600)

	m, cmd := m.Update(SignInResultMsg{Email: "user@example.com", Session: session})

	assert.False(t, m.busy)
	require.NotNil(t, cmd)
	msg := cmd()
	signedIn, ok := msg.(SignedInMsg)
	require.True(t, ok, "expected SignedInMsg, got %T", msg)
	assert.Same(t, session, signedIn.Session)
}

func TestSignInUnconfirmedRedirectsToVerify(t *testing.T) {
	m := newTestModel()
	err := &auth.Error{Type: auth.ErrTypeUserNotConfirmed, Message: "email not verified"}

	m, cmd := m.Update(SignInResultMsg{Email: "user@example.com", Err: err})

	assert.Nil(t, cmd)
	assert.Equal(t, ScreenVerify, m.Screen())
	assert.Equal(t, "user@example.com", m.email)
}

func TestSignInFailureShowsUserMessage(t *testing.T) {
	m := newTestModel()
	err := &auth.Error{Type: auth.ErrTypeNotAuthorized, Message: "nope"}

	m, _ = m.Update(SignInResultMsg{Email: "user@example.com", Err: err})

	assert.Equal(t, ScreenLogin, m.Screen())
	assert.Equal(t, auth.ErrTypeNotAuthorized.UserMessage(), m.errText)
}

func TestSignUpFlowMovesToVerify(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Equal(t, ScreenSignUp, m.Screen())

	m, _ = m.Update(SignUpResultMsg{Email: "new@example.com"})

	assert.Equal(t, ScreenVerify, m.Screen())
	assert.Equal(t, "new@example.com", m.email)
	assert.NotEmpty(t, m.infoText)
}

func TestSignUpPasswordMismatch(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = typeInto(m, "Ada Lovelace")
	m, _ = press(m, "tab")
	m = typeInto(m, "ada@example.com")
	m, _ = press(m, "tab")
	m = typeInto(m, "Password1!")
	m, _ = press(m, "tab")
	m = typeInto(m, "Different1!")

	m, cmd := press(m, "enter")

	assert.Nil(t, cmd)
	assert.Contains(t, m.errText, "match")
}

func TestVerifyRejectsBadCode(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(SignUpResultMsg{Email: "new@example.com"})
	require.Equal(t, ScreenVerify, m.Screen())
	m = typeInto(m, "12ab56")

	m, cmd := press(m, "enter")

	assert.Nil(t, cmd)
	assert.NotEmpty(t, m.errText)
}

func TestVerifySuccessReturnsToLogin(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(SignUpResultMsg{Email: "new@example.com"})

	m, _ = m.Update(VerifyResultMsg{Email: "new@example.com"})

	assert.Equal(t, ScreenLogin, m.Screen())
	assert.NotEmpty(t, m.infoText)
}

func TestForgotFlowMovesToReset(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	require.Equal(t, ScreenForgot, m.Screen())

	m, _ = m.Update(ForgotResultMsg{Email: "user@example.com"})

	assert.Equal(t, ScreenReset, m.Screen())
	assert.Equal(t, "user@example.com", m.email)
}

func TestResetSuccessReturnsToLogin(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(ForgotResultMsg{Email: "user@example.com"})

	m, _ = m.Update(ResetResultMsg{})

	assert.Equal(t, ScreenLogin, m.Screen())
}

func TestEscReturnsToLogin(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Equal(t, ScreenSignUp, m.Screen())

	m, _ = press(m, "esc")

	assert.Equal(t, ScreenLogin, m.Screen())
}

func TestKeysIgnoredWhileBusy(t *testing.T) {
	m := newTestModel()
	m.busy = true

	before := m.value(0)
	m = typeInto(m, "x")

	assert.Equal(t, before, m.value(0), "input must be frozen during a request")
}

func TestStrengthMeter(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Empty(t, m.strengthMeter(""))
	assert.Contains(t, m.strengthMeter("abc"), "weak")
	assert.Contains(t, m.strengthMeter("Password1!"), "strong")
}
