// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

package authview

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/eleknowledge/eleknowledge-tui/internal/auth"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case SignUpResultMsg:
		m.busy = false
		if msg.Err != nil {
			m.errText = userMessage(msg.Err)
			return m, nil
		}
		m.email = msg.Email
		m.setScreen(ScreenVerify)
		m.infoText = "Account created. Check your email for a verification code."
		return m, nil

	case VerifyResultMsg:
		m.busy = false
		if msg.Err != nil {
			m.errText = userMessage(msg.Err)
			return m, nil
		}
		m.email = msg.Email
		m.setScreen(ScreenLogin)
		m.infoText = "Email verified. Sign in to continue."
		return m, nil

	case ResendResultMsg:
		m.busy = false
		if msg.Err != nil {
			m.errText = userMessage(msg.Err)
			return m, nil
		}
		m.infoText = "A new code is on its way."
		return m, nil

	case SignInResultMsg:
		m.busy = false
		if msg.Err != nil {
			// An unconfirmed account is recoverable: send the user to
			// the verify screen instead of showing a dead end.
			var authErr *auth.Error
			if errors.As(msg.Err, &authErr) && authErr.Type == auth.ErrTypeUserNotConfirmed {
				m.email = msg.Email
				m.setScreen(ScreenVerify)
				m.infoText = "Your email is not verified yet. Enter the code we sent you."
				return m, nil
			}
			m.errText = userMessage(msg.Err)
			return m, nil
		}
		session := msg.Session
		return m, func() tea.Msg { return SignedInMsg{Session: session} }

	case ForgotResultMsg:
		m.busy = false
		if msg.Err != nil {
			m.errText = userMessage(msg.Err)
			return m, nil
		}
		m.email = msg.Email
		m.setScreen(ScreenReset)
		m.infoText = "If that account exists, a reset code was sent."
		return m, nil

	case ResetResultMsg:
		m.busy = false
		if msg.Err != nil {
			m.errText = userMessage(msg.Err)
			return m, nil
		}
		m.setScreen(ScreenLogin)
		m.infoText = "Password updated. Sign in with your new password."
		return m, nil
	}

	return m, nil
}

// handleKey routes a keypress: navigation first, then screen
// shortcuts, then the focused text input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.busy {
		// Only quit is honored while a request is in flight.
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab", "down":
		m.setFocus(m.focus + 1)
		return m, nil

	case "shift+tab", "up":
		m.setFocus(m.focus - 1)
		return m, nil

	case "enter":
		if m.focus < len(m.fields)-1 {
			m.setFocus(m.focus + 1)
			return m, nil
		}
		return m.submit()

	case "esc":
		if m.screen != ScreenLogin {
			m.setScreen(ScreenLogin)
			m.infoText = ""
		}
		return m, nil

	case "ctrl+s":
		if m.screen == ScreenLogin {
			m.setScreen(ScreenSignUp)
			m.infoText = ""
		}
		return m, nil

	case "ctrl+f":
		if m.screen == ScreenLogin {
			m.setScreen(ScreenForgot)
			m.infoText = ""
		}
		return m, nil

	case "ctrl+r":
		if m.screen == ScreenVerify {
			return m.resend()
		}
	}

	var cmd tea.Cmd
	m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
	return m, cmd
}

// =============================================================================
// SUBMISSION
// =============================================================================

// submit validates the current form and dispatches the backend call.
// Validation failures stay inline and never leave the screen.
func (m Model) submit() (Model, tea.Cmd) {
	m.errText = ""
	m.infoText = ""

	switch m.screen {
	case ScreenLogin:
		email := strings.TrimSpace(m.value(0))
		password := m.value(1)
		if err := auth.ValidateEmail(email); err != nil {
			m.errText = err.Error()
			return m, nil
		}
		if password == "" {
			m.errText = "password is required"
			return m, nil
		}
		return m.dispatch(func(ctx context.Context) tea.Msg {
			session, err := m.client.SignIn(ctx, email, password)
			return SignInResultMsg{Email: email, Session: session, Err: err}
		})

	case ScreenSignUp:
		name := strings.TrimSpace(m.value(0))
		email := strings.TrimSpace(m.value(1))
		password := m.value(2)
		confirm := m.value(3)
		if name == "" {
			m.errText = "name is required"
			return m, nil
		}
		if err := auth.ValidateEmail(email); err != nil {
			m.errText = err.Error()
			return m, nil
		}
		if err := auth.ValidatePassword(password); err != nil {
			m.errText = err.Error()
			return m, nil
		}
		if password != confirm {
			m.errText = "passwords do not match"
			return m, nil
		}
		return m.dispatch(func(ctx context.Context) tea.Msg {
			_, err := m.client.SignUp(ctx, email, password, name)
			return SignUpResultMsg{Email: email, Err: err}
		})

	case ScreenVerify:
		email := m.email
		code := strings.TrimSpace(m.value(0))
		if err := auth.ValidateCode(code); err != nil {
			m.errText = err.Error()
			return m, nil
		}
		return m.dispatch(func(ctx context.Context) tea.Msg {
			return VerifyResultMsg{Email: email, Err: m.client.ConfirmSignUp(ctx, email, code)}
		})

	case ScreenForgot:
		email := strings.TrimSpace(m.value(0))
		if err := auth.ValidateEmail(email); err != nil {
			m.errText = err.Error()
			return m, nil
		}
		return m.dispatch(func(ctx context.Context) tea.Msg {
			return ForgotResultMsg{Email: email, Err: m.client.ForgotPassword(ctx, email)}
		})

	case ScreenReset:
		email := m.email
		code := strings.TrimSpace(m.value(0))
		password := m.value(1)
		confirm := m.value(2)
		if err := auth.ValidateCode(code); err != nil {
			m.errText = err.Error()
			return m, nil
		}
		if err := auth.ValidatePassword(password); err != nil {
			m.errText = err.Error()
			return m, nil
		}
		if password != confirm {
			m.errText = "passwords do not match"
			return m, nil
		}
		return m.dispatch(func(ctx context.Context) tea.Msg {
			return ResetResultMsg{Err: m.client.ConfirmForgotPassword(ctx, email, code, password)}
		})
	}

	return m, nil
}

// resend re-requests the verification code for the pending email.
func (m Model) resend() (Model, tea.Cmd) {
	email := m.email
	m.errText = ""
	return m.dispatch(func(ctx context.Context) tea.Msg {
		return ResendResultMsg{Err: m.client.ResendCode(ctx, email)}
	})
}

// dispatch marks the model busy and runs the backend call off the
// update loop.
func (m Model) dispatch(call func(context.Context) tea.Msg) (Model, tea.Cmd) {
	m.busy = true
	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return call(context.Background()) },
	)
}

// userMessage maps a backend error to display text. auth.Error types
// carry their own wording; anything else falls back to Error().
func userMessage(err error) string {
	var authErr *auth.Error
	if errors.As(err, &authErr) {
		return authErr.Type.UserMessage()
	}
	return err.Error()
}
