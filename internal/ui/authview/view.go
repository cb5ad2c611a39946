// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

package authview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/eleknowledge/eleknowledge-tui/internal/auth"
)

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.FormTitle.Render(m.screen.String()))
	b.WriteString("\n\n")

	for i, f := range m.fields {
		b.WriteString(m.theme.FormLabel.Render(f.label))
		b.WriteString("\n")
		b.WriteString(f.input.View())
		b.WriteString("\n")

		if f.secret && m.passwordFieldIndex() == i {
			if meter := m.strengthMeter(f.input.Value()); meter != "" {
				b.WriteString(meter)
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	if m.busy {
		b.WriteString(m.spinner.View())
		b.WriteString(m.theme.ThinkingText.Render(" working..."))
		b.WriteString("\n")
	} else if m.errText != "" {
		b.WriteString(m.theme.FormError.Render(m.errText))
		b.WriteString("\n")
	} else if m.infoText != "" {
		b.WriteString(m.theme.FormSuccess.Render(m.infoText))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.FormHelp.Render(m.hints()))

	box := m.theme.FormBox.Render(b.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

// passwordFieldIndex returns the index of the primary password field
// for screens that set a new password, or -1. Only that field gets a
// strength meter; confirmation fields do not.
func (m Model) passwordFieldIndex() int {
	switch m.screen {
	case ScreenSignUp:
		return 2
	case ScreenReset:
		return 1
	default:
		return -1
	}
}

// strengthMeter renders a four-segment strength bar for the password
// being typed. Empty input renders nothing.
func (m Model) strengthMeter(password string) string {
	if password == "" {
		return ""
	}
	score := auth.PasswordStrength(password)

	filled := strings.Repeat("▰", score)
	empty := strings.Repeat("▱", 4-score)

	label := "weak"
	style := m.theme.StrengthWeak
	if score >= 3 {
		label = "strong"
		style = m.theme.StrengthGood
	} else if score == 2 {
		label = "fair"
	}
	return style.Render(filled + empty + " " + label)
}

// hints returns the footer shortcut line for the current screen.
func (m Model) hints() string {
	switch m.screen {
	case ScreenLogin:
		return "enter sign in · ctrl+s create account · ctrl+f forgot password · ctrl+c quit"
	case ScreenSignUp:
		return "enter create account · esc back to sign in"
	case ScreenVerify:
		return "enter verify · ctrl+r resend code · esc back to sign in"
	case ScreenForgot:
		return "enter send reset code · esc back to sign in"
	case ScreenReset:
		return "enter set new password · esc back to sign in"
	default:
		return ""
	}
}
