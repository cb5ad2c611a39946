// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the TUI.
//
// This file renders the screen: sidebar, transcript viewport, filter
// line, input box, and status bar, with overlays for delete
// confirmation, the filter editor, and toasts.
package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/eleknowledge/eleknowledge-tui/internal/model"
	"github.com/eleknowledge/eleknowledge-tui/internal/ui/components"
	"github.com/eleknowledge/eleknowledge-tui/internal/ui/styles"
)

// =============================================================================
// LAYOUT
// =============================================================================

// sidebarWidth returns the sidebar's column width, 0 when hidden.
func (m *Model) sidebarWidth() int {
	if m.theme.GetLayoutMode() == styles.LayoutNarrow {
		return 0
	}
	w := m.width / 4
	if w < 24 {
		w = 24
	}
	if w > 40 {
		w = 40
	}
	return w
}

// layout recomputes pane geometry after a resize.
func (m *Model) layout() {
	// header(1) + filter line(1) + input(3) + status(1)
	chromeLines := 6
	paneWidth := m.width - m.sidebarWidth()
	if paneWidth < 20 {
		paneWidth = 20
	}

	if m.viewport.Width == 0 {
		m.viewport = viewport.New(paneWidth-2, m.height-chromeLines)
	} else {
		m.viewport.Width = paneWidth - 2
		m.viewport.Height = m.height - chromeLines
	}
	m.input.Width = paneWidth - 6
	m.sidebar.Width = m.sidebarWidth()
	m.sidebar.Height = m.height - 2
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	pane := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderFilterLine(),
		m.renderInput(),
	)

	var screen string
	if w := m.sidebarWidth(); w > 0 {
		screen = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.Render(m.theme), pane)
	} else {
		screen = pane
	}

	screen = lipgloss.JoinVertical(lipgloss.Left, screen, m.renderStatusBar())

	if m.confirmDelete != "" {
		screen = m.overlay(screen, m.renderDeleteConfirm())
	}
	if m.focus == focusFilters {
		screen = m.overlay(screen, m.renderFilterEditor())
	}
	if m.toasts.HasToasts() {
		stack := components.RenderToastStack(m.toasts.GetToasts(), m.width, 0)
		screen = lipgloss.JoinVertical(lipgloss.Right, screen, stack)
	}
	return screen
}

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("EleKnowledge")
	sub := ""
	if m.activeID != "" {
		if i := model.FindSession(m.sidebar.Sessions, m.activeID); i >= 0 {
			sub = m.theme.HeaderSubtitle.Render("  " + m.sidebar.Sessions[i].Title)
		}
	} else if m.conv != nil && !m.conv.IsEmpty() {
		sub = m.theme.HeaderSubtitle.Render("  " + m.conv.ProvisionalTitle())
	}
	return m.theme.Header.Width(m.width - m.sidebarWidth()).Render(title + sub)
}

func (m Model) renderFilterLine() string {
	if m.filters.IsZero() {
		return m.theme.FilterPanel.Render(m.theme.FilterLabel.Render("filters: none (ctrl+t to set)"))
	}
	return m.theme.FilterPanel.Render(
		m.theme.FilterLabel.Render("filters: ") + m.theme.FilterActive.Render(m.filters.Summary()),
	)
}

func (m Model) renderInput() string {
	var status string
	switch m.state {
	case StateAwaitingReply:
		status = m.spinner.View() + m.theme.ThinkingText.Render(" thinking...")
	case StateLoadingHistory:
		status = m.spinner.View() + m.theme.ThinkingText.Render(" loading conversation...")
	}
	if status != "" {
		return lipgloss.JoinVertical(lipgloss.Left, status, m.theme.InputContainer.Render(m.input.View()))
	}
	return m.theme.InputContainer.Render(m.input.View())
}

func (m Model) renderStatusBar() string {
	var hints []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, m.theme.ShortcutKey.Render(h.Key)+" "+m.theme.ShortcutDesc.Render(h.Desc))
	}
	bar := components.StatusBar{
		State:   m.state.String(),
		User:    m.userEmail,
		Filters: m.filters.Summary(),
		Hints:   strings.Join(hints, "  "),
		Width:   m.width,
	}
	return bar.Render(m.theme)
}

func (m Model) renderDeleteConfirm() string {
	title := m.theme.ConfirmTitle.Render("Delete this conversation?")
	body := "This cannot be undone."
	if i := model.FindSession(m.sidebar.Sessions, m.confirmDelete); i >= 0 && m.sidebar.Sessions[i].Title != "" {
		body = fmt.Sprintf("%q will be permanently removed.", m.sidebar.Sessions[i].Title)
	}
	buttons := m.theme.ConfirmButtonActive.Render("[y] delete") + "  " + m.theme.ConfirmButton.Render("[n] keep")
	return m.theme.ConfirmBox.Render(lipgloss.JoinVertical(lipgloss.Center, title, body, "", buttons))
}

func (m Model) renderFilterEditor() string {
	labels := [3]string{"Document type", "Product", "Model"}
	var rows []string
	rows = append(rows, m.theme.ConfirmTitle.Render("Query Filters"), "")
	for i, in := range m.filterInputs {
		rows = append(rows, m.theme.FormLabel.Render(labels[i]), in.View())
	}
	rows = append(rows, "", m.theme.FormHelp.Render("enter apply · esc cancel · blank field = no filter"))
	return m.theme.ConfirmBox.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// overlay centers a box over the screen.
func (m Model) overlay(_, box string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// syncViewport rebuilds the transcript content. follow pins the view
// to the bottom, used whenever new content appends or reveals.
func (m *Model) syncViewport(follow bool) {
	if m.viewport.Width == 0 {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	if follow {
		m.viewport.GotoBottom()
	}
}

// renderTranscript renders the full conversation.
func (m *Model) renderTranscript() string {
	if m.conv == nil || m.conv.IsEmpty() {
		return m.emptyPane()
	}

	width := m.viewport.Width
	var parts []string
	for _, msg := range m.conv.Messages {
		parts = append(parts, m.renderMessage(msg, width))
	}
	return strings.Join(parts, "\n\n")
}

func (m *Model) emptyPane() string {
	lines := []string{
		"",
		m.theme.HeaderSubtitle.Render("Ask anything about your electrical equipment."),
		"",
		m.theme.MessageMeta.Render("Answers cite the source documents they came from."),
		m.theme.MessageMeta.Render("Set documentType/product/model filters with ctrl+t."),
	}
	return strings.Join(lines, "\n")
}

// renderMessage renders one transcript entry: bubble, metadata, and
// for assistant messages the sources and rating line once revealed.
func (m *Model) renderMessage(msg *model.Message, width int) string {
	bubbleWidth := width * 3 / 4
	if bubbleWidth < 20 {
		bubbleWidth = width
	}

	if msg.IsUser() {
		bubble := m.theme.UserBubble.Width(bubbleWidth).Render(msg.Content)
		meta := m.theme.MessageMeta.Render(msg.Timestamp.Format("15:04"))
		if tag := msg.SendState.String(); tag != "" {
			meta += " " + m.theme.SendStateTag.Render(tag)
		}
		block := lipgloss.JoinVertical(lipgloss.Right, bubble, meta)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
	}

	revealed := m.isRevealed(msg)
	content := msg.Content
	if !revealed {
		content = m.reveal.Visible()
	}

	// Markdown rendering is reserved for settled content; the
	// animation shows raw text so the prefix never reflows.
	if revealed {
		if rendered, err := m.renderMarkdown(content, bubbleWidth-2); err == nil {
			content = rendered
		}
	}

	bubble := m.theme.AssistantBubble.Width(bubbleWidth).Render(content)
	rows := []string{bubble}

	if revealed {
		if sources := components.RenderSources(msg, m.theme, bubbleWidth); sources != "" {
			rows = append(rows, sources)
		}
	}
	if fb := components.RenderFeedback(msg, m.theme, revealed); fb != "" {
		if m.isRateTarget(msg) {
			fb = m.theme.FilterActive.Render("▸ ") + fb
		}
		rows = append(rows, fb)
	}
	rows = append(rows, m.theme.MessageMeta.Render(msg.Timestamp.Format("15:04")))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderMarkdown renders assistant markdown at the given width. The
// renderer is rebuilt when the width changes.
func (m *Model) renderMarkdown(content string, width int) (string, error) {
	if width < 10 {
		width = 10
	}
	if m.mdRenderer == nil || m.mdWidth != width {
		style := "light"
		if m.theme.IsDark {
			style = "dark"
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
			glamour.WithEmoji(),
		)
		if err != nil {
			return "", err
		}
		m.mdRenderer = r
		m.mdWidth = width
	}
	out, err := m.mdRenderer.Render(content)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}
