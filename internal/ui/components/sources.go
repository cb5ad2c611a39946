// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/eleknowledge/eleknowledge-tui/internal/model"
	"github.com/eleknowledge/eleknowledge-tui/internal/ui/styles"
	"github.com/eleknowledge/eleknowledge-tui/internal/util"
)

// =============================================================================
// SOURCE DOCUMENT PANEL
// =============================================================================

// RenderSources renders the retrieval metadata under an assistant
// message: source documents with relevance scores, then bare citations
// not already covered by a document entry.
func RenderSources(msg *model.Message, theme *styles.Theme, width int) string {
	if !msg.HasSources() {
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.SourceTitle.Render("Sources"))
	b.WriteString("\n")

	seen := make(map[string]bool, len(msg.SourceDocuments))
	for _, doc := range msg.SourceDocuments {
		seen[doc.DocumentName] = true

		name := theme.SourceName.Render(util.TruncateWidth(doc.DocumentName, width-14))
		// Relevance is rendered to two decimals, matching the score
		// precision the backend reports.
		score := theme.SourceRelevance.Render(fmt.Sprintf("(%.2f)", doc.Relevance))
		b.WriteString(name + " " + score + "\n")

		if doc.SourceURI != "" {
			b.WriteString("  " + theme.SourceURI.Render(util.TruncateWidth(doc.SourceURI, width-6)) + "\n")
		}
		if tags := joinNonEmpty(" · ", doc.DocumentType, doc.Product, doc.Model); tags != "" {
			b.WriteString("  " + theme.SourceRelevance.Render(tags) + "\n")
		}
	}

	for _, c := range msg.Citations {
		if seen[c] {
			continue
		}
		b.WriteString(theme.CitationText.Render("• "+util.TruncateWidth(c, width-6)) + "\n")
	}

	return theme.SourcePanel.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

// RenderFeedback renders the rating indicator for an assistant message.
// revealed gates the controls: ratings only appear once the message is
// fully disclosed.
func RenderFeedback(msg *model.Message, theme *styles.Theme, revealed bool) string {
	if !msg.IsAssistant() || !revealed {
		return ""
	}
	switch msg.Feedback {
	case model.FeedbackGood:
		return theme.FeedbackGood.Render("👍 rated helpful")
	case model.FeedbackBad:
		return theme.FeedbackBad.Render("👎 rated unhelpful")
	default:
		return theme.FeedbackUnset.Render("rate: ctrl+g helpful / ctrl+b not helpful")
	}
}
