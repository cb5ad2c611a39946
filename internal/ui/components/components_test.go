// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/eleknowledge/eleknowledge-tui/internal/model"
	"github.com/eleknowledge/eleknowledge-tui/internal/ui/styles"
)

func TestToastManager_AddAndExpire(t *testing.T) {
	m := NewToastManager()

	id := m.AddError("boom")
	if !m.HasToasts() {
		t.Fatal("expected a toast after AddError")
	}

	toasts := m.GetToasts()
	if len(toasts) != 1 || toasts[0].Kind != ToastKindError {
		t.Fatalf("unexpected toasts: %+v", toasts)
	}

	m.RemoveToast(id)
	if m.HasToasts() {
		t.Error("toast should be removed")
	}
}

func TestToastManager_TickExpiresOldToasts(t *testing.T) {
	m := NewToastManager()
	toast := NewStatusToast("done")
	toast.CreatedAt = time.Now().Add(-time.Minute)
	m.AddToast(toast)

	remaining := m.TickToasts()
	if len(remaining) != 0 {
		t.Errorf("expected expired toast to be dropped, got %d", len(remaining))
	}
}

func TestToastManager_MaxStack(t *testing.T) {
	m := NewToastManager()
	for i := 0; i < 10; i++ {
		m.AddStatus("msg")
	}
	if got := len(m.GetToasts()); got != 5 {
		t.Errorf("stack should cap at 5, got %d", got)
	}
}

func TestSessionList_Cursor(t *testing.T) {
	l := SessionList{Sessions: []model.Session{{SessionID: "a"}, {SessionID: "b"}}}

	l.MoveCursor(1)
	if l.CursorSession().SessionID != "b" {
		t.Errorf("cursor session = %v", l.CursorSession())
	}

	l.MoveCursor(5)
	if l.Cursor != 1 {
		t.Errorf("cursor should clamp to last row, got %d", l.Cursor)
	}

	l.MoveCursor(-5)
	if l.Cursor != 0 {
		t.Errorf("cursor should clamp to first row, got %d", l.Cursor)
	}

	l.Sessions = l.Sessions[:1]
	l.Cursor = 1
	l.ClampCursor()
	if l.Cursor != 0 {
		t.Errorf("cursor should clamp after shrink, got %d", l.Cursor)
	}
}

func TestRenderSources(t *testing.T) {
	theme := styles.NewThemeWithBackground(true)
	msg := &model.Message{
		Role:      model.RoleAssistant,
		Content:   "answer",
		Citations: []string{"manual.pdf", "extra-note"},
		SourceDocuments: []model.SourceDocument{
			{DocumentName: "manual.pdf", SourceURI: "s3://b/manual.pdf", Relevance: 0.8765},
		},
	}

	out := RenderSources(msg, theme, 80)
	if !strings.Contains(out, "manual.pdf") {
		t.Error("document name missing")
	}
	if !strings.Contains(out, "(0.88)") {
		t.Errorf("relevance should render to two decimals: %q", out)
	}
	if !strings.Contains(out, "extra-note") {
		t.Error("citation without a document entry should still render")
	}
	if strings.Count(out, "manual.pdf") != 2 {
		// Once as the document name, once inside the URI; not a third
		// time as a duplicate citation.
		t.Errorf("citation duplicated with document entry: %q", out)
	}
}

func TestRenderFeedback_GatedOnReveal(t *testing.T) {
	theme := styles.NewThemeWithBackground(true)
	msg := &model.Message{Role: model.RoleAssistant, Content: "answer"}

	if out := RenderFeedback(msg, theme, false); out != "" {
		t.Errorf("feedback controls must stay hidden until fully revealed, got %q", out)
	}
	if out := RenderFeedback(msg, theme, true); out == "" {
		t.Error("feedback hint should render once revealed")
	}

	msg.Feedback = model.FeedbackGood
	if out := RenderFeedback(msg, theme, true); !strings.Contains(out, "helpful") {
		t.Errorf("rated message should show rating, got %q", out)
	}

	user := &model.Message{Role: model.RoleUser, Content: "q"}
	if out := RenderFeedback(user, theme, true); out != "" {
		t.Error("user messages never show feedback controls")
	}
}
