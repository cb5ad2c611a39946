// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eleknowledge/eleknowledge-tui/internal/api"
	"github.com/eleknowledge/eleknowledge-tui/internal/model"
	"github.com/eleknowledge/eleknowledge-tui/internal/ui/styles"
)

// =============================================================================
// FAKES
// =============================================================================

type feedbackCall struct {
	messageID string
	sessionID string
	feedback  model.Feedback
}

type fakeBackend struct {
	mu sync.Mutex

	sessions    []model.Session
	sessionsErr error

	messages    map[string][]*model.Message
	messagesErr error

	queryResp *api.QueryResponse
	queryErr  error

	deleteErr   error
	feedbackErr error

	queryCalls    int
	feedbackCalls []feedbackCall
	deleteCalls   []string
}

func (f *fakeBackend) ListSessions(_ context.Context, _ string) ([]model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessions, f.sessionsErr
}

func (f *fakeBackend) ListMessages(_ context.Context, sessionID string) ([]*model.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.messagesErr != nil {
		return nil, f.messagesErr
	}
	return f.messages[sessionID], nil
}

func (f *fakeBackend) DeleteSession(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls = append(f.deleteCalls, sessionID)
	return f.deleteErr
}

func (f *fakeBackend) SubmitFeedback(_ context.Context, messageID, sessionID string, fb model.Feedback) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feedbackCalls = append(f.feedbackCalls, feedbackCall{messageID, sessionID, fb})
	return f.feedbackErr
}

func (f *fakeBackend) SubmitQuery(_ context.Context, _ api.QueryRequest) (*api.QueryResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queryCalls++
	return f.queryResp, f.queryErr
}

// =============================================================================
// HELPERS
// =============================================================================

func newTestChat(backend *fakeBackend) Model {
	m := New(backend, nil, styles.NewThemeWithBackground(true), "user-1", "user@example.com")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

// sendQuery puts the model into AwaitingReply with an optimistic user
// message and returns its local ID.
func sendQuery(t *testing.T, m Model, query string) (Model, string) {
	t.Helper()
	m.input.SetValue(query)
	m, cmd := m.submit()
	require.NotNil(t, cmd, "a valid query must dispatch")
	require.Equal(t, StateAwaitingReply, m.State())
	userMsg := m.conv.LastMessage()
	require.NotNil(t, userMsg)
	return m, userMsg.ID
}

// =============================================================================
// SUBMISSION
// =============================================================================

func TestSubmitBlankIsNoOp(t *testing.T) {
	m := newTestChat(&fakeBackend{})

	m.input.SetValue("   ")
	m, cmd := m.submit()

	assert.Nil(t, cmd)
	assert.Equal(t, StateEmpty, m.State())
	assert.True(t, m.conv.IsEmpty())
}

func TestSubmitAppendsOptimisticUserMessage(t *testing.T) {
	m := newTestChat(&fakeBackend{})

	m, _ = sendQuery(t, m, "why does the breaker trip?")

	require.Equal(t, 1, m.conv.Len())
	userMsg := m.conv.LastMessage()
	assert.True(t, userMsg.IsUser())
	assert.Equal(t, "why does the breaker trip?", userMsg.Content)
	assert.Equal(t, model.SendPending, userMsg.SendState)
	assert.Empty(t, m.input.Value(), "input clears on send")
}

func TestSingleQueryInFlight(t *testing.T) {
	m := newTestChat(&fakeBackend{})
	m, _ = sendQuery(t, m, "first")

	m.input.SetValue("second")
	m, cmd := m.submit()

	assert.Nil(t, cmd, "second send while waiting must be ignored")
	assert.Equal(t, 1, m.conv.Len())
	assert.Equal(t, "second", m.input.Value(), "ignored input is not discarded")
}

func TestQuerySuccessAppendsAnswerAndAdoptsSession(t *testing.T) {
	m := newTestChat(&fakeBackend{})
	m, localID := sendQuery(t, m, "hi")

	m, _ = m.Update(QueryResultMsg{
		LocalUserMsgID: localID,
		Resp: &api.QueryResponse{
			SessionID:     "s1",
			UserMessageID: "u1",
			AIMessageID:   "m1",
			Content:       "hello",
		},
	})

	assert.Equal(t, "s1", m.ActiveSessionID(), "new conversation adopts the server session")
	require.Equal(t, 2, m.conv.Len())

	userMsg := m.conv.Messages[0]
	assert.Equal(t, "u1", userMsg.ID, "optimistic entry takes the server's ID")
	assert.Equal(t, model.SendConfirmed, userMsg.SendState)

	answer := m.conv.Messages[1]
	assert.Equal(t, "m1", answer.ID)
	assert.Equal(t, "hello", answer.Content)

	assert.Equal(t, StateRevealing, m.State())
	assert.False(t, m.isRevealed(answer), "the answer discloses incrementally")
}

func TestQueryFailureKeepsQuestionFlagged(t *testing.T) {
	m := newTestChat(&fakeBackend{})
	m, localID := sendQuery(t, m, "hi")

	m, _ = m.Update(QueryResultMsg{
		LocalUserMsgID: localID,
		Err:            &api.ClientError{Type: api.ErrTypeConnection, Message: "down"},
	})

	require.Equal(t, 1, m.conv.Len(), "the question is never rolled back")
	assert.Equal(t, model.SendFailed, m.conv.Messages[0].SendState)
	assert.Equal(t, StateReady, m.State())
	assert.True(t, m.toasts.HasToasts())
}

func TestQueryResultAfterNavigationIsDropped(t *testing.T) {
	backend := &fakeBackend{messages: map[string][]*model.Message{}}
	m := newTestChat(backend)
	m, localID := sendQuery(t, m, "hi")

	m, _ = m.selectSession("other")
	m, _ = m.Update(QueryResultMsg{
		LocalUserMsgID: localID,
		Resp:           &api.QueryResponse{SessionID: "s1", AIMessageID: "m1", Content: "hello"},
	})

	assert.Equal(t, "other", m.ActiveSessionID())
	assert.True(t, m.conv.IsEmpty(), "an answer for an abandoned exchange never lands")
}

// =============================================================================
// REVEAL
// =============================================================================

func TestRevealTicksToCompletion(t *testing.T) {
	m := newTestChat(&fakeBackend{})
	m, localID := sendQuery(t, m, "hi")
	m, _ = m.Update(QueryResultMsg{
		LocalUserMsgID: localID,
		Resp:           &api.QueryResponse{SessionID: "s1", AIMessageID: "m1", Content: "hello world"},
	})
	require.Equal(t, StateRevealing, m.State())

	for i := 0; i < 100 && m.State() == StateRevealing; i++ {
		m, _ = m.Update(RevealTickMsg{MessageID: "m1"})
	}

	assert.Equal(t, StateReady, m.State())
	assert.True(t, m.isRevealed(m.conv.Messages[1]))
}

func TestRevealTickForWrongMessageIgnored(t *testing.T) {
	m := newTestChat(&fakeBackend{})
	m, localID := sendQuery(t, m, "hi")
	m, _ = m.Update(QueryResultMsg{
		LocalUserMsgID: localID,
		Resp:           &api.QueryResponse{SessionID: "s1", AIMessageID: "m1", Content: "hello world"},
	})
	shown := m.reveal.Shown()

	m, _ = m.Update(RevealTickMsg{MessageID: "someone-else"})

	assert.Equal(t, shown, m.reveal.Shown())
}

func TestSubmitDuringRevealForceCompletes(t *testing.T) {
	m := newTestChat(&fakeBackend{})
	m, localID := sendQuery(t, m, "hi")
	m, _ = m.Update(QueryResultMsg{
		LocalUserMsgID: localID,
		Resp:           &api.QueryResponse{SessionID: "s1", AIMessageID: "m1", Content: "a long answer that reveals over time"},
	})
	require.Equal(t, StateRevealing, m.State())

	m.input.SetValue("next question")
	m, cmd := m.submit()

	require.NotNil(t, cmd)
	assert.Equal(t, StateAwaitingReply, m.State())
	assert.True(t, m.reveal.Done(), "the previous answer snaps to fully shown")
	assert.Equal(t, 3, m.conv.Len())
}

func TestSelectSessionCancelsReveal(t *testing.T) {
	m := newTestChat(&fakeBackend{messages: map[string][]*model.Message{}})
	m, localID := sendQuery(t, m, "hi")
	m, _ = m.Update(QueryResultMsg{
		LocalUserMsgID: localID,
		Resp:           &api.QueryResponse{SessionID: "s1", AIMessageID: "m1", Content: "hello world"},
	})
	require.Equal(t, StateRevealing, m.State())

	m, _ = m.selectSession("s2")

	assert.Nil(t, m.reveal)
	assert.Equal(t, StateLoadingHistory, m.State())
}

// =============================================================================
// HISTORY
// =============================================================================

func TestStaleHistoryFetchDiscarded(t *testing.T) {
	m := newTestChat(&fakeBackend{messages: map[string][]*model.Message{}})

	m, _ = m.selectSession("a")
	genA := m.histGen
	m, _ = m.selectSession("b")
	genB := m.histGen

	// The slow fetch for "a" lands after the user moved to "b".
	m, _ = m.Update(HistoryLoadedMsg{
		SessionID: "a",
		Gen:       genA,
		Messages:  []*model.Message{model.NewUserMessage("from a")},
	})
	assert.True(t, m.conv.IsEmpty(), "history for an abandoned selection is dropped")
	assert.Equal(t, StateLoadingHistory, m.State())

	m, _ = m.Update(HistoryLoadedMsg{
		SessionID: "b",
		Gen:       genB,
		Messages:  []*model.Message{model.NewUserMessage("from b")},
	})
	require.Equal(t, 1, m.conv.Len())
	assert.Equal(t, "from b", m.conv.Messages[0].Content)
	assert.Equal(t, StateReady, m.State())
}

func TestHistoryArrivesFullyRevealed(t *testing.T) {
	m := newTestChat(&fakeBackend{})
	m, _ = m.selectSession("a")

	answer := model.NewAssistantMessage("m9", "an old answer", nil, nil)
	m, _ = m.Update(HistoryLoadedMsg{
		SessionID: "a",
		Gen:       m.histGen,
		Messages:  []*model.Message{model.NewUserMessage("q"), answer},
	})

	assert.Equal(t, StateReady, m.State())
	for _, msg := range m.conv.Messages {
		assert.True(t, m.isRevealed(msg), "loaded history never animates")
		assert.Equal(t, model.SendConfirmed, msg.SendState)
	}
}

func TestCachedHistoryIgnoredAfterServerCopy(t *testing.T) {
	m := newTestChat(&fakeBackend{})
	m, _ = m.selectSession("a")
	gen := m.histGen

	m, _ = m.Update(HistoryLoadedMsg{
		SessionID: "a",
		Gen:       gen,
		Messages:  []*model.Message{model.NewUserMessage("fresh")},
	})
	m = m.handleCachedHistory(CachedHistoryMsg{
		SessionID: "a",
		Gen:       gen,
		Messages:  []*model.Message{model.NewUserMessage("stale cached")},
	})

	require.Equal(t, 1, m.conv.Len())
	assert.Equal(t, "fresh", m.conv.Messages[0].Content)
}

func TestHistoryErrorRestoresPreviousSession(t *testing.T) {
	m := newTestChat(&fakeBackend{})
	m, _ = m.selectSession("a")
	m, _ = m.Update(HistoryLoadedMsg{
		SessionID: "a",
		Gen:       m.histGen,
		Messages: []*model.Message{
			model.NewUserMessage("q"),
			model.NewAssistantMessage("m1", "an answer", nil, nil),
		},
	})
	require.Equal(t, StateReady, m.State())

	// Selecting "b" must not stick when its transcript never arrives.
	m, _ = m.selectSession("b")
	m, _ = m.Update(HistoryLoadedMsg{
		SessionID: "b",
		Gen:       m.histGen,
		Err:       &api.ClientError{Type: api.ErrTypeConnection, Message: "down"},
	})

	assert.Equal(t, "a", m.ActiveSessionID(), "the pane falls back to the session the user was on")
	assert.Equal(t, "a", m.sidebar.ActiveID)
	require.Equal(t, 2, m.conv.Len(), "the previous transcript is intact")
	assert.Equal(t, StateReady, m.State())
	assert.True(t, m.toasts.HasToasts())
}

func TestHistoryErrorFromEmptyPaneStaysEmpty(t *testing.T) {
	m := newTestChat(&fakeBackend{})
	m, _ = m.selectSession("a")

	m, _ = m.Update(HistoryLoadedMsg{
		SessionID: "a",
		Gen:       m.histGen,
		Err:       &api.ClientError{Type: api.ErrTypeConnection, Message: "down"},
	})

	assert.Equal(t, StateEmpty, m.State())
	assert.Empty(t, m.ActiveSessionID())
	assert.True(t, m.conv.IsEmpty())
	assert.True(t, m.toasts.HasToasts())
}

func TestHistoryErrorAfterCachedPaintKeepsCachedView(t *testing.T) {
	m := newTestChat(&fakeBackend{})
	m, _ = m.selectSession("a")
	m = m.handleCachedHistory(CachedHistoryMsg{
		SessionID: "a",
		Gen:       m.histGen,
		Messages:  []*model.Message{model.NewUserMessage("cached q")},
	})
	require.Equal(t, StateReady, m.State())

	m, _ = m.Update(HistoryLoadedMsg{
		SessionID: "a",
		Gen:       m.histGen,
		Err:       &api.ClientError{Type: api.ErrTypeConnection, Message: "down"},
	})

	assert.Equal(t, "a", m.ActiveSessionID(), "a cache-painted view survives a failed refresh")
	require.Equal(t, 1, m.conv.Len())
	assert.Equal(t, "cached q", m.conv.Messages[0].Content)
	assert.True(t, m.toasts.HasToasts())
}

// =============================================================================
// DELETE
// =============================================================================

func TestDeleteRequiresConfirmation(t *testing.T) {
	backend := &fakeBackend{}
	m := newTestChat(backend)
	m.sidebar.Sessions = []model.Session{{SessionID: "s1", Title: "one"}}
	m = m.toggleFocus() // sidebar

	m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	assert.Nil(t, cmd)
	assert.Equal(t, "s1", m.confirmDelete)

	// "n" keeps the session.
	m, cmd = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	assert.Nil(t, cmd)
	assert.Empty(t, m.confirmDelete)
	assert.Empty(t, backend.deleteCalls)
}

func TestDeleteConfirmedDispatchesButKeepsListUntilServerOK(t *testing.T) {
	backend := &fakeBackend{}
	m := newTestChat(backend)
	m.sidebar.Sessions = []model.Session{{SessionID: "s1", Title: "one"}}
	m = m.toggleFocus()

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})

	require.NotNil(t, cmd)
	assert.Len(t, m.sidebar.Sessions, 1, "no optimistic removal")
}

func TestDeleteFailureKeepsSessionListed(t *testing.T) {
	m := newTestChat(&fakeBackend{})
	m.sidebar.Sessions = []model.Session{{SessionID: "s1", Title: "one"}}

	m, _ = m.Update(SessionDeletedMsg{
		SessionID: "s1",
		Err:       &api.ClientError{Type: api.ErrTypeBackend, Message: "nope"},
	})

	assert.Len(t, m.sidebar.Sessions, 1)
	assert.True(t, m.toasts.HasToasts())
}

func TestDeleteActiveSessionClearsPane(t *testing.T) {
	m := newTestChat(&fakeBackend{messages: map[string][]*model.Message{}})
	m.sidebar.Sessions = []model.Session{{SessionID: "s1", Title: "one"}}
	m, _ = m.selectSession("s1")

	m, _ = m.Update(SessionDeletedMsg{SessionID: "s1"})

	assert.Equal(t, StateEmpty, m.State())
	assert.Empty(t, m.ActiveSessionID())
	assert.Empty(t, m.sidebar.Sessions)
}

// =============================================================================
// FEEDBACK
// =============================================================================

func ratedModel(t *testing.T, backend *fakeBackend) Model {
	t.Helper()
	m := newTestChat(backend)
	m, localID := sendQuery(t, m, "hi")
	m, _ = m.Update(QueryResultMsg{
		LocalUserMsgID: localID,
		Resp:           &api.QueryResponse{SessionID: "s1", AIMessageID: "m1", Content: "ok"},
	})
	for i := 0; i < 100 && m.State() == StateRevealing; i++ {
		m, _ = m.Update(RevealTickMsg{MessageID: "m1"})
	}
	require.Equal(t, StateReady, m.State())
	return m
}

func TestRateAppliesOptimistically(t *testing.T) {
	backend := &fakeBackend{}
	m := ratedModel(t, backend)

	m, cmd := m.rate(model.FeedbackGood)

	require.NotNil(t, cmd)
	assert.Equal(t, model.FeedbackGood, m.conv.LastAssistantMessage().Feedback)

	cmd() // run the submission against the fake
	require.Len(t, backend.feedbackCalls, 1)
	assert.Equal(t, feedbackCall{"m1", "s1", model.FeedbackGood}, backend.feedbackCalls[0])
}

func TestRateSameValueTwiceIsIdempotent(t *testing.T) {
	backend := &fakeBackend{}
	m := ratedModel(t, backend)

	m, cmd := m.rate(model.FeedbackGood)
	require.NotNil(t, cmd)
	m, cmd = m.rate(model.FeedbackGood)

	assert.Nil(t, cmd, "repeating the same rating sends nothing")
}

func TestRateCanChange(t *testing.T) {
	backend := &fakeBackend{}
	m := ratedModel(t, backend)

	m, _ = m.rate(model.FeedbackGood)
	m, cmd := m.rate(model.FeedbackBad)

	require.NotNil(t, cmd)
	assert.Equal(t, model.FeedbackBad, m.conv.LastAssistantMessage().Feedback)
}

func TestRateBlockedWhileRevealing(t *testing.T) {
	m := newTestChat(&fakeBackend{})
	m, localID := sendQuery(t, m, "hi")
	m, _ = m.Update(QueryResultMsg{
		LocalUserMsgID: localID,
		Resp:           &api.QueryResponse{SessionID: "s1", AIMessageID: "m1", Content: "a slow answer"},
	})
	require.Equal(t, StateRevealing, m.State())

	m, cmd := m.rate(model.FeedbackGood)

	assert.Nil(t, cmd)
	assert.Equal(t, model.FeedbackNone, m.conv.LastAssistantMessage().Feedback)
}

// twoAnswerModel builds a settled conversation with answers m1 and m2.
func twoAnswerModel(t *testing.T, backend *fakeBackend) Model {
	t.Helper()
	m := ratedModel(t, backend) // first exchange, answer "m1"
	m, localID := sendQuery(t, m, "and another thing")
	m, _ = m.Update(QueryResultMsg{
		LocalUserMsgID: localID,
		Resp:           &api.QueryResponse{SessionID: "s1", AIMessageID: "m2", Content: "ok again"},
	})
	for i := 0; i < 100 && m.State() == StateRevealing; i++ {
		m, _ = m.Update(RevealTickMsg{MessageID: "m2"})
	}
	require.Equal(t, StateReady, m.State())
	return m
}

func TestRateEarlierAnswer(t *testing.T) {
	backend := &fakeBackend{}
	m := twoAnswerModel(t, backend)

	m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlUp})
	assert.Nil(t, cmd)
	m, cmd = m.rate(model.FeedbackGood)

	require.NotNil(t, cmd)
	first := m.conv.MessageByID("m1")
	require.NotNil(t, first)
	assert.Equal(t, model.FeedbackGood, first.Feedback)
	assert.Equal(t, model.FeedbackNone, m.conv.LastAssistantMessage().Feedback,
		"only the selected answer is rated")

	cmd()
	require.Len(t, backend.feedbackCalls, 1)
	assert.Equal(t, feedbackCall{"m1", "s1", model.FeedbackGood}, backend.feedbackCalls[0])
}

func TestRateTargetClampsAndReturnsToNewest(t *testing.T) {
	m := twoAnswerModel(t, &fakeBackend{})

	m.moveRateTarget(-1)
	m.moveRateTarget(-1) // already at the oldest answer
	assert.Equal(t, "m1", m.rateTargetMessage().ID)

	m.moveRateTarget(1)
	assert.Equal(t, "m2", m.rateTargetMessage().ID)
	assert.Empty(t, m.rateTarget, "the newest answer is the implicit default")
}

func TestRateTargetResetsOnNewAnswer(t *testing.T) {
	m := twoAnswerModel(t, &fakeBackend{})
	m.moveRateTarget(-1)
	require.Equal(t, "m1", m.rateTargetMessage().ID)

	m, localID := sendQuery(t, m, "one more")
	m, _ = m.Update(QueryResultMsg{
		LocalUserMsgID: localID,
		Resp:           &api.QueryResponse{SessionID: "s1", AIMessageID: "m3", Content: "third"},
	})

	assert.Equal(t, "m3", m.rateTargetMessage().ID, "rating keys snap back to the newest answer")
}

func TestFeedbackFailureIsSilent(t *testing.T) {
	backend := &fakeBackend{}
	m := ratedModel(t, backend)
	m, _ = m.rate(model.FeedbackGood)

	m, cmd := m.Update(FeedbackResultMsg{
		SessionID: "s1", MessageID: "m1", Feedback: model.FeedbackGood,
		Err: &api.ClientError{Type: api.ErrTypeBackend, Message: "nope"},
	})

	assert.Nil(t, cmd)
	assert.Equal(t, model.FeedbackGood, m.conv.LastAssistantMessage().Feedback, "local rating stands")
	assert.False(t, m.toasts.HasToasts(), "best-effort ratings fail quietly")
}

// =============================================================================
// SESSION LIST
// =============================================================================

func TestCachedSessionsYieldToServerList(t *testing.T) {
	m := newTestChat(&fakeBackend{})

	m, _ = m.Update(SessionsLoadedMsg{Sessions: []model.Session{{SessionID: "fresh"}}})
	m, _ = m.Update(CachedSessionsMsg{Sessions: []model.Session{{SessionID: "stale"}}})

	require.Len(t, m.sidebar.Sessions, 1)
	assert.Equal(t, "fresh", m.sidebar.Sessions[0].SessionID)
}

func TestSessionsErrorKeepsExistingList(t *testing.T) {
	m := newTestChat(&fakeBackend{})
	m, _ = m.Update(SessionsLoadedMsg{Sessions: []model.Session{{SessionID: "s1"}}})

	m, _ = m.Update(SessionsLoadedMsg{Err: &api.ClientError{Type: api.ErrTypeConnection, Message: "down"}})

	assert.Len(t, m.sidebar.Sessions, 1)
	assert.True(t, m.toasts.HasToasts())
}

// =============================================================================
// FILTERS
// =============================================================================

func TestFilterEditorApplies(t *testing.T) {
	m := newTestChat(&fakeBackend{})

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlT})
	require.Equal(t, focusFilters, m.focus)

	m.filterInputs[0].SetValue("manual")
	m.filterInputs[1].SetValue("breaker")
	m, _ = m.handleFilterKey(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, focusInput, m.focus)
	assert.Equal(t, "manual", m.Filters().DocumentType)
	assert.Equal(t, "breaker", m.Filters().Product)
	assert.Empty(t, m.Filters().Model)
}

func TestClearFilters(t *testing.T) {
	m := newTestChat(&fakeBackend{})
	m.filters = model.FilterSet{DocumentType: "manual"}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlX})

	assert.True(t, m.Filters().IsZero())
}
