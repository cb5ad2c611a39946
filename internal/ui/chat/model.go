// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/eleknowledge/eleknowledge-tui/internal/api"
	"github.com/eleknowledge/eleknowledge-tui/internal/model"
	"github.com/eleknowledge/eleknowledge-tui/internal/reveal"
	"github.com/eleknowledge/eleknowledge-tui/internal/ui/components"
	"github.com/eleknowledge/eleknowledge-tui/internal/ui/styles"
)

// =============================================================================
// BACKEND INTERFACES
// =============================================================================

// Backend is the server surface the chat view talks to. *api.Client
// satisfies it.
type Backend interface {
	ListSessions(ctx context.Context, userID string) ([]model.Session, error)
	ListMessages(ctx context.Context, sessionID string) ([]*model.Message, error)
	DeleteSession(ctx context.Context, sessionID string) error
	SubmitFeedback(ctx context.Context, messageID, sessionID string, feedback model.Feedback) error
	SubmitQuery(ctx context.Context, req api.QueryRequest) (*api.QueryResponse, error)
}

// Store is the local cache surface. *storage.Cache satisfies it. A nil
// Store disables caching.
type Store interface {
	PutSessions(userID string, sessions []model.Session) error
	GetSessions(userID string) ([]model.Session, error)
	DeleteSession(sessionID string) error
	PutMessages(sessionID string, msgs []*model.Message) error
	GetMessages(sessionID string) ([]*model.Message, error)
	SetFeedback(sessionID, messageID string, feedback model.Feedback) error
}

// =============================================================================
// VIEW STATE
// =============================================================================

// State is the conversation pane's lifecycle state. Exactly one state
// is active at a time; every transition goes through Update.
type State int

const (
	// StateEmpty: no active session, blank pane, input ready.
	StateEmpty State = iota
	// StateLoadingHistory: a session was selected and its transcript
	// is being fetched.
	StateLoadingHistory
	// StateReady: transcript shown, input ready.
	StateReady
	// StateAwaitingReply: a query is in flight. No second query may
	// start.
	StateAwaitingReply
	// StateRevealing: an answer arrived and is being disclosed
	// incrementally.
	StateRevealing
)

// String returns the status-bar label for the state.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "new conversation"
	case StateLoadingHistory:
		return "loading"
	case StateReady:
		return "ready"
	case StateAwaitingReply:
		return "thinking"
	case StateRevealing:
		return "answering"
	default:
		return ""
	}
}

// focusArea identifies which pane owns the keyboard.
type focusArea int

const (
	focusInput focusArea = iota
	focusSidebar
	focusFilters
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat screen: session sidebar,
// transcript pane, query input, and filter editor.
type Model struct {
	backend Backend
	store   Store // nil disables the local cache
	theme   *styles.Theme
	keys    KeyMap

	userID    string
	userEmail string

	state State
	focus focusArea

	// Active conversation. activeID is "" for a brand-new
	// conversation that has no server session yet.
	activeID string
	conv     *model.Conversation

	// histGen increments on every session selection; history results
	// carrying an older generation are stale and dropped.
	histGen int

	// serverHistory is set once the fetched transcript has landed for
	// the current generation, after which cached results are ignored.
	serverHistory bool

	// serverSessions is set once the fetched session list has landed;
	// cached lists arriving later no longer paint the sidebar.
	serverSessions bool

	// pendingGen is the histGen at the time the in-flight query was
	// submitted. A result arriving after the user navigated away is
	// dropped.
	pendingGen int

	reveal  *reveal.State
	filters model.FilterSet

	// rateTarget addresses the assistant message the rating keys
	// apply to; "" means the newest answer.
	rateTarget string

	// Snapshot of the pane taken when a session is selected. A
	// selection only sticks once its history arrives; a failed fetch
	// falls back to this.
	prevActiveID      string
	prevConv          *model.Conversation
	prevState         State
	prevServerHistory bool

	sidebar  components.SessionList
	toasts   *components.ToastManager
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	// markdown renderer, rebuilt when the pane width changes
	mdRenderer *glamour.TermRenderer
	mdWidth    int

	// filter editor overlay
	filterInputs [3]textinput.Model
	filterFocus  int

	// session pending delete confirmation, "" when none
	confirmDelete string

	width  int
	height int
	ready  bool // first WindowSizeMsg received
}

// New creates the chat screen for an authenticated user.
func New(backend Backend, store Store, theme *styles.Theme, userID, userEmail string) Model {
	in := textinput.New()
	in.Placeholder = "Ask about your equipment..."
	in.CharLimit = 4000
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	var filterInputs [3]textinput.Model
	for i, label := range [3]string{"document type", "product", "model"} {
		fi := textinput.New()
		fi.Placeholder = label
		fi.CharLimit = 64
		fi.Width = 24
		filterInputs[i] = fi
	}

	return Model{
		backend:      backend,
		store:        store,
		theme:        theme,
		keys:         DefaultKeyMap(),
		userID:       userID,
		userEmail:    userEmail,
		state:        StateEmpty,
		conv:         model.NewConversation(""),
		toasts:       components.NewToastManager(),
		input:        in,
		spinner:      sp,
		filterInputs: filterInputs,
	}
}

// Init implements tea.Model. It kicks off the session list load,
// cache first for an instant sidebar, then the authoritative fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.loadCachedSessionsCmd(),
		m.loadSessionsCmd(),
	)
}

// State returns the current view state.
func (m Model) State() State {
	return m.state
}

// ActiveSessionID returns the server session the pane is showing, or
// "" for a new conversation.
func (m Model) ActiveSessionID() string {
	return m.activeID
}

// Conversation returns the transcript being shown.
func (m Model) Conversation() *model.Conversation {
	return m.conv
}

// Filters returns the filters applied to the next query.
func (m Model) Filters() model.FilterSet {
	return m.filters
}

// revealedID returns the message currently revealing, or "".
func (m Model) revealedID() string {
	if m.reveal == nil {
		return ""
	}
	return m.reveal.MessageID()
}

// isRevealed reports whether a message's content is fully visible.
// Everything is revealed except the one message mid-animation.
func (m Model) isRevealed(msg *model.Message) bool {
	if m.reveal == nil || m.reveal.Done() {
		return true
	}
	return m.reveal.MessageID() != msg.ID
}

// rateTargetMessage returns the assistant message the rating keys
// apply to: the explicitly selected one, or the newest answer.
func (m Model) rateTargetMessage() *model.Message {
	if m.rateTarget != "" {
		if msg := m.conv.MessageByID(m.rateTarget); msg != nil && msg.IsAssistant() {
			return msg
		}
	}
	return m.conv.LastAssistantMessage()
}

// isRateTarget reports whether msg is the explicitly selected rating
// target. The default (newest) target carries no marker.
func (m Model) isRateTarget(msg *model.Message) bool {
	return m.rateTarget != "" && m.rateTarget == msg.ID
}

// moveRateTarget moves the rating selection across the transcript's
// assistant messages, clamped at both ends. Landing back on the
// newest answer clears the explicit selection.
func (m *Model) moveRateTarget(delta int) {
	var answers []*model.Message
	for _, msg := range m.conv.Messages {
		if msg.IsAssistant() {
			answers = append(answers, msg)
		}
	}
	if len(answers) == 0 {
		return
	}

	cur := len(answers) - 1
	target := m.rateTargetMessage()
	for i, msg := range answers {
		if msg == target {
			cur = i
			break
		}
	}

	cur += delta
	if cur < 0 {
		cur = 0
	}
	if cur >= len(answers) {
		cur = len(answers) - 1
	}

	if cur == len(answers)-1 {
		m.rateTarget = ""
	} else {
		m.rateTarget = answers[cur].ID
	}
	m.syncViewport(false)
}

// cancelReveal drops any in-progress animation without completing it.
// Used when the pane navigates away; the content itself is not lost,
// re-entering the session shows it fully disclosed.
func (m *Model) cancelReveal() {
	m.reveal = nil
	if m.state == StateRevealing {
		m.state = StateReady
	}
}

// finishReveal snaps the current animation to its end.
func (m *Model) finishReveal() {
	if m.reveal != nil {
		m.reveal.Complete()
	}
	if m.state == StateRevealing {
		m.state = StateReady
	}
}
