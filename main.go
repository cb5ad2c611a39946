// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

// Command eleknowledge is the terminal client for the EleKnowledge
// electrical-equipment knowledge base: sign in, ask questions, and
// browse past conversations with cited sources.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/eleknowledge/eleknowledge-tui/internal/api"
	"github.com/eleknowledge/eleknowledge-tui/internal/auth"
	"github.com/eleknowledge/eleknowledge-tui/internal/config"
	"github.com/eleknowledge/eleknowledge-tui/internal/storage"
	"github.com/eleknowledge/eleknowledge-tui/internal/ui/authview"
	"github.com/eleknowledge/eleknowledge-tui/internal/ui/chat"
	"github.com/eleknowledge/eleknowledge-tui/internal/ui/styles"
)

// version is set at build time via -ldflags.
var version = "dev"

// =============================================================================
// ROOT MODEL
// =============================================================================

// screen identifies which top-level view owns the terminal.
type screen int

const (
	screenAuth screen = iota
	screenChat
)

// configReloadedMsg is forwarded from the config watcher goroutine.
type configReloadedMsg struct{}

// appModel switches between the auth flow and the chat screen.
type appModel struct {
	cfg   *config.Config
	theme *styles.Theme
	cache *storage.Cache

	screen screen
	auth   authview.Model
	chat   chat.Model

	width  int
	height int
}

func (m appModel) Init() tea.Cmd {
	if m.screen == screenChat {
		return m.chat.Init()
	}
	return m.auth.Init()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case configReloadedMsg:
		m.cfg = config.Global()
		m.theme = themeFor(m.cfg)
		return m, nil

	case authview.SignedInMsg:
		// Sign-in handoff: build the authenticated backend client and
		// swap to the chat screen.
		chatView := chat.New(
			newBackendClient(m.cfg, msg.Session),
			storeOrNil(m.cache),
			m.theme,
			msg.Session.UserID(),
			msg.Session.Email(),
		)
		m.screen = screenChat
		m.chat = chatView
		cmds := []tea.Cmd{m.chat.Init()}
		if m.width > 0 {
			cmds = append(cmds, func() tea.Msg {
				return tea.WindowSizeMsg{Width: m.width, Height: m.height}
			})
		}
		return m, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	switch m.screen {
	case screenAuth:
		m.auth, cmd = m.auth.Update(msg)
	case screenChat:
		m.chat, cmd = m.chat.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	if m.screen == screenChat {
		return m.chat.View()
	}
	return m.auth.View()
}

// =============================================================================
// WIRING
// =============================================================================

func themeFor(cfg *config.Config) *styles.Theme {
	switch cfg.UI.Theme {
	case "dark":
		return styles.NewThemeWithBackground(true)
	case "light":
		return styles.NewThemeWithBackground(false)
	default:
		return styles.NewTheme()
	}
}

func newBackendClient(cfg *config.Config, tokens auth.TokenProvider) *api.Client {
	return api.NewClient(&api.ClientConfig{
		RagURL:  cfg.API.RagURL,
		ChatURL: cfg.API.ChatURL,
		Timeout: time.Duration(cfg.API.TimeoutSecs) * time.Second,
	}, tokens)
}

// storeOrNil converts a possibly-nil *storage.Cache into the chat
// Store interface without producing a typed nil.
func storeOrNil(cache *storage.Cache) chat.Store {
	if cache == nil {
		return nil
	}
	return cache
}

func openCache(cfg *config.Config) *storage.Cache {
	if !cfg.Cache.Enabled {
		return nil
	}
	path, err := cfg.CachePath()
	if err != nil {
		return nil
	}
	cache, err := storage.Open(path)
	if err != nil {
		// The cache is advisory; run without it.
		fmt.Fprintf(os.Stderr, "warning: local cache disabled: %v\n", err)
		return nil
	}
	return cache
}

// =============================================================================
// MAIN
// =============================================================================

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.eleknowledge/config.toml)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("eleknowledge %s\n", version)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "eleknowledge is an interactive terminal application")
		os.Exit(1)
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromPath(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	config.SetGlobal(cfg)

	theme := themeFor(cfg)
	cache := openCache(cfg)
	if cache != nil {
		defer cache.Close()
	}

	app := appModel{
		cfg:   cfg,
		theme: theme,
		cache: cache,
	}

	if cfg.BypassEnabled() {
		// Development shortcut: no identity provider, fixed user.
		provider := auth.NewBypassProvider(cfg.Auth.BypassUserID)
		app.screen = screenChat
		app.chat = chat.New(
			newBackendClient(cfg, provider),
			storeOrNil(cache),
			theme,
			provider.UserID(),
			provider.UserID()+" (bypass)",
		)
	} else {
		app.screen = screenAuth
		app.auth = authview.New(auth.NewClient(cfg.API.AuthURL), theme)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())

	// Live config reload: pushed into the UI loop, never applied from
	// the watcher goroutine.
	if *configPath == "" {
		if w, err := config.Watch(func() {
			if config.ReloadGlobal() == nil {
				p.Send(configReloadedMsg{})
			}
		}); err == nil {
			defer w.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
