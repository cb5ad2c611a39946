// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the
// EleKnowledge TUI.
//
// # Key Components
//
//   - ToastManager: non-blocking corner notifications with
//     auto-dismiss, the user-facing channel for background errors
//   - SessionList: the session sidebar with retention countdowns
//   - StatusBar: the single-line footer
//   - RenderSources / RenderFeedback: retrieval metadata and rating
//     indicators under assistant messages
package components
