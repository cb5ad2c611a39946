// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration management for the EleKnowledge
// terminal client.
//
// # Key Types
//
//   - Config: endpoints, auth bypass, cache, and UI settings
//   - Watcher: fsnotify-based hot reload of the config file
//
// # Precedence
//
// Built-in defaults, then ~/.eleknowledge/config.toml, then
// ELEKNOWLEDGE_* environment variables. The result is validated before
// use.
//
// # Auth bypass
//
// auth.bypass (or ELEKNOWLEDGE_AUTH_BYPASS) runs the client against a
// fixed local identity for development. The flag is inert in release
// builds: BypassEnabled consults the build profile stamped via ldflags.
package config
