// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the codehelp TUI.
//
// Colors are lipgloss.AdaptiveColor pairs so the same palette works on light
// and dark terminals. Theme bundles the styles every screen uses; build one
// per program with NewTheme and pass it down.
//
// Status is never conveyed by color alone: StatusBadge prefixes an ASCII
// indicator ([OK], [X], [..]).
package styles
