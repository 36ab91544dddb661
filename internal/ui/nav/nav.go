// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package nav holds the messages screens use to talk to the app shell.
//
// Screens never switch screens themselves. They emit NavigateMsg and the
// shell resolves the path through the route guard, so every navigation is
// checked against the session.
package nav

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/codehelp/codehelp-tui/internal/api"
)

// =============================================================================
// SCREEN
// =============================================================================

// Screen is one full-window view managed by the shell.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	// SetSize gives the screen the area below the header.
	SetSize(width, height int)
	// ShortHelp lists key hints for the status bar.
	ShortHelp() []Hint
}

// Hint is one key hint in the status bar.
type Hint struct {
	Key  string
	Desc string
}

// Hints converts key bindings to status bar hints, skipping disabled ones.
func Hints(bindings ...key.Binding) []Hint {
	out := make([]Hint, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		out = append(out, Hint{Key: h.Key, Desc: h.Desc})
	}
	return out
}

// =============================================================================
// MESSAGES
// =============================================================================

// NavigateMsg asks the shell to show the screen at Path.
type NavigateMsg struct {
	Path string
	// Notice is shown once on the destination screen.
	Notice string
}

// Navigate returns a command that emits NavigateMsg.
func Navigate(path string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Path: path}
	}
}

// NavigateWithNotice returns a command that emits NavigateMsg carrying a notice.
func NavigateWithNotice(path, notice string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Path: path, Notice: notice}
	}
}

// AuthFailedMsg reports that the backend rejected the credential.
type AuthFailedMsg struct {
	Err error
}

// LoggedInMsg reports a successful login.
type LoggedInMsg struct{}

// LogoutMsg asks the shell to sign out.
type LogoutMsg struct{}

// CheckAuth returns a command emitting AuthFailedMsg when err is an
// authentication failure, and nil otherwise.
func CheckAuth(err error) tea.Cmd {
	if err == nil || !errors.Is(err, api.ErrAuth) {
		return nil
	}
	return func() tea.Msg {
		return AuthFailedMsg{Err: err}
	}
}
