// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/codehelp/codehelp-tui/internal/ui/nav"
	"github.com/codehelp/codehelp-tui/internal/ui/styles"
	"github.com/codehelp/codehelp-tui/internal/util"
)

// Header and status bar rows.
const (
	headerRows    = 2
	statusBarRows = 1
)

func (m *Model) contentSize() (int, int) {
	return m.width, max(1, m.height-headerRows-statusBarRows)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.screen == nil {
		return ""
	}
	_, h := m.contentSize()
	body := m.screen.View()
	if m.height > 0 {
		body = lipgloss.NewStyle().Height(h).MaxHeight(h).Render(body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewHeader(), body, m.viewStatusBar())
}

func (m *Model) viewHeader() string {
	t := m.theme
	accent := lipgloss.NewStyle().Foreground(styles.Purple)
	brand := accent.Render("< ") + t.HeaderBrand.Render("CodeHelp") + accent.Render(" >")

	var user string
	if subject := m.session.Subject(); subject != "" && m.session.IsAuthenticated() {
		user = t.HeaderUser.Render("signed in as " + util.TruncateWidth(subject, 32))
	}

	width := max(40, m.width)
	gap := width - lipgloss.Width(brand) - lipgloss.Width(user) - 2
	line := brand
	if user != "" && gap > 0 {
		line = brand + strings.Repeat(" ", gap) + user
	}
	return t.Header.Width(width).Render(line)
}

func (m *Model) viewStatusBar() string {
	t := m.theme
	hints := append([]nav.Hint{}, m.screen.ShortHelp()...)
	if m.session.IsAuthenticated() {
		hints = append(hints, nav.Hint{Key: "C-l", Desc: "log out"})
	}
	hints = append(hints, nav.Hint{Key: "C-c", Desc: "quit"})

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, t.ShortcutKey.Render(h.Key)+" "+t.ShortcutDesc.Render(h.Desc))
	}
	line := strings.Join(parts, "  ")
	if m.width > 0 {
		line = ansi.Truncate(line, m.width, "")
	}
	return t.StatusBar.Render(line)
}
