// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/codehelp/codehelp-tui/internal/model"
)

// Theme modes accepted by NewTheme.
const (
	ModeDark  = "dark"
	ModeLight = "light"
	ModeAuto  = "auto"
)

// Theme holds all the styled components for the application.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderBrand lipgloss.Style
	HeaderUser  lipgloss.Style

	// ==========================================================================
	// FORM STYLES
	// ==========================================================================

	FormBox     lipgloss.Style
	FormTitle   lipgloss.Style
	FormLabel   lipgloss.Style
	FormError   lipgloss.Style
	FormSuccess lipgloss.Style
	FormHint    lipgloss.Style

	// ==========================================================================
	// PROJECT LIST STYLES
	// ==========================================================================

	ProjectItem         lipgloss.Style
	ProjectItemSelected lipgloss.Style
	ProjectDesc         lipgloss.Style
	StatusSuccess       lipgloss.Style
	StatusPending       lipgloss.Style
	StatusFailed        lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	UserLabel       lipgloss.Style
	AssistantBubble lipgloss.Style
	AssistantLabel  lipgloss.Style
	ThinkingText    lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	Muted        lipgloss.Style
}

// NewTheme builds the theme for a mode ("dark", "light" or "auto").
// Auto asks the terminal for its background.
func NewTheme(mode string) *Theme {
	isDark := true
	switch strings.ToLower(mode) {
	case ModeLight:
		isDark = false
	case ModeAuto:
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		ColorProfile: termenv.ColorProfile(),
		Width:        80,
		Height:       24,
	}
	t.build()
	return t
}

// SetSize records the terminal dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GlamourStyle names the glamour style matching the background.
func (t *Theme) GlamourStyle() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// StatusBadge renders a project status with its text indicator.
func (t *Theme) StatusBadge(status model.ProjectStatus) string {
	switch status {
	case model.StatusSuccess:
		return t.StatusSuccess.Render(StatusIndicators.Success + " " + status.Label())
	case model.StatusFailed:
		return t.StatusFailed.Render(StatusIndicators.Error + " " + status.Label())
	default:
		return t.StatusPending.Render(StatusIndicators.Pending + " " + status.Label())
	}
}

func (t *Theme) build() {
	t.Header = lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay)
	t.HeaderBrand = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	t.HeaderUser = lipgloss.NewStyle().Foreground(TextSecondary)

	t.FormBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 2)
	t.FormTitle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary).MarginBottom(1)
	t.FormLabel = lipgloss.NewStyle().Foreground(TextSecondary)
	t.FormError = lipgloss.NewStyle().Foreground(Rose)
	t.FormSuccess = lipgloss.NewStyle().Foreground(Emerald)
	t.FormHint = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)

	t.ProjectItem = lipgloss.NewStyle().PaddingLeft(2).Foreground(TextPrimary)
	t.ProjectItemSelected = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(Purple).
		Foreground(Purple).
		Bold(true)
	t.ProjectDesc = lipgloss.NewStyle().PaddingLeft(4).Foreground(TextMuted)
	t.StatusSuccess = lipgloss.NewStyle().Foreground(Emerald)
	t.StatusPending = lipgloss.NewStyle().Foreground(Amber)
	t.StatusFailed = lipgloss.NewStyle().Foreground(Rose)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1)
	t.UserLabel = lipgloss.NewStyle().Bold(true).Foreground(UserBubbleBorder)
	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AssistantBubbleBorder).
		Padding(0, 1)
	t.AssistantLabel = lipgloss.NewStyle().Bold(true).Foreground(Cyan)
	t.ThinkingText = lipgloss.NewStyle().Foreground(TextSecondary).Italic(true)

	t.StatusBar = lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay)
	t.ShortcutKey = lipgloss.NewStyle().Bold(true).Foreground(Cyan)
	t.ShortcutDesc = lipgloss.NewStyle().Foreground(TextMuted)
	t.Muted = lipgloss.NewStyle().Foreground(TextMuted)
}
